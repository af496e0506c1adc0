package domain

// Status codes reported by archive validation.
const (
	StatusValid  = 0
	StatusBadZip = 1
)

// StatusCode describes one validation outcome.
type StatusCode struct {
	ID          int
	Description string
	Message     string
}

// DefaultStatusCodes returns the status codes shared by all platforms.
func DefaultStatusCodes() []StatusCode {
	return []StatusCode{
		{ID: StatusValid, Description: "Valid zip", Message: "Valid zip"},
		{ID: StatusBadZip, Description: "Bad zipfile", Message: "Bad zipfile"},
	}
}

// Filetype is the kind of files an export package contains.
type Filetype string

// Known export file types.
const (
	FiletypeJSON Filetype = "json"
	FiletypeHTML Filetype = "html"
)

// DDPCategory is a known shape of a platform's export package,
// identified by the file names it contains.
type DDPCategory struct {
	ID         string
	Filetype   Filetype
	Language   string
	KnownFiles []string
}

// ValidationResult is the outcome of validating an export package.
type ValidationResult struct {
	StatusCodes []StatusCode
	Categories  []DDPCategory

	Status   *StatusCode
	Category *DDPCategory
}

// NewValidationResult creates a result for the given codes and categories.
func NewValidationResult(codes []StatusCode, categories []DDPCategory) *ValidationResult {
	return &ValidationResult{StatusCodes: codes, Categories: categories}
}

// SetStatusCode selects the status code with the given id.
// Unknown ids leave the status unset and return false.
func (v *ValidationResult) SetStatusCode(id int) bool {
	for i := range v.StatusCodes {
		if v.StatusCodes[i].ID == id {
			v.Status = &v.StatusCodes[i]
			return true
		}
	}
	return false
}

// InferCategory picks the category whose known files best match names.
// The first category wins ties. No match leaves the category unset.
func (v *ValidationResult) InferCategory(names []string) {
	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}

	best, bestScore := -1, 0
	for i, c := range v.Categories {
		score := 0
		for _, f := range c.KnownFiles {
			if present[f] {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if best >= 0 {
		v.Category = &v.Categories[best]
	}
}

// IsValid reports whether the archive could be read.
func (v *ValidationResult) IsValid() bool {
	return v.Status != nil && v.Status.ID == StatusValid
}
