// Package consent provides the page where participants review and edit the
// extracted tables before donating them.
package consent

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/donation-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/donation-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/donation-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/donation-cli/internal/core/domain"
)

// maxColumnWidth caps the rendered width of a single column.
const maxColumnWidth = 40

// View shows one consent table at a time. Rows of data tables can be
// removed before donating; meta tables are shown read-only and always donated.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	lang     string
	platform string
	tables   []domain.ConsentTable
	meta     []domain.ConsentTable
	removed  []int
	active   int
	model    table.Model
	width    int
	height   int
}

// NewView creates a new consent view.
func NewView(s *styles.Styles, lang string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		keymap: keymap.DefaultKeyMap(),
		lang:   lang,
		model:  table.New(),
		width:  80,
		height: 24,
	}
}

// SetForm shows a new consent form. The form is copied so edits never
// reach the caller's tables.
func (v *View) SetForm(platform string, form domain.ConsentForm) {
	v.platform = platform
	v.tables = make([]domain.ConsentTable, len(form.Tables))
	for i, t := range form.Tables {
		t.Table = t.Table.WithoutRows()
		v.tables[i] = t
	}
	v.meta = append([]domain.ConsentTable(nil), form.MetaTables...)
	v.removed = make([]int, len(v.tables))
	v.active = 0
	v.rebuild(0)
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles key presses.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	n := v.count()
	switch key := km.String(); {
	case keymap.Matches(key, v.keymap.NextTable):
		if n > 0 {
			v.active = (v.active + 1) % n
			v.rebuild(0)
		}
		return v, nil
	case keymap.Matches(key, v.keymap.PrevTable):
		if n > 0 {
			v.active = (v.active + n - 1) % n
			v.rebuild(0)
		}
		return v, nil
	case keymap.Matches(key, v.keymap.DeleteRow):
		v.deleteSelected()
		return v, nil
	case keymap.Matches(key, v.keymap.Submit):
		return v, v.donate()
	case keymap.Matches(key, v.keymap.Back):
		return v, messages.Submit(domain.NoSelection())
	}

	var cmd tea.Cmd
	v.model, cmd = v.model.Update(msg)
	return v, cmd
}

func (v *View) deleteSelected() {
	if v.active >= len(v.tables) {
		return
	}
	t := &v.tables[v.active]
	cursor := v.model.Cursor()
	if cursor < 0 || cursor >= t.Table.Len() {
		return
	}
	t.Table = t.Table.WithoutRows(cursor)
	v.removed[v.active]++
	v.rebuild(cursor)
}

func (v *View) donate() tea.Cmd {
	all := make([]domain.ConsentTable, 0, len(v.tables)+len(v.meta))
	all = append(all, v.tables...)
	all = append(all, v.meta...)
	payload, err := domain.NewConsentPayload(all)
	if err != nil {
		return func() tea.Msg { return messages.ErrorOccurred{Err: err} }
	}
	return messages.Submit(payload)
}

func (v *View) count() int {
	return len(v.tables) + len(v.meta)
}

func (v *View) current() (domain.ConsentTable, bool) {
	switch {
	case v.active < len(v.tables):
		return v.tables[v.active], true
	case v.active < v.count():
		return v.meta[v.active-len(v.tables)], true
	default:
		return domain.ConsentTable{}, false
	}
}

// rebuild renders the active table into the bubbles model.
func (v *View) rebuild(cursor int) {
	ct, ok := v.current()
	if !ok {
		v.model = table.New()
		return
	}

	widths := make([]int, len(ct.Table.Columns))
	for i, c := range ct.Table.Columns {
		widths[i] = len(c)
	}
	rows := make([]table.Row, 0, ct.Table.Len())
	for _, r := range ct.Table.Rows {
		row := make(table.Row, len(ct.Table.Columns))
		for i := range row {
			if i < len(r) {
				row[i] = Cell(r[i])
			}
			widths[i] = max(widths[i], len(row[i]))
		}
		rows = append(rows, row)
	}
	columns := make([]table.Column, len(ct.Table.Columns))
	for i, c := range ct.Table.Columns {
		columns[i] = table.Column{Title: c, Width: min(widths[i], maxColumnWidth)}
	}

	v.model = table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(v.tableHeight(len(rows))),
		table.WithStyles(v.styles.Table(v.active < len(v.tables))),
	)
	if len(rows) > 0 {
		v.model.SetCursor(min(cursor, len(rows)-1))
	}
}

func (v *View) tableHeight(rows int) int {
	return max(min(rows+1, v.height-10), 3)
}

// Cell formats a table value for display.
func Cell(value any) string {
	switch x := value.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

// View renders the active table with its tab strip.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render(v.platform))
	b.WriteString("\n\n")

	ct, ok := v.current()
	if !ok {
		b.WriteString(v.styles.Muted.Render("No data was extracted."))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[enter] donate  [esc] decline"))
		return b.String()
	}

	tabs := make([]string, 0, v.count())
	for i := 0; i < v.count(); i++ {
		label := fmt.Sprintf(" %d ", i+1)
		if i == v.active {
			tabs = append(tabs, v.styles.ActiveButton.UnsetBorderStyle().Render(label))
		} else {
			tabs = append(tabs, v.styles.Muted.Render(label))
		}
	}
	b.WriteString(strings.Join(tabs, ""))
	b.WriteString("\n")
	b.WriteString(v.styles.Subtitle.Render(ct.Title.Text(v.lang)))
	if v.active < len(v.tables) && v.removed[v.active] > 0 {
		b.WriteString(v.styles.Warning.Render(fmt.Sprintf("  (%d rows removed)", v.removed[v.active])))
	}
	b.WriteString("\n\n")
	b.WriteString(v.model.View())
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[tab] next table  [d] remove row  [enter] donate  [esc] decline"))
	return b.String()
}

// Tables returns the data tables with the participant's edits applied.
func (v *View) Tables() []domain.ConsentTable {
	return v.tables
}

// Active returns the index of the shown table.
func (v *View) Active() int {
	return v.active
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	cursor := v.model.Cursor()
	v.rebuild(cursor)
}
