package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/donation-cli/internal/core/domain"
	"github.com/custodia-labs/donation-cli/internal/core/ports/driving"
	"github.com/custodia-labs/donation-cli/internal/logger"
)

var runSession string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a donation session in the terminal",
	Long: `Run walks the participant through every supported platform in turn:
choose a data download package (or skip), review the extracted tables,
remove rows that should not be shared, and consent to donate.

Answers are read line by line from standard input, so a session can also be
scripted. Use "donate tui" for the full-screen interface.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runSession, "session", "", "session id (default: random)")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	if donationService == nil {
		return errors.New("donation service not configured")
	}
	script, err := startScript(runSession)
	if err != nil {
		return err
	}

	host := newLineHost(cmd.InOrStdin(), cmd.OutOrStdout(), language())
	donated, err := host.run(cmd.Context(), script, donationService)
	if err != nil {
		return err
	}

	cmd.Printf("\nSession %s finished, %d donation(s) stored.\n", script.SessionID(), len(donated))
	return nil
}

// lineHost renders script pages as text and reads answers line by line.
// When answers do not come from a terminal they are echoed after each
// prompt, so the output of a scripted session reads as a transcript.
type lineHost struct {
	in   *bufio.Reader
	out  io.Writer
	lang string
	echo bool
}

func newLineHost(in io.Reader, out io.Writer, lang string) *lineHost {
	echo := !isTerminal(in)
	if echo {
		logger.Debug("reading answers from non-interactive input")
	}
	return &lineHost{in: bufio.NewReader(in), out: out, lang: lang, echo: echo}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// run drives script to its end, recording every Donate command.
// A donation that cannot be stored is reported and the session continues.
func (h *lineHost) run(ctx context.Context, script driving.DonationScript, donations driving.DonationService) ([]domain.Donation, error) {
	var donated []domain.Donation
	step := script.Start()

	for {
		var payload domain.Payload
		switch c := step.Command.(type) {
		case domain.Donate:
			d, err := donations.Record(ctx, c)
			if err != nil {
				logger.Error("storing donation %s: %v", c.Key, err)
				fmt.Fprintf(h.out, "Could not store donation %s: %v\n", c.Key, err)
			} else {
				donated = append(donated, *d)
				logger.Debug("stored donation %s as %s", d.Key, d.ID)
			}
			payload = domain.NoSelection()

		case domain.RenderPage:
			payload = h.page(c)

		default:
			h.end(donated)
			return donated, nil
		}

		if step.Done {
			return donated, nil
		}

		var err error
		step, err = script.Resume(ctx, payload)
		if err != nil {
			return donated, fmt.Errorf("session failed: %w", err)
		}
	}
}

func (h *lineHost) page(p domain.RenderPage) domain.Payload {
	fmt.Fprintf(h.out, "\n== %s  [%d%%] ==\n", p.Platform, p.Progress)

	switch body := p.Body.(type) {
	case domain.FileInputPrompt:
		return h.file(body)
	case domain.ConfirmPrompt:
		return h.confirm(body)
	case domain.ConsentForm:
		return h.consent(body)
	default:
		return domain.NoSelection()
	}
}

func (h *lineHost) file(p domain.FileInputPrompt) domain.Payload {
	fmt.Fprintln(h.out, p.Description.Text(h.lang))
	answer, _ := h.ask(h.text("File (leave empty to skip): ", "Bestand (leeg laten om over te slaan): "))
	path := strings.Trim(answer, `"'`)
	if path == "" {
		return domain.NoSelection()
	}
	return domain.FilePayload(path)
}

func (h *lineHost) confirm(p domain.ConfirmPrompt) domain.Payload {
	fmt.Fprintln(h.out, p.Text.Text(h.lang))
	answer, _ := h.ask(fmt.Sprintf("%s / %s [y/N]: ", p.Ok.Text(h.lang), p.Cancel.Text(h.lang)))
	return domain.ConfirmPayload(isYes(answer))
}

// consent shows every table, lets the participant drop rows from the data
// tables and asks for consent. Meta tables are shown and always donated.
func (h *lineHost) consent(form domain.ConsentForm) domain.Payload {
	if len(form.Tables) == 0 {
		fmt.Fprintln(h.out, h.text("No data was extracted.", "Er zijn geen gegevens gevonden."))
	}

	tables := make([]domain.ConsentTable, len(form.Tables))
	for i, t := range form.Tables {
		t.Table = t.Table.WithoutRows()
		renderTable(h.out, t.Title.Text(h.lang), t.Table, true)
		if t.Table.Len() > 0 {
			t.Table = h.removeRows(t)
		}
		tables[i] = t
	}
	for _, t := range form.MetaTables {
		renderTable(h.out, t.Title.Text(h.lang), t.Table, false)
	}

	answer, _ := h.ask(h.text("Donate these tables? [y/N]: ", "Deze tabellen doneren? [j/N]: "))
	if !isYes(answer) {
		return domain.NoSelection()
	}

	payload, err := domain.NewConsentPayload(append(tables, form.MetaTables...))
	if err != nil {
		logger.Error("encoding consent: %v", err)
		return domain.NoSelection()
	}
	return payload
}

// removeRows asks which rows of t to drop until the answer parses.
func (h *lineHost) removeRows(t domain.ConsentTable) domain.Table {
	prompt := fmt.Sprintf(h.text("Rows to remove from %s (e.g. 1,3-5; leave empty to keep all): ",
		"Rijen om te verwijderen uit %s (bijv. 1,3-5; leeg laten om alles te houden): "), t.ID)
	for {
		answer, ok := h.ask(prompt)
		rows, err := parseRows(answer, t.Table.Len())
		if err != nil {
			fmt.Fprintln(h.out, err)
			if !ok {
				return t.Table
			}
			continue
		}
		if len(rows) == 0 {
			return t.Table
		}
		kept := t.Table.WithoutRows(rows...)
		fmt.Fprintf(h.out, h.text("%d row(s) removed.\n", "%d rij(en) verwijderd.\n"), t.Table.Len()-kept.Len())
		return kept
	}
}

func (h *lineHost) end(donated []domain.Donation) {
	fmt.Fprintln(h.out)
	fmt.Fprintln(h.out, h.text("Thank you for participating!", "Bedankt voor je deelname!"))
	for _, d := range donated {
		fmt.Fprintf(h.out, "  - %s\n", d.Key)
	}
}

// ask prints prompt and reads one line. ok is false once input is exhausted.
func (h *lineHost) ask(prompt string) (answer string, ok bool) {
	fmt.Fprint(h.out, prompt)
	line, err := h.in.ReadString('\n')
	answer = strings.TrimSpace(line)
	if h.echo {
		fmt.Fprint(h.out, answer)
	}
	if err != nil {
		fmt.Fprintln(h.out)
		return answer, false
	}
	if h.echo {
		fmt.Fprintln(h.out)
	}
	return answer, true
}

func (h *lineHost) text(en, nl string) string {
	return domain.Translatable{domain.LanguageEN: en, domain.LanguageNL: nl}.Text(h.lang)
}

func isYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "j", "ja":
		return true
	}
	return false
}

// parseRows parses 1-based row numbers and ranges such as "1,3-5" into
// sorted 0-based indexes.
func parseRows(s string, n int) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	seen := make(map[int]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(part, "-")
		from, err := rowNumber(lo, n)
		if err != nil {
			return nil, err
		}
		to := from
		if isRange {
			if to, err = rowNumber(hi, n); err != nil {
				return nil, err
			}
		}
		if from > to {
			return nil, fmt.Errorf("invalid range %q", part)
		}
		for i := from; i <= to; i++ {
			seen[i-1] = true
		}
	}

	out := make([]int, 0, len(seen))
	for i := range seen {
		out = append(out, i)
	}
	sort.Ints(out)
	return out, nil
}

func rowNumber(s string, n int) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid row number %q", s)
	}
	if i < 1 || i > n {
		return 0, fmt.Errorf("row %d out of range 1-%d", i, n)
	}
	return i, nil
}
