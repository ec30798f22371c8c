// Package render turns an EvaluationReport into presentation formats.
// The engine never writes files itself; rendering and disk I/O live here.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/canonica/canonica/internal/model"
)

// WriteJSON renders the full report as indented JSON
func WriteJSON(w io.Writer, r *model.EvaluationReport) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// WriteYAML renders the full report as YAML
func WriteYAML(w io.Writer, r *model.EvaluationReport) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// WriteMarkdown renders a human-readable dashboard: headline counters,
// then per-claim and per-question verdicts.
func WriteMarkdown(w io.Writer, r *model.EvaluationReport) error {
	var b strings.Builder

	title := r.Title
	if title == "" {
		title = "Evaluation report"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Evaluated: %s\n\n", r.EvaluatedAt.Format("2006-01-02 15:04:05 MST"))

	fmt.Fprintf(&b, "## Dashboard\n\n")
	fmt.Fprintf(&b, "| | Passing / Total |\n|---|---|\n")
	fmt.Fprintf(&b, "| Claims | %d / %d |\n", r.Dashboard.ClaimsPassing, r.Dashboard.ClaimsTotal)
	fmt.Fprintf(&b, "| Questions true | %d / %d |\n", r.Dashboard.QuestionsTrue, r.Dashboard.QuestionsTotal)
	if r.Dashboard.ClaimsErrored > 0 || r.Dashboard.QuestionsErrored > 0 {
		fmt.Fprintf(&b, "| Errored | %d claims, %d questions |\n",
			r.Dashboard.ClaimsErrored, r.Dashboard.QuestionsErrored)
	}
	b.WriteString("\n")

	if len(r.Calculations) > 0 {
		fmt.Fprintf(&b, "## Calculations\n\n")
		fmt.Fprintf(&b, "| ID | Result | Reference | Abs error | Within tolerance |\n|---|---|---|---|---|\n")
		for _, c := range r.Calculations {
			if c.Error != "" {
				fmt.Fprintf(&b, "| %s | n/a | n/a | n/a | ERROR: %s |\n", c.ID, c.Error)
				continue
			}
			fmt.Fprintf(&b, "| %s | %.10e | %.10e | %.3e | %s |\n",
				c.ID, c.Result, c.Reference, c.AbsError, verdict(c.WithinTolerance))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Claims\n\n")
	fmt.Fprintf(&b, "| ID | Claim | Spread | Tolerance | Pass |\n|---|---|---|---|---|\n")
	for _, c := range r.Claims {
		if c.Error != "" {
			fmt.Fprintf(&b, "| %s | %s | n/a | n/a | ERROR: %s |\n", c.ID, c.Text, c.Error)
			continue
		}
		fmt.Fprintf(&b, "| %s | %s | %.3e | %.3e | %s |\n",
			c.ID, c.Text, c.Spread, c.Tolerance, verdict(c.Pass))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Questions\n\n")
	fmt.Fprintf(&b, "| ID | Question | Answer |\n|---|---|---|\n")
	for _, q := range r.Questions {
		if q.Error != "" {
			fmt.Fprintf(&b, "| %s | %s | ERROR: %s |\n", q.ID, q.Text, q.Error)
			continue
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", q.ID, q.Text, strings.ToUpper(fmt.Sprintf("%v", q.Answer)))
	}
	b.WriteString("\n")

	if len(r.Warnings) > 0 {
		fmt.Fprintf(&b, "## Warnings\n\n")
		for _, warning := range r.Warnings {
			fmt.Fprintf(&b, "- %s\n", warning)
		}
		b.WriteString("\n")
	}

	if r.Narration != nil && r.Narration.Text != "" {
		fmt.Fprintf(&b, "## Narration (%s/%s)\n\n", r.Narration.Provider, r.Narration.Model)
		fmt.Fprintf(&b, "_Generated commentary; verdicts above are computed and unaffected._\n\n")
		b.WriteString(r.Narration.Text)
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func verdict(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}

// Files writes the report to the given paths; an empty path skips that
// format
func Files(r *model.EvaluationReport, jsonPath, mdPath string) error {
	if jsonPath != "" {
		if err := writeFile(jsonPath, func(w io.Writer) error { return WriteJSON(w, r) }); err != nil {
			return err
		}
	}
	if mdPath != "" {
		if err := writeFile(mdPath, func(w io.Writer) error { return WriteMarkdown(w, r) }); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, render func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()
	return render(f)
}
