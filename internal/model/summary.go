package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Summary renders everything registered for model as plain text tables.
func (r *Registry) Summary(model string) (string, error) {
	t, err := r.get(model)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Information for %q\n", model)
	fmt.Fprintf(&b, "modes: %s\n", strings.Join(toStrings(t.modes), ", "))

	section(&b, "engines", []string{"mode", "engines"}, engineRows(t))

	args := make([][]string, 0, len(t.args))
	for _, a := range t.args {
		args = append(args, []string{a.Engine, a.Name, a.Original, a.Func.String(), strconv.FormatBool(a.HasSubmodel)})
	}
	section(&b, "arguments", []string{"engine", "name", "original", "func", "submodel"}, args)

	deps := make([][]string, 0, len(t.deps))
	for _, d := range t.deps {
		deps = append(deps, []string{d.Engine, string(d.Mode), strings.Join(d.Packages, ", ")})
	}
	section(&b, "dependencies", []string{"engine", "mode", "packages"}, deps)

	fits := make([][]string, 0, len(t.fits))
	for _, f := range t.fits {
		fits = append(fits, []string{f.Engine, string(f.Mode), string(f.Interface), f.Func.String(), strings.Join(f.Protect, ", ")})
	}
	section(&b, "fit modules", []string{"engine", "mode", "interface", "func", "protect"}, fits)

	preds := make([][]string, 0, len(t.predicts))
	for _, p := range t.predicts {
		preds = append(preds, []string{p.Engine, string(p.Mode), string(p.Type), p.Func.String()})
	}
	section(&b, "prediction modules", []string{"engine", "mode", "type", "func"}, preds)

	encodings := encodingsOf(model, t)
	encs := make([][]string, 0, len(encodings.Rows))
	for _, e := range encodings.Rows {
		encs = append(encs, []string{
			e.Engine, string(e.Mode), string(e.PredictorIndicators),
			strconv.FormatBool(e.ComputeIntercept), strconv.FormatBool(e.RemoveIntercept), strconv.FormatBool(e.AllowSparseX),
		})
	}
	title := "encodings"
	if encodings.Derived {
		title = "encodings (defaults)"
	}
	section(&b, title, []string{"engine", "mode", "indicators", "compute intercept", "remove intercept", "sparse"}, encs)

	return b.String(), nil
}

func section(b *strings.Builder, title string, headers []string, rows [][]string) {
	fmt.Fprintf(b, "\n%s:\n", title)
	if len(rows) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	b.WriteString(tbl.String())
	b.WriteString("\n")
}

// engineRows groups engines by mode, keeping registration order.
func engineRows(t *tables) [][]string {
	var rows [][]string
	for _, mode := range t.modes {
		engines := t.enginesFor(mode)
		if len(engines) == 0 {
			continue
		}
		rows = append(rows, []string{string(mode), strings.Join(engines, ", ")})
	}
	return rows
}
