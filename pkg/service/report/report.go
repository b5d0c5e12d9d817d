package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/m-mizutani/goerr/v2"
	"github.com/openMF/credcheck/pkg/domain/model"
	"github.com/openMF/credcheck/pkg/domain/types"
)

// Banner separates the sections of a report
var Banner = strings.Repeat("=", 50)

// Reporter renders verification results as line-oriented text.
// Colors are applied only when w is a terminal.
type Reporter struct {
	w      io.Writer
	badges map[types.Status]lipgloss.Style
	dim    lipgloss.Style
}

// New creates a new Reporter writing to w
func New(w io.Writer) *Reporter {
	r := lipgloss.NewRenderer(w)
	badge := func(color string) lipgloss.Style {
		return r.NewStyle().Bold(true).Foreground(lipgloss.Color(color))
	}

	return &Reporter{
		w: w,
		badges: map[types.Status]lipgloss.Style{
			types.StatusValid:         badge("2"),
			types.StatusInvalid:       badge("1"),
			types.StatusRestricted:    badge("3"),
			types.StatusMisconfigured: badge("5"),
		},
		dim: r.NewStyle().Faint(true),
	}
}

func (r *Reporter) badge(status types.Status) string {
	text := "[" + status.Label() + "]"
	if style, ok := r.badges[status]; ok {
		return style.Render(text)
	}
	return text
}

// Write renders one result between banners
func (r *Reporter) Write(result model.Result) error {
	var b strings.Builder

	fmt.Fprintln(&b, Banner)
	fmt.Fprintf(&b, "Checking %s...\n", result.Service.DisplayName())
	fmt.Fprintf(&b, "%s %s: %s\n", r.badge(result.Status), result.Service, result.Detail)

	if result.Hint != "" {
		fmt.Fprintf(&b, "  hint: %s\n", r.dim.Render(result.Hint))
	}
	if result.Identity != "" {
		fmt.Fprintf(&b, "  identity:  %s\n", result.Identity)
	}
	if result.Workspace != "" {
		fmt.Fprintf(&b, "  workspace: %s\n", result.Workspace)
	}
	if len(result.Scopes) > 0 {
		fmt.Fprintf(&b, "  scopes:    %s\n", strings.Join(result.Scopes, ", "))
	}
	for _, f := range result.Findings {
		fmt.Fprintf(&b, "  %s %s\n", r.badge(f.Status), f.Detail)
		if f.Hint != "" {
			fmt.Fprintf(&b, "    hint: %s\n", r.dim.Render(f.Hint))
		}
	}
	fmt.Fprintln(&b, Banner)

	if _, err := io.WriteString(r.w, b.String()); err != nil {
		return goerr.Wrap(err, "failed to write report", goerr.V("service", result.Service))
	}
	return nil
}

// WriteAll renders every result followed by a summary line
func (r *Reporter) WriteAll(results []model.Result) error {
	for _, result := range results {
		if err := r.Write(result); err != nil {
			return err
		}
	}
	return r.Summary(results)
}

// Summary writes "N checks: v valid (k restricted), i invalid, m misconfigured, r restricted".
// The four top-level counts add up to N.
func (r *Reporter) Summary(results []model.Result) error {
	s := model.Summarize(results)
	line := fmt.Sprintf("%d checks: %d valid (%d restricted), %d invalid, %d misconfigured, %d restricted\n",
		s.Total, s.Valid, s.ValidRestricted, s.Invalid, s.Misconfigured, s.Restricted)
	if _, err := io.WriteString(r.w, line); err != nil {
		return goerr.Wrap(err, "failed to write summary")
	}
	return nil
}
