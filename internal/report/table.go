package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/runnerr0/smf/internal/ansi"
	"github.com/runnerr0/smf/internal/svc"
	"github.com/runnerr0/smf/internal/svcdate"
)

// List column widths: state glyph, service, CTID, #PIDS, TIME.
var listWidths = []int{1, 40, 7, 7, 10}

// recentAge is how young a start time is before it is highlighted.
const recentAge = time.Hour

// Renderer formats rows for one report pass. Now is captured once by the
// caller so every row's age is measured against the same instant.
type Renderer struct {
	Styles    *Styles
	Now       time.Time
	CellWidth bool // pad by terminal cells instead of bytes
}

func (r *Renderer) padEnd(s string, width int) string {
	if r.CellWidth {
		return ansi.PadEndCells(s, width)
	}
	return ansi.PadEnd(s, width)
}

func (r *Renderer) padStart(s string, width int) string {
	if r.CellWidth {
		return ansi.PadStartCells(s, width)
	}
	return ansi.PadStart(s, width)
}

// FormatLine joins list columns, each preceded by a space and padded to its
// visible width. Over-wide values are not truncated.
func (r *Renderer) FormatLine(cols []string) string {
	var b strings.Builder
	for i, w := range listWidths {
		var text string
		if i < len(cols) {
			text = cols[i]
		}
		b.WriteByte(' ')
		b.WriteString(r.padEnd(text, w))
	}
	return b.String()
}

// WriteList writes the service table: a blank line, the header, one line
// per row and a closing blank line.
func (r *Renderer) WriteList(w io.Writer, rows []Row) error {
	h := r.Styles.Header
	lines := []string{
		"",
		r.FormatLine([]string{
			h.Render(""),
			h.Render("SERVICE"),
			h.Render("CTID"),
			h.Render("#PIDS"),
			h.Render("TIME"),
		}),
	}

	for i := range rows {
		cols, err := r.listColumns(&rows[i])
		if err != nil {
			return err
		}
		lines = append(lines, r.FormatLine(cols))
	}
	lines = append(lines, "")

	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

func (r *Renderer) listColumns(row *Row) ([]string, error) {
	fmri, err := r.FMRI(row.FMRI)
	if err != nil {
		return nil, err
	}
	return []string{
		r.Styles.StateGlyph(&row.Record),
		fmri,
		r.ContractID(&row.Record),
		r.Processes(&row.Record),
		r.Age(row.Started),
	}, nil
}

// FMRI renders a service identifier without its scheme, the instance dimmed.
func (r *Renderer) FMRI(s string) (string, error) {
	f, err := svc.ParseFMRI(s)
	if err != nil {
		return "", err
	}
	if f.Scheme == "lrc" {
		return r.Styles.Dim.Render(f.String()), nil
	}
	if f.Instance == "" {
		return f.Service, nil
	}
	return f.Service + r.Styles.Dim.Render(":"+f.Instance), nil
}

// ContractID renders the contract id, or a '-' when there is none.
func (r *Renderer) ContractID(rec *svc.Record) string {
	if rec.ContractID == nil {
		return r.Styles.Missing.Render("-")
	}
	return r.Styles.ContractID.Render(strconv.Itoa(*rec.ContractID))
}

// Processes renders the contract's process count: '-' without a contract,
// '?' when membership was not collected.
func (r *Renderer) Processes(rec *svc.Record) string {
	switch {
	case rec.ContractID == nil:
		return r.Styles.Missing.Render("-")
	case !rec.MembersKnown():
		return r.Styles.Dim.Render("?")
	case len(rec.Members) == 0:
		return r.Styles.Missing.Render("0")
	default:
		return r.Styles.Count.Render(strconv.Itoa(len(rec.Members)))
	}
}

// Age renders the time since started, highlighted when recent.
func (r *Renderer) Age(started time.Time) string {
	age := svcdate.Age(r.Now, started)
	if r.Now.Sub(started) < recentAge {
		return r.Styles.Recent.Render(age)
	}
	return age
}

// Started renders the resolved start time at the precision svcs printed.
func Started(row *Row) string {
	switch svcdate.Classify(row.STime) {
	case svcdate.FormTimeOfDay:
		return row.Started.Format("2006-01-02 15:04:05")
	case svcdate.FormMonthDay:
		return row.Started.Format("2006-01-02")
	default:
		return fmt.Sprintf("%d", row.Started.Year())
	}
}
