package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

const labelWidth = 11

// WriteStatus writes one detail block per row, separated by blank lines.
// With long set the contract's member PIDs are listed as well.
func (r *Renderer) WriteStatus(w io.Writer, rows []Row, long bool) error {
	var b strings.Builder
	for i := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		r.writeDetail(&b, &rows[i], long)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (r *Renderer) writeDetail(b *strings.Builder, row *Row, long bool) {
	b.WriteString(r.Styles.Header.Render(row.FMRI))
	b.WriteByte('\n')

	r.field(b, "State", r.Styles.StateName(&row.Record))
	r.field(b, "Started", fmt.Sprintf("%s (%s ago)", Started(row), r.Age(row.Started)))
	r.field(b, "Contract", r.ContractID(&row.Record))
	r.field(b, "Processes", r.Processes(&row.Record))

	if long && row.HasContract() && row.MembersKnown() {
		pids := make([]string, len(row.Members))
		for i, pid := range row.Members {
			pids[i] = strconv.Itoa(pid)
		}
		if len(pids) == 0 {
			pids = append(pids, r.Styles.Dim.Render("none"))
		}
		r.field(b, "PIDs", strings.Join(pids, " "))
	}
}

func (r *Renderer) field(b *strings.Builder, label, value string) {
	b.WriteString("  ")
	b.WriteString(r.padEnd(r.Styles.Label.Render(label+":"), labelWidth))
	b.WriteByte(' ')
	b.WriteString(value)
	b.WriteByte('\n')
}
