package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/runnerr0/smf/internal/storage"
)

var snapshotWidths = []int{40, 25, 12, 8}

// WriteSnapshots writes the stored snapshot table, newest first as given.
func (r *Renderer) WriteSnapshots(w io.Writer, infos []storage.SnapshotInfo) error {
	h := r.Styles.Header
	lines := []string{r.snapshotLine(
		h.Render("ID"), h.Render("TAKEN AT"), h.Render("AGE"), h.Render("SERVICES"),
	)}

	for _, info := range infos {
		lines = append(lines, r.snapshotLine(
			r.Styles.ContractID.Render(info.ID),
			info.TakenAt.Format("2006-01-02 15:04:05 -0700"),
			r.Age(info.TakenAt),
			strconv.Itoa(info.ServiceCount),
		))
	}

	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

// The service count is right-aligned.
func (r *Renderer) snapshotLine(id, taken, age, count string) string {
	return strings.Join([]string{
		r.padEnd(id, snapshotWidths[0]),
		r.padEnd(taken, snapshotWidths[1]),
		r.padEnd(age, snapshotWidths[2]),
		r.padStart(count, snapshotWidths[3]),
	}, " ")
}
