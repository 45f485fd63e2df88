package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/runnerr0/smf/internal/svcdate"
)

// ServiceJSON is the JSON form of a row, shared by list and status.
type ServiceJSON struct {
	FMRI          string `json:"fmri"`
	State         string `json:"state"`
	Transitioning bool   `json:"transitioning,omitempty"`
	STime         string `json:"stime"`
	Started       string `json:"started"`
	AgeSeconds    int64  `json:"age_seconds"`
	Age           string `json:"age"`
	ContractID    *int   `json:"ctid"`
	Processes     *int   `json:"processes"`
	PIDs          []int  `json:"pids,omitempty"`
}

// ReportJSON wraps the rows with the instants the report was computed at.
type ReportJSON struct {
	TakenAt  string        `json:"taken_at"`
	Now      string        `json:"now"`
	Services []ServiceJSON `json:"services"`
}

// NewServiceJSON converts row, measuring its age against now. PIDs are
// included only when long is set.
func NewServiceJSON(now time.Time, row *Row, long bool) ServiceJSON {
	out := ServiceJSON{
		FMRI:          row.FMRI,
		State:         row.State.String(),
		Transitioning: row.Transitioning,
		STime:         row.STime,
		Started:       row.Started.Format(time.RFC3339),
		AgeSeconds:    int64(now.Sub(row.Started) / time.Second),
		Age:           svcdate.Age(now, row.Started),
		ContractID:    row.ContractID,
	}
	if row.HasContract() && row.MembersKnown() {
		n := len(row.Members)
		out.Processes = &n
		if long {
			out.PIDs = row.Members
		}
	}
	return out
}

// WriteJSON encodes rows as an indented ReportJSON document.
func WriteJSON(w io.Writer, taken, now time.Time, rows []Row, long bool) error {
	out := ReportJSON{
		TakenAt:  taken.Format(time.RFC3339),
		Now:      now.Format(time.RFC3339),
		Services: make([]ServiceJSON, len(rows)),
	}
	for i := range rows {
		out.Services[i] = NewServiceJSON(now, &rows[i], long)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
