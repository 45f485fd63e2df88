// Package report renders service records as aligned, styled text.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/runnerr0/smf/internal/svc"
	"github.com/runnerr0/smf/internal/svcdate"
)

// Row is a record whose start time has been resolved.
type Row struct {
	svc.Record
	Started time.Time
}

// BuildRows resolves every record's start time against taken, the moment the
// svcs output was produced. The first unresolvable start time aborts with the
// FMRI and token in the error.
func BuildRows(taken time.Time, records []svc.Record) ([]Row, error) {
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		started, err := svcdate.Resolve(taken, rec.STime)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", rec.FMRI, err)
		}
		rows = append(rows, Row{Record: rec, Started: started})
	}
	return rows, nil
}

// ListOptions selects which rows a list report shows and in what order.
type ListOptions struct {
	All          bool   // include disabled services
	ContractOnly bool   // only services with a contract
	Filter       string // substring of the FMRI
	Sort         []SortKey
}

// FilterRecords applies opts. Legacy services are always dropped. Filtering
// runs before BuildRows so a hidden record's start time is never resolved.
func FilterRecords(records []svc.Record, opts ListOptions) []svc.Record {
	out := make([]svc.Record, 0, len(records))
	for _, r := range records {
		if r.State == svc.StateLegacyRun {
			continue
		}
		if !opts.All && r.State == svc.StateDisabled {
			continue
		}
		if opts.ContractOnly && !r.HasContract() {
			continue
		}
		if opts.Filter != "" && !strings.Contains(r.FMRI, opts.Filter) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// MatchRecords returns the records whose FMRI matches any pattern. Patterns
// with glob metacharacters are matched against the whole FMRI, others as
// substrings.
func MatchRecords(records []svc.Record, patterns []string) []svc.Record {
	var out []svc.Record
	for _, r := range records {
		for _, p := range patterns {
			if matchFMRI(r.FMRI, p) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

func matchFMRI(fmri, pattern string) bool {
	if strings.ContainsAny(pattern, "*?[") {
		return globMatch(pattern, fmri)
	}
	return strings.Contains(fmri, pattern)
}

// SortKey names a list ordering field.
type SortKey string

const (
	SortFMRI     SortKey = "fmri"
	SortState    SortKey = "state"
	SortTime     SortKey = "time"
	SortContract SortKey = "contract"
)

// ParseSortKeys accepts keys as separate values, comma-separated, or both.
func ParseSortKeys(values []string) ([]SortKey, error) {
	var keys []SortKey
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(strings.ToLower(part))
			if part == "" {
				continue
			}
			switch k := SortKey(part); k {
			case SortFMRI, SortState, SortTime, SortContract:
				keys = append(keys, k)
			default:
				return nil, fmt.Errorf("invalid sort key %q (use fmri, state, time or contract)", part)
			}
		}
	}
	return keys, nil
}

// SortRows orders rows by keys, earlier keys taking precedence. Times sort
// oldest first; services without a contract sort before those with one.
func SortRows(rows []Row, keys []SortKey) {
	sort.SliceStable(rows, func(i, j int) bool {
		for _, k := range keys {
			if c := compareRows(&rows[i], &rows[j], k); c != 0 {
				return c < 0
			}
		}
		return false
	})
}

func compareRows(a, b *Row, key SortKey) int {
	switch key {
	case SortFMRI:
		return strings.Compare(a.FMRI, b.FMRI)
	case SortState:
		return int(a.State) - int(b.State)
	case SortTime:
		return a.Started.Compare(b.Started)
	case SortContract:
		switch {
		case a.ContractID == nil && b.ContractID == nil:
			return 0
		case a.ContractID == nil:
			return -1
		case b.ContractID == nil:
			return 1
		}
		return *a.ContractID - *b.ContractID
	}
	return 0
}
