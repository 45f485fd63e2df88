package svc

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// ParseSvcs reads the output of `svcs -H -o state,stime,ctid,fmri`.
func ParseSvcs(r io.Reader) ([]Record, error) {
	var records []Record

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		rec, err := parseSvcsLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read svcs output: %w", err)
	}

	if records == nil {
		records = []Record{}
	}
	return records, nil
}

func parseSvcsLine(line string) (Record, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return Record{}, fmt.Errorf("want 4 columns (state stime ctid fmri), got %d", len(fields))
	}

	var rec Record

	state := fields[0]
	if strings.HasSuffix(state, "*") {
		rec.Transitioning = true
		state = strings.TrimSuffix(state, "*")
	}
	st, err := ParseState(state)
	if err != nil {
		return Record{}, err
	}
	rec.State = st

	rec.STime = fields[1]

	if fields[2] != "-" {
		id, err := strconv.Atoi(fields[2])
		if err != nil || id < 0 {
			return Record{}, fmt.Errorf("invalid contract id %q", fields[2])
		}
		rec.ContractID = &id
	}

	if _, err := ParseFMRI(fields[3]); err != nil {
		return Record{}, err
	}
	rec.FMRI = fields[3]

	return rec, nil
}

// ParseMembers reads a contract membership listing: one contract per line,
// "<ctid> <pid> <pid> ...". Blank lines and lines starting with '#' are
// ignored. A contract listed without pids has no members.
func ParseMembers(r io.Reader) (map[int][]int, error) {
	members := make(map[int][]int)

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		ctid, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid contract id %q", lineNo, fields[0])
		}

		pids := members[ctid]
		if pids == nil {
			pids = []int{}
		}
		for _, f := range fields[1:] {
			pid, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid pid %q", lineNo, f)
			}
			pids = append(pids, pid)
		}
		sort.Ints(pids)
		members[ctid] = pids
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read members: %w", err)
	}

	return members, nil
}

// AttachMembers fills in Members for each record whose contract appears in
// members. Contracts missing from members are left unknown.
func AttachMembers(records []Record, members map[int][]int) {
	for i := range records {
		ct := records[i].ContractID
		if ct == nil {
			continue
		}
		if pids, ok := members[*ct]; ok {
			records[i].Members = pids
		}
	}
}
