// Package svc models the service records printed by svcs.
package svc

import (
	"fmt"
	"strings"
)

// State is an SMF service state.
type State int

const (
	StateUninitialized State = iota
	StateOffline
	StateOnline
	StateDegraded
	StateMaintenance
	StateDisabled
	StateLegacyRun
)

var stateNames = []struct {
	name  string
	short string
}{
	StateUninitialized: {"uninitialized", "UN"},
	StateOffline:       {"offline", "OFF"},
	StateOnline:        {"online", "ON"},
	StateDegraded:      {"degraded", "DGD"},
	StateMaintenance:   {"maintenance", "MNT"},
	StateDisabled:      {"disabled", "DIS"},
	StateLegacyRun:     {"legacy_run", "LRC"},
}

// States lists every state in declaration order.
func States() []State {
	out := make([]State, len(stateNames))
	for i := range stateNames {
		out[i] = State(i)
	}
	return out
}

func (s State) String() string {
	if int(s) < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s].name
}

// Short is the abbreviation svcs uses in its "sta" column.
func (s State) Short() string {
	if int(s) < 0 || int(s) >= len(stateNames) {
		return "?"
	}
	return stateNames[s].short
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseState accepts a state name or its svcs abbreviation.
func ParseState(v string) (State, error) {
	for i, n := range stateNames {
		if strings.EqualFold(v, n.name) || strings.EqualFold(v, n.short) {
			return State(i), nil
		}
	}
	return 0, fmt.Errorf("unknown service state %q", v)
}

// Record is one row of svcs output.
type Record struct {
	FMRI          string
	State         State
	Transitioning bool   // svcs marks a pending state change with '*'
	STime         string // truncated start time, as printed
	ContractID    *int

	// Members lists the processes in the service's contract. Nil means
	// membership was never collected; empty means the contract has none.
	Members []int
}

// HasContract reports whether the service runs under a process contract.
func (r *Record) HasContract() bool {
	return r.ContractID != nil
}

// MembersKnown reports whether contract membership was collected.
func (r *Record) MembersKnown() bool {
	return r.Members != nil
}
