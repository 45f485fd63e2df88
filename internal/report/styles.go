package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/runnerr0/smf/internal/svc"
)

// ColorMode controls whether styled output carries escape sequences.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates a color mode name.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(s); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	}
	return "", fmt.Errorf("invalid color mode %q (use auto, always or never)", s)
}

// Styles holds the lipgloss styles used by every report.
type Styles struct {
	Header     lipgloss.Style
	Dim        lipgloss.Style
	ContractID lipgloss.Style
	Missing    lipgloss.Style
	Count      lipgloss.Style
	Recent     lipgloss.Style
	Label      lipgloss.Style

	states map[svc.State]lipgloss.Style
}

// NewStyles binds styles to w. ColorAuto lets termenv detect what w
// supports; ColorAlways forces 256 colors.
func NewStyles(w io.Writer, mode ColorMode) *Styles {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case ColorAlways:
		r.SetColorProfile(termenv.ANSI256)
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	}

	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return &Styles{
		Header:     r.NewStyle().Bold(true),
		Dim:        fg("8"),
		ContractID: fg("5"),
		Missing:    fg("3"),
		Count:      fg("2"),
		Recent:     fg("3").Bold(true),
		Label:      r.NewStyle().Bold(true),
		states: map[svc.State]lipgloss.Style{
			svc.StateOnline:        fg("2"),
			svc.StateOffline:       fg("3"),
			svc.StateDegraded:      fg("3"),
			svc.StateMaintenance:   fg("1").Bold(true),
			svc.StateDisabled:      fg("8"),
			svc.StateUninitialized: fg("8"),
			svc.StateLegacyRun:     fg("8"),
		},
	}
}

// State returns the style for a service state.
func (s *Styles) State(st svc.State) lipgloss.Style {
	if style, ok := s.states[st]; ok {
		return style
	}
	return s.Dim
}

var stateGlyphs = map[svc.State]string{
	svc.StateOnline:        "+",
	svc.StateOffline:       "o",
	svc.StateDegraded:      "~",
	svc.StateMaintenance:   "!",
	svc.StateDisabled:      "-",
	svc.StateUninitialized: "?",
	svc.StateLegacyRun:     "L",
}

// StateGlyph renders a one-character state marker. A transitioning service
// shows '*' in its state color.
func (s *Styles) StateGlyph(rec *svc.Record) string {
	g, ok := stateGlyphs[rec.State]
	if !ok {
		g = "?"
	}
	if rec.Transitioning {
		g = "*"
	}
	return s.State(rec.State).Render(g)
}

// StateName renders the full state name, with '*' when transitioning.
func (s *Styles) StateName(rec *svc.Record) string {
	name := rec.State.String()
	if rec.Transitioning {
		name += "*"
	}
	return s.State(rec.State).Render(name)
}
