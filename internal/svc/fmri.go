package svc

import (
	"fmt"
	"strings"
)

// FMRI is a parsed fault management resource identifier such as
// "svc:/network/ssh:default".
type FMRI struct {
	Scheme   string // "svc" or "lrc"
	Service  string // "network/ssh"
	Instance string // "default", empty for legacy services
}

// ParseFMRI splits s into scheme, service and instance.
func ParseFMRI(s string) (FMRI, error) {
	scheme, rest, ok := strings.Cut(s, ":/")
	if !ok {
		return FMRI{}, fmt.Errorf("invalid fmri %q: missing scheme", s)
	}

	switch scheme {
	case "svc":
		svc, inst, _ := strings.Cut(rest, ":")
		if svc == "" {
			return FMRI{}, fmt.Errorf("invalid fmri %q: empty service", s)
		}
		return FMRI{Scheme: scheme, Service: svc, Instance: inst}, nil
	case "lrc":
		if rest == "" {
			return FMRI{}, fmt.Errorf("invalid fmri %q: empty path", s)
		}
		return FMRI{Scheme: scheme, Service: rest}, nil
	default:
		return FMRI{}, fmt.Errorf("invalid fmri %q: unknown scheme %q", s, scheme)
	}
}

func (f FMRI) String() string {
	if f.Instance == "" {
		return f.Scheme + ":/" + f.Service
	}
	return f.Scheme + ":/" + f.Service + ":" + f.Instance
}
