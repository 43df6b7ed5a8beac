package hn

import (
	"fmt"
	"strings"
)

// SortMode selects which ranked story list to read from.
type SortMode int

const (
	// Hottest reads the front page ranking.
	Hottest SortMode = iota
	// Latest reads the newest submissions.
	Latest
)

// ParseSortMode accepts "hottest" or "latest", case-insensitively.
func ParseSortMode(s string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hottest":
		return Hottest, nil
	case "latest":
		return Latest, nil
	default:
		return Hottest, fmt.Errorf("invalid sort mode %q: must be latest or hottest", s)
	}
}

func (m SortMode) String() string {
	switch m {
	case Latest:
		return "latest"
	case Hottest:
		return "hottest"
	default:
		return fmt.Sprintf("SortMode(%d)", int(m))
	}
}

// Endpoint returns the list resource name for the mode.
func (m SortMode) Endpoint() string {
	if m == Latest {
		return "newstories"
	}
	return "topstories"
}

// Set and Type let a SortMode be used directly as a command-line flag value.
func (m *SortMode) Set(s string) error {
	v, err := ParseSortMode(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func (m *SortMode) Type() string {
	return "latest|hottest"
}

// UnmarshalText implements encoding.TextUnmarshaler so config files can name the mode.
func (m *SortMode) UnmarshalText(text []byte) error {
	return m.Set(string(text))
}
