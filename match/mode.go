package match

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Mode selects the predicate used to pair a source key with a target key.
type Mode string

const (
	// ModeExact pairs keys which are equal values of the same kind.
	ModeExact Mode = "exact"
	// ModePartial pairs keys where either lower-cased string contains the other.
	ModePartial Mode = "partial"
)

// ParseMode parses a mode name, case-insensitively. The Portuguese names
// "exata" and "parcial" are accepted as aliases.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exact", "exata":
		return ModeExact, nil
	case "partial", "parcial":
		return ModePartial, nil
	}
	return "", errors.Mark(
		errors.Newf("unknown comparison mode %q (expected exact or partial)", s),
		ErrInvalidMode,
	)
}

func (m Mode) validate() error {
	switch m {
	case ModeExact, ModePartial:
		return nil
	}
	return errors.Mark(errors.Newf("unknown comparison mode %q", string(m)), ErrInvalidMode)
}
