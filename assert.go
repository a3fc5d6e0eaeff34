package archecs

import (
	"strings"

	"github.com/rotisserie/eris"
)

// AssertPolicy decides what a World does when a caller breaks a precondition:
// adding a type that is present, removing or getting one that is not, or
// acting on a stale handle.
type AssertPolicy uint8

const (
	// AssertPanic halts the offending call with a panic carrying the error.
	AssertPanic AssertPolicy = iota
	// AssertLog logs the violation, leaves the World untouched and returns
	// the error.
	AssertLog
	// AssertOff skips the checks. Violations give undefined results.
	AssertOff
)

func (p AssertPolicy) String() string {
	switch p {
	case AssertPanic:
		return "panic"
	case AssertLog:
		return "log"
	case AssertOff:
		return "off"
	default:
		return "unknown"
	}
}

// ParseAssertPolicy accepts "panic", "log" or "off".
func ParseAssertPolicy(s string) (AssertPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "panic", "":
		return AssertPanic, nil
	case "log":
		return AssertLog, nil
	case "off":
		return AssertOff, nil
	}
	return AssertPanic, eris.Wrapf(ErrInvalidConfig, "unknown assert policy %q", s)
}

// checking reports whether preconditions are verified at all.
func (w *World) checking() bool {
	return assertionsCompiled && w.policy != AssertOff
}

// violate reports a precondition failure through the World's policy.
func (w *World) violate(err error) error {
	if w.policy == AssertPanic {
		panic(err)
	}
	w.logger.Error().Err(err).Msg("precondition violated")
	return err
}
