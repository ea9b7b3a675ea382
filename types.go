package jscan

import (
	"strings"

	"github.com/pkg/errors"
)

// Mode selects which checks a validation run performs.
type Mode int

const (
	MissingOnly    Mode = iota // Declared fields absent from the data.
	AdditionalOnly             // Data fields not declared in the template.
	TypesOnly                  // Present fields whose runtime type differs.
	All                        // Missing, then additional, then types.
)

// Modes lists every mode in display order.
var Modes = []Mode{MissingOnly, AdditionalOnly, TypesOnly, All}

func (m Mode) String() string {
	switch m {
	case MissingOnly:
		return "missing"
	case AdditionalOnly:
		return "additional"
	case TypesOnly:
		return "types"
	case All:
		return "all"
	default:
		return "unknown"
	}
}

// ParseMode maps "missing", "additional", "types" or "all" to a Mode.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if strings.EqualFold(strings.TrimSpace(s), m.String()) {
			return m, nil
		}
	}
	return 0, errors.Errorf("unknown mode %q (want missing, additional, types or all)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func (m Mode) runs(check Mode) bool { return m == All || m == check }

// Severity expresses the severity level for decode-time findings.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// ParseSeverity maps "ignore", "warn" or "error" to a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ignore":
		return Ignore, nil
	case "warn":
		return Warn, nil
	case "error":
		return Error, nil
	}
	return Ignore, errors.Errorf("unknown severity %q (want ignore, warn or error)", s)
}

// Strictness configures enforcement for duplicate keys.
type Strictness struct {
	OnDuplicateKey Severity // Ignore keeps the last value, like JSON.parse.
}

// ParseOpt bundles parsing options.
type ParseOpt struct {
	Strictness Strictness
	MaxDepth   int   // Maximum container nesting, 0 for unlimited.
	MaxBytes   int64 // Maximum input size, 0 for unlimited.
	// OnWarning receives non-fatal findings such as duplicate keys in Warn
	// mode. Path uses the display form.
	OnWarning func(path, message string)
}

// DefaultMaxDepth bounds template-guided recursion when ValidateOpt.MaxDepth is
// zero.
const DefaultMaxDepth = 128

// ValidateOpt tunes a validation run.
type ValidateOpt struct {
	// MaxDepth is the number of nested object and array-item levels below
	// the record that are checked. Zero means DefaultMaxDepth, a negative value
	// disables the cap.
	MaxDepth int
}

func (o ValidateOpt) maxDepth() int {
	switch {
	case o.MaxDepth == 0:
		return DefaultMaxDepth
	case o.MaxDepth < 0:
		return int(^uint(0) >> 1)
	default:
		return o.MaxDepth
	}
}

// CheckOpt configures Check: how the data is parsed and how it is validated.
type CheckOpt struct {
	Parse    ParseOpt
	Validate ValidateOpt
}

func lastOpt[T any](opts []T) T {
	var opt T
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	return opt
}
