package order

import (
	"fmt"
	"strconv"
	"time"

	"maintenance/internal/pkg/errs"
)

const (
	prefixLength   = 4
	sequenceDigits = 3
)

// Number is the human-facing order number: a YYMM prefix followed by a
// sequence that restarts every month. The sequence is zero-padded to three
// digits and keeps growing past 999.
type Number struct {
	value string
}

// NumberPrefix is the YYMM period of t.
func NumberPrefix(t time.Time) string {
	return t.Format("0601")
}

func ParseNumber(s string) (Number, error) {
	if len(s) < prefixLength+sequenceDigits {
		return Number{}, errs.NewValueIsInvalidErrorWithCause("order number", fmt.Errorf("%q is too short", s))
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return Number{}, errs.NewValueIsInvalidErrorWithCause("order number", fmt.Errorf("%q is not numeric", s))
		}
	}
	return Number{value: s}, nil
}

// NextNumber returns the number following last within the period of now.
// last may be nil or belong to an older period; either way the sequence starts at 1.
func NextNumber(now time.Time, last *Number) Number {
	prefix := NumberPrefix(now)
	seq := 1
	if last != nil && last.Prefix() == prefix {
		seq = last.Sequence() + 1
	}
	return Number{value: fmt.Sprintf("%s%0*d", prefix, sequenceDigits, seq)}
}

func (n Number) Prefix() string {
	if len(n.value) < prefixLength {
		return ""
	}
	return n.value[:prefixLength]
}

func (n Number) Sequence() int {
	if len(n.value) <= prefixLength {
		return 0
	}
	seq, err := strconv.Atoi(n.value[prefixLength:])
	if err != nil {
		return 0
	}
	return seq
}

func (n Number) String() string {
	return n.value
}

func (n Number) IsZero() bool {
	return n.value == ""
}

func (n Number) MarshalText() ([]byte, error) {
	return []byte(n.value), nil
}

func (n *Number) UnmarshalText(text []byte) error {
	parsed, err := ParseNumber(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
