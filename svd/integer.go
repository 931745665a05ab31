package svd

import (
	"strconv"
	"strings"
)

// ParseInteger parses a scaled non-negative integer: decimal, 0x/0X hex or
// #binary, each with an optional leading '+'.
func ParseInteger(s string) (uint64, error) {
	v := strings.TrimPrefix(strings.TrimSpace(s), "+")

	var value uint64
	var err error
	switch {
	case strings.HasPrefix(v, "#"):
		value, err = strconv.ParseUint(v[1:], 2, 64)
	case strings.HasPrefix(v, "0x"), strings.HasPrefix(v, "0X"):
		value, err = strconv.ParseUint(v[2:], 16, 64)
	default:
		value, err = strconv.ParseUint(v, 10, 64)
	}

	if err != nil {
		return 0, &UnexpectedValueError{Expected: "integer", Actual: s}
	}
	return value, nil
}

// ParseEnumeratedValue parses the value of an enumerated value. Binary
// literals may carry 'x' digits which are returned as the do-not-care mask.
func ParseEnumeratedValue(s string) (value uint64, doNotCare uint64, err error) {
	v := strings.TrimSpace(s)
	if !strings.HasPrefix(v, "#") || !strings.ContainsAny(v, "xX") {
		value, err = ParseInteger(v)
		return
	}

	if len(v) == 1 || len(v) > 65 {
		return 0, 0, &UnexpectedValueError{Expected: "binary enumerated value", Actual: s}
	}

	for _, c := range v[1:] {
		value <<= 1
		doNotCare <<= 1
		switch c {
		case 'x', 'X':
			doNotCare |= 1
		case '1':
			value |= 1
		case '0':
		default:
			return 0, 0, &UnexpectedValueError{Expected: "binary enumerated value", Actual: s}
		}
	}
	return value, doNotCare, nil
}

// Uint64 returns a pointer to v.
func Uint64(v uint64) *uint64 {
	return &v
}
