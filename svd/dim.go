package svd

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxDim is the largest element count of a repeated element.
const MaxDim = 1 << 20

// DimElement describes a repeated register, cluster or peripheral.
type DimElement struct {
	Dim       *uint64 `yaml:"dim,omitempty"`
	Increment *uint64 `yaml:"dimIncrement,omitempty"`
	Index     string  `yaml:"dimIndex,omitempty"`
}

func (d DimElement) IsArray() bool {
	return d.Dim != nil
}

func (d DimElement) Count() uint64 {
	if d.Dim == nil {
		return 0
	}
	return *d.Dim
}

func (d DimElement) Stride() uint64 {
	if d.Increment == nil {
		return 0
	}
	return *d.Increment
}

func (d DimElement) Equal(o DimElement) bool {
	return equalOptional(d.Dim, o.Dim) && equalOptional(d.Increment, o.Increment) && d.Index == o.Index
}

// Validate rejects element counts above MaxDim and arrays whose extent
// overflows the address space.
func (d DimElement) Validate() error {
	count := d.Count()
	if count > MaxDim || (d.Stride() > 0 && count > math.MaxUint64/d.Stride()) {
		return &UnexpectedValueError{
			Expected: fmt.Sprintf("dim of at most %d elements", MaxDim),
			Actual:   strconv.FormatUint(count, 10),
		}
	}
	return nil
}

// Indices expands the dimIndex list. Supported forms are a numeric range
// "0-3", a letter range "A-D" and a comma separated list "A,B,C". Without a
// dimIndex the indices are 0 through dim-1.
func (d DimElement) Indices() ([]string, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	count := d.Count()
	if len(d.Index) == 0 {
		result := make([]string, count)
		for i := range result {
			result[i] = strconv.Itoa(i)
		}
		return result, nil
	}

	var result []string
	if strings.Contains(d.Index, ",") {
		for _, s := range strings.Split(d.Index, ",") {
			result = append(result, strings.TrimSpace(s))
		}
	} else if from, to, ok := strings.Cut(d.Index, "-"); ok {
		from, to = strings.TrimSpace(from), strings.TrimSpace(to)
		if a, err := strconv.Atoi(from); err == nil {
			b, err := strconv.Atoi(to)
			if err != nil || b < a || b-a >= MaxDim {
				return nil, &UnexpectedValueError{Expected: "dimIndex range", Actual: d.Index}
			}
			for i := a; i <= b; i++ {
				result = append(result, strconv.Itoa(i))
			}
		} else if len(from) == 1 && len(to) == 1 && from[0] <= to[0] {
			for c := from[0]; c <= to[0]; c++ {
				result = append(result, string(c))
			}
		} else {
			return nil, &UnexpectedValueError{Expected: "dimIndex range", Actual: d.Index}
		}
	} else {
		result = []string{strings.TrimSpace(d.Index)}
	}

	if d.Dim != nil && uint64(len(result)) != count {
		return nil, &UnexpectedValueError{
			Expected: fmt.Sprintf("%d dimIndex entries", count),
			Actual:   d.Index,
		}
	}
	return result, nil
}

func (d *DimElement) merge(src DimElement) {
	if d.Dim == nil && src.Dim != nil {
		d.Dim = Uint64(*src.Dim)
	}
	if d.Increment == nil && src.Increment != nil {
		d.Increment = Uint64(*src.Increment)
	}
	if len(d.Index) == 0 {
		d.Index = src.Index
	}
}

func (d DimElement) clone() DimElement {
	var c DimElement
	c.merge(d)
	return c
}
