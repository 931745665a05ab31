package similar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"omibyte.io/svdgen/svd"
)

func field(name string, lsb, width uint64) *svd.Field {
	return &svd.Field{Name: name, BitRange: svd.BitRange{LSB: lsb, MSB: lsb + width - 1}}
}

func names(fields []*svd.Field) []string {
	var result []string
	for _, f := range fields {
		result = append(result, f.Name)
	}
	return result
}

func TestSplitNumericSuffix(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		suffix int
		ok     bool
	}{
		{"", "", 0, false},
		{"Foo", "Foo", 0, false},
		{"Foo123", "Foo", 123, true},
		{"Foo123Bar456", "Foo123Bar", 456, true},
		{"456", "", 456, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			prefix, suffix, ok := SplitNumericSuffix(tc.name)
			assert.Equal(t, tc.prefix, prefix)
			assert.Equal(t, tc.suffix, suffix)
			assert.Equal(t, tc.ok, ok)
		})
	}
}

func TestGroupFields(t *testing.T) {
	fields := []*svd.Field{
		field("EN", 0, 1),
		field("CH2", 12, 4),
		field("CH0", 4, 4),
		field("CH1", 8, 4),
		field("MODE", 16, 2),
	}
	fields[3].Description = "Channel"

	groups, individual := GroupFields(fields)
	require.Len(t, groups, 1)

	g := groups[0]
	assert.Equal(t, "CH", g.Prefix)
	assert.Equal(t, uint64(4), g.LSB)
	assert.Equal(t, uint64(4), g.Width)
	assert.Equal(t, 3, g.Count)
	assert.Equal(t, int64(4), g.Stride)
	assert.Equal(t, "Channel", g.Description)
	assert.Equal(t, []string{"CH0", "CH1", "CH2"}, names(g.Fields))
	assert.Equal(t, uint64(12), g.LSBAt(2))

	assert.Equal(t, []string{"EN", "MODE"}, names(individual))
}

func TestGroupFieldsRejected(t *testing.T) {
	tests := []struct {
		name   string
		fields []*svd.Field
	}{
		{"gap in suffixes", []*svd.Field{field("CH0", 0, 4), field("CH2", 8, 4)}},
		{"not starting at zero", []*svd.Field{field("CH1", 0, 4), field("CH2", 4, 4)}},
		{"single member", []*svd.Field{field("CH0", 0, 4)}},
		{"width mismatch", []*svd.Field{field("CH0", 0, 4), field("CH1", 4, 2)}},
		{"stride mismatch", []*svd.Field{field("CH0", 0, 2), field("CH1", 2, 2), field("CH2", 8, 2)}},
		{"unsuffixed member", []*svd.Field{field("CH", 0, 2), field("CH0", 2, 2), field("CH1", 4, 2)}},
		{"no prefix", []*svd.Field{field("0", 0, 2), field("1", 2, 2)}},
		{"access mismatch", func() []*svd.Field {
			f := []*svd.Field{field("CH0", 0, 2), field("CH1", 2, 2)}
			f[1].Access = svd.ReadOnly
			return f
		}()},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			groups, individual := GroupFields(tc.fields)
			assert.Empty(t, groups)
			assert.Equal(t, names(tc.fields), names(individual))
		})
	}
}

func TestGroupFieldsOrder(t *testing.T) {
	fields := []*svd.Field{
		field("B0", 0, 1),
		field("X", 1, 1),
		field("A0", 2, 1),
		field("B1", 3, 1),
		field("A1", 4, 1),
	}

	groups, individual := GroupFields(fields)
	require.Len(t, groups, 2)
	assert.Equal(t, "B", groups[0].Prefix)
	assert.Equal(t, int64(3), groups[0].Stride)
	assert.Equal(t, "A", groups[1].Prefix)
	assert.Equal(t, []string{"X"}, names(individual))
}

func TestGroupFieldsNegativeStride(t *testing.T) {
	groups, _ := GroupFields([]*svd.Field{field("P0", 8, 4), field("P1", 4, 4), field("P2", 0, 4)})
	require.Len(t, groups, 1)
	assert.Equal(t, int64(-4), groups[0].Stride)
	assert.Equal(t, uint64(0), groups[0].LSBAt(2))
}
