package svd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInteger(t *testing.T) {
	tests := []struct {
		in       string
		expected uint64
	}{
		{"10", 10},
		{"+10", 10},
		{"0x1F", 31},
		{"0X1f", 31},
		{"#10", 2},
		{"+#101", 5},
		{" 0x40000000 ", 0x40000000},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			v, err := ParseInteger(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, v)
		})
	}
}

func TestParseIntegerInvalid(t *testing.T) {
	for _, in := range []string{"", "a", "0xg", "#2", "-1", "1.5"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseInteger(in)
			assert.ErrorIs(t, err, ErrUnexpectedValue)

			var uv *UnexpectedValueError
			require.ErrorAs(t, err, &uv)
			assert.Equal(t, in, uv.Actual)
		})
	}
}

func TestParseEnumeratedValue(t *testing.T) {
	tests := []struct {
		in        string
		value     uint64
		doNotCare uint64
	}{
		{"3", 3, 0},
		{"0x10", 16, 0},
		{"#101", 5, 0},
		{"#1x0", 4, 2},
		{"#xX1", 1, 6},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			v, dnc, err := ParseEnumeratedValue(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.value, v)
			assert.Equal(t, tc.doNotCare, dnc)
		})
	}

	_, _, err := ParseEnumeratedValue("#1x2")
	assert.ErrorIs(t, err, ErrUnexpectedValue)
}

func TestLookups(t *testing.T) {
	a, err := ParseAccess("read-writeOnce")
	require.NoError(t, err)
	assert.Equal(t, ReadWriteOnce, a)
	assert.Equal(t, "read-writeOnce", a.String())

	_, err = ParseAccess("rw")
	assert.ErrorIs(t, err, ErrUnexpectedValue)
	assert.Contains(t, err.Error(), "read-only")

	p, err := ParseProtection("p")
	require.NoError(t, err)
	assert.Equal(t, Privileged, p)

	u, err := ParseUsage("buffer")
	require.NoError(t, err)
	assert.Equal(t, UsageBuffer, u)

	dt, err := ParseDataType("uint32_t *")
	require.NoError(t, err)
	assert.Equal(t, UInt32Ptr, dt)

	m, err := ParseModifiedWriteValues("oneToClear")
	require.NoError(t, err)
	assert.Equal(t, OneToClear, m)

	r, err := ParseReadAction("modifyExternal")
	require.NoError(t, err)
	assert.Equal(t, ReadModifyExternal, r)
}

func TestAccessPermissions(t *testing.T) {
	tests := []struct {
		access   Access
		canRead  bool
		canWrite bool
	}{
		{AccessUnspecified, true, true},
		{ReadOnly, true, false},
		{WriteOnly, false, true},
		{ReadWrite, true, true},
		{WriteOnce, false, true},
		{ReadWriteOnce, true, true},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.canRead, tc.access.CanRead(), "read %v", tc.access)
		assert.Equal(t, tc.canWrite, tc.access.CanWrite(), "write %v", tc.access)
	}
}
