package svd

import (
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Access int

const (
	AccessUnspecified Access = iota
	ReadOnly
	WriteOnly
	ReadWrite
	WriteOnce
	ReadWriteOnce
)

var accessNames = map[Access]string{
	ReadOnly:      "read-only",
	WriteOnly:     "write-only",
	ReadWrite:     "read-write",
	WriteOnce:     "writeOnce",
	ReadWriteOnce: "read-writeOnce",
}

func ParseAccess(s string) (Access, error) {
	return lookup(accessNames, s)
}

func (a Access) String() string {
	return accessNames[a]
}

func (a Access) MarshalYAML() (any, error) {
	return a.String(), nil
}

// CanRead reports whether a getter may be emitted. An unspecified access
// permits both directions.
func (a Access) CanRead() bool {
	switch a {
	case WriteOnly, WriteOnce:
		return false
	default:
		return true
	}
}

func (a Access) CanWrite() bool {
	return a != ReadOnly
}

type Protection int

const (
	ProtectionUnspecified Protection = iota
	Secure
	NonSecure
	Privileged
)

var protectionNames = map[Protection]string{
	Secure:     "s",
	NonSecure:  "n",
	Privileged: "p",
}

func ParseProtection(s string) (Protection, error) {
	return lookup(protectionNames, s)
}

func (p Protection) String() string {
	return protectionNames[p]
}

func (p Protection) MarshalYAML() (any, error) {
	return p.String(), nil
}

type Usage int

const (
	UsageUnspecified Usage = iota
	UsageRegisters
	UsageBuffer
	UsageReserved
)

var usageNames = map[Usage]string{
	UsageRegisters: "registers",
	UsageBuffer:    "buffer",
	UsageReserved:  "reserved",
}

func ParseUsage(s string) (Usage, error) {
	return lookup(usageNames, s)
}

func (u Usage) String() string {
	return usageNames[u]
}

func (u Usage) MarshalYAML() (any, error) {
	return u.String(), nil
}

type EnumUsage int

const (
	EnumUsageUnspecified EnumUsage = iota
	EnumUsageRead
	EnumUsageWrite
	EnumUsageReadWrite
)

var enumUsageNames = map[EnumUsage]string{
	EnumUsageRead:      "read",
	EnumUsageWrite:     "write",
	EnumUsageReadWrite: "read-write",
}

func ParseEnumUsage(s string) (EnumUsage, error) {
	return lookup(enumUsageNames, s)
}

func (u EnumUsage) String() string {
	return enumUsageNames[u]
}

func (u EnumUsage) MarshalYAML() (any, error) {
	return u.String(), nil
}

type DataType int

const (
	DataTypeUnspecified DataType = iota
	UInt8
	UInt16
	UInt32
	UInt64
	Int8
	Int16
	Int32
	Int64
	UInt8Ptr
	UInt16Ptr
	UInt32Ptr
	UInt64Ptr
	Int8Ptr
	Int16Ptr
	Int32Ptr
	Int64Ptr
)

var dataTypeNames = map[DataType]string{
	UInt8:     "uint8_t",
	UInt16:    "uint16_t",
	UInt32:    "uint32_t",
	UInt64:    "uint64_t",
	Int8:      "int8_t",
	Int16:     "int16_t",
	Int32:     "int32_t",
	Int64:     "int64_t",
	UInt8Ptr:  "uint8_t *",
	UInt16Ptr: "uint16_t *",
	UInt32Ptr: "uint32_t *",
	UInt64Ptr: "uint64_t *",
	Int8Ptr:   "int8_t *",
	Int16Ptr:  "int16_t *",
	Int32Ptr:  "int32_t *",
	Int64Ptr:  "int64_t *",
}

func ParseDataType(s string) (DataType, error) {
	return lookup(dataTypeNames, s)
}

func (d DataType) String() string {
	return dataTypeNames[d]
}

func (d DataType) MarshalYAML() (any, error) {
	return d.String(), nil
}

type ModifiedWriteValues int

const (
	ModifiedWriteValuesUnspecified ModifiedWriteValues = iota
	OneToClear
	OneToSet
	OneToToggle
	ZeroToClear
	ZeroToSet
	ZeroToToggle
	WriteClear
	WriteSet
	WriteModify
)

var modifiedWriteValuesNames = map[ModifiedWriteValues]string{
	OneToClear:   "oneToClear",
	OneToSet:     "oneToSet",
	OneToToggle:  "oneToToggle",
	ZeroToClear:  "zeroToClear",
	ZeroToSet:    "zeroToSet",
	ZeroToToggle: "zeroToToggle",
	WriteClear:   "clear",
	WriteSet:     "set",
	WriteModify:  "modify",
}

func ParseModifiedWriteValues(s string) (ModifiedWriteValues, error) {
	return lookup(modifiedWriteValuesNames, s)
}

func (m ModifiedWriteValues) String() string {
	return modifiedWriteValuesNames[m]
}

func (m ModifiedWriteValues) MarshalYAML() (any, error) {
	return m.String(), nil
}

type ReadAction int

const (
	ReadActionUnspecified ReadAction = iota
	ReadClear
	ReadSet
	ReadModify
	ReadModifyExternal
)

var readActionNames = map[ReadAction]string{
	ReadClear:          "clear",
	ReadSet:            "set",
	ReadModify:         "modify",
	ReadModifyExternal: "modifyExternal",
}

func ParseReadAction(s string) (ReadAction, error) {
	return lookup(readActionNames, s)
}

func (r ReadAction) String() string {
	return readActionNames[r]
}

func (r ReadAction) MarshalYAML() (any, error) {
	return r.String(), nil
}

func lookup[T comparable](names map[T]string, s string) (T, error) {
	for k, v := range names {
		if v == s {
			return k, nil
		}
	}

	expected := maps.Values(names)
	slices.Sort(expected)

	var zero T
	return zero, &UnexpectedValueError{
		Expected: "one of " + strings.Join(expected, ", "),
		Actual:   s,
	}
}
