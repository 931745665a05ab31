// Package svd contains the document model of a device description: the
// device, its peripherals, clusters, registers and fields.
package svd

type Device struct {
	Name            string             `yaml:"name"`
	Vendor          string             `yaml:"vendor,omitempty"`
	VendorID        string             `yaml:"vendorID,omitempty"`
	Series          string             `yaml:"series,omitempty"`
	Version         string             `yaml:"version"`
	Description     string             `yaml:"description"`
	LicenseText     string             `yaml:"licenseText,omitempty"`
	CPU             *CPU               `yaml:"cpu,omitempty"`
	AddressUnitBits uint64             `yaml:"addressUnitBits"`
	Width           uint64             `yaml:"width"`
	Properties      RegisterProperties `yaml:"properties,omitempty"`
	Peripherals     []*Peripheral      `yaml:"peripherals"`
}

type CPU struct {
	Name         string `yaml:"name"`
	Revision     string `yaml:"revision,omitempty"`
	Endian       string `yaml:"endian,omitempty"`
	MPUPresent   bool   `yaml:"mpuPresent,omitempty"`
	FPUPresent   bool   `yaml:"fpuPresent,omitempty"`
	NVICPrioBits uint64 `yaml:"nvicPrioBits,omitempty"`
}

type Peripheral struct {
	Name             string              `yaml:"name"`
	DerivedFrom      string              `yaml:"derivedFrom,omitempty"`
	Dim              DimElement          `yaml:"dim,omitempty"`
	Version          string              `yaml:"version,omitempty"`
	Description      string              `yaml:"description,omitempty"`
	AlternateOf      string              `yaml:"alternatePeripheral,omitempty"`
	GroupName        string              `yaml:"groupName,omitempty"`
	PrependToName    string              `yaml:"prependToName,omitempty"`
	AppendToName     string              `yaml:"appendToName,omitempty"`
	HeaderStructName string              `yaml:"headerStructName,omitempty"`
	DisableCondition string              `yaml:"disableCondition,omitempty"`
	BaseAddress      uint64              `yaml:"baseAddress"`
	Properties       RegisterProperties  `yaml:"properties,omitempty"`
	AddressBlocks    []AddressBlock      `yaml:"addressBlocks,omitempty"`
	Interrupts       []Interrupt         `yaml:"interrupts,omitempty"`
	Registers        []RegisterOrCluster `yaml:"registers,omitempty"`
	Lineage          []string            `yaml:"lineage,omitempty"`
}

// RegisterOrCluster holds exactly one of Register or Cluster.
type RegisterOrCluster struct {
	Register *Register `yaml:"register,omitempty"`
	Cluster  *Cluster  `yaml:"cluster,omitempty"`
}

func (rc RegisterOrCluster) IsCluster() bool {
	return rc.Cluster != nil
}

func (rc RegisterOrCluster) Name() string {
	if rc.Cluster != nil {
		return rc.Cluster.Name
	}
	return rc.Register.Name
}

func (rc RegisterOrCluster) AddressOffset() uint64 {
	if rc.Cluster != nil {
		return rc.Cluster.AddressOffset
	}
	return rc.Register.AddressOffset
}

type Cluster struct {
	Name             string              `yaml:"name"`
	DerivedFrom      string              `yaml:"derivedFrom,omitempty"`
	Dim              DimElement          `yaml:"dim,omitempty"`
	Description      string              `yaml:"description,omitempty"`
	AlternateCluster string              `yaml:"alternateCluster,omitempty"`
	HeaderStructName string              `yaml:"headerStructName,omitempty"`
	AddressOffset    uint64              `yaml:"addressOffset"`
	Properties       RegisterProperties  `yaml:"properties,omitempty"`
	Children         []RegisterOrCluster `yaml:"children,omitempty"`
	Lineage          []string            `yaml:"lineage,omitempty"`
}

type Register struct {
	Name                string              `yaml:"name"`
	DerivedFrom         string              `yaml:"derivedFrom,omitempty"`
	Dim                 DimElement          `yaml:"dim,omitempty"`
	DisplayName         string              `yaml:"displayName,omitempty"`
	Description         string              `yaml:"description,omitempty"`
	AlternateGroup      string              `yaml:"alternateGroup,omitempty"`
	AlternateRegister   string              `yaml:"alternateRegister,omitempty"`
	AddressOffset       uint64              `yaml:"addressOffset"`
	Properties          RegisterProperties  `yaml:"properties,omitempty"`
	DataType            DataType            `yaml:"dataType,omitempty"`
	ModifiedWriteValues ModifiedWriteValues `yaml:"modifiedWriteValues,omitempty"`
	ReadAction          ReadAction          `yaml:"readAction,omitempty"`
	Fields              []*Field            `yaml:"fields,omitempty"`
	Lineage             []string            `yaml:"lineage,omitempty"`
}

type Field struct {
	Name                string              `yaml:"name"`
	DerivedFrom         string              `yaml:"derivedFrom,omitempty"`
	Description         string              `yaml:"description,omitempty"`
	BitRange            BitRange            `yaml:"bitRange"`
	Access              Access              `yaml:"access,omitempty"`
	ModifiedWriteValues ModifiedWriteValues `yaml:"modifiedWriteValues,omitempty"`
	ReadAction          ReadAction          `yaml:"readAction,omitempty"`
	EnumeratedValues    []*EnumeratedValues `yaml:"enumeratedValues,omitempty"`
	Lineage             []string            `yaml:"lineage,omitempty"`
}

// BitRange is an inclusive [LSB, MSB] range of bits.
type BitRange struct {
	LSB uint64 `yaml:"lsb"`
	MSB uint64 `yaml:"msb"`
}

func (b BitRange) Width() uint64 {
	return b.MSB - b.LSB + 1
}

type AddressBlock struct {
	Offset     uint64     `yaml:"offset"`
	Size       uint64     `yaml:"size"`
	Usage      Usage      `yaml:"usage"`
	Protection Protection `yaml:"protection,omitempty"`
}

type Interrupt struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Value       int64  `yaml:"value"`
}

type EnumeratedValues struct {
	Name        string            `yaml:"name,omitempty"`
	DerivedFrom string            `yaml:"derivedFrom,omitempty"`
	Usage       EnumUsage         `yaml:"usage,omitempty"`
	Values      []EnumeratedValue `yaml:"values"`
}

type EnumeratedValue struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Value       uint64 `yaml:"value"`
	DoNotCare   uint64 `yaml:"doNotCare,omitempty"`
	IsDefault   bool   `yaml:"isDefault,omitempty"`
}
