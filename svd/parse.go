package svd

import (
	"fmt"
	"strconv"
	"strings"

	"omibyte.io/svdgen/xmltree"
)

// FromElement builds the device model from the root element of a device
// description document.
func FromElement(root *xmltree.Element) (*Device, error) {
	if root.Name != "device" {
		return nil, &UnexpectedValueError{Expected: "<device> root element", Actual: root.Name}
	}

	name, err := requiredText(root, "device", "name")
	if err != nil {
		return nil, err
	}

	d := &Device{Name: name}
	d.Vendor, _ = root.ChildText("vendor")
	d.VendorID, _ = root.ChildText("vendorID")
	d.Series, _ = root.ChildText("series")
	d.Version, _ = root.ChildText("version")
	d.Description, _ = root.ChildText("description")
	d.LicenseText, _ = root.ChildText("licenseText")

	if d.AddressUnitBits, err = requiredInteger(root, "device", "addressUnitBits"); err != nil {
		return nil, err
	}
	if d.Width, err = requiredInteger(root, "device", "width"); err != nil {
		return nil, err
	}
	if d.Properties, err = parseProperties(root); err != nil {
		return nil, fmt.Errorf("device %s: %w", name, err)
	}

	if e, ok := root.Child("cpu"); ok {
		if d.CPU, err = parseCPU(e); err != nil {
			return nil, fmt.Errorf("device %s: %w", name, err)
		}
	}

	peripherals, ok := root.Child("peripherals")
	if !ok {
		return nil, &MissingFieldError{Element: "device", Field: "peripherals"}
	}
	for _, e := range peripherals.All("peripheral") {
		p, err := parsePeripheral(e)
		if err != nil {
			return nil, err
		}
		d.Peripherals = append(d.Peripherals, p)
	}

	return d, nil
}

func parseCPU(e *xmltree.Element) (*CPU, error) {
	name, err := requiredText(e, "cpu", "name")
	if err != nil {
		return nil, err
	}

	cpu := &CPU{Name: name}
	cpu.Revision, _ = e.ChildText("revision")
	cpu.Endian, _ = e.ChildText("endian")
	if cpu.MPUPresent, err = optionalBool(e, "mpuPresent"); err != nil {
		return nil, err
	}
	if cpu.FPUPresent, err = optionalBool(e, "fpuPresent"); err != nil {
		return nil, err
	}
	if v, err := optionalInteger(e, "nvicPrioBits"); err != nil {
		return nil, err
	} else if v != nil {
		cpu.NVICPrioBits = *v
	}
	return cpu, nil
}

func parsePeripheral(e *xmltree.Element) (*Peripheral, error) {
	name, err := requiredText(e, "peripheral", "name")
	if err != nil {
		return nil, err
	}

	p := &Peripheral{Name: name}
	wrap := func(err error) error {
		return fmt.Errorf("peripheral %s: %w", name, err)
	}

	p.DerivedFrom, _ = e.Attr("derivedFrom")
	p.Version, _ = e.ChildText("version")
	p.Description, _ = e.ChildText("description")
	p.AlternateOf, _ = e.ChildText("alternatePeripheral")
	p.GroupName, _ = e.ChildText("groupName")
	p.PrependToName, _ = e.ChildText("prependToName")
	p.AppendToName, _ = e.ChildText("appendToName")
	p.HeaderStructName, _ = e.ChildText("headerStructName")
	p.DisableCondition, _ = e.ChildText("disableCondition")

	if p.Dim, err = parseDim(e); err != nil {
		return nil, wrap(err)
	}
	if p.BaseAddress, err = requiredInteger(e, "peripheral", "baseAddress"); err != nil {
		return nil, wrap(err)
	}
	if p.Properties, err = parseProperties(e); err != nil {
		return nil, wrap(err)
	}

	for _, b := range e.All("addressBlock") {
		block, err := parseAddressBlock(b)
		if err != nil {
			return nil, wrap(err)
		}
		p.AddressBlocks = append(p.AddressBlocks, block)
	}

	for _, i := range e.All("interrupt") {
		irq, err := parseInterrupt(i)
		if err != nil {
			return nil, wrap(err)
		}
		p.Interrupts = append(p.Interrupts, irq)
	}

	if registers, ok := e.Child("registers"); ok {
		if p.Registers, err = parseRegisterList(registers); err != nil {
			return nil, wrap(err)
		}
	}

	return p, nil
}

func parseRegisterList(e *xmltree.Element) ([]RegisterOrCluster, error) {
	result := []RegisterOrCluster{}
	for _, c := range e.Children {
		switch c.Name {
		case "register":
			r, err := parseRegister(c)
			if err != nil {
				return nil, err
			}
			result = append(result, RegisterOrCluster{Register: r})
		case "cluster":
			cl, err := parseCluster(c)
			if err != nil {
				return nil, err
			}
			result = append(result, RegisterOrCluster{Cluster: cl})
		}
	}
	return result, nil
}

func parseCluster(e *xmltree.Element) (*Cluster, error) {
	name, err := requiredText(e, "cluster", "name")
	if err != nil {
		return nil, err
	}

	c := &Cluster{Name: name}
	wrap := func(err error) error {
		return fmt.Errorf("cluster %s: %w", name, err)
	}

	c.DerivedFrom, _ = e.Attr("derivedFrom")
	c.Description, _ = e.ChildText("description")
	c.AlternateCluster, _ = e.ChildText("alternateCluster")
	c.HeaderStructName, _ = e.ChildText("headerStructName")

	if c.Dim, err = parseDim(e); err != nil {
		return nil, wrap(err)
	}
	if c.AddressOffset, err = requiredInteger(e, "cluster", "addressOffset"); err != nil {
		return nil, wrap(err)
	}
	if c.Properties, err = parseProperties(e); err != nil {
		return nil, wrap(err)
	}
	if c.Children, err = parseRegisterList(e); err != nil {
		return nil, wrap(err)
	}
	return c, nil
}

func parseRegister(e *xmltree.Element) (*Register, error) {
	name, err := requiredText(e, "register", "name")
	if err != nil {
		return nil, err
	}

	r := &Register{Name: name}
	wrap := func(err error) error {
		return fmt.Errorf("register %s: %w", name, err)
	}

	r.DerivedFrom, _ = e.Attr("derivedFrom")
	r.DisplayName, _ = e.ChildText("displayName")
	r.Description, _ = e.ChildText("description")
	r.AlternateGroup, _ = e.ChildText("alternateGroup")
	r.AlternateRegister, _ = e.ChildText("alternateRegister")

	if r.Dim, err = parseDim(e); err != nil {
		return nil, wrap(err)
	}
	if r.AddressOffset, err = requiredInteger(e, "register", "addressOffset"); err != nil {
		return nil, wrap(err)
	}
	if r.Properties, err = parseProperties(e); err != nil {
		return nil, wrap(err)
	}
	if s, ok := e.ChildText("dataType"); ok {
		if r.DataType, err = ParseDataType(s); err != nil {
			return nil, wrap(err)
		}
	}
	if s, ok := e.ChildText("modifiedWriteValues"); ok {
		if r.ModifiedWriteValues, err = ParseModifiedWriteValues(s); err != nil {
			return nil, wrap(err)
		}
	}
	if s, ok := e.ChildText("readAction"); ok {
		if r.ReadAction, err = ParseReadAction(s); err != nil {
			return nil, wrap(err)
		}
	}

	if fields, ok := e.Child("fields"); ok {
		r.Fields = []*Field{}
		for _, fe := range fields.All("field") {
			f, err := parseField(fe)
			if err != nil {
				return nil, wrap(err)
			}
			r.Fields = append(r.Fields, f)
		}
	}
	return r, nil
}

func parseField(e *xmltree.Element) (*Field, error) {
	name, err := requiredText(e, "field", "name")
	if err != nil {
		return nil, err
	}

	f := &Field{Name: name}
	wrap := func(err error) error {
		return fmt.Errorf("field %s: %w", name, err)
	}

	f.DerivedFrom, _ = e.Attr("derivedFrom")
	f.Description, _ = e.ChildText("description")

	if f.BitRange, err = parseBitRange(e); err != nil {
		return nil, wrap(err)
	}
	if s, ok := e.ChildText("access"); ok {
		if f.Access, err = ParseAccess(s); err != nil {
			return nil, wrap(err)
		}
	}
	if s, ok := e.ChildText("modifiedWriteValues"); ok {
		if f.ModifiedWriteValues, err = ParseModifiedWriteValues(s); err != nil {
			return nil, wrap(err)
		}
	}
	if s, ok := e.ChildText("readAction"); ok {
		if f.ReadAction, err = ParseReadAction(s); err != nil {
			return nil, wrap(err)
		}
	}

	for _, ee := range e.All("enumeratedValues") {
		ev, err := parseEnumeratedValues(ee)
		if err != nil {
			return nil, wrap(err)
		}
		f.EnumeratedValues = append(f.EnumeratedValues, ev)
	}
	return f, nil
}

// parseBitRange accepts bitOffset/bitWidth, lsb/msb and "[msb:lsb]".
func parseBitRange(e *xmltree.Element) (BitRange, error) {
	offset, hasOffset := e.ChildText("bitOffset")
	width, hasWidth := e.ChildText("bitWidth")
	lsb, hasLSB := e.ChildText("lsb")
	msb, hasMSB := e.ChildText("msb")
	bitRange, hasBitRange := e.ChildText("bitRange")

	var r BitRange
	switch {
	case hasOffset && hasWidth:
		o, err := ParseInteger(offset)
		if err != nil {
			return r, err
		}
		w, err := ParseInteger(width)
		if err != nil {
			return r, err
		}
		if w == 0 {
			return r, &UnexpectedValueError{Expected: "bit width of at least 1", Actual: width}
		}
		r = BitRange{LSB: o, MSB: o + w - 1}
	case hasLSB && hasMSB:
		l, err := ParseInteger(lsb)
		if err != nil {
			return r, err
		}
		m, err := ParseInteger(msb)
		if err != nil {
			return r, err
		}
		r = BitRange{LSB: l, MSB: m}
	case hasBitRange:
		s := strings.TrimSpace(bitRange)
		hi, lo, ok := strings.Cut(strings.TrimSuffix(strings.TrimPrefix(s, "["), "]"), ":")
		if !ok || !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
			return r, &UnexpectedValueError{Expected: "bit range [msb:lsb]", Actual: bitRange}
		}
		m, err := strconv.ParseUint(hi, 10, 64)
		if err != nil {
			return r, &UnexpectedValueError{Expected: "bit range [msb:lsb]", Actual: bitRange}
		}
		l, err := strconv.ParseUint(lo, 10, 64)
		if err != nil {
			return r, &UnexpectedValueError{Expected: "bit range [msb:lsb]", Actual: bitRange}
		}
		r = BitRange{LSB: l, MSB: m}
	default:
		return r, &MissingFieldError{Element: "field", Field: "bitRange"}
	}

	if r.MSB < r.LSB {
		return r, &UnexpectedValueError{
			Expected: "msb >= lsb",
			Actual:   fmt.Sprintf("[%d:%d]", r.MSB, r.LSB),
		}
	}
	return r, nil
}

func parseEnumeratedValues(e *xmltree.Element) (*EnumeratedValues, error) {
	ev := &EnumeratedValues{}
	ev.DerivedFrom, _ = e.Attr("derivedFrom")
	ev.Name, _ = e.ChildText("name")

	var err error
	if s, ok := e.ChildText("usage"); ok {
		if ev.Usage, err = ParseEnumUsage(s); err != nil {
			return nil, err
		}
	}

	for _, ve := range e.All("enumeratedValue") {
		name, err := requiredText(ve, "enumeratedValue", "name")
		if err != nil {
			return nil, err
		}
		v := EnumeratedValue{Name: name}
		v.Description, _ = ve.ChildText("description")

		if s, ok := ve.ChildText("isDefault"); ok {
			if v.IsDefault, err = strconv.ParseBool(s); err != nil {
				return nil, &UnexpectedValueError{Expected: "true or false", Actual: s}
			}
		} else if s, ok := ve.ChildText("value"); ok {
			if v.Value, v.DoNotCare, err = ParseEnumeratedValue(s); err != nil {
				return nil, err
			}
		} else {
			return nil, &MissingFieldError{Element: "enumeratedValue", Field: "value"}
		}
		ev.Values = append(ev.Values, v)
	}

	// A derived set may leave its values to the source.
	if len(ev.Values) == 0 && len(ev.DerivedFrom) == 0 {
		return nil, &MissingFieldError{Element: "enumeratedValues", Field: "enumeratedValue"}
	}
	return ev, nil
}

func parseInterrupt(e *xmltree.Element) (Interrupt, error) {
	name, err := requiredText(e, "interrupt", "name")
	if err != nil {
		return Interrupt{}, err
	}
	irq := Interrupt{Name: name}
	irq.Description, _ = e.ChildText("description")

	s, ok := e.ChildText("value")
	if !ok {
		return irq, &MissingFieldError{Element: "interrupt", Field: "value"}
	}
	// Negative values are Cortex-M core exceptions.
	if irq.Value, err = strconv.ParseInt(s, 10, 64); err != nil {
		v, err := ParseInteger(s)
		if err != nil {
			return irq, err
		}
		irq.Value = int64(v)
	}
	return irq, nil
}

func parseAddressBlock(e *xmltree.Element) (AddressBlock, error) {
	var b AddressBlock
	var err error
	if b.Offset, err = requiredInteger(e, "addressBlock", "offset"); err != nil {
		return b, err
	}
	if b.Size, err = requiredInteger(e, "addressBlock", "size"); err != nil {
		return b, err
	}

	usage, err := requiredText(e, "addressBlock", "usage")
	if err != nil {
		return b, err
	}
	if b.Usage, err = ParseUsage(usage); err != nil {
		return b, err
	}
	if s, ok := e.ChildText("protection"); ok {
		if b.Protection, err = ParseProtection(s); err != nil {
			return b, err
		}
	}
	return b, nil
}

func parseProperties(e *xmltree.Element) (RegisterProperties, error) {
	var p RegisterProperties
	var err error
	if p.Size, err = optionalInteger(e, "size"); err != nil {
		return p, err
	}
	if s, ok := e.ChildText("access"); ok {
		if p.Access, err = ParseAccess(s); err != nil {
			return p, err
		}
	}
	if s, ok := e.ChildText("protection"); ok {
		if p.Protection, err = ParseProtection(s); err != nil {
			return p, err
		}
	}
	if p.ResetValue, err = optionalInteger(e, "resetValue"); err != nil {
		return p, err
	}
	if p.ResetMask, err = optionalInteger(e, "resetMask"); err != nil {
		return p, err
	}
	return p, nil
}

func parseDim(e *xmltree.Element) (DimElement, error) {
	var d DimElement
	var err error
	if d.Dim, err = optionalInteger(e, "dim"); err != nil {
		return d, err
	}
	if d.Increment, err = optionalInteger(e, "dimIncrement"); err != nil {
		return d, err
	}
	d.Index, _ = e.ChildText("dimIndex")
	return d, d.Validate()
}

func requiredText(e *xmltree.Element, element, field string) (string, error) {
	s, ok := e.ChildText(field)
	if !ok {
		return "", &MissingFieldError{Element: element, Field: field}
	}
	return s, nil
}

func requiredInteger(e *xmltree.Element, element, field string) (uint64, error) {
	s, err := requiredText(e, element, field)
	if err != nil {
		return 0, err
	}
	return ParseInteger(s)
}

func optionalInteger(e *xmltree.Element, field string) (*uint64, error) {
	s, ok := e.ChildText(field)
	if !ok {
		return nil, nil
	}
	v, err := ParseInteger(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func optionalBool(e *xmltree.Element, field string) (bool, error) {
	s, ok := e.ChildText(field)
	if !ok {
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, &UnexpectedValueError{Expected: "true or false", Actual: s}
	}
	return v, nil
}
