// Package volatile stands in for the runtime volatile package on the host.
package volatile

func LoadUint8(addr *uint8) uint8    { return *addr }
func LoadUint16(addr *uint16) uint16 { return *addr }
func LoadUint32(addr *uint32) uint32 { return *addr }
func LoadUint64(addr *uint64) uint64 { return *addr }

func StoreUint8(addr *uint8, val uint8)    { *addr = val }
func StoreUint16(addr *uint16, val uint16) { *addr = val }
func StoreUint32(addr *uint32, val uint32) { *addr = val }
func StoreUint64(addr *uint64, val uint64) { *addr = val }
