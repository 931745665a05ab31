package generator

import (
	"fmt"
	"go/token"
	"strings"
	"unicode"

	"omibyte.io/svdgen/svd"
)

// DefaultRegisterSize is used for registers whose size is not set anywhere
// along the property cascade.
const DefaultRegisterSize = 32

// cleanIdentifier turns name into a valid exported-looking Go identifier.
func cleanIdentifier(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r == '_' || r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}

	result := b.String()
	if len(result) == 0 || unicode.IsDigit(rune(result[0])) {
		result = "_" + result
	}
	if token.IsKeyword(result) {
		result += "_"
	}
	return result
}

// stripPlaceholder removes the dim placeholder from a register or cluster
// name.
func stripPlaceholder(name string) string {
	name = strings.Replace(name, "[%s]", "", 1)
	return strings.Replace(name, "%s", "", 1)
}

func storageSize(props svd.RegisterProperties) uint64 {
	if props.Size == nil {
		return DefaultRegisterSize
	}
	return *props.Size
}

// typeForSize returns the unsigned Go type holding a register of the given
// bit size.
func typeForSize(size uint64) (string, error) {
	switch size {
	case 8, 16, 32, 64:
		return fmt.Sprintf("uint%d", size), nil
	default:
		return "", svd.Unsupported("register size %d", size)
	}
}

// volatileSuffix returns the name suffix of the volatile load and store
// functions for a storage type, e.g. "Uint32".
func volatileSuffix(typ string) string {
	return "U" + typ[1:]
}

// fieldMask returns a mask with the low width bits set.
func fieldMask(width uint64) uint64 {
	if width == 0 {
		return 0
	}
	return ^uint64(0) >> (64 - width)
}

func hex(v uint64) string {
	return fmt.Sprintf("%#x", v)
}
