// Package namehash derives cache keys for names and addresses.
package namehash

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/net/idna"

	"github.com/goodnatureofminers/dweb-live-cache/internal/model"
)

const reverseSuffix = ".addr.reverse"

var profile = idna.New(idna.MapForLookup(), idna.StrictDomainName(false), idna.Transitional(false))

// Normalize applies UTS-46 lookup mapping to name.
func Normalize(name string) (string, error) {
	if name == "" {
		return "", nil
	}
	// The lookup profile maps invalid bytes to U+FFFD instead of failing.
	if !utf8.ValidString(name) {
		return "", fmt.Errorf("%w: %q: invalid utf-8", model.ErrInvalidName, name)
	}
	normalized, err := profile.ToUnicode(name)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", model.ErrInvalidName, name, err)
	}
	if slices.Contains(strings.Split(normalized, "."), "") {
		return "", fmt.Errorf("%w: %q: empty label", model.ErrInvalidName, name)
	}
	return normalized, nil
}

// Hash returns the EIP-137 namehash of name as lowercase 0x-prefixed hex.
func Hash(name string) (string, error) {
	normalized, err := Normalize(name)
	if err != nil {
		return "", err
	}
	var node common.Hash
	if normalized == "" {
		return node.Hex(), nil
	}
	labels := strings.Split(normalized, ".")
	for i := len(labels) - 1; i >= 0; i-- {
		label := crypto.Keccak256([]byte(labels[i]))
		node = crypto.Keccak256Hash(node[:], label)
	}
	return node.Hex(), nil
}

// CanonicalAddress parses a hex address regardless of checksum casing.
func CanonicalAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %q", model.ErrInvalidAddress, s)
	}
	return common.HexToAddress(s), nil
}

// ReverseName returns the reverse-lookup name of addr.
func ReverseName(addr common.Address) string {
	return strings.ToLower(addr.Hex()[2:]) + reverseSuffix
}

// ReverseNode returns the namehash of the reverse-lookup name of addr.
func ReverseNode(addr common.Address) (string, error) {
	return Hash(ReverseName(addr))
}
