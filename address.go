package pivy

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/sha3"
)

// Aptos single-key authentication scheme tags, per spec §4.2. These must
// bit-match the Aptos SDK's secp256k1 single-key authentication-key
// derivation, not just some internally-consistent scheme.
const (
	aptosKeyTypeSecp256k1 byte = 0x01
	aptosUncompressedLen  byte = 0x41 // 65, the length of the uncompressed pubkey
	aptosSingleKeyScheme  byte = 0x02
)

// AddressOf derives the 32-byte Aptos account address for a compressed
// secp256k1 public key, per spec §4.2:
//
//  1. decompress to 65-byte uncompressed SEC1 form (0x04 || X || Y)
//  2. D = 0x01 || 0x41 || uncompressed(65) || 0x02   (68 bytes)
//  3. address = SHA3-256(D)
func AddressOf(compressedPubKey [CompressedPointSize]byte) ([AddressSize]byte, error) {
	var addr [AddressSize]byte

	pub, err := secp256k1.ParsePubKey(compressedPubKey[:])
	if err != nil {
		return addr, fmt.Errorf("%w: invalid compressed public key: %v", ErrBadKeyFormat, err)
	}

	uncompressed := pub.SerializeUncompressed() // 65 bytes, leading 0x04

	d := make([]byte, 0, 68)
	d = append(d, aptosKeyTypeSecp256k1)
	d = append(d, aptosUncompressedLen)
	d = append(d, uncompressed...)
	d = append(d, aptosSingleKeyScheme)

	hash := sha3.Sum256(d)
	copy(addr[:], hash[:])
	return addr, nil
}

// AddressHex renders an Aptos address as a 0x-prefixed lowercase hex string
// of exactly 64 hex digits, the text form spec §6.3 requires at the API
// boundary.
func AddressHex(addr [AddressSize]byte) string {
	return "0x" + EncodeHex(addr[:])
}
