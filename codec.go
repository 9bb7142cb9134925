package pivy

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// bufferObject mirrors the `{type:"Buffer", data:[...]}` shape some callers
// at the JS/TS boundary still serialize key material as.
type bufferObject struct {
	Type string `json:"type"`
	Data []int  `json:"data"`
}

// Normalize32 accepts key material in any of the shapes described in spec
// §4.1 and returns a canonical 32-byte scalar, or ErrBadKeyFormat.
//
// Accepted shapes: 32 raw bytes; a 64-character hex string (upper or lower
// case); a base58 string decoding to exactly 32 bytes; a
// {type:"Buffer",data:[...]} object. A base58 string decoding to 33 bytes is
// rejected here — use NormalizePoint for compressed points — rather than
// silently truncated.
func Normalize32(raw interface{}) ([32]byte, error) {
	var out [32]byte

	switch v := raw.(type) {
	case []byte:
		if len(v) != 32 {
			return out, fmt.Errorf("%w: raw input has %d bytes, want 32", ErrBadKeyFormat, len(v))
		}
		copy(out[:], v)
		return out, nil

	case [32]byte:
		return v, nil

	case string:
		if len(v) == 64 {
			if b, err := hex.DecodeString(v); err == nil {
				copy(out[:], b)
				return out, nil
			}
			return out, fmt.Errorf("%w: 64-char string is not valid hex", ErrBadKeyFormat)
		}

		b, err := base58Decode(v)
		if err != nil {
			return out, fmt.Errorf("%w: not valid base58: %v", ErrBadKeyFormat, err)
		}
		if len(b) != 32 {
			return out, fmt.Errorf("%w: base58 input decodes to %d bytes, want 32", ErrBadKeyFormat, len(b))
		}
		copy(out[:], b)
		return out, nil

	case bufferObject:
		b, err := bufferObjectBytes(v)
		if err != nil {
			return out, err
		}
		if len(b) != 32 {
			return out, fmt.Errorf("%w: buffer object has %d bytes, want 32", ErrBadKeyFormat, len(b))
		}
		copy(out[:], b)
		return out, nil

	default:
		return out, fmt.Errorf("%w: unrecognized key material shape %T", ErrBadKeyFormat, raw)
	}
}

// NormalizePoint accepts compressed-point material in any of the shapes
// spec §4.1 describes and returns a canonical 33-byte compressed secp256k1
// public key, or ErrBadKeyFormat. The point is validated against the curve.
func NormalizePoint(raw interface{}) ([33]byte, error) {
	var out [33]byte

	decode := func(b []byte) ([33]byte, error) {
		var p [33]byte
		if len(b) != 33 {
			return p, fmt.Errorf("%w: point input has %d bytes, want 33", ErrBadKeyFormat, len(b))
		}
		if _, err := secp256k1.ParsePubKey(b); err != nil {
			return p, fmt.Errorf("%w: not a valid curve point: %v", ErrBadKeyFormat, err)
		}
		copy(p[:], b)
		return p, nil
	}

	switch v := raw.(type) {
	case []byte:
		return decode(v)

	case [33]byte:
		if _, err := secp256k1.ParsePubKey(v[:]); err != nil {
			return out, fmt.Errorf("%w: not a valid curve point: %v", ErrBadKeyFormat, err)
		}
		return v, nil

	case string:
		if len(v) == 66 {
			if b, err := hex.DecodeString(v); err == nil {
				return decode(b)
			}
			return out, fmt.Errorf("%w: 66-char string is not valid hex", ErrBadKeyFormat)
		}

		b, err := base58Decode(v)
		if err != nil {
			return out, fmt.Errorf("%w: not valid base58: %v", ErrBadKeyFormat, err)
		}
		return decode(b)

	case bufferObject:
		b, err := bufferObjectBytes(v)
		if err != nil {
			return out, err
		}
		return decode(b)

	default:
		return out, fmt.Errorf("%w: unrecognized key material shape %T", ErrBadKeyFormat, raw)
	}
}

func bufferObjectBytes(v bufferObject) ([]byte, error) {
	if v.Type != "Buffer" {
		return nil, fmt.Errorf("%w: object has type %q, want \"Buffer\"", ErrBadKeyFormat, v.Type)
	}
	b := make([]byte, len(v.Data))
	for i, x := range v.Data {
		if x < 0 || x > 255 {
			return nil, fmt.Errorf("%w: buffer data[%d]=%d out of byte range", ErrBadKeyFormat, i, x)
		}
		b[i] = byte(x)
	}
	return b, nil
}

// base58Decode rejects the empty string explicitly: base58.Decode("")
// returns an empty, non-error slice, which would otherwise masquerade as a
// valid (if wrong-length) decode.
func base58Decode(s string) ([]byte, error) {
	if s == "" {
		return nil, fmt.Errorf("empty string")
	}
	b := base58.Decode(s)
	if len(b) == 0 {
		return nil, fmt.Errorf("invalid base58 encoding")
	}
	return b, nil
}

// EncodeBase58 encodes raw bytes as base58 with no checksum, the boundary
// encoding this package uses for compressed points and the ephemeral-key
// blob.
func EncodeBase58(data []byte) string {
	return base58.Encode(data)
}

// DecodeBase58 decodes a base58 (no checksum) string to raw bytes.
func DecodeBase58(s string) ([]byte, error) {
	return base58Decode(s)
}

// EncodeHex encodes raw bytes as lowercase hex, no prefix.
func EncodeHex(data []byte) string {
	return hex.EncodeToString(data)
}

// DecodeHex decodes a hex string (with or without a leading 0x) to raw
// bytes.
func DecodeHex(s string) ([]byte, error) {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	return hex.DecodeString(s)
}

// PadLabel32 UTF-8 encodes label and right-zero-pads (or truncates) it to
// exactly 32 bytes, matching the on-chain event schema's fixed-width label
// field (spec §6.2). Truncation is silent and intentional.
func PadLabel32(label string) [32]byte {
	var out [32]byte
	copy(out[:], label)
	return out
}
