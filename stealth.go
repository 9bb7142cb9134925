package pivy

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// tweakScalar computes t = decode_scalar(SHA-256(ECDH(a, B)_X)) mod n, the
// shared tweak both the payer and the receiver derive independently from
// ECDH's commutativity (spec §4.5).
func tweakScalar(a [ScalarSize]byte, b [CompressedPointSize]byte) (secp256k1.ModNScalar, error) {
	var t secp256k1.ModNScalar

	key, err := SharedKey(a, b)
	if err != nil {
		return t, err
	}

	t.SetByteSlice(key[:]) // reduces mod n; overflow is not an error here
	return t, nil
}

// DeriveStealthPub is the payer-side stealth derivation (spec §4.5):
//
//	t = decode_scalar(H(ECDH(ephPriv, metaViewPub)_X))
//	P_stealth = metaSpendPub + t*G
//
// It returns the stealth public key, its Aptos address, and a view tag for
// cheap scanner-side filtering.
func DeriveStealthPub(metaSpendPub [CompressedPointSize]byte, metaViewPub [CompressedPointSize]byte, ephPriv [ScalarSize]byte) (StealthPublicResult, error) {
	var result StealthPublicResult

	key, err := SharedKey(ephPriv, metaViewPub)
	if err != nil {
		return result, err
	}
	var t secp256k1.ModNScalar
	t.SetByteSlice(key[:])
	if t.IsZero() {
		return result, fmt.Errorf("%w: tweak reduced to zero, regenerate ephemeral key", ErrDerivationFailure)
	}

	spendPub, err := secp256k1.ParsePubKey(metaSpendPub[:])
	if err != nil {
		return result, fmt.Errorf("%w: invalid meta-spend public key: %v", ErrBadKeyFormat, err)
	}

	var tG, spendJac, stealthJac secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&t, &tG)
	spendPub.AsJacobian(&spendJac)
	secp256k1.AddNonConst(&spendJac, &tG, &stealthJac)
	stealthJac.ToAffine()

	if stealthJac.X.IsZero() && stealthJac.Y.IsZero() {
		return result, fmt.Errorf("%w: stealth public key is the point at infinity", ErrDerivationFailure)
	}

	stealthPub := secp256k1.NewPublicKey(&stealthJac.X, &stealthJac.Y)
	copy(result.StealthPubKey[:], stealthPub.SerializeCompressed())

	addr, err := AddressOf(result.StealthPubKey)
	if err != nil {
		return result, err
	}
	result.StealthAddress = addr
	viewTagHash := sha256.Sum256(key[:])
	result.ViewTag = viewTagHash[0]

	return result, nil
}

// DeriveStealthKeypair is the receiver-side stealth derivation (spec §4.5):
//
//	t = decode_scalar(H(ECDH(metaViewPriv, ephPub)_X))
//	k_stealth = (metaSpendPriv + t) mod n
//
// By ECDH's commutativity, ECDH(ephPriv, metaViewPub) == ECDH(metaViewPriv,
// ephPub) as points, so this yields the same tweak t as DeriveStealthPub and
// therefore the same public key and address.
func DeriveStealthKeypair(metaSpendPriv [ScalarSize]byte, metaViewPriv [ScalarSize]byte, ephPub [CompressedPointSize]byte) (StealthKeyPair, error) {
	var result StealthKeyPair

	t, err := tweakScalar(metaViewPriv, ephPub)
	if err != nil {
		return result, err
	}

	var spendScalar secp256k1.ModNScalar
	overflow := spendScalar.SetByteSlice(metaSpendPriv[:])
	if overflow || spendScalar.IsZero() {
		return result, fmt.Errorf("%w: meta-spend private key is zero or >= curve order", ErrBadKeyFormat)
	}

	stealthScalar := spendScalar.Add(&t)
	if stealthScalar.IsZero() {
		return result, fmt.Errorf("%w: stealth private key reduced to zero, regenerate ephemeral key", ErrDerivationFailure)
	}

	result.StealthPrivKey = stealthScalar.Bytes()

	stealthPriv := secp256k1.NewPrivateKey(stealthScalar)
	defer stealthPriv.Zero()
	copy(result.StealthPubKey[:], stealthPriv.PubKey().SerializeCompressed())

	addr, err := AddressOf(result.StealthPubKey)
	if err != nil {
		return result, err
	}
	result.StealthAddress = addr

	return result, nil
}

// EncodeMetaAddress encodes a receiver's public meta keys as a single
// copyable string: pivy:<spend_b58>:<view_b58>.
func EncodeMetaAddress(metaSpendPub [CompressedPointSize]byte, metaViewPub [CompressedPointSize]byte) string {
	return fmt.Sprintf("pivy:%s:%s", EncodeBase58(metaSpendPub[:]), EncodeBase58(metaViewPub[:]))
}

// DecodeMetaAddress decodes a string produced by EncodeMetaAddress back into
// the receiver's public meta-spend and meta-view keys.
func DecodeMetaAddress(encoded string) (metaSpendPub, metaViewPub [CompressedPointSize]byte, err error) {
	parts := strings.Split(encoded, ":")
	if len(parts) != 3 || parts[0] != "pivy" {
		return metaSpendPub, metaViewPub, fmt.Errorf("%w: invalid meta-address format", ErrBadKeyFormat)
	}

	metaSpendPub, err = NormalizePoint(parts[1])
	if err != nil {
		return metaSpendPub, metaViewPub, fmt.Errorf("invalid spend key: %w", err)
	}
	metaViewPub, err = NormalizePoint(parts[2])
	if err != nil {
		return metaSpendPub, metaViewPub, fmt.Errorf("invalid view key: %w", err)
	}
	return metaSpendPub, metaViewPub, nil
}
