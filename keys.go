package pivy

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// generateScalarKeyPair draws a scalar uniformly from [1, n-1] by rejection
// sampling 32-byte reads from rng, and derives the corresponding compressed
// public key k*G.
func generateScalarKeyPair(rng io.Reader) (KeyPair, error) {
	var kp KeyPair

	buf := make([]byte, ScalarSize)
	for {
		if _, err := io.ReadFull(rng, buf); err != nil {
			return kp, fmt.Errorf("failed to read randomness: %w", err)
		}

		var scalar secp256k1.ModNScalar
		overflow := scalar.SetByteSlice(buf)
		if overflow || scalar.IsZero() {
			continue // reject and redraw
		}

		priv := secp256k1.NewPrivateKey(&scalar)
		copy(kp.PrivateKey[:], priv.Serialize())
		copy(kp.PublicKey[:], priv.PubKey().SerializeCompressed())
		priv.Zero()
		return kp, nil
	}
}

// GenerateKeyPair draws a single secp256k1 keypair using the system CSPRNG.
func GenerateKeyPair() (KeyPair, error) {
	return generateScalarKeyPair(rand.Reader)
}

// GenerateKeyPairWithRand draws a single secp256k1 keypair using rng instead
// of the system CSPRNG. Intended for deterministic fixtures in tests; rng
// MUST be cryptographically secure in any other context.
func GenerateKeyPairWithRand(rng io.Reader) (KeyPair, error) {
	return generateScalarKeyPair(rng)
}

// GenerateMetaKeys produces a fresh (spend, view) meta-keypair for a
// receiver, using the system CSPRNG.
func GenerateMetaKeys() (MetaKeyPair, error) {
	return generateMetaKeysWithRand(rand.Reader)
}

// GenerateMetaKeysWithRand is GenerateMetaKeys with an explicit RNG, for
// deterministic test fixtures.
func GenerateMetaKeysWithRand(rng io.Reader) (MetaKeyPair, error) {
	return generateMetaKeysWithRand(rng)
}

func generateMetaKeysWithRand(rng io.Reader) (MetaKeyPair, error) {
	spend, err := generateScalarKeyPair(rng)
	if err != nil {
		return MetaKeyPair{}, fmt.Errorf("failed to generate spend key: %w", err)
	}
	view, err := generateScalarKeyPair(rng)
	if err != nil {
		return MetaKeyPair{}, fmt.Errorf("failed to generate view key: %w", err)
	}
	return MetaKeyPair{Spend: spend, View: view}, nil
}

// GenerateEphemeralKey produces a fresh one-shot keypair for a single
// payment, using the system CSPRNG. Callers must never reuse the result
// across payments.
func GenerateEphemeralKey() (EphemeralKeyPair, error) {
	return generateScalarKeyPair(rand.Reader)
}

// GenerateEphemeralKeyWithRand is GenerateEphemeralKey with an explicit RNG,
// for deterministic test fixtures.
func GenerateEphemeralKeyWithRand(rng io.Reader) (EphemeralKeyPair, error) {
	return generateScalarKeyPair(rng)
}

// DerivePublicKey computes the compressed public key k*G for private scalar
// k, failing with ErrBadKeyFormat if k is zero or >= the curve order.
func DerivePublicKey(priv [ScalarSize]byte) ([CompressedPointSize]byte, error) {
	var pub [CompressedPointSize]byte

	var scalar secp256k1.ModNScalar
	overflow := scalar.SetByteSlice(priv[:])
	if overflow || scalar.IsZero() {
		return pub, fmt.Errorf("%w: scalar is zero or >= curve order", ErrBadKeyFormat)
	}

	privKey := secp256k1.NewPrivateKey(&scalar)
	defer privKey.Zero()
	copy(pub[:], privKey.PubKey().SerializeCompressed())
	return pub, nil
}
