package pivy

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// SharedKey computes the 32-byte symmetric key K = SHA-256(ECDH(priv, pub)_X)
// shared between priv and pub, per spec §4.3. ECDH(priv, pub) is the
// 33-byte compressed shared point; its leading compression byte is dropped
// before hashing the 32-byte X-coordinate.
func SharedKey(priv [ScalarSize]byte, pub [CompressedPointSize]byte) ([32]byte, error) {
	var key [32]byte

	privScalar := secp256k1.PrivKeyFromBytes(priv[:])
	defer privScalar.Zero()

	pubPoint, err := secp256k1.ParsePubKey(pub[:])
	if err != nil {
		return key, fmt.Errorf("%w: invalid public point: %v", ErrBadKeyFormat, err)
	}

	var pubJac, sharedJac secp256k1.JacobianPoint
	pubPoint.AsJacobian(&pubJac)
	secp256k1.ScalarMultNonConst(&privScalar.Key, &pubJac, &sharedJac)
	sharedJac.ToAffine()

	if sharedJac.X.IsZero() && sharedJac.Y.IsZero() {
		return key, fmt.Errorf("%w: ECDH yielded the point at infinity", ErrBadKeyFormat)
	}

	shared := secp256k1.NewPublicKey(&sharedJac.X, &sharedJac.Y)
	sharedCompressed := shared.SerializeCompressed()

	key = sha256.Sum256(sharedCompressed[1:]) // drop the leading 0x02/0x03 byte
	return key, nil
}

// xorKeystream XORs src against key, repeating key as needed, writing into
// a freshly allocated slice the same length as src.
func xorKeystream(key [32]byte, src []byte) []byte {
	out := make([]byte, len(src))
	for i := range src {
		out[i] = src[i] ^ key[i%len(key)]
	}
	return out
}

// EncryptBytes encrypts plaintext under key with a random 24-byte nonce
// prefix, per spec §4.3. The nonce is not consumed by the cipher itself; it
// exists to give each ciphertext a distinct-looking prefix and to reserve
// space for a future AEAD upgrade (see aead.go). This construction provides
// confidentiality only against a passive observer who does not know key; it
// is not authenticated.
func EncryptBytes(key [32]byte, plaintext []byte) (EncryptedBlob, error) {
	return encryptBytesWithRand(key, plaintext, rand.Reader)
}

func encryptBytesWithRand(key [32]byte, plaintext []byte, rng io.Reader) (EncryptedBlob, error) {
	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rng, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := xorKeystream(key, plaintext)

	blob := make([]byte, 0, nonceSize+len(ciphertext))
	blob = append(blob, nonce...)
	blob = append(blob, ciphertext...)
	return blob, nil
}

// DecryptBytes reverses EncryptBytes: it strips the 24-byte nonce prefix and
// XORs the remainder against key.
func DecryptBytes(key [32]byte, blob EncryptedBlob) ([]byte, error) {
	if len(blob) < nonceSize {
		return nil, fmt.Errorf("%w: blob shorter than nonce prefix", ErrBadKeyFormat)
	}
	return xorKeystream(key, blob.Ciphertext()), nil
}

// EncryptNote encrypts a UTF-8 message under the ECDH key shared between
// ephPriv and the recipient's view public key. The blob is returned as raw
// bytes (nonce || ciphertext); callers needing a text transport should
// base58- or hex-encode it themselves. There is no integrity check: callers
// must validate decrypted notes at a higher layer, or use
// EncryptNoteAuthenticated (aead.go) instead.
func EncryptNote(message string, ephPriv [ScalarSize]byte, metaViewPub [CompressedPointSize]byte) (EncryptedBlob, error) {
	key, err := SharedKey(ephPriv, metaViewPub)
	if err != nil {
		return nil, err
	}
	return EncryptBytes(key, []byte(message))
}

// DecryptNote reverses EncryptNote, computing the same ECDH key from the
// receiver's private view key and the payer's ephemeral public key.
func DecryptNote(blob EncryptedBlob, metaViewPriv [ScalarSize]byte, ephPub [CompressedPointSize]byte) (string, error) {
	key, err := SharedKey(metaViewPriv, ephPub)
	if err != nil {
		return "", err
	}
	plaintext, err := DecryptBytes(key, blob)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// EncryptEphemeralPrivKey encrypts the payer's ephemeral keypair (the 32-byte
// private key followed by its 33-byte compressed public key, 65 bytes total)
// under the ECDH key shared with the recipient's view public key, and
// base58-encodes the result, per spec §4.3.
func EncryptEphemeralPrivKey(ephPriv [ScalarSize]byte, ephPub [CompressedPointSize]byte, metaViewPub [CompressedPointSize]byte) (string, error) {
	key, err := SharedKey(ephPriv, metaViewPub)
	if err != nil {
		return "", err
	}

	plaintext := make([]byte, 0, ScalarSize+CompressedPointSize)
	plaintext = append(plaintext, ephPriv[:]...)
	plaintext = append(plaintext, ephPub[:]...)

	blob, err := EncryptBytes(key, plaintext)
	if err != nil {
		return "", err
	}
	return EncodeBase58(blob), nil
}

// DecryptEphemeralPrivKey decrypts a blob produced by EncryptEphemeralPrivKey
// using the receiver's private view key and the payer's published ephemeral
// public key. It recomputes the ephemeral public key from the recovered
// private key and requires it to match the decrypted tail exactly,
// returning ErrDecryptionFailure otherwise — an integrity check by
// redundancy rather than by MAC.
func DecryptEphemeralPrivKey(encoded string, metaViewPriv [ScalarSize]byte, ephPub [CompressedPointSize]byte) ([ScalarSize]byte, error) {
	var ephPriv [ScalarSize]byte

	blob, err := DecodeBase58(encoded)
	if err != nil {
		return ephPriv, fmt.Errorf("%w: invalid base58 blob: %v", ErrBadKeyFormat, err)
	}

	key, err := SharedKey(metaViewPriv, ephPub)
	if err != nil {
		return ephPriv, err
	}

	plaintext, err := DecryptBytes(key, blob)
	if err != nil {
		return ephPriv, err
	}
	if len(plaintext) != ScalarSize+CompressedPointSize {
		return ephPriv, fmt.Errorf("%w: decrypted ephemeral blob has wrong length", ErrDecryptionFailure)
	}

	copy(ephPriv[:], plaintext[:ScalarSize])

	recoveredPriv := secp256k1.PrivKeyFromBytes(ephPriv[:])
	defer recoveredPriv.Zero()
	recoveredPub := recoveredPriv.PubKey().SerializeCompressed()

	if !constantTimeEqual(recoveredPub, plaintext[ScalarSize:]) {
		return [ScalarSize]byte{}, ErrDecryptionFailure
	}

	return ephPriv, nil
}

func constantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var diff byte
	for i := range a {
		diff |= a[i] ^ b[i]
	}
	return diff == 0
}
