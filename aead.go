package pivy

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// EncryptNoteAuthenticated is an optional, explicitly non-default upgrade to
// EncryptNote: it seals the note with XChaCha20-Poly1305 under the same
// ECDH-derived key, using the same 24-byte nonce slot spec §9 reserves for a
// future AEAD revision.
//
// Nothing in this package calls this automatically and existing PIVY wire
// consumers do not expect it — EncryptNote's unauthenticated construction
// remains the default wire format. Use this only when both ends of a
// payment have agreed out-of-band to the authenticated variant.
func EncryptNoteAuthenticated(message string, ephPriv [ScalarSize]byte, metaViewPub [CompressedPointSize]byte) (EncryptedBlob, error) {
	key, err := SharedKey(ephPriv, metaViewPub)
	if err != nil {
		return nil, err
	}

	aead, err := chacha20poly1305.NewX(key[:])
	if err != nil {
		return nil, fmt.Errorf("failed to construct AEAD: %w", err)
	}

	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := aead.Seal(nil, nonce, []byte(message), nil)

	blob := make([]byte, 0, len(nonce)+len(ciphertext))
	blob = append(blob, nonce...)
	blob = append(blob, ciphertext...)
	return blob, nil
}

// DecryptNoteAuthenticated reverses EncryptNoteAuthenticated. Unlike
// DecryptNote, a corrupted or tampered blob is rejected with
// ErrDecryptionFailure rather than producing garbage plaintext.
func DecryptNoteAuthenticated(blob EncryptedBlob, metaViewPriv [ScalarSize]byte, ephPub [CompressedPointSize]byte) (string, error) {
	key, err := SharedKey(metaViewPriv, ephPub)
	if err != nil {
		return "", err
	}

	if len(blob) < chacha20poly1305.NonceSizeX {
		return "", fmt.Errorf("%w: blob shorter than nonce prefix", ErrBadKeyFormat)
	}

	aead, err := chacha20poly1305.NewX(key[:])
	if err != nil {
		return "", fmt.Errorf("failed to construct AEAD: %w", err)
	}

	nonce := blob[:chacha20poly1305.NonceSizeX]
	ciphertext := blob[chacha20poly1305.NonceSizeX:]

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecryptionFailure, err)
	}
	return string(plaintext), nil
}
