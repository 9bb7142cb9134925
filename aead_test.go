package pivy

import (
	"errors"
	"testing"
)

func TestNoteEncryptionAuthenticated(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		eph, err := GenerateEphemeralKey()
		if err != nil {
			t.Fatalf("failed to generate ephemeral key: %v", err)
		}
		meta, err := GenerateMetaKeys()
		if err != nil {
			t.Fatalf("failed to generate meta keys: %v", err)
		}

		message := "authenticated payload"
		blob, err := EncryptNoteAuthenticated(message, eph.PrivateKey, meta.ViewPub())
		if err != nil {
			t.Fatalf("failed to encrypt: %v", err)
		}

		got, err := DecryptNoteAuthenticated(blob, meta.View.PrivateKey, eph.PublicKey)
		if err != nil {
			t.Fatalf("failed to decrypt: %v", err)
		}
		if got != message {
			t.Errorf("expected %q, got %q", message, got)
		}
	})

	t.Run("TamperedCiphertextIsRejected", func(t *testing.T) {
		eph, _ := GenerateEphemeralKey()
		meta, _ := GenerateMetaKeys()

		blob, err := EncryptNoteAuthenticated("tamper me", eph.PrivateKey, meta.ViewPub())
		if err != nil {
			t.Fatalf("failed to encrypt: %v", err)
		}

		tampered := make(EncryptedBlob, len(blob))
		copy(tampered, blob)
		tampered[len(tampered)-1] ^= 0x01

		_, err = DecryptNoteAuthenticated(tampered, meta.View.PrivateKey, eph.PublicKey)
		if !errors.Is(err, ErrDecryptionFailure) {
			t.Errorf("expected ErrDecryptionFailure, got %v", err)
		}
	})
}
