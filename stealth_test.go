package pivy

import (
	"errors"
	"testing"
)

func TestStealthRoundTrip(t *testing.T) {
	t.Run("AddressesMatch", func(t *testing.T) {
		meta, err := GenerateMetaKeys()
		if err != nil {
			t.Fatalf("failed to generate meta keys: %v", err)
		}
		eph, err := GenerateEphemeralKey()
		if err != nil {
			t.Fatalf("failed to generate ephemeral key: %v", err)
		}

		payer, err := DeriveStealthPub(meta.SpendPub(), meta.ViewPub(), eph.PrivateKey)
		if err != nil {
			t.Fatalf("payer derivation failed: %v", err)
		}
		receiver, err := DeriveStealthKeypair(meta.Spend.PrivateKey, meta.View.PrivateKey, eph.PublicKey)
		if err != nil {
			t.Fatalf("receiver derivation failed: %v", err)
		}

		if payer.StealthAddress != receiver.StealthAddress {
			t.Error("payer and receiver should derive the same stealth address")
		}
		if payer.StealthPubKey != receiver.StealthPubKey {
			t.Error("payer and receiver should derive the same stealth public key")
		}
	})

	t.Run("SignConsistency", func(t *testing.T) {
		meta, _ := GenerateMetaKeys()
		eph, _ := GenerateEphemeralKey()

		payer, err := DeriveStealthPub(meta.SpendPub(), meta.ViewPub(), eph.PrivateKey)
		if err != nil {
			t.Fatalf("payer derivation failed: %v", err)
		}
		receiver, err := DeriveStealthKeypair(meta.Spend.PrivateKey, meta.View.PrivateKey, eph.PublicKey)
		if err != nil {
			t.Fatalf("receiver derivation failed: %v", err)
		}

		derivedPub, err := DerivePublicKey(receiver.StealthPrivKey)
		if err != nil {
			t.Fatalf("failed to derive public key: %v", err)
		}
		if derivedPub != payer.StealthPubKey {
			t.Error("public key of receiver's stealth private key should equal payer's stealth public key")
		}
	})

	t.Run("RejectsZeroEphemeralScalar", func(t *testing.T) {
		meta, _ := GenerateMetaKeys()
		var zero [ScalarSize]byte
		if _, err := DeriveStealthPub(meta.SpendPub(), meta.ViewPub(), zero); err == nil {
			t.Error("zero ephemeral scalar should fail ECDH and be rejected")
		}
	})
}

func TestStealthUnlinkability(t *testing.T) {
	meta, err := GenerateMetaKeys()
	if err != nil {
		t.Fatalf("failed to generate meta keys: %v", err)
	}

	const n = 100
	seen := make(map[[AddressSize]byte]bool, n)

	for i := 0; i < n; i++ {
		eph, err := GenerateEphemeralKey()
		if err != nil {
			t.Fatalf("failed to generate ephemeral key: %v", err)
		}
		result, err := DeriveStealthPub(meta.SpendPub(), meta.ViewPub(), eph.PrivateKey)
		if err != nil {
			t.Fatalf("derivation failed: %v", err)
		}
		if seen[result.StealthAddress] {
			t.Fatalf("collision detected among %d random ephemerals", n)
		}
		seen[result.StealthAddress] = true
	}
}

func TestMetaAddressEncoding(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		meta, err := GenerateMetaKeys()
		if err != nil {
			t.Fatalf("failed to generate meta keys: %v", err)
		}

		encoded := EncodeMetaAddress(meta.SpendPub(), meta.ViewPub())
		spendPub, viewPub, err := DecodeMetaAddress(encoded)
		if err != nil {
			t.Fatalf("failed to decode: %v", err)
		}
		if spendPub != meta.SpendPub() {
			t.Error("spend key mismatch after round-trip")
		}
		if viewPub != meta.ViewPub() {
			t.Error("view key mismatch after round-trip")
		}
	})

	t.Run("RejectsMalformedString", func(t *testing.T) {
		if _, _, err := DecodeMetaAddress("not-a-meta-address"); !errors.Is(err, ErrBadKeyFormat) {
			t.Errorf("expected ErrBadKeyFormat, got %v", err)
		}
	})
}
