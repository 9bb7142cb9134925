package pivy

import (
	"strings"
	"testing"
)

func TestAddressOf(t *testing.T) {
	t.Run("Deterministic", func(t *testing.T) {
		kp, err := GenerateKeyPair()
		if err != nil {
			t.Fatalf("failed to generate key pair: %v", err)
		}

		addr1, err := AddressOf(kp.PublicKey)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		addr2, err := AddressOf(kp.PublicKey)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if addr1 != addr2 {
			t.Error("AddressOf should be a pure function of its input")
		}
	})

	t.Run("DifferentKeysDifferentAddresses", func(t *testing.T) {
		kp1, _ := GenerateKeyPair()
		kp2, _ := GenerateKeyPair()

		addr1, err := AddressOf(kp1.PublicKey)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		addr2, err := AddressOf(kp2.PublicKey)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if addr1 == addr2 {
			t.Error("distinct public keys should not collide")
		}
	})

	t.Run("RejectsInvalidPoint", func(t *testing.T) {
		var bad [CompressedPointSize]byte
		bad[0] = 0x04 // not a valid compressed-point prefix (must be 0x02/0x03)
		if _, err := AddressOf(bad); err == nil {
			t.Error("invalid compressed point should fail")
		}
	})
}

func TestAddressHex(t *testing.T) {
	kp, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("failed to generate key pair: %v", err)
	}
	addr, err := AddressOf(kp.PublicKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hexAddr := AddressHex(addr)
	if !strings.HasPrefix(hexAddr, "0x") {
		t.Error("address should be 0x-prefixed")
	}
	if len(hexAddr) != 66 {
		t.Errorf("expected 66 chars (0x + 64 hex digits), got %d", len(hexAddr))
	}
}
