package pivy

// ScalarSize is the byte length of a secp256k1 private scalar.
const ScalarSize = 32

// CompressedPointSize is the byte length of a compressed secp256k1 public key.
const CompressedPointSize = 33

// AddressSize is the byte length of an Aptos account address.
const AddressSize = 32

// nonceSize is the length of the random prefix on every EncryptedBlob.
const nonceSize = 24

// KeyPair is a single secp256k1 keypair: a 32-byte private scalar and its
// 33-byte compressed public key.
type KeyPair struct {
	PrivateKey [ScalarSize]byte
	PublicKey  [CompressedPointSize]byte
}

// MetaKeyPair is a receiver's long-lived (spend, view) keypair. Spend
// authorizes funds movement; view authorizes detection and decryption.
// Private halves must never leave the receiver.
type MetaKeyPair struct {
	Spend KeyPair
	View  KeyPair
}

// SpendPub returns the receiver's public meta-spend key.
func (m MetaKeyPair) SpendPub() [CompressedPointSize]byte { return m.Spend.PublicKey }

// ViewPub returns the receiver's public meta-view key.
func (m MetaKeyPair) ViewPub() [CompressedPointSize]byte { return m.View.PublicKey }

// EphemeralKeyPair is a one-shot keypair generated by the payer for a single
// payment. It must never be reused across payments.
type EphemeralKeyPair = KeyPair

// StealthPublicResult is the payer-side output of a stealth derivation: the
// one-time public key the payer pays to, and the Aptos address it encodes
// to.
type StealthPublicResult struct {
	StealthPubKey  [CompressedPointSize]byte
	StealthAddress [AddressSize]byte
	// ViewTag is the first byte of SHA-256 over the ECDH-derived key (the
	// key SharedKey returns, which is also the tweak). It lets an external
	// scanner cheaply skip non-matching announcements before doing a full
	// scalar multiplication; it carries no cryptographic weight of its own.
	ViewTag byte
}

// StealthKeyPair is the receiver-side output of a stealth derivation: the
// private key that spends from the stealth address, its public key, and the
// address itself. Invariant: DerivePublicKey(StealthPrivKey) == StealthPubKey
// and AddressOf(StealthPubKey) == StealthAddress.
type StealthKeyPair struct {
	StealthPrivKey [ScalarSize]byte
	StealthPubKey  [CompressedPointSize]byte
	StealthAddress [AddressSize]byte
}

// EncryptedBlob is a 24-byte random nonce prefix followed by XOR-ciphertext.
// The nonce is carried for wire-format forward compatibility with a future
// AEAD upgrade; the XOR cipher (EncryptBytes/DecryptBytes) does not itself
// consume it. EncryptNoteAuthenticated uses the same layout, with the prefix
// as its XChaCha20-Poly1305 nonce.
type EncryptedBlob []byte

// Nonce returns the blob's leading 24-byte nonce.
func (b EncryptedBlob) Nonce() []byte {
	if len(b) < nonceSize {
		return nil
	}
	return b[:nonceSize]
}

// Ciphertext returns the blob's XOR-ciphertext, with the nonce stripped.
func (b EncryptedBlob) Ciphertext() []byte {
	if len(b) < nonceSize {
		return nil
	}
	return b[nonceSize:]
}
