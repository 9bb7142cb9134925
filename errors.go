package pivy

import "errors"

var (
	// ErrBadKeyFormat is returned when key material is malformed: wrong
	// length, invalid hex/base58, an invalid curve point, a zero scalar, or
	// a scalar >= the curve order.
	ErrBadKeyFormat = errors.New("pivy: bad key format")

	// ErrDerivationFailure is returned when a stealth derivation yields a
	// degenerate result (zero scalar or point at infinity). Probability is
	// negligible; callers should regenerate the ephemeral key and retry.
	ErrDerivationFailure = errors.New("pivy: stealth derivation failure")

	// ErrDecryptionFailure is returned when the ephemeral-key blob's
	// redundancy check fails: the recomputed ephemeral public key does not
	// match the trailing 33 bytes of the decrypted plaintext.
	ErrDecryptionFailure = errors.New("pivy: decryption failure")

	// ErrLengthExceeded is an advisory error for payloads that exceed the
	// on-chain collaborator's field caps (label 32B, eph_pubkey 33B,
	// payload 121B, note 256B). It is never returned by this package's own
	// functions; it exists for callers that want to reuse the same error
	// taxonomy when enforcing those caps themselves.
	ErrLengthExceeded = errors.New("pivy: length exceeded")
)
