// Package pivy implements the stealth-address cryptographic core for the
// PIVY privacy-payment system on Aptos.
//
// A payer, holding only a receiver's long-lived public meta keys, derives a
// fresh unlinkable on-chain address controlled exclusively by that receiver
// (DeriveStealthPub) and can attach a small encrypted message to the payment
// (EncryptNote, EncryptEphemeralPrivKey). The receiver, holding the private
// meta keys plus the payer's published ephemeral public key, reconstructs
// the same address and the private key that spends from it
// (DeriveStealthKeypair).
//
// The package is a pure, stateless library: every function is reentrant,
// holds no package-level mutable state, and performs no I/O beyond reading
// the system CSPRNG. Callers are responsible for wallets, RPC, transaction
// building, and any on-chain scanning or indexing; none of that is in
// scope here.
package pivy
