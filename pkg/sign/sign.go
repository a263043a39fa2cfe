package sign

import (
	"encoding/hex"
)

// Signer is an interface for request signers.
type Signer interface {
	Sign(data []byte) (Signature, error) // Sign generates a signature for the given data.
}

// Signature is a raw digest produced by a Signer.
type Signature []byte

// String renders the signature as lowercase hex. A 16-byte digest always
// renders as exactly 32 characters, leading zero bytes included.
func (s Signature) String() string {
	return hex.EncodeToString(s)
}
