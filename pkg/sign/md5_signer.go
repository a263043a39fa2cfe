package sign

import (
	"crypto/md5"
)

var _ Signer = (*MD5Signer)(nil)

// MD5Signer signs data by hashing it together with a shared secret.
// MD5 is what the API server verifies against; it is an interop contract and
// must not be swapped for another digest without server support.
type MD5Signer struct {
	secret string
}

// NewMD5Signer creates a signer for the given game private key.
func NewMD5Signer(secret string) *MD5Signer {
	return &MD5Signer{secret: secret}
}

// Sign returns md5(data + secret).
func (s *MD5Signer) Sign(data []byte) (Signature, error) {
	h := md5.New()
	h.Write(data)
	h.Write([]byte(s.secret))
	return Signature(h.Sum(nil)), nil
}
