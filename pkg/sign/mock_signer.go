package sign

import (
	"sync/atomic"
)

var _ Signer = (*MockSigner)(nil)

// MockSigner is a Signer for tests. It returns a fixed signature, or a fixed
// error, and counts how many times it was asked to sign.
type MockSigner struct {
	sig   Signature
	err   error
	calls atomic.Int64
	last  atomic.Value
}

// NewMockSigner creates a MockSigner that always returns sig.
func NewMockSigner(sig Signature) *MockSigner {
	return &MockSigner{sig: sig}
}

// NewFailingMockSigner creates a MockSigner that always returns err.
func NewFailingMockSigner(err error) *MockSigner {
	return &MockSigner{err: err}
}

// Sign records data and returns the configured signature or error.
func (m *MockSigner) Sign(data []byte) (Signature, error) {
	m.calls.Add(1)
	m.last.Store(string(data))
	if m.err != nil {
		return nil, m.err
	}
	return m.sig, nil
}

// Calls returns the number of Sign invocations.
func (m *MockSigner) Calls() int64 {
	return m.calls.Load()
}

// LastData returns the data passed to the most recent Sign call.
func (m *MockSigner) LastData() string {
	v, _ := m.last.Load().(string)
	return v
}
