package sign

import (
	"fmt"
	"strings"
)

const (
	gameIDParam    = "game_id"
	signatureParam = "signature"
)

// Request holds the parts of an unsigned API request.
// A Request is built fresh for every call and its signature is never reused.
type Request struct {
	BaseURL  string   // e.g. "https://api.gamejolt.com/api/game/v1_2/"
	Endpoint string   // e.g. "trophies/add-achieved/"
	GameID   string   // always sent as the first query parameter
	Queries  []string // "key=value" pairs, sent in this exact order
}

// Canonical returns the string the signature is computed over:
// BaseURL + Endpoint + "?game_id=" + GameID, followed by "&" + q for every query.
func (r Request) Canonical() string {
	var b strings.Builder
	b.WriteString(r.BaseURL)
	b.WriteString(r.Endpoint)
	b.WriteString("?" + gameIDParam + "=")
	b.WriteString(r.GameID)
	for _, q := range r.Queries {
		b.WriteByte('&')
		b.WriteString(q)
	}
	return b.String()
}

// URL signs the canonical string and returns it with "&signature=<hex>" appended.
func (r Request) URL(signer Signer) (string, error) {
	canonical := r.Canonical()
	sig, err := signer.Sign([]byte(canonical))
	if err != nil {
		return "", fmt.Errorf("failed to sign request: %w", err)
	}
	return canonical + "&" + signatureParam + "=" + sig.String(), nil
}

// SignURL is a shortcut that builds a Request and signs it with an MD5Signer.
func SignURL(baseURL, endpoint, gameID string, queries []string, secret string) string {
	req := Request{
		BaseURL:  baseURL,
		Endpoint: endpoint,
		GameID:   gameID,
		Queries:  queries,
	}
	// MD5Signer never fails.
	url, _ := req.URL(NewMD5Signer(secret))
	return url
}
