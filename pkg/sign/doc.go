// Package sign builds and signs request URLs for the game API.
//
// The API does not authenticate requests with headers. Instead every GET
// carries a signature query parameter: a digest of the full request URL
// (everything before "&signature=") concatenated with the game's private key.
// The server recomputes the digest and rejects the request on mismatch, so
// the scheme is an integrity check, not encryption.
//
// The primary types are:
//
//   - Request: the pieces of an unsigned request and its canonical string
//   - Signer: computes a Signature over arbitrary bytes
//   - MD5Signer: the Signer the API expects (MD5 over data + secret)
//
// Usage
//
//	req := sign.Request{
//	    BaseURL:  "https://api.gamejolt.com/api/game/v1_2/",
//	    Endpoint: "users/auth/",
//	    GameID:   "12345",
//	    Queries:  []string{"username=alice", "user_token=tok123"},
//	}
//	url, err := req.URL(sign.NewMD5Signer(gameKey))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Query order is part of the signed string and is preserved exactly as given.
package sign
