package gamejolt

import (
	"github.com/tidwall/gjson"
)

// Envelope is the unwrapped {"response": {...}} object.
type Envelope struct {
	Success bool
	Message string
	// Payload is the whole "response" object, success and message included.
	Payload gjson.Result
}

// Unwrap parses a response body.
//
// The server encodes failure as the JSON string "false". Only that exact
// value fails the call; a JSON boolean or any other value counts as success.
func Unwrap(body []byte) (Envelope, error) {
	if !gjson.ValidBytes(body) {
		return Envelope{}, &TransportError{Kind: DecodingError, Err: errInvalidJSON}
	}

	response := gjson.GetBytes(body, "response")
	if !response.IsObject() {
		return Envelope{}, &TransportError{Kind: DecodingError, Err: errMissingEnvelope}
	}

	env := Envelope{
		Success: true,
		Message: response.Get("message").String(),
		Payload: response,
	}

	success := response.Get("success")
	if success.Type == gjson.String && success.Str == "false" {
		env.Success = false
		return env, &ApplicationError{Message: env.Message}
	}

	return env, nil
}
