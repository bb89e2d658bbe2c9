package envelope

import (
	"encoding/json"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/Feel-Joy/redux"
)

var (
	// ErrMalformedJSON marks input that is not valid JSON at all.
	ErrMalformedJSON = errors.New("envelope: input is not valid JSON")
	// ErrNotObject marks valid JSON whose top level is not an object.
	ErrNotObject = errors.New("envelope: wire actions must be JSON objects")
	// ErrMissingType marks objects without a non-empty string "type" field.
	ErrMissingType = errors.New(`envelope: wire actions require a string "type" field`)
	// ErrNoPayload is returned by Decode when the envelope carries no payload.
	ErrNoPayload = errors.New("envelope: no payload to decode")
)

// Envelope is a wire-format action: a JSON object with a string "type" and
// an optional "payload" document. The payload stays raw until a handler
// decodes it into a concrete struct.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

var _ redux.Action = Envelope{}

// ActionType returns the envelope's type discriminator.
func (e Envelope) ActionType() string { return e.Type }

// New builds an envelope from a type and a payload value. A nil payload
// produces an envelope without one.
func New(actionType string, payload any) (Envelope, error) {
	if actionType == "" {
		return Envelope{}, ErrMissingType
	}
	if payload == nil {
		return Envelope{Type: actionType}, nil
	}
	raw, err := jsoniter.ConfigFastest.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("envelope: encode payload: %w", err)
	}
	return Envelope{Type: actionType, Payload: raw}, nil
}

// Parse reads a wire action. Anything other than a JSON object carrying a
// non-empty string "type" is rejected before it can reach a dispatch.
func Parse(data []byte) (Envelope, error) {
	// Stdlib Valid here: jsoniter's fast config rejects bare top-level
	// numbers, which must classify as not-an-object instead.
	if !json.Valid(data) {
		return Envelope{}, ErrMalformedJSON
	}
	if jsoniter.Get(data).ValueType() != jsoniter.ObjectValue {
		return Envelope{}, ErrNotObject
	}
	typ := jsoniter.Get(data, "type")
	if typ.ValueType() != jsoniter.StringValue || typ.ToString() == "" {
		return Envelope{}, ErrMissingType
	}

	var e Envelope
	if err := jsoniter.ConfigFastest.Unmarshal(data, &e); err != nil {
		return Envelope{}, fmt.Errorf("envelope: decode: %w", err)
	}
	return e, nil
}

// Decode unmarshals the payload into v and validates it against its
// `validate` struct tags.
func (e Envelope) Decode(v any) error {
	if len(e.Payload) == 0 {
		return ErrNoPayload
	}
	if err := jsoniter.ConfigFastest.Unmarshal(e.Payload, v); err != nil {
		return fmt.Errorf("envelope: decode payload: %w", err)
	}
	return validateStruct(v)
}

// JSON renders the envelope back into its wire form.
func (e Envelope) JSON() ([]byte, error) {
	return jsoniter.ConfigFastest.Marshal(e)
}
