// Package encoding provides the canonical structured encoding used for
// content signing and document emission.
//
// Canonical form is JSON with object keys in sorted order. Go's encoding/json
// already emits map keys sorted, so an Object marshals deterministically:
// the same field values always produce the same byte sequence. The package
// also provides the signature-pass hook that suppresses named fields, which
// the signature engine uses to hash an object's contents with its own
// signature field absent.
package encoding

import "encoding/json"

// jsonMarshal is a variable to allow testing of marshal errors.
var jsonMarshal = json.Marshal

// Unmarshal decodes canonical-form bytes into v.
func Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// Object is a canonical-form object body. Values must be JSON-encodable:
// strings, integers, booleans, []string, nested Objects, or slices of any
// of these. Map keys are emitted in sorted order.
type Object map[string]any

// Set stores a value under key and returns the object for chaining.
func (o Object) Set(key string, value any) Object {
	o[key] = value
	return o
}

// SetNonEmpty stores a string value only if it is non-empty.
func (o Object) SetNonEmpty(key, value string) Object {
	if value != "" {
		o[key] = value
	}
	return o
}

// Omitting returns a shallow copy of the object with the named fields
// removed. The receiver is not modified.
func (o Object) Omitting(fields ...string) Object {
	out := make(Object, len(o))
	for k, v := range o {
		out[k] = v
	}
	for _, f := range fields {
		delete(out, f)
	}
	return out
}

// Marshal encodes a value in canonical form.
func Marshal(v any) ([]byte, error) {
	return jsonMarshal(v)
}

// MarshalOmitting encodes an object in canonical form with the named
// fields suppressed. This is the signature-pass hook: signing an object
// encodes its contents with the signature field absent.
func MarshalOmitting(o Object, fields ...string) ([]byte, error) {
	return jsonMarshal(o.Omitting(fields...))
}

// MarshalIndent encodes a value in canonical form with indentation,
// for human inspection. Not used for signing.
func MarshalIndent(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
