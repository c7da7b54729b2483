// Package sign computes content signatures for signable objects.
//
// A signature is the SHA-256 digest, hex-encoded lowercase, of the canonical
// encoding of an object's contents with the signature field itself absent.
// Signing is a pure function of already-finalized data: identical contents
// always produce identical signatures, and any change to the contents (or to
// a descendant signature embedded in them) produces a different signature.
package sign

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/FocuswithJustin/blueprint/core/encoding"
)

// SignatureField is the contents field suppressed during the signature pass.
const SignatureField = "signature"

// DigestBytes computes the SHA-256 hash of bytes and returns it as a hex string.
func DigestBytes(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// DigestString computes the SHA-256 hash of a string and returns it as a hex string.
func DigestString(s string) string {
	return DigestBytes([]byte(s))
}

// Digest computes the content signature of a canonical-form object.
// The object's own signature field, if present, is excluded from the hash.
func Digest(contents encoding.Object) (string, error) {
	data, err := encoding.MarshalOmitting(contents, SignatureField)
	if err != nil {
		return "", err
	}
	return DigestBytes(data), nil
}

// Verify reports whether the contents hash to the given signature.
func Verify(contents encoding.Object, signature string) bool {
	if signature == "" {
		return false
	}
	computed, err := Digest(contents)
	if err != nil {
		return false
	}
	return computed == signature
}
