package sign

import (
	"testing"

	"github.com/FocuswithJustin/blueprint/core/encoding"
)

func TestDigestBytes(t *testing.T) {
	data := []byte("int main(void) { return 0; }")
	digest := DigestBytes(data)

	// Should be 64 hex characters (SHA-256)
	if len(digest) != 64 {
		t.Errorf("digest length = %d, want 64", len(digest))
	}

	// Same input should produce same digest
	if digest != DigestBytes(data) {
		t.Error("same data produced different digests")
	}

	// Different input should produce different digest
	if digest == DigestBytes([]byte("different content")) {
		t.Error("different data produced same digest")
	}
}

func TestDigestString(t *testing.T) {
	s := "main.c"
	if DigestString(s) != DigestBytes([]byte(s)) {
		t.Error("DigestString and DigestBytes differ")
	}
}

func TestDigest(t *testing.T) {
	contents := encoding.Object{
		"guid": "TGT-1",
		"name": "core",
	}

	digest, err := Digest(contents)
	if err != nil {
		t.Fatalf("Digest failed: %v", err)
	}
	if len(digest) != 64 {
		t.Errorf("digest length = %d, want 64", len(digest))
	}

	// Deterministic
	again, err := Digest(contents)
	if err != nil {
		t.Fatalf("Digest failed: %v", err)
	}
	if digest != again {
		t.Error("same contents produced different digests")
	}

	// Sensitive to any field change
	contents["name"] = "core2"
	changed, err := Digest(contents)
	if err != nil {
		t.Fatalf("Digest failed: %v", err)
	}
	if digest == changed {
		t.Error("changed contents produced same digest")
	}
}

func TestDigestExcludesSignatureField(t *testing.T) {
	contents := encoding.Object{
		"guid": "PRJ-1",
		"name": "app",
	}

	bare, err := Digest(contents)
	if err != nil {
		t.Fatalf("Digest failed: %v", err)
	}

	// Adding the signature field must not change the digest
	contents[SignatureField] = bare
	withSig, err := Digest(contents)
	if err != nil {
		t.Fatalf("Digest failed: %v", err)
	}
	if bare != withSig {
		t.Error("signature field was included in its own digest")
	}
}

func TestVerify(t *testing.T) {
	contents := encoding.Object{"guid": "W1", "name": "ws"}

	digest, err := Digest(contents)
	if err != nil {
		t.Fatalf("Digest failed: %v", err)
	}

	if !Verify(contents, digest) {
		t.Error("Verify failed for a valid signature")
	}
	if Verify(contents, "deadbeef") {
		t.Error("Verify succeeded for a wrong signature")
	}
	if Verify(contents, "") {
		t.Error("Verify succeeded for an empty signature")
	}

	// Verify must tolerate the signature being stored in the contents
	contents[SignatureField] = digest
	if !Verify(contents, digest) {
		t.Error("Verify failed when contents carry their own signature")
	}
}
