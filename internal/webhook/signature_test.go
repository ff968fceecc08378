package webhook

import (
	"strings"
	"testing"
)

func TestComputeHMAC(t *testing.T) {
	payload := []byte(`{"event":"submission.created"}`)
	sig := ComputeHMAC(payload, "secret-1")

	if !strings.HasPrefix(sig, "sha256=") {
		t.Fatalf("signature %q missing sha256= prefix", sig)
	}
	if sig != ComputeHMAC(payload, "secret-1") {
		t.Fatal("signature must be deterministic for identical inputs")
	}
	if sig == ComputeHMAC(payload, "secret-2") {
		t.Fatal("different secrets must produce different signatures")
	}
	if sig == ComputeHMAC([]byte(`{}`), "secret-1") {
		t.Fatal("different payloads must produce different signatures")
	}
}

func TestVerifySignature(t *testing.T) {
	payload := []byte(`{"event":"template.updated"}`)
	sig := ComputeHMAC(payload, "secret-1")

	if !VerifySignature(payload, sig, "secret-1") {
		t.Fatal("valid signature must verify")
	}
	if VerifySignature(payload, sig, "wrong-secret") {
		t.Fatal("signature must not verify with wrong secret")
	}
	if VerifySignature([]byte("tampered"), sig, "secret-1") {
		t.Fatal("signature must not verify for tampered payload")
	}
}
