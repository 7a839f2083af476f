package security_test

import (
	"testing"

	"github.com/nazmulhasanDEV/invoice/internal/security"
)

func TestGenerateInviteToken(t *testing.T) {
	token, err := security.GenerateInviteToken()
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	// 32 random bytes, hex encoded
	if len(token) != 64 {
		t.Errorf("unexpected token length: got %d, want 64", len(token))
	}

	seen := map[string]bool{token: true}
	for i := 0; i < 100; i++ {
		next, err := security.GenerateInviteToken()
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}
		if seen[next] {
			t.Fatal("duplicate token generated")
		}
		seen[next] = true
	}
}
