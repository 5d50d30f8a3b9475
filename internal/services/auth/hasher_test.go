package auth

import "testing"

func TestHashAndMatchPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == "secret123" {
		t.Fatalf("hash must not equal the plaintext")
	}

	if !MatchPassword("secret123", hash) {
		t.Fatalf("correct password did not match")
	}
	if MatchPassword("wrong-password", hash) {
		t.Fatalf("wrong password matched")
	}
}

func TestHashesAreSalted(t *testing.T) {
	first, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	second, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	if first == second {
		t.Fatalf("two hashes of the same password should differ")
	}
}
