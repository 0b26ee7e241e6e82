package util

import "testing"

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword() failed: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !CheckPassword("correct horse battery staple", hash) {
		t.Fatal("correct password should verify")
	}
	if CheckPassword("wrong password", hash) {
		t.Fatal("wrong password should not verify")
	}
	if CheckPassword("correct horse battery staple", "not-a-bcrypt-hash") {
		t.Fatal("garbage hash should not verify")
	}
}
