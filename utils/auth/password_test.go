package auth

import "testing"

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "correct horse battery" {
		t.Fatalf("password stored in plain text")
	}

	if err := VerifyPassword(hash, "correct horse battery"); err != nil {
		t.Errorf("VerifyPassword rejected the right password: %v", err)
	}
	if err := VerifyPassword(hash, "wrong password"); err == nil {
		t.Errorf("VerifyPassword accepted the wrong password")
	}
}

func TestIsPasswordValid(t *testing.T) {
	if IsPasswordValid("short") {
		t.Errorf("7-character password accepted")
	}
	if !IsPasswordValid("12345678") {
		t.Errorf("8-character password rejected")
	}
}
