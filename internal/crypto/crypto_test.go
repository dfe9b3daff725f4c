package crypto

import (
	"encoding/base64"
	"testing"
)

func testKey() string {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	return base64.StdEncoding.EncodeToString(key)
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	enc, err := NewTokenEncryptor(testKey())
	if err != nil {
		t.Fatalf("NewTokenEncryptor: %v", err)
	}

	plaintext := "ya29.a0AfH6SMB-oauth-access-token"
	ciphertext, err := enc.Encrypt(plaintext)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if ciphertext == plaintext {
		t.Error("ciphertext equals plaintext")
	}

	got, err := enc.Decrypt(ciphertext)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if got != plaintext {
		t.Errorf("expected %q, got %q", plaintext, got)
	}
}

func TestEmptyStringPassthrough(t *testing.T) {
	enc, err := NewTokenEncryptor(testKey())
	if err != nil {
		t.Fatalf("NewTokenEncryptor: %v", err)
	}

	ciphertext, err := enc.Encrypt("")
	if err != nil || ciphertext != "" {
		t.Errorf("expected empty ciphertext, got %q (err %v)", ciphertext, err)
	}

	plaintext, err := enc.Decrypt("")
	if err != nil || plaintext != "" {
		t.Errorf("expected empty plaintext, got %q (err %v)", plaintext, err)
	}
}

func TestNewTokenEncryptorRejectsBadKeys(t *testing.T) {
	if _, err := NewTokenEncryptor(""); err == nil {
		t.Error("expected error for empty key")
	}
	if _, err := NewTokenEncryptor("not-base64!!!"); err == nil {
		t.Error("expected error for invalid base64")
	}
	short := base64.StdEncoding.EncodeToString([]byte("too-short"))
	if _, err := NewTokenEncryptor(short); err == nil {
		t.Error("expected error for short key")
	}
}
