package models

import (
	"encoding/base64"
	"testing"
)

func initTestEncryption(t *testing.T) {
	t.Helper()
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	if err := InitEncryption(base64.StdEncoding.EncodeToString(key)); err != nil {
		t.Fatalf("InitEncryption: %v", err)
	}
	t.Cleanup(func() { encryptor = nil })
}

func TestAuthIdentityTokenHooksRoundTrip(t *testing.T) {
	initTestEncryption(t)

	a := &AuthIdentity{AccessToken: "tok-1", RefreshToken: "ref-1"}

	if err := a.BeforeSave(nil); err != nil {
		t.Fatalf("BeforeSave: %v", err)
	}
	if a.AccessToken == "tok-1" || a.RefreshToken == "ref-1" {
		t.Fatal("tokens stored in plaintext")
	}

	if err := a.AfterFind(nil); err != nil {
		t.Fatalf("AfterFind: %v", err)
	}
	if a.AccessToken != "tok-1" || a.RefreshToken != "ref-1" {
		t.Errorf("expected original tokens after decrypt, got %q / %q", a.AccessToken, a.RefreshToken)
	}
}

// A token refresh reassigns the struct fields and saves again; the second
// encrypt/decrypt cycle must yield the new tokens, not corrupt them.
func TestAuthIdentityTokenRefreshRoundTrip(t *testing.T) {
	initTestEncryption(t)

	a := &AuthIdentity{AccessToken: "tok-1", RefreshToken: "ref-1"}
	if err := a.BeforeSave(nil); err != nil {
		t.Fatalf("BeforeSave: %v", err)
	}
	if err := a.AfterFind(nil); err != nil {
		t.Fatalf("AfterFind: %v", err)
	}

	a.AccessToken = "tok-2"
	a.RefreshToken = "ref-2"
	if err := a.BeforeSave(nil); err != nil {
		t.Fatalf("BeforeSave after refresh: %v", err)
	}
	if a.AccessToken == "tok-2" {
		t.Fatal("refreshed token stored in plaintext")
	}
	if err := a.AfterFind(nil); err != nil {
		t.Fatalf("AfterFind after refresh: %v", err)
	}
	if a.AccessToken != "tok-2" || a.RefreshToken != "ref-2" {
		t.Errorf("expected refreshed tokens after decrypt, got %q / %q", a.AccessToken, a.RefreshToken)
	}
}

func TestAuthIdentityHooksWithoutEncryption(t *testing.T) {
	encryptor = nil

	a := &AuthIdentity{AccessToken: "tok-1"}
	if err := a.BeforeSave(nil); err != nil {
		t.Fatalf("BeforeSave: %v", err)
	}
	if a.AccessToken != "tok-1" {
		t.Errorf("expected passthrough without encryptor, got %q", a.AccessToken)
	}
}
