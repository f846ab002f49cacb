package services

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"brocante/internal/repos"
)

func authTestService(t *testing.T, password, hash string) *AuthService {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &AuthService{Sessions: repos.NewSessionRepo(db), Password: password, Hash: hash}
}

func TestLoginPlainPassword(t *testing.T) {
	svc := authTestService(t, "s3cret", "")

	if _, err := svc.Login("wrong"); err == nil {
		t.Fatal("expected error for wrong password")
	}
	if _, err := svc.Login(""); err == nil {
		t.Fatal("expected error for empty password")
	}

	sid, err := svc.Login("s3cret")
	if err != nil {
		t.Fatal(err)
	}
	if sid == "" {
		t.Fatal("expected session id")
	}
	if !svc.IsAdmin(sid) {
		t.Fatal("fresh session must authenticate")
	}
}

func TestLoginBcryptHashPreferred(t *testing.T) {
	h, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	// Plain password deliberately different: the hash must win.
	svc := authTestService(t, "other", string(h))

	if _, err := svc.Login("other"); err == nil {
		t.Fatal("plain password must be ignored when a hash is configured")
	}
	if _, err := svc.Login("s3cret"); err != nil {
		t.Fatal(err)
	}
}

func TestLoginNoCredentialConfigured(t *testing.T) {
	svc := authTestService(t, "", "")
	if _, err := svc.Login("anything"); err == nil {
		t.Fatal("expected login to fail when no credential is configured")
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	svc := authTestService(t, "s3cret", "")
	sid, err := svc.Login("s3cret")
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Logout(sid); err != nil {
		t.Fatal(err)
	}
	if svc.IsAdmin(sid) {
		t.Fatal("logged-out session must not authenticate")
	}
	if svc.IsAdmin("") {
		t.Fatal("empty session id must not authenticate")
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	svc := authTestService(t, "s3cret", "")
	a, _ := svc.Login("s3cret")
	b, _ := svc.Login("s3cret")
	if a == b {
		t.Fatal("two logins must mint distinct sessions")
	}
	_ = svc.Logout(a)
	if !svc.IsAdmin(b) {
		t.Fatal("logging out one session must not kill another")
	}
}
