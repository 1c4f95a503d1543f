package services_test

import (
	"errors"
	"testing"

	"printshop/internal/repos"
	"printshop/internal/services"
)

func TestLoginAndSessionLifecycle(t *testing.T) {
	db := memdb(t)
	authSvc := &services.AuthService{Users: repos.NewUserRepo(db)}

	// unknown email and wrong password collapse into the same error
	if _, err := authSvc.Login("s1", "nobody@printshop.test", "Passw0rd!"); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("unknown email: want ErrBadCreds, got %v", err)
	}
	if _, err := authSvc.Login("s1", "admin@printshop.test", "Wrong1pw!"); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("wrong password: want ErrBadCreds, got %v", err)
	}

	// email is trimmed before lookup; forms love stray whitespace
	u, err := authSvc.Login("s1", "  admin@printshop.test ", "Passw0rd!")
	if err != nil {
		t.Fatal(err)
	}
	if u.Role != "ADMIN" {
		t.Fatalf("seeded admin expected, got %+v", u)
	}

	// wipe the login stamp so the next lookup has to refresh it
	if _, err := db.Exec(`UPDATE sessions SET last_seen=NULL WHERE id='s1'`); err != nil {
		t.Fatal(err)
	}
	got, err := authSvc.CurrentUser("s1")
	if err != nil || got.ID != u.ID {
		t.Fatalf("CurrentUser mismatch: %+v, %v", got, err)
	}
	var lastSeen string
	if err := db.Get(&lastSeen, `SELECT COALESCE(last_seen,'') FROM sessions WHERE id='s1'`); err != nil {
		t.Fatal(err)
	}
	if lastSeen == "" {
		t.Fatal("CurrentUser should refresh last_seen")
	}

	// logout unbinds but keeps the session row for the cart
	if err := authSvc.Logout("s1"); err != nil {
		t.Fatal(err)
	}
	if _, err := authSvc.CurrentUser("s1"); err == nil {
		t.Fatal("unbound session should not resolve to a user")
	}
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM sessions WHERE id='s1'`); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatal("logout should keep the session row")
	}
}
