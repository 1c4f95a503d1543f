package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"printshop/internal/repos"
)

func TestAdminGuard(t *testing.T) {
	app, db, _ := newTestApp(t)
	userRepo := repos.NewUserRepo(db)

	// anonymous visitors are sent to the login form
	resp, err := app.Test(httptest.NewRequest("GET", "/admin/", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/login" {
		t.Fatalf("anonymous /admin expected redirect to /login, got %d %s",
			resp.StatusCode, resp.Header.Get("Location"))
	}

	// an unknown session is denied outright
	req := httptest.NewRequest("GET", "/admin/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "sid-bogus"})
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("bogus sid expected 403, got %d", resp.StatusCode)
	}

	// a logged-in non-admin is denied too
	if _, err := db.Exec(`INSERT INTO users(id,email,name,password_hash,role)
		VALUES('u-shopper','shopper@printshop.test','Shopper','x','USER')`); err != nil {
		t.Fatal(err)
	}
	if err := userRepo.BindSession("sid-shopper", "u-shopper"); err != nil {
		t.Fatal(err)
	}
	req = httptest.NewRequest("GET", "/admin/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "sid-shopper"})
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("non-admin expected 403, got %d", resp.StatusCode)
	}

	// the seeded admin gets through
	if err := userRepo.BindSession("sid-admin", "u-admin"); err != nil {
		t.Fatal(err)
	}
	req = httptest.NewRequest("GET", "/admin/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "sid-admin"})
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin expected 200, got %d", resp.StatusCode)
	}
}

func TestLoginFlow(t *testing.T) {
	app, _, _ := newTestApp(t)
	tok := csrfToken(t, app)

	post := func(body string) *http.Response {
		t.Helper()
		req := httptest.NewRequest("POST", "/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(&http.Cookie{Name: "csrf_", Value: tok})
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		return resp
	}

	// wrong password, right shape
	resp := post("csrf=" + tok + "&email=admin@printshop.test&password=Wrong1pw!")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong password expected 401, got %d", resp.StatusCode)
	}

	// malformed email never reaches the credential check
	resp = post("csrf=" + tok + "&email=not-an-email&password=Passw0rd!")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad email expected 401, got %d", resp.StatusCode)
	}

	// seeded admin credentials land on the dashboard
	resp = post("csrf=" + tok + "&email=admin@printshop.test&password=Passw0rd!")
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/admin" {
		t.Fatalf("login expected redirect to /admin, got %d %s",
			resp.StatusCode, resp.Header.Get("Location"))
	}
	sid := extractCookie(resp, "sid")
	if sid == "" {
		t.Fatal("sid not set on login")
	}

	req := httptest.NewRequest("GET", "/admin/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	adminResp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if adminResp.StatusCode != http.StatusOK {
		t.Fatalf("dashboard after login expected 200, got %d", adminResp.StatusCode)
	}
}

func TestAdminImportGatedBySession(t *testing.T) {
	app, db, _ := newTestApp(t)

	feed := strings.NewReader(`[{"id":"stk-001","name":"Stickers Pack","price":79,"category":"Stickers"}]`)
	req := httptest.NewRequest("POST", "/admin/import", feed)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/login" {
		t.Fatalf("anonymous import expected login redirect, got %d", resp.StatusCode)
	}

	userRepo := repos.NewUserRepo(db)
	if err := userRepo.BindSession("sid-admin", "u-admin"); err != nil {
		t.Fatal(err)
	}
	feed = strings.NewReader(`[{"id":"stk-001","name":"Stickers Pack","price":79,"category":"Stickers"}]`)
	req = httptest.NewRequest("POST", "/admin/import", feed)
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "sid", Value: "sid-admin"})
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/admin/products" {
		t.Fatalf("admin import expected redirect to /admin/products, got %d", resp.StatusCode)
	}

	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products WHERE id='stk-001'`); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatal("imported product not persisted")
	}
}
