package handlers_test

import (
	"strings"
	"testing"

	"avtovybor/internal/http/handlers"
	"avtovybor/internal/validate"
)

func creds(email, pass string) map[string]string {
	return map[string]string{"email": email, "password": pass}
}

func TestRegisterThenLogin(t *testing.T) {
	app, _ := newTestApp(t, nil)

	var raw []byte
	logs := captureLogs(t, func() {
		_, raw = postJSON(t, app, "/api/register", creds("Olga@Example.com", "Passw0rd!"))
	})
	if r := decode(t, raw); !r.Success || r.Message != handlers.MsgRegistered {
		t.Fatalf("register: %s", raw)
	}
	if _, ok := findLog(logs, "auth.register"); !ok {
		t.Fatal("auth.register not logged")
	}

	// same address in another case is a duplicate
	_, raw = postJSON(t, app, "/api/register", creds("olga@example.com", "Another1!"))
	if r := decode(t, raw); r.Success || r.Message != handlers.MsgEmailTaken {
		t.Fatalf("duplicate: %s", raw)
	}

	logs = captureLogs(t, func() {
		_, raw = postJSON(t, app, "/api/login", creds("olga@example.com", "Passw0rd!"))
	})
	r := decode(t, raw)
	if !r.Success || r.Message != handlers.MsgLoggedIn || r.User.Email != "olga@example.com" {
		t.Fatalf("login: %s", raw)
	}
	e, ok := findLog(logs, "auth.login.success")
	if !ok {
		t.Fatal("auth.login.success not logged")
	}
	if _, ok := e.Fields["email"]; !ok {
		t.Fatal("auth.login.success missing email field")
	}
	if strings.Contains(string(raw), "password") || strings.Contains(string(raw), "$2a$") {
		t.Fatalf("login reply exposes credentials: %s", raw)
	}
}

func TestLoginFailuresLookAlike(t *testing.T) {
	app, _ := newTestApp(t, nil)
	_, _ = postJSON(t, app, "/api/register", creds("ivan@example.com", "Passw0rd!"))

	var wrongPass, unknown []byte
	logs := captureLogs(t, func() {
		_, wrongPass = postJSON(t, app, "/api/login", creds("ivan@example.com", "nope-nope"))
		_, unknown = postJSON(t, app, "/api/login", creds("ghost@example.com", "Passw0rd!"))
	})
	a, b := decode(t, wrongPass), decode(t, unknown)
	if a.Success || b.Success || a.Message != handlers.MsgBadCreds || a.Message != b.Message {
		t.Fatalf("failures differ: %s vs %s", wrongPass, unknown)
	}
	e, ok := findLog(logs, "auth.login.fail")
	if !ok || e.Kind != "security" {
		t.Fatalf("auth.login.fail not logged: %+v", logs)
	}
}

func TestRegisterValidation(t *testing.T) {
	app, _ := newTestApp(t, nil)

	_, raw := postJSON(t, app, "/api/register", creds("not-an-email", "Passw0rd!"))
	if r := decode(t, raw); r.Success || r.Field != "email" || r.Message != validate.MsgEmail {
		t.Fatalf("bad email: %s", raw)
	}
	_, raw = postJSON(t, app, "/api/register", creds("ivan@example.com", "short"))
	if r := decode(t, raw); r.Success || r.Field != "password" || r.Message != validate.MsgPassword {
		t.Fatalf("short password: %s", raw)
	}
	_, raw = postJSON(t, app, "/api/register", creds("ivan@example.com", strings.Repeat("x", 73)))
	if r := decode(t, raw); r.Success || r.Field != "password" {
		t.Fatalf("long password: %s", raw)
	}
}
