package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"spacebio/internal/platform/config"
	pnet "spacebio/internal/platform/net"
	"spacebio/internal/platform/testkit"
)

var secret = []byte("0123456789abcdef0123456789abcdef")

func roundTrip(t *testing.T, s *Store, id pnet.Identity) *http.Cookie {
	t.Helper()
	rr := httptest.NewRecorder()
	if err := s.Save(rr, httptest.NewRequest(http.MethodPost, "/login", nil), id); err != nil {
		t.Fatalf("save: %v", err)
	}
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d", len(cookies))
	}
	return cookies[0]
}

func TestSaveResolve(t *testing.T) {
	s := New(Options{Secret: secret})
	admin := pnet.Identity{ID: "u-1", Role: pnet.RoleAdmin, Username: "ada", Email: "ada@example.com"}
	c := roundTrip(t, s, admin)

	if !c.HttpOnly || c.SameSite != http.SameSiteLaxMode || c.Secure || c.MaxAge != 86400 {
		t.Fatalf("cookie attrs = %+v", c)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	got, err := s.Resolve(req)
	if err != nil || got != admin {
		t.Fatalf("resolve = %+v %v", got, err)
	}
}

func TestResolve(t *testing.T) {
	s := New(Options{Secret: secret})
	other := New(Options{Secret: []byte("another-secret-another-secret-xx")})
	valid := roundTrip(t, s, pnet.Identity{ID: "u-2", Role: pnet.RoleUser})
	foreign := roundTrip(t, other, pnet.Identity{ID: "u-3", Role: pnet.RoleAdmin})

	cases := []struct {
		name    string
		cookie  *http.Cookie
		want    pnet.Role
		wantErr bool
	}{
		{"no cookie", nil, pnet.RoleAnonymous, false},
		{"valid", valid, pnet.RoleUser, false},
		{"signed elsewhere", foreign, pnet.RoleAnonymous, true},
		{"garbage", &http.Cookie{Name: Name, Value: "zzz"}, pnet.RoleAnonymous, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if c.cookie != nil {
				req.AddCookie(&http.Cookie{Name: c.cookie.Name, Value: c.cookie.Value})
			}
			id, err := s.Resolve(req)
			if (err != nil) != c.wantErr || id.Role != c.want {
				t.Fatalf("resolve = %+v err=%v", id, err)
			}
		})
	}
}

func TestSaveRejectsAnonymous(t *testing.T) {
	s := New(Options{Secret: secret})
	if err := s.Save(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), pnet.Anonymous); err == nil {
		t.Fatal("expected error")
	}
}

func TestClearExpiresCookie(t *testing.T) {
	s := New(Options{Secret: secret, Secure: true, MaxAge: time.Hour})
	rr := httptest.NewRecorder()
	if err := s.Clear(rr, httptest.NewRequest(http.MethodPost, "/logout", nil)); err != nil {
		t.Fatalf("clear: %v", err)
	}
	c := rr.Result().Cookies()
	if len(c) != 1 || c[0].MaxAge >= 0 || !c[0].Secure {
		t.Fatalf("clear cookie = %+v", c)
	}
	if s.cookies.Options.MaxAge != 3600 {
		t.Fatalf("store options mutated: %d", s.cookies.Options.MaxAge)
	}
}

func TestOptionsFrom(t *testing.T) {
	t.Setenv("SESSTEST_SESSION_SECRET", string(secret))
	t.Setenv("SESSTEST_SESSION_SECURE", "true")
	o := OptionsFrom(config.New().Prefix("SESSTEST_"))
	if string(o.Secret) != string(secret) || !o.Secure || o.MaxAge != 24*time.Hour || o.SameSite != http.SameSiteLaxMode {
		t.Fatalf("options = %+v", o)
	}

	t.Setenv("SESSTEST_SESSION_SAMESITE", "Strict")
	if o := OptionsFrom(config.New().Prefix("SESSTEST_")); o.SameSite != http.SameSiteStrictMode {
		t.Fatalf("samesite = %v", o.SameSite)
	}
	t.Setenv("SESSTEST_SESSION_SAMESITE", "sideways")
	testkit.MustPanic(t, func() { OptionsFrom(config.New().Prefix("SESSTEST_")) })
	t.Setenv("SESSTEST_SESSION_SAMESITE", "")

	t.Setenv("SESSTEST_SESSION_SECRET", "short")
	testkit.MustPanic(t, func() { OptionsFrom(config.New().Prefix("SESSTEST_")) })
}
