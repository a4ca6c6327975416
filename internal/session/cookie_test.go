package session

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"parkportal/internal/constants"
)

func requestWithCookies(t *testing.T, rr *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for _, c := range rr.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestSessionCookieRoundTrip(t *testing.T) {
	raw := []byte(`{"email":"a@b.com","name":"A","role":"student"}`)

	rr := httptest.NewRecorder()
	Set(rr, raw)

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != constants.SessionCookieName {
		t.Fatalf("expected one %s cookie, got %v", constants.SessionCookieName, cookies)
	}
	if cookies[0].MaxAge != constants.SessionCookieMaxAge {
		t.Errorf("cookie MaxAge = %d, want %d", cookies[0].MaxAge, constants.SessionCookieMaxAge)
	}
	stored, err := url.QueryUnescape(cookies[0].Value)
	if err != nil {
		t.Fatalf("cookie value not unescapable: %v", err)
	}
	if stored != string(raw) {
		t.Errorf("cookie stores %q, want the login response verbatim %q", stored, raw)
	}

	sess, ok := FromRequest(requestWithCookies(t, rr))
	if !ok {
		t.Fatal("FromRequest rejected a fresh session cookie")
	}
	if sess.Email != "a@b.com" || sess.Name != "A" {
		t.Errorf("session = %+v", sess)
	}
}

func TestFromRequestMissingCookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	if _, ok := FromRequest(r); ok {
		t.Error("FromRequest accepted a request without a session cookie")
	}
}

func TestFromRequestUnparseableCookieStillCounts(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: url.QueryEscape("not json")})

	sess, ok := FromRequest(r)
	if !ok {
		t.Fatal("a present non-empty cookie is a session regardless of content")
	}
	if sess.Email != "" {
		t.Errorf("unexpected email %q from garbage cookie", sess.Email)
	}
}

func TestClearExpiresCookie(t *testing.T) {
	rr := httptest.NewRecorder()
	Clear(rr)

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatalf("Clear did not expire the session cookie: %v", cookies)
	}
}

func TestFlashPopClears(t *testing.T) {
	rr := httptest.NewRecorder()
	SetFlash(rr, Notice{Type: "success", Text: "Booked A1 until 2024-01-01T10:00"})

	r := requestWithCookies(t, rr)
	rr2 := httptest.NewRecorder()

	n := PopFlash(rr2, r)
	if n == nil {
		t.Fatal("PopFlash returned nil for a pending notice")
	}
	if n.Type != "success" || n.Text != "Booked A1 until 2024-01-01T10:00" {
		t.Errorf("notice = %+v", n)
	}

	cleared := false
	for _, c := range rr2.Result().Cookies() {
		if c.Name == constants.FlashCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("PopFlash did not clear the flash cookie")
	}
}

func TestFlashPopEmpty(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if n := PopFlash(httptest.NewRecorder(), r); n != nil {
		t.Errorf("PopFlash = %+v, want nil", n)
	}
}
