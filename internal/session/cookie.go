package session

import (
	"encoding/json"
	"net/http"
	"net/url"

	"parkportal/internal/constants"
	"parkportal/internal/types"
)

// The session cookie holds the backend's login response verbatim. No
// integrity check is performed on read: the validation endpoint is the sole
// integrity check in the system, and the portal adds no trust of its own.

// Set persists the raw session JSON with a 1-day expiry.
func Set(w http.ResponseWriter, raw []byte) {
	http.SetCookie(w, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    url.QueryEscape(string(raw)),
		Path:     "/",
		MaxAge:   constants.SessionCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// FromRequest reports whether a non-empty session cookie is present and
// decodes the fields the portal reads. Unknown fields are ignored but remain
// in the cookie; decode failures still count as a present session.
func FromRequest(r *http.Request) (types.Session, bool) {
	cookie, err := r.Cookie(constants.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return types.Session{}, false
	}
	raw, err := url.QueryUnescape(cookie.Value)
	if err != nil || raw == "" {
		return types.Session{}, false
	}

	var sess types.Session
	json.Unmarshal([]byte(raw), &sess)
	return sess, true
}

func Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
