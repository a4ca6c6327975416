package session

import (
	"encoding/json"
	"net/http"
	"net/url"

	"parkportal/internal/constants"
)

// Notice is a one-shot banner rendered by the layout's toast. It survives
// exactly one redirect via a short-lived cookie and is cleared on read.
type Notice struct {
	Type string `json:"type"` // success, error, info
	Text string `json:"text"`
}

func SetFlash(w http.ResponseWriter, n Notice) {
	data, err := json.Marshal(n)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     constants.FlashCookieName,
		Value:    url.QueryEscape(string(data)),
		Path:     "/",
		MaxAge:   constants.FlashCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash returns the pending notice, if any, and clears it.
func PopFlash(w http.ResponseWriter, r *http.Request) *Notice {
	cookie, err := r.Cookie(constants.FlashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     constants.FlashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	raw, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return nil
	}
	var n Notice
	if err := json.Unmarshal([]byte(raw), &n); err != nil {
		return nil
	}
	return &n
}
