package server

import (
	"errors"
	"net/http"
	"strings"

	"parkportal/internal/backend"
	"parkportal/internal/constants"
	"parkportal/internal/security"
	"parkportal/internal/session"
)

func (s *Server) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	mode := "login"
	if r.URL.Query().Get("mode") == "signup" {
		mode = "signup"
	}
	s.render(w, r, "login.html", map[string]interface{}{
		"Title": "Campus Parking",
		"Mode":  mode,
	})
}

// HandleLogin forwards credentials to the backend and stores the response
// body verbatim as the session. Non-2xx surfaces the backend's message field;
// transport and decode failures fall back to a generic error text.
func (s *Server) HandleLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxFormBodySize)
	if err := r.ParseForm(); err != nil {
		s.render(w, r, "login.html", map[string]interface{}{
			"Title": "Campus Parking",
			"Mode":  "login",
			"Error": constants.MsgRequestFailed,
		})
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	clientIP := security.GetClientIP(r)
	if !s.LoginLimiter.Check(clientIP) {
		w.WriteHeader(http.StatusTooManyRequests)
		s.render(w, r, "login.html", map[string]interface{}{
			"Title": "Campus Parking",
			"Mode":  "login",
			"Error": constants.MsgTooManyAttempts,
		})
		return
	}

	raw, err := s.Backend.Login(r.Context(), email, password)
	if err != nil {
		s.LoginLimiter.RecordFailure(clientIP)
		s.Events.LogAuth(email, clientIP, err)

		msg := constants.MsgRequestFailed
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			msg = apiErr.Message
		}
		s.render(w, r, "login.html", map[string]interface{}{
			"Title": "Campus Parking",
			"Mode":  "login",
			"Error": msg,
		})
		return
	}

	s.LoginLimiter.RecordSuccess(clientIP)
	s.Events.LogAuth(email, clientIP, nil)

	session.Set(w, raw)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// HandleSignup posts the signup fields and, on success, switches back to the
// login form with a confirmation. It never logs the new user in.
func (s *Server) HandleSignup(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxFormBodySize)
	if err := r.ParseForm(); err != nil {
		s.render(w, r, "login.html", map[string]interface{}{
			"Title": "Campus Parking",
			"Mode":  "signup",
			"Error": constants.MsgRequestFailed,
		})
		return
	}

	name := strings.TrimSpace(r.PostFormValue("name"))
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	if err := s.Backend.Signup(r.Context(), name, email, password); err != nil {
		msg := constants.MsgRequestFailed
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			msg = apiErr.Message
		}
		s.render(w, r, "login.html", map[string]interface{}{
			"Title": "Campus Parking",
			"Mode":  "signup",
			"Error": msg,
		})
		return
	}

	s.Events.LogEvent("signup", email)
	s.render(w, r, "login.html", map[string]interface{}{
		"Title":   "Campus Parking",
		"Mode":    "login",
		"Message": constants.MsgSignupOK,
	})
}

func (s *Server) HandleLogout(w http.ResponseWriter, r *http.Request) {
	session.Clear(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}
