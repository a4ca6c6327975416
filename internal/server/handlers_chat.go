package server

import (
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"

	"parkportal/internal/constants"
	"parkportal/internal/session"
	"parkportal/internal/types"
)

func (s *Server) HandleChatPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "chat.html", map[string]interface{}{
		"Title":        "Campus Assistant",
		"ChatMessages": s.transcriptMessages(r),
		"ChatFrom":     "/chat",
	})
}

// HandleChatSend appends the user's message to the transcript before calling
// the assistant, so the message survives any failure. Exactly one bot entry
// follows per send, a synthesized error line included. There is no guard
// against rapid repeated submission; concurrent sends on one panel are
// serialized only around the store writes, so bot entries land in response
// arrival order and no message is lost.
func (s *Server) HandleChatSend(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromRequest(r)

	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxFormBodySize)
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/chat", http.StatusSeeOther)
		return
	}

	from := safeRedirectTarget(r.PostFormValue("from"))
	message := strings.TrimSpace(r.PostFormValue("message"))
	if message == "" {
		http.Redirect(w, r, from, http.StatusSeeOther)
		return
	}
	if len(message) > constants.MaxChatMessageLen {
		message = message[:constants.MaxChatMessageLen]
	}

	panelID := s.panelID(w, r)
	lock := s.panelLock(panelID)

	lock.Lock()
	transcript, ok := s.Transcripts.Get(panelID)
	if !ok {
		transcript = session.NewTranscript(panelID)
	}
	transcript.Append(types.RoleUser, message)
	s.Transcripts.Save(transcript)
	lock.Unlock()

	reply, err := s.Backend.Chat(r.Context(), message, sess.Email)
	if err != nil {
		s.Events.LogChatError(sess.Email, err)
		reply = constants.MsgChatError
	}

	// Re-read before the bot append: a store that hands out copies (Redis)
	// may have absorbed another send while the assistant call was in flight.
	lock.Lock()
	if current, ok := s.Transcripts.Get(panelID); ok {
		transcript = current
	}
	transcript.Append(types.RoleBot, reply)
	s.Transcripts.Save(transcript)
	lock.Unlock()

	http.Redirect(w, r, from, http.StatusSeeOther)
}

// panelID returns the chat panel cookie, minting one on first use.
func (s *Server) panelID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(constants.PanelCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     constants.PanelCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   constants.PanelCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// panelLock serializes store read-modify-writes per panel id. The lock is
// never held across the assistant call.
func (s *Server) panelLock(id string) *sync.Mutex {
	lock, _ := s.panelLocks.LoadOrStore(id, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

func (s *Server) transcriptMessages(r *http.Request) []types.ChatMessage {
	cookie, err := r.Cookie(constants.PanelCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	transcript, ok := s.Transcripts.Get(cookie.Value)
	if !ok {
		return nil
	}
	return transcript.History()
}

// safeRedirectTarget restricts post-send redirects to portal-local paths.
func safeRedirectTarget(p string) string {
	if p == "" || !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") {
		return "/chat"
	}
	return p
}
