package server

import (
	"net/http"
	"strconv"

	"parkportal/internal/constants"
	"parkportal/internal/security"
	"parkportal/internal/ticket"
	"parkportal/internal/types"
	"parkportal/internal/utils"
)

// HandleAdmin reads the four ticket fields from the query string. A missing
// field short-circuits to a static invalid-ticket page before any network
// call — the only explicit guard in the portal.
func (s *Server) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	t, ok := ticket.FromQuery(r.URL.Query())
	if !ok {
		s.render(w, r, "admin.html", map[string]interface{}{
			"Title":          "Ticket Validation",
			"Invalid":        true,
			"InvalidMessage": constants.MsgInvalidTicket,
		})
		return
	}

	s.render(w, r, "admin.html", map[string]interface{}{
		"Title":             "Ticket Validation",
		"Ticket":            t,
		"ParkedTillDisplay": utils.FormatTimestamp(t.ParkedTill),
	})
}

// HandleValidate posts the ticket fields to the backend and renders whatever
// status it reports. A transport failure maps to a canned Failed result
// instead of propagating.
func (s *Server) HandleValidate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxFormBodySize)
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	t, ok := ticket.FromQuery(r.PostForm)
	if !ok {
		s.render(w, r, "admin.html", map[string]interface{}{
			"Title":          "Ticket Validation",
			"Invalid":        true,
			"InvalidMessage": constants.MsgInvalidTicket,
		})
		return
	}

	result, err := s.Backend.Validate(r.Context(), types.ValidateRequest{
		SlotNo:        t.SlotNo,
		Name:          t.Name,
		ParkedTill:    t.ParkedTill,
		VehicleNumber: t.VehicleNumber,
	})
	if err != nil {
		result = types.ValidationResult{Status: constants.StatusFailed, Message: constants.MsgServerError}
	}
	s.Events.LogValidation(t.SlotNo, result.Status, security.GetClientIP(r))

	s.render(w, r, "admin.html", map[string]interface{}{
		"Title":             "Ticket Validation",
		"Ticket":            t,
		"ParkedTillDisplay": utils.FormatTimestamp(t.ParkedTill),
		"Result":            &result,
		"ResultSuccess":     result.Status == constants.StatusSuccess,
	})
}

// HandleQR streams the ticket payload URL as a PNG QR image.
func (s *Server) HandleQR(w http.ResponseWriter, r *http.Request) {
	t, ok := ticket.FromQuery(r.URL.Query())
	if !ok {
		http.Error(w, constants.MsgInvalidTicket, http.StatusBadRequest)
		return
	}

	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	if size == 0 {
		size = constants.QRSizeInline
	}

	png, err := ticket.RenderPNG(s.publicURL(r), t, size)
	if err != nil {
		http.Error(w, "Failed to render QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "private, max-age=300")
	w.Write(png)
}
