package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"parkportal/internal/backend"
	"parkportal/internal/constants"
	"parkportal/internal/session"
	"parkportal/internal/ticket"
	"parkportal/internal/types"
	"parkportal/internal/utils"
)

type bookingRow struct {
	SlotNo            string
	VehicleNumber     string
	ParkedTillDisplay string
	QRImage           string
	TicketURL         string
}

// HandleDashboard renders the slots or bookings tab. Both tabs refetch from
// the backend on every visit; the slot list is replaced wholesale with no
// diffing or client-side cache.
func (s *Server) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromRequest(r)

	q := r.URL.Query()
	tab := q.Get("tab")
	if tab != "bookings" {
		tab = "slots"
	}

	data := map[string]interface{}{
		"Title": "Parking Dashboard",
		"Tab":   tab,
		"User":  sess,
	}

	if q.Get("chat") == "open" {
		data["ChatOpen"] = true
		data["ChatMessages"] = s.transcriptMessages(r)
		data["ChatFrom"] = "/dashboard?tab=" + tab + "&chat=open"
		data["ChatCloseURL"] = "/dashboard?tab=" + tab
	}

	switch tab {
	case "bookings":
		bookings, err := s.Backend.Bookings(r.Context(), sess.Email)
		if err != nil {
			data["Error"] = constants.MsgNetworkError
		} else {
			data["Bookings"] = s.bookingRows(sess, bookings)
		}
	default:
		slots, err := s.Backend.Slots(r.Context())
		if err != nil {
			data["Error"] = constants.MsgNetworkError
		} else {
			data["Slots"] = slots
		}
		if slot := q.Get("slot"); slot != "" {
			data["SelectedSlot"] = slot
		}
	}

	s.render(w, r, "dashboard.html", data)
}

func (s *Server) bookingRows(sess types.Session, bookings []types.Booking) []bookingRow {
	rows := make([]bookingRow, 0, len(bookings))
	for _, b := range bookings {
		t := ticket.Ticket{
			SlotNo:        b.SlotNo,
			Name:          sess.Name,
			ParkedTill:    b.ParkedTill,
			VehicleNumber: b.VehicleNumber,
		}
		encoded := t.Query().Encode()
		rows = append(rows, bookingRow{
			SlotNo:            b.SlotNo,
			VehicleNumber:     b.VehicleNumber,
			ParkedTillDisplay: utils.FormatTimestamp(b.ParkedTill),
			QRImage:           fmt.Sprintf("/qr.png?size=%d&%s", constants.QRSizeInline, encoded),
			TicketURL:         "/ticket?" + encoded,
		})
	}
	return rows
}

// HandleBook stamps parked_at with the current instant and submits the
// booking. Read-your-writes is achieved only by the redirect landing on the
// slots tab, which refetches the full list. No retry on failure.
func (s *Server) HandleBook(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromRequest(r)

	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxFormBodySize)
	if err := r.ParseForm(); err != nil {
		session.SetFlash(w, session.Notice{Type: "error", Text: constants.MsgBookingFailed})
		http.Redirect(w, r, "/dashboard?tab=slots", http.StatusSeeOther)
		return
	}

	slotNo := strings.TrimSpace(r.PostFormValue("slot_no"))
	vehicle := strings.TrimSpace(r.PostFormValue("vehicle_number"))
	parkedTill := strings.TrimSpace(r.PostFormValue("parked_till"))

	if slotNo == "" || vehicle == "" || parkedTill == "" {
		session.SetFlash(w, session.Notice{Type: "error", Text: constants.MsgBookingFailed})
		http.Redirect(w, r, "/dashboard?tab=slots", http.StatusSeeOther)
		return
	}

	req := types.BookRequest{
		SlotNo:        slotNo,
		Name:          sess.Name,
		VehicleNumber: vehicle,
		ParkedAt:      time.Now().UTC().Format(time.RFC3339),
		ParkedTill:    parkedTill,
	}

	resp, err := s.Backend.Book(r.Context(), req)
	s.Events.LogBooking(sess.Email, slotNo, err)
	if err != nil {
		msg := constants.MsgNetworkError
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			msg = apiErr.Message
		}
		session.SetFlash(w, session.Notice{Type: "error", Text: msg})
		// Reopen the booking form so the user can resubmit manually.
		http.Redirect(w, r, "/dashboard?tab=slots&slot="+url.QueryEscape(slotNo), http.StatusSeeOther)
		return
	}

	session.SetFlash(w, session.Notice{
		Type: "success",
		Text: fmt.Sprintf("Booked %s until %s", resp.SlotNo, resp.ParkedTill),
	})
	http.Redirect(w, r, "/dashboard?tab=slots", http.StatusSeeOther)
}

// HandleTicket shows the large QR for one booking, fields included.
func (s *Server) HandleTicket(w http.ResponseWriter, r *http.Request) {
	t, ok := ticket.FromQuery(r.URL.Query())
	if !ok {
		http.Redirect(w, r, "/dashboard?tab=bookings", http.StatusFound)
		return
	}

	s.render(w, r, "ticket.html", map[string]interface{}{
		"Title":             "QR Ticket",
		"Ticket":            t,
		"ParkedTillDisplay": utils.FormatTimestamp(t.ParkedTill),
		"QRImage":           fmt.Sprintf("/qr.png?size=%d&%s", constants.QRSizeModal, t.Query().Encode()),
	})
}
