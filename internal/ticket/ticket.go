package ticket

import (
	"net/url"
)

// Ticket is the QR-encoded view of a booking: four fields carried as query
// parameters on a URL pointing at the validation screen. The payload is
// unsigned; the backend's validation endpoint is the only integrity check.
type Ticket struct {
	SlotNo        string
	Name          string
	ParkedTill    string
	VehicleNumber string
}

// Query returns the ticket fields as percent-encodable URL values.
func (t Ticket) Query() url.Values {
	v := url.Values{}
	v.Set("slot_no", t.SlotNo)
	v.Set("name", t.Name)
	v.Set("parked_till", t.ParkedTill)
	v.Set("vehicle_number", t.VehicleNumber)
	return v
}

// BuildURL encodes the ticket into the validation screen's URL. Encoding and
// FromQuery round-trip all four fields without loss.
func BuildURL(publicURL string, t Ticket) string {
	return publicURL + "/admin?" + t.Query().Encode()
}

// FromQuery decodes a ticket from query parameters. A ticket with any field
// absent or empty is not a ticket; callers must short-circuit without any
// network call.
func FromQuery(v url.Values) (Ticket, bool) {
	t := Ticket{
		SlotNo:        v.Get("slot_no"),
		Name:          v.Get("name"),
		ParkedTill:    v.Get("parked_till"),
		VehicleNumber: v.Get("vehicle_number"),
	}
	if t.SlotNo == "" || t.Name == "" || t.ParkedTill == "" || t.VehicleNumber == "" {
		return Ticket{}, false
	}
	return t, true
}
