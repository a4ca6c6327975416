package ticket

import (
	"bytes"
	"net/url"
	"strings"
	"testing"
)

func TestTicketURLRoundTrip(t *testing.T) {
	original := Ticket{
		SlotNo:        "A1",
		Name:          "J Doe",
		ParkedTill:    "2024-01-01T10:00",
		VehicleNumber: "KA-01-1234",
	}

	rawURL := BuildURL("https://parking.example.edu", original)

	parsed, err := url.Parse(rawURL)
	if err != nil {
		t.Fatalf("failed to parse ticket URL: %v", err)
	}
	if parsed.Path != "/admin" {
		t.Errorf("ticket URL path = %q, want /admin", parsed.Path)
	}

	decoded, ok := FromQuery(parsed.Query())
	if !ok {
		t.Fatal("FromQuery rejected a complete ticket")
	}
	if decoded != original {
		t.Errorf("round-trip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestFromQueryMissingField(t *testing.T) {
	complete := Ticket{
		SlotNo:        "B2",
		Name:          "A User",
		ParkedTill:    "2024-06-01T18:30",
		VehicleNumber: "MH-12-0001",
	}

	for _, field := range []string{"slot_no", "name", "parked_till", "vehicle_number"} {
		v := complete.Query()
		v.Del(field)
		if _, ok := FromQuery(v); ok {
			t.Errorf("FromQuery accepted a ticket missing %s", field)
		}
	}
}

func TestFromQueryEmptyFieldRejected(t *testing.T) {
	v := Ticket{SlotNo: "A1", Name: "", ParkedTill: "2024-01-01T10:00", VehicleNumber: "KA-01-1234"}.Query()
	if _, ok := FromQuery(v); ok {
		t.Error("FromQuery accepted a ticket with an empty name")
	}
}

func TestRenderPNG(t *testing.T) {
	tk := Ticket{SlotNo: "A1", Name: "J Doe", ParkedTill: "2024-01-01T10:00", VehicleNumber: "KA-01-1234"}

	png, err := RenderPNG("http://localhost:3000", tk, 80)
	if err != nil {
		t.Fatalf("RenderPNG error: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("RenderPNG did not produce a PNG image")
	}
}

func TestBuildURLEncodesFields(t *testing.T) {
	rawURL := BuildURL("http://localhost:3000", Ticket{
		SlotNo:        "A1",
		Name:          "J Doe",
		ParkedTill:    "2024-01-01T10:00",
		VehicleNumber: "KA-01-1234",
	})
	if strings.Contains(rawURL, "J Doe") {
		t.Errorf("name not percent-encoded in %q", rawURL)
	}
}
