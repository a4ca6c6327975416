package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"parkportal/internal/constants"
	"parkportal/internal/types"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, srv.URL+"/chat"), srv
}

func TestLoginReturnsRawBody(t *testing.T) {
	body := `{"email":"a@b.com","name":"A","role":"student"}`
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req types.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad login payload: %v", err)
		}
		if req.Email != "a@b.com" || req.Password != "secret" {
			t.Errorf("login payload = %+v", req)
		}
		w.Write([]byte(body))
	}))
	defer srv.Close()

	raw, err := client.Login(context.Background(), "a@b.com", "secret")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if string(raw) != body {
		t.Errorf("Login raw body = %q, want %q", raw, body)
	}
}

func TestLoginSurfacesServerMessage(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"bad credentials"}`))
	}))
	defer srv.Close()

	_, err := client.Login(context.Background(), "a@b.com", "wrong")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "bad credentials" {
		t.Errorf("message = %q, want %q", apiErr.Message, "bad credentials")
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", apiErr.StatusCode)
	}
}

func TestLoginFallbackMessage(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := client.Login(context.Background(), "a@b.com", "pw")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != constants.MsgRequestFailed {
		t.Errorf("message = %q, want fallback %q", apiErr.Message, constants.MsgRequestFailed)
	}
}

func TestSignupSendsUserFlag(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req types.SignupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad signup payload: %v", err)
		}
		if !req.IsUser {
			t.Error("signup payload missing isUser:true")
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	if err := client.Signup(context.Background(), "A", "a@b.com", "pw"); err != nil {
		t.Fatalf("Signup error: %v", err)
	}
}

func TestSlots(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lot_no":"A1","isTaken":false},{"lot_no":"A2","isTaken":true}]`))
	}))
	defer srv.Close()

	slots, err := client.Slots(context.Background())
	if err != nil {
		t.Fatalf("Slots error: %v", err)
	}
	if len(slots) != 2 || slots[0].LotNo != "A1" || slots[0].IsTaken || !slots[1].IsTaken {
		t.Errorf("Slots = %+v", slots)
	}
}

func TestBookingsEscapesEmail(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bookings/a@b.com" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`[{"slot_no":"A1","vehicle_number":"KA-01-1234","parked_till":"2024-01-01T10:00"}]`))
	}))
	defer srv.Close()

	bookings, err := client.Bookings(context.Background(), "a@b.com")
	if err != nil {
		t.Fatalf("Bookings error: %v", err)
	}
	if len(bookings) != 1 || bookings[0].SlotNo != "A1" {
		t.Errorf("Bookings = %+v", bookings)
	}
}

func TestBookFailureMessage(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"server message", `{"message":"Slot already taken"}`, "Slot already taken"},
		{"empty body", ``, constants.MsgBookingFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusConflict)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := client.Book(context.Background(), types.BookRequest{SlotNo: "A1"})
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %v", err)
			}
			if apiErr.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", apiErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestValidateDecodesNon2xxBody(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"status":"Failed","message":"Ticket expired"}`))
	}))
	defer srv.Close()

	result, err := client.Validate(context.Background(), types.ValidateRequest{SlotNo: "A1"})
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if result.Status != "Failed" || result.Message != "Ticket expired" {
		t.Errorf("Validate result = %+v", result)
	}
}

func TestChatReplyFallbacks(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"reply field", `{"reply":"B2 is on level 2"}`, "B2 is on level 2"},
		{"message fallback", `{"message":"assistant busy"}`, "assistant busy"},
		{"empty body", `{}`, constants.MsgNoReply},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var req types.ChatRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					t.Fatalf("bad chat payload: %v", err)
				}
				if req.Email != "a@b.com" {
					t.Errorf("chat email = %q", req.Email)
				}
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			reply, err := client.Chat(context.Background(), "hello", "a@b.com")
			if err != nil {
				t.Fatalf("Chat error: %v", err)
			}
			if reply != tt.want {
				t.Errorf("Chat reply = %q, want %q", reply, tt.want)
			}
		})
	}
}

func TestChatTransportError(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // force a connection error

	if _, err := client.Chat(context.Background(), "hello", "a@b.com"); err == nil {
		t.Fatal("expected a transport error from a closed server")
	}
}
