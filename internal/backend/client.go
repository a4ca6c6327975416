package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"parkportal/internal/constants"
	"parkportal/internal/types"
)

// APIError carries a non-2xx backend response. The message field is surfaced
// to the user verbatim, trusting the backend's wording.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client talks JSON over HTTP to the external parking backend. It holds no
// state beyond configuration; every durable decision (slot allocation,
// double-booking, auth, ticket integrity) is the backend's.
type Client struct {
	BaseURL    string
	ChatURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL, chatURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		ChatURL:    chatURL,
		HTTPClient: http.DefaultClient,
	}
}

func (c *Client) postJSON(ctx context.Context, rawURL string, body interface{}) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.HTTPClient.Do(req)
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return readAPIError(resp, constants.MsgRequestFailed)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func readAPIError(resp *http.Response, fallback string) *APIError {
	var body struct {
		Message string `json:"message"`
	}
	msg := fallback
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		msg = body.Message
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}

// Login posts credentials and returns the raw session JSON on success. The
// body is stored verbatim as the session cookie, so it is not decoded here.
func (c *Client) Login(ctx context.Context, email, password string) ([]byte, error) {
	resp, err := c.postJSON(ctx, c.BaseURL+"/login", types.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, readAPIError(resp, constants.MsgRequestFailed)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("invalid session response")
	}
	return raw, nil
}

func (c *Client) Signup(ctx context.Context, name, email, password string) error {
	resp, err := c.postJSON(ctx, c.BaseURL+"/signup", types.SignupRequest{
		Name:     name,
		Email:    email,
		Password: password,
		IsUser:   true,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return readAPIError(resp, constants.MsgRequestFailed)
	}
	return nil
}

func (c *Client) Slots(ctx context.Context) ([]types.Slot, error) {
	var slots []types.Slot
	if err := c.getJSON(ctx, c.BaseURL+"/slots", &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

func (c *Client) Bookings(ctx context.Context, email string) ([]types.Booking, error) {
	var bookings []types.Booking
	if err := c.getJSON(ctx, c.BaseURL+"/bookings/"+url.PathEscape(email), &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *Client) Book(ctx context.Context, req types.BookRequest) (types.BookResponse, error) {
	var out types.BookResponse
	resp, err := c.postJSON(ctx, c.BaseURL+"/book", req)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return out, readAPIError(resp, constants.MsgBookingFailed)
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, err
	}
	return out, nil
}

// Validate decodes the response body regardless of status code: the backend
// reports rejected tickets as {status, message} rather than transport errors.
func (c *Client) Validate(ctx context.Context, req types.ValidateRequest) (types.ValidationResult, error) {
	var out types.ValidationResult
	resp, err := c.postJSON(ctx, c.BaseURL+"/validate", req)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, err
	}
	return out, nil
}

// Chat posts one user message and returns exactly one bot line. The reply
// field wins over message; an empty body yields a canned no-reply line.
func (c *Client) Chat(ctx context.Context, message, email string) (string, error) {
	resp, err := c.postJSON(ctx, c.ChatURL, types.ChatRequest{Message: message, Email: email})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var reply types.ChatReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return "", err
	}
	switch {
	case reply.Reply != "":
		return reply.Reply, nil
	case reply.Message != "":
		return reply.Message, nil
	default:
		return constants.MsgNoReply, nil
	}
}
