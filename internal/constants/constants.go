package constants

import "time"

// Network defaults
const (
	DefaultPort       = "3000"
	DefaultBackendURL = "https://campusparkingbackend.azurewebsites.net"
)

// Session settings
const (
	SessionCookieName   = "user"
	SessionCookieMaxAge = 86400 // 1 day
	FlashCookieName     = "portal_notice"
	FlashCookieMaxAge   = 10
)

// Chat panel settings
const (
	PanelCookieName   = "chat_panel"
	PanelCookieMaxAge = 3600 // 1 hour
	TranscriptTTL     = time.Hour
	CleanupInterval   = 30 * time.Second
	MaxChatMessageLen = 2000
)

// Toast banner
const (
	ToastDurationMS = 3000
)

// QR rendering
const (
	QRSizeInline = 80
	QRSizeModal  = 200
	QRSizeMin    = 64
	QRSizeMax    = 512
)

// Login throttling
const (
	MaxAuthAttempts = 5
	BlockDuration   = 15 * time.Minute
)

// Request limits
const (
	MaxFormBodySize = 64 * 1024
)

// Time formats
const (
	// Accepted by the booking form's datetime-local input and by QR payloads.
	LocalDateTimeFormat = "2006-01-02T15:04"
	DisplayTimeFormat   = "Jan 2, 2006 15:04"
)

// Validation statuses as the backend reports them
const (
	StatusSuccess = "Success"
	StatusFailed  = "Failed"
)

// Messages
const (
	MsgSignupOK        = "Signup successful! You can now log in."
	MsgRequestFailed   = "Request failed"
	MsgNetworkError    = "Network or Server Error"
	MsgBookingFailed   = "Booking failed"
	MsgServerError     = "Server Error"
	MsgNoReply         = "No reply from server."
	MsgChatError       = "Error contacting server."
	MsgInvalidTicket   = "Invalid or missing QR data. Please scan a valid ticket."
	MsgTooManyAttempts = "Too many failed attempts. Try again later."
)

// Redis
const (
	RedisKeyPrefix = "parkportal:chat:"
)
