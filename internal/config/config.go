package config

import (
	"strings"

	"parkportal/internal/constants"
	"parkportal/internal/utils"
)

// Config collects the portal's environment-backed settings. All business
// logic lives in the backend reached at BackendURL; the portal only renders
// pages and forwards JSON calls.
type Config struct {
	Port string

	// PublicURL is the externally reachable base for QR payloads. When empty
	// it is derived per request from the Host header and forwarded scheme.
	PublicURL string

	BackendURL string
	// ChatURL is the assistant endpoint. It defaults to the backend's /chat
	// route and can point elsewhere (e.g. a local development assistant).
	ChatURL string

	RedisHost     string
	RedisPort     string
	RedisUser     string
	RedisPassword string

	EnableTLS bool
	CertFile  string
	KeyFile   string
}

func Load() *Config {
	backendURL := strings.TrimSuffix(utils.GetEnv("BACKEND_URL", constants.DefaultBackendURL), "/")

	chatURL := utils.GetEnv("CHAT_URL", "")
	if chatURL == "" {
		chatURL = backendURL + "/chat"
	}

	return &Config{
		Port:          utils.GetEnv("PORT", constants.DefaultPort),
		PublicURL:     strings.TrimSuffix(utils.GetEnv("PUBLIC_URL", ""), "/"),
		BackendURL:    backendURL,
		ChatURL:       chatURL,
		RedisHost:     utils.GetEnv("REDIS_HOST", ""),
		RedisPort:     utils.GetEnv("REDIS_PORT", "6379"),
		RedisUser:     utils.GetEnv("REDIS_USERNAME", ""),
		RedisPassword: utils.GetEnv("REDIS_PASSWORD", ""),
		EnableTLS:     strings.ToLower(utils.GetEnv("PORTAL_ENABLE_TLS", "false")) == "true",
		CertFile:      utils.GetEnv("PORTAL_CERT_FILE", "certs/server.crt"),
		KeyFile:       utils.GetEnv("PORTAL_KEY_FILE", "certs/server.key"),
	}
}
