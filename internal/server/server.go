package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	gorilla "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"parkportal/internal/backend"
	"parkportal/internal/config"
	"parkportal/internal/constants"
	"parkportal/internal/logger"
	"parkportal/internal/security"
	"parkportal/internal/session"
	"parkportal/internal/utils"
)

// Server is the portal's presentation layer: it renders pages and forwards
// every decision to the backend. It owns no durable state beyond the chat
// transcript store.
type Server struct {
	Config       *config.Config
	Backend      *backend.Client
	Transcripts  session.StoreInterface
	Templates    *TemplateManager
	LoginLimiter *security.LoginLimiter
	Events       *logger.Logger

	panelLocks sync.Map // panel id -> *sync.Mutex
}

func New(cfg *config.Config) (*Server, error) {
	tm, err := NewTemplateManager()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	events, err := logger.NewLogger()
	if err != nil {
		log.Printf("Warning: Failed to initialize event logger: %v", err)
		events = nil
	} else {
		log.Printf("Event log: %s", events.GetLogPath())
	}

	return &Server{
		Config:       cfg,
		Backend:      backend.NewClient(cfg.BackendURL, cfg.ChatURL),
		Transcripts:  session.NewStore(cfg),
		Templates:    tm,
		LoginLimiter: security.NewLoginLimiter(constants.MaxAuthAttempts, constants.BlockDuration),
		Events:       events,
	}, nil
}

// Router assembles the route table and middleware chain.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", s.HandleRoot).Methods(http.MethodGet)
	r.HandleFunc("/login", s.HandleLoginPage).Methods(http.MethodGet)
	r.HandleFunc("/login", s.HandleLogin).Methods(http.MethodPost)
	r.HandleFunc("/signup", s.HandleSignup).Methods(http.MethodPost)
	r.HandleFunc("/logout", s.HandleLogout).Methods(http.MethodGet)
	r.HandleFunc("/qr.png", s.HandleQR).Methods(http.MethodGet)

	// Protected screens: dashboard is the default landing, admin is reached
	// via scanned QR links.
	r.HandleFunc("/dashboard", s.requireSession(s.HandleDashboard)).Methods(http.MethodGet)
	r.HandleFunc("/book", s.requireSession(s.HandleBook)).Methods(http.MethodPost)
	r.HandleFunc("/ticket", s.requireSession(s.HandleTicket)).Methods(http.MethodGet)
	r.HandleFunc("/admin", s.requireSession(s.HandleAdmin)).Methods(http.MethodGet)
	r.HandleFunc("/admin/validate", s.requireSession(s.HandleValidate)).Methods(http.MethodPost)
	r.HandleFunc("/chat", s.requireSession(s.HandleChatPage)).Methods(http.MethodGet)
	r.HandleFunc("/chat/send", s.requireSession(s.HandleChatSend)).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(s.HandleNotFound)

	var handler http.Handler = r
	handler = RequestIDMiddleware(handler)
	handler = gorilla.CombinedLoggingHandler(os.Stdout, handler)
	handler = security.SecurityHeaders(handler)
	handler = GzipMiddleware(handler)
	handler = s.RecoveryMiddleware(handler)
	return handler
}

func (s *Server) Run() {
	handler := s.Router()

	useTLS := false
	if s.Config.EnableTLS {
		if _, err := os.Stat(s.Config.CertFile); err == nil {
			if _, err := os.Stat(s.Config.KeyFile); err == nil {
				useTLS = true
			}
		}
		if !useTLS {
			log.Printf("Warning: PORTAL_ENABLE_TLS is true but certs not found at %s", s.Config.CertFile)
		}
	}

	var h2Handler http.Handler
	if useTLS {
		h2Handler = handler
	} else {
		h2Handler = h2c.NewHandler(handler, &http2.Server{})
	}

	server := &http.Server{
		Addr:              ":" + s.Config.Port,
		Handler:           h2Handler,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if useTLS {
		log.Printf("HTTPS enabled (HTTP/2)")
		go func() {
			if err := server.ListenAndServeTLS(s.Config.CertFile, s.Config.KeyFile); err != nil && err != http.ErrServerClosed {
				log.Fatalf("HTTPS server error: %v", err)
			}
		}()
	} else {
		log.Printf("HTTP mode (HTTP/2 enabled)")
		go func() {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("HTTP server error: %v", err)
			}
		}()
	}

	log.Printf("parking portal starting on :%s (backend: %s)", s.Config.Port, s.Config.BackendURL)

	<-sigChan
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	s.Cleanup()
	log.Println("Server stopped")
}

func (s *Server) Cleanup() {
	s.Transcripts.Close()
	s.LoginLimiter.Close()
	if s.Events != nil {
		s.Events.Close()
	}
}

// render executes a page through the layout, attaching any pending flash
// notice and the toast duration.
func (s *Server) render(w http.ResponseWriter, r *http.Request, page string, data map[string]interface{}) {
	if data == nil {
		data = map[string]interface{}{}
	}
	if _, ok := data["Notice"]; !ok {
		if n := session.PopFlash(w, r); n != nil {
			data["Notice"] = n
		}
	}
	data["ToastDuration"] = constants.ToastDurationMS
	s.Templates.Render(w, page, data)
}

// publicURL is the base address baked into QR payloads. The configured value
// wins; otherwise it is derived from the request so scanned links point back
// at whatever host served the page.
func (s *Server) publicURL(r *http.Request) string {
	if s.Config.PublicURL != "" {
		return s.Config.PublicURL
	}
	return utils.GetScheme(r) + "://" + r.Host
}

func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if _, ok := session.FromRequest(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (s *Server) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	s.render(w, r, "notfound.html", map[string]interface{}{
		"Title": "Not Found",
	})
}
