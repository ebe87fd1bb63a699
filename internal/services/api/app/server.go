// Package app wires the marketplace HTTP runtime: storage, services, and
// the API server lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pitchsideapp/pitchside/internal/platform/config"
	"github.com/pitchsideapp/pitchside/internal/services/admin"
	"github.com/pitchsideapp/pitchside/internal/services/api/modules/accounts"
	"github.com/pitchsideapp/pitchside/internal/services/api/modules/adminweb"
	"github.com/pitchsideapp/pitchside/internal/services/api/modules/browse"
	"github.com/pitchsideapp/pitchside/internal/services/api/modules/inbox"
	"github.com/pitchsideapp/pitchside/internal/services/api/modules/outbox"
	"github.com/pitchsideapp/pitchside/internal/services/api/modules/profile"
	"github.com/pitchsideapp/pitchside/internal/services/api/modules/shortlistweb"
	"github.com/pitchsideapp/pitchside/internal/services/api/platform/authn"
	"github.com/pitchsideapp/pitchside/internal/services/directory"
	directorysqlite "github.com/pitchsideapp/pitchside/internal/services/directory/storage/sqlite"
	"github.com/pitchsideapp/pitchside/internal/services/identity"
	identitysqlite "github.com/pitchsideapp/pitchside/internal/services/identity/storage/sqlite"
	"github.com/pitchsideapp/pitchside/internal/services/requests"
	requestsqlite "github.com/pitchsideapp/pitchside/internal/services/requests/storage/sqlite"
	"github.com/pitchsideapp/pitchside/internal/services/shortlist"
	shortlistsqlite "github.com/pitchsideapp/pitchside/internal/services/shortlist/storage/sqlite"
)

type serverEnv struct {
	DataDir string `env:"PITCHSIDE_DATA_DIR"`
}

func loadServerEnv() serverEnv {
	var cfg serverEnv
	_ = config.ParseEnv(&cfg)
	if strings.TrimSpace(cfg.DataDir) == "" {
		cfg.DataDir = "data"
	}
	return cfg
}

// Stores bundles the per-service SQLite handles the server owns.
type Stores struct {
	Requests  *requestsqlite.Store
	Directory *directorysqlite.Store
	Shortlist *shortlistsqlite.Store
	Identity  *identitysqlite.Store
}

// OpenStores opens every service store under the data directory.
func OpenStores(dataDir string) (Stores, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return Stores{}, fmt.Errorf("create data dir: %w", err)
	}
	var stores Stores
	var err error
	if stores.Requests, err = requestsqlite.Open(filepath.Join(dataDir, "requests.db")); err != nil {
		return Stores{}, fmt.Errorf("open requests store: %w", err)
	}
	if stores.Directory, err = directorysqlite.Open(filepath.Join(dataDir, "directory.db")); err != nil {
		stores.Close()
		return Stores{}, fmt.Errorf("open directory store: %w", err)
	}
	if stores.Shortlist, err = shortlistsqlite.Open(filepath.Join(dataDir, "shortlist.db")); err != nil {
		stores.Close()
		return Stores{}, fmt.Errorf("open shortlist store: %w", err)
	}
	if stores.Identity, err = identitysqlite.Open(filepath.Join(dataDir, "identity.db")); err != nil {
		stores.Close()
		return Stores{}, fmt.Errorf("open identity store: %w", err)
	}
	return stores, nil
}

// Close releases every open store.
func (s *Stores) Close() {
	for name, closer := range map[string]interface{ Close() error }{
		"requests":  s.Requests,
		"directory": s.Directory,
		"shortlist": s.Shortlist,
		"identity":  s.Identity,
	} {
		if closer == nil {
			continue
		}
		if err := closer.Close(); err != nil {
			log.Printf("close %s store: %v", name, err)
		}
	}
}

// Services bundles the wired domain services.
type Services struct {
	Identity  *identity.Service
	Requests  *requests.Engine
	Directory *directory.Service
	Shortlist *shortlist.Service
	Admin     *admin.Service
}

// BuildServices wires the domain services over open stores.
func BuildServices(stores Stores) (Services, error) {
	signerConfig, err := identity.LoadSignerConfigFromEnv(nil)
	if err != nil {
		return Services{}, fmt.Errorf("load session config: %w", err)
	}
	signer, err := identity.NewSigner(signerConfig)
	if err != nil {
		return Services{}, fmt.Errorf("build session signer: %w", err)
	}

	// The requests engine checks player existence against directory storage,
	// and the directory's contact gate consults the engine's accepted pairs.
	engine := requests.NewEngine(stores.Requests, stores.Directory)
	directoryService := directory.NewService(stores.Directory, engine)
	return Services{
		Identity:  identity.NewService(stores.Identity, signer),
		Requests:  engine,
		Directory: directoryService,
		Shortlist: shortlist.NewService(stores.Shortlist, directoryService),
		Admin:     admin.NewService(identity.NewService(stores.Identity, signer), engine, directoryService),
	}, nil
}

// BuildHandler mounts every API module on a fresh mux.
func BuildHandler(services Services) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	accounts.New(services.Identity).RegisterRoutes(mux)
	inbox.New(services.Requests).RegisterRoutes(mux)
	outbox.New(services.Requests).RegisterRoutes(mux)
	browse.New(services.Directory).RegisterRoutes(mux)
	shortlistweb.New(services.Shortlist).RegisterRoutes(mux)
	profile.New(services.Directory).RegisterRoutes(mux)
	adminweb.New(services.Admin).RegisterRoutes(mux)

	var handler http.Handler = mux
	handler = authn.Middleware(services.Identity)(handler)
	handler = withTracing(withRequestLog(handler))
	return handler
}

// Server hosts the marketplace HTTP API and storage lifecycle.
type Server struct {
	listener   net.Listener
	httpServer *http.Server
	stores     Stores
}

// New creates a configured server listening on the provided port.
func New(port int) (*Server, error) {
	return NewWithAddr(fmt.Sprintf(":%d", port))
}

// NewWithAddr creates a configured server for the provided address.
func NewWithAddr(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}
	srvEnv := loadServerEnv()
	stores, err := OpenStores(srvEnv.DataDir)
	if err != nil {
		_ = listener.Close()
		return nil, err
	}
	services, err := BuildServices(stores)
	if err != nil {
		_ = listener.Close()
		stores.Close()
		return nil, err
	}

	return &Server{
		listener: listener,
		httpServer: &http.Server{
			Handler:           BuildHandler(services),
			ReadHeaderTimeout: 10 * time.Second,
		},
		stores: stores,
	}, nil
}

// Addr returns the listener address for the server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates and serves a server until context cancellation.
func Run(ctx context.Context, port int) error {
	server, err := New(port)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the HTTP server until context cancellation.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	log.Printf("api server listening at %v", s.listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		err := <-serveErr
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	case err := <-serveErr:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.httpServer != nil {
		_ = s.httpServer.Close()
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.stores.Close()
}
