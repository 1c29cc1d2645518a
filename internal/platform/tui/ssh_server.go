package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/arena2d/internal/core"
	"github.com/vovakirdan/arena2d/internal/storage"
)

// SSHServerConfig configures the arena SSH server.
type SSHServerConfig struct {
	Address string // host:port, e.g. ":23234"

	// HostKeyPath defaults to ~/.arena/host_key and is generated on first
	// start when missing.
	HostKeyPath string

	DBPath      string
	IdleTimeout time.Duration

	// MaxSessions caps concurrent players. Zero means no cap.
	MaxSessions int

	TickRate  int
	FixedStep bool // step sessions by 1/TickRate instead of measured time
}

// DefaultSSHServerConfig returns the settings used by "arena serve".
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.arena/runs.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
	}
}

// SSHServer serves one arena session per SSH connection. All sessions
// share one runs database.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
	active atomic.Int32
}

// NewSSHServer prepares the server without listening. A nil logger logs
// to stderr.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "arena-ssh",
		})
	}

	keyPath, err := hostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	srv := &SSHServer{config: cfg, logger: logger}
	if srv.store, err = storage.Open(cfg.DBPath); err != nil {
		logger.Warn("runs will not be stored", "error", err)
	}

	// Middlewares run last to first: the session limit is checked before
	// any program starts.
	srv.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
			srv.limitMiddleware,
		),
	)
	if err != nil {
		if srv.store != nil {
			srv.store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	return srv, nil
}

func hostKeyPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot locate host key: %w", err)
		}
		path = filepath.Join(home, ".arena", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("cannot create host key directory: %w", err)
	}
	return path, nil
}

// sessionConfig sizes a session to the client's terminal.
func (s *SSHServer) sessionConfig(pty ssh.Pty) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.TickRate = s.config.TickRate
	if pty.Window.Width > 0 && pty.Window.Height > 0 {
		cfg.ScreenW = pty.Window.Width
		cfg.ScreenH = pty.Window.Height
	}
	return cfg
}

func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		wish.Fatalln(sess, "arena needs an interactive terminal: connect with ssh -t")
		return nil, nil
	}

	opts := Options{
		Store:     s.store,
		Logger:    s.logger.With("user", sess.User()),
		FixedStep: s.config.FixedStep,
	}
	return NewSessionModel(s.sessionConfig(pty), opts, sess.User()), []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

func (s *SSHServer) limitMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		n := s.active.Add(1)
		defer s.active.Add(-1)

		if s.config.MaxSessions > 0 && int(n) > s.config.MaxSessions {
			s.logger.Warn("session refused", "user", sess.User(), "active", n-1)
			wish.Fatalln(sess, "the arena is full, try again later")
			return
		}
		next(sess)
	}
}

func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		l := s.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		l.Info("session started", "active", s.active.Load())
		next(sess)
		l.Info("session ended", "duration", time.Since(start).Round(time.Second))
	}
}

// ListenAndServe serves until ctx is done, then shuts down.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("listening", "address", s.config.Address)

	errc := make(chan error, 1)
	go func() {
		err := s.server.ListenAndServe()
		if errors.Is(err, ssh.ErrServerClosed) {
			err = nil
		}
		errc <- err
	}()

	select {
	case err := <-errc:
		s.closeStore()
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down", "active", s.active.Load())
		return s.Shutdown()
	}
}

// Shutdown stops accepting connections and waits up to ten seconds for
// sessions to finish.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	defer s.closeStore()
	return s.server.Shutdown(ctx)
}

func (s *SSHServer) closeStore() {
	if s.store != nil {
		s.store.Close()
		s.store = nil
	}
}

// Active returns the number of connected sessions.
func (s *SSHServer) Active() int {
	return int(s.active.Load())
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
