package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/kardianos/service"

	"github.com/sanya-cherniy/l2.11/internal/clock"
	"github.com/sanya-cherniy/l2.11/internal/config"
	transporthttp "github.com/sanya-cherniy/l2.11/internal/transport/http"
)

const readHeaderTimeout = 5 * time.Second

// program runs the HTTP server under kardianos/service, both as an OS
// service and in the foreground.
type program struct {
	cfg    config.Config
	logger *slog.Logger
	svc    transporthttp.CalendarService

	server *http.Server
	addr   net.Addr
}

func newProgram(cfg config.Config, logger *slog.Logger, svc transporthttp.CalendarService) *program {
	return &program{cfg: cfg, logger: logger, svc: svc}
}

func (p *program) handler() http.Handler {
	statuses := transporthttp.LegacyErrorStatus()
	if !p.cfg.LegacyStatusCodes {
		statuses = transporthttp.ConventionalErrorStatus()
	}
	mux := transporthttp.NewMux(p.svc, statuses)
	handler := transporthttp.CORS(p.cfg.CORSOrigins, mux)
	handler = transporthttp.RequestLogger(handler, p.logger, clock.NewSystem())
	return transporthttp.RequestID(handler)
}

// Start binds the listener synchronously so address errors surface to the
// caller, then serves in the background.
func (p *program) Start(_ service.Service) error {
	ln, err := net.Listen("tcp", p.cfg.ListenAddr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", p.cfg.ListenAddr(), err)
	}
	p.addr = ln.Addr()
	p.server = &http.Server{
		Handler:           p.handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	p.logger.Info("api listening", "addr", p.addr.String())
	go func() {
		if err := p.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			p.logger.Error("server error", "err", err)
		}
	}()
	return nil
}

func (p *program) Stop(_ service.Service) error {
	if p.server == nil {
		return nil
	}
	p.logger.Info("shutdown signal received, stopping server")

	ctx, cancel := context.WithTimeout(context.Background(), p.cfg.ShutdownTimeout)
	defer cancel()
	if err := p.server.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		p.logger.Error("server shutdown error", "err", err)
		return err
	}
	p.logger.Info("server stopped")
	return nil
}
