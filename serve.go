package trellis

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Server runs a finalized Router over net/http with graceful
// shutdown. The Router itself stays transport-agnostic.
type Server struct {
	router      *Router
	server      *http.Server
	tlsCertFile string
	tlsKeyFile  string
}

func NewServer(router *Router) *Server {
	return &Server{router: router}
}

func (s *Server) TlsCertFile(f string) {
	s.tlsCertFile = f
}

func (s *Server) TlsKeyFile(f string) {
	s.tlsKeyFile = f
}

// Run serves until an interrupt or termination signal arrives, then
// shuts down gracefully.
func (s *Server) Run(addr ...string) error {
	address := resolveAddress(addr)
	Log.Debug("Listening and serving HTTP(S)", zap.String("address", address))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	s.server = &http.Server{Addr: address, Handler: s.router}
	errCh := make(chan error, 1)
	go func() {
		if err := s.listenAndServe(); err != nil && err != http.ErrServerClosed {
			Log.Error("http(s) listen error", zap.Error(err))
			errCh <- err
		}
	}()

	select {
	case sig := <-stop:
		Log.Info("Shutting down signal", zap.String("signal", sig.String()))
		return s.Shutdown()
	case err := <-errCh:
		return errors.Wrapf(err, "http(s) server error, addr: %v", address)
	}
}

// RunServer serves over the given server and listener.
func (s *Server) RunServer(srv *http.Server, l net.Listener) error {
	Log.Debug("Listening and serving HTTP(S) on listener",
		zap.String("address", l.Addr().String()))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	s.server = srv
	srv.Handler = s.router
	errCh := make(chan error, 1)
	go func() {
		var err error
		if s.tlsCertFile == "" || s.tlsKeyFile == "" {
			err = srv.Serve(l)
		} else {
			err = srv.ServeTLS(l, s.tlsCertFile, s.tlsKeyFile)
		}
		if err != nil && err != http.ErrServerClosed {
			Log.Error("listen server error", zap.Error(err))
			errCh <- err
		}
	}()

	select {
	case sig := <-stop:
		Log.Info("Shutting down signal", zap.String("signal", sig.String()))
		return s.Shutdown()
	case err := <-errCh:
		return errors.Wrapf(err, "listen server: %v", l.Addr())
	}
}

// Start serves without signal handling; the caller decides when to
// call Shutdown.
func (s *Server) Start(addr ...string) error {
	address := resolveAddress(addr)
	Log.Debug("Listening and serving HTTP(S)", zap.String("address", address))

	s.server = &http.Server{Addr: address, Handler: s.router}
	if err := s.listenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrapf(err, "http server error, addr: %v", address)
	}
	return nil
}

func (s *Server) Shutdown() error {
	Log.Info("Shutting down http(s) server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "http(s) server forced to shutdown")
	}
	Log.Info("Http(s) server exited properly")
	return nil
}

func (s *Server) listenAndServe() error {
	if s.tlsCertFile == "" || s.tlsKeyFile == "" {
		return s.server.ListenAndServe()
	}
	return s.server.ListenAndServeTLS(s.tlsCertFile, s.tlsKeyFile)
}

func resolveAddress(addr []string) string {
	switch len(addr) {
	case 0:
		if port := os.Getenv("PORT"); port != "" {
			fmt.Printf("Environment variable PORT=\"%s\"", port)
			return ":" + port
		}
		fmt.Println("Environment variable PORT is undefined. Using port :7771 by default")
		return ":7771"
	case 1:
		return addr[0]
	default:
		panic("too many parameters")
	}
}
