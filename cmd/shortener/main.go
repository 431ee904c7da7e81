package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/atinyakov/shortlink-registry/internal/app/server/grpc"
	"github.com/atinyakov/shortlink-registry/internal/config"
	"github.com/atinyakov/shortlink-registry/internal/logger"

	_ "net/http/pprof"
)

var buildVersion string
var buildDate string
var buildCommit string

func main() {
	fmt.Printf("Build version: %s\n", orNA(buildVersion))
	fmt.Printf("Build date: %s\n", orNA(buildDate))
	fmt.Printf("Build commit: %s\n", orNA(buildCommit))

	options, err := config.Parse()
	if err != nil {
		panic(err)
	}

	log := logger.New()
	if options.LogFile != "" {
		err = log.InitWithFile(options.LogLevel, options.LogFile)
	} else {
		err = log.Init(options.LogLevel)
	}
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = log.Close()
	}()

	if err := run(options, log.Log); err != nil {
		log.Log.Error("shortener stopped with error", zap.Error(err))
	}
}

func run(options *config.Options, zapLogger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	a, err := newApp(ctx, options, zapLogger)
	if err != nil {
		return err
	}
	defer a.Close()

	if options.EnablePprof {
		go func() {
			zapLogger.Info("Starting pprof server", zap.String("addr", "localhost:6060"))
			if err := http.ListenAndServe("localhost:6060", nil); err != nil {
				zapLogger.Error("pprof server error", zap.Error(err))
			}
		}()
	}

	if options.GRPCPort > 0 {
		grpcServer := grpc.New(options.ResultHostname, options.TrustedSubnet, zapLogger, a.registry, options.GRPCPort)
		go func() {
			if err := grpcServer.Start(); err != nil {
				zapLogger.Error("gRPC server error", zap.Error(err))
			}
		}()
		defer grpcServer.GracefulStop()
	}

	srv := &http.Server{
		Addr:              options.Port,
		Handler:           a.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		if options.EnableHTTPS {
			errc <- serveTLS(srv, options.ResultHostname, zapLogger)
			return
		}
		zapLogger.Info("Server is running", zap.String("hostname", options.Port))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	zapLogger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// serveTLS obtains certificates from Let's Encrypt for the host of the base
// URL and serves on :443.
func serveTLS(srv *http.Server, baseURL string, zapLogger *zap.Logger) error {
	u, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("base url: %w", err)
	}

	manager := &autocert.Manager{
		Cache:      autocert.DirCache("cache-dir"),
		Prompt:     autocert.AcceptTOS,
		HostPolicy: autocert.HostWhitelist(u.Hostname()),
	}

	srv.Addr = ":443"
	srv.TLSConfig = manager.TLSConfig()

	zapLogger.Info("Server is running with TLS", zap.String("host", u.Hostname()))
	return srv.ListenAndServeTLS("", "")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
