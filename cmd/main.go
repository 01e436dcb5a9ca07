package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/apistry/contract-gateway/internal/app"
	gatewayhttp "github.com/apistry/contract-gateway/internal/http"
)

func main() {
	a, err := app.New()
	if err != nil {
		fmt.Printf("Failed to init app: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := gatewayhttp.NewServer(a.Router, ":"+a.Cfg.Port)
	a.Log.Info("Starting contract gateway", "port", a.Cfg.Port, "spec_root", a.Cfg.SpecRoot)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		a.Log.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		a.Log.Error("Server exited with error", "error", err)
		a.Close()
		os.Exit(1)
	}
}
