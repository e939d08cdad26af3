package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/saulo-duarte/codecourse-api/internal/config"
	"github.com/saulo-duarte/codecourse-api/internal/container"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	settings, err := config.Load()
	if err != nil {
		config.Logger().WithError(err).Fatal("Invalid configuration")
	}

	c, err := container.New(ctx, settings)
	if err != nil {
		config.Logger().WithError(err).Fatal("Failed to start")
	}
	defer c.Close()

	handler := c.Handler()

	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		lambda.Start(httpadapter.New(handler).ProxyWithContext)
		return
	}

	srv := &http.Server{
		Addr:              ":" + settings.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		config.Logger().Infof("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			config.Logger().WithError(err).Fatal("Server stopped")
		}
	}()

	<-ctx.Done()
	config.Logger().Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		config.Logger().WithError(err).Error("Graceful shutdown failed")
	}
}
