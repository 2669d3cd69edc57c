package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/spf13/pflag"
	"github.com/twipi/tateti/journal"
	"github.com/twipi/tateti/service"
	twicmdhttp "github.com/twipi/twipi/twicmd/http"
	"golang.org/x/sync/errgroup"
	"libdb.so/hserve"
)

var (
	listenAddr  = ":3009"
	journalPath = ""
	logLevel    = "info"
)

func init() {
	if port := os.Getenv("PORT"); port != "" {
		listenAddr = ":" + port
	}

	pflag.StringVarP(&listenAddr, "listen-addr", "l", listenAddr, "address to listen on")
	pflag.StringVar(&journalPath, "journal", journalPath, "path to the SQLite move journal, empty to disable")
	pflag.StringVar(&logLevel, "log-level", logLevel, "log level (debug, info, warn, error)")
	pflag.Parse()
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		slog.Error(
			"invalid log level",
			"level", logLevel,
			"err", err)
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	os.Exit(start(ctx, logger))
}

func start(ctx context.Context, logger *slog.Logger) int {
	var opts []service.Option
	if journalPath != "" {
		j, err := journal.Open(ctx, journalPath)
		if err != nil {
			logger.Error(
				"failed to open move journal",
				"path", journalPath,
				"err", err)
			return 1
		}
		defer j.Close()

		logger.Info(
			"recording moves",
			"path", journalPath)
		opts = append(opts, service.WithJournal(j))
	}

	errg, ctx := errgroup.WithContext(ctx)

	svc := service.NewService(logger.With("component", "service"), opts...)
	errg.Go(func() error { return svc.Start(ctx) })

	handler := twicmdhttp.NewHandler(svc, logger.With("component", "twicmd"))
	errg.Go(func() error {
		<-ctx.Done()
		if err := handler.Close(); err != nil {
			logger.Error(
				"failed to close http service handler",
				"err", err)
		}
		return ctx.Err()
	})

	errg.Go(func() error {
		api := svc.Handler()

		r := http.NewServeMux()
		r.Handle("/", handler)
		for _, pattern := range []string{"/health", "/move", "/stats", "/moves/", "/ws"} {
			r.Handle(pattern, api)
		}

		logger.Info(
			"listening via HTTP",
			"addr", listenAddr)

		if err := hserve.ListenAndServe(ctx, listenAddr, r); err != nil {
			logger.Error(
				"failed to listen and serve",
				"err", err)
			return err
		}

		return ctx.Err()
	})

	if err := errg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error(
			"service error",
			"err", err)
		return 1
	}

	return 0
}
