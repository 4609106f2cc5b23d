package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"mindcare/support-chat/chatmodel"
	"mindcare/support-chat/config"
	"mindcare/support-chat/handlers"
	"mindcare/support-chat/llm"
	"mindcare/support-chat/middleware"
	"mindcare/support-chat/routes"
	"mindcare/support-chat/sessions"
	"mindcare/support-chat/supabase"
)

const (
	janitorInterval = 10 * time.Minute
	shutdownTimeout = 15 * time.Second
)

var (
	servePort    string
	serveStore   string
	serveSeed    int64
	serveLibrary string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := config.LoadSettings()
		if servePort != "" {
			settings.Port = servePort
		}
		if serveStore != "" {
			settings.SessionStore = serveStore
		}
		if err := settings.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return serve(ctx, settings)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (overrides PORT)")
	serveCmd.Flags().StringVar(&serveStore, "store", "", "Session store: memory or redis (overrides SESSION_STORE)")
	serveCmd.Flags().Int64Var(&serveSeed, "seed", 0, "Seed for clarifier and deflection picks; 0 uses the global source")
	serveCmd.Flags().StringVar(&serveLibrary, "library", "", "YAML file replacing the embedded clarifier and guidance library")
}

func serve(ctx context.Context, settings config.Settings) error {
	store, err := openSessionStore(ctx, settings)
	if err != nil {
		return err
	}
	defer store.Close()

	mistral, err := llm.NewMistral(llm.OptionsFromSettings(settings))
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}

	lib, err := loadLibrary(serveLibrary)
	if err != nil {
		return err
	}
	var rng chatmodel.Randomizer
	trackerOpts := []chatmodel.TrackerOption{chatmodel.WithTrackerLibrary(lib)}
	if serveSeed != 0 {
		rng = chatmodel.NewLockedRand(serveSeed)
		trackerOpts = append(trackerOpts, chatmodel.WithTrackerRandom(rng))
	}

	tracker := chatmodel.NewRepetitionTracker(store, mistral, trackerOpts...)
	gate := chatmodel.NewClarifyGate(lib, rng)
	engine := chatmodel.NewEngine(tracker, gate, mistral, mistral.Model())

	var records handlers.RecordsProvider
	if settings.SupabaseEnabled() {
		connector, err := supabase.NewConnector(settings.SupabaseURL, settings.SupabaseKey)
		if err != nil {
			return err
		}
		records = handlers.SupabaseRecords(connector)
	} else {
		config.Logger.Warn("SUPABASE_URL or SUPABASE_KEY is missing, mood and PHQ-9 history are disabled")
	}

	api := handlers.NewAPI(engine, records, settings.SessionStore, mistral.Model())

	mux := http.NewServeMux()
	routes.RegisterAllRoutes(mux, api)

	handler := middleware.Chain(
		middleware.RequestIDMiddleware,
		middleware.LoggingMiddleware,
		middleware.RecoverMiddleware,
		middleware.CORSMiddleware(settings.CORSOrigin),
		middleware.TimeoutMiddleware(settings.RequestTimeout),
	)(mux)

	srv := &http.Server{
		Addr:              ":" + settings.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		config.Logger.WithFields(logrus.Fields{
			"port":  settings.Port,
			"store": settings.SessionStore,
			"model": settings.LLMModel,
		}).Info("Server is running")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	config.Logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func loadLibrary(path string) (*chatmodel.Library, error) {
	if path == "" {
		return chatmodel.DefaultLibrary(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read library: %w", err)
	}
	lib, err := chatmodel.LoadLibrary(data)
	if err != nil {
		return nil, fmt.Errorf("library %s: %w", path, err)
	}
	config.Logger.WithField("path", path).Info("Loaded custom library")
	return lib, nil
}

func openSessionStore(ctx context.Context, settings config.Settings) (sessions.Store, error) {
	switch settings.SessionStore {
	case config.StoreRedis:
		client, err := sessions.NewRedisClient(ctx, settings.RedisURL)
		if err != nil {
			return nil, err
		}
		return sessions.NewStore(sessions.StoreTypeRedis,
			sessions.WithRedisClient(client),
			sessions.WithTTL(settings.SessionTTL),
		)
	default:
		store := sessions.NewMemoryStore(settings.SessionTTL, nil)
		store.StartJanitor(ctx, janitorInterval, func(removed int) {
			config.Logger.WithField("removed", removed).Debug("Expired chat sessions swept")
		})
		return store, nil
	}
}
