package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cognicore/bigrams/internal/web"
	"github.com/cognicore/bigrams/pkg/bigram/store"
	"github.com/cognicore/bigrams/pkg/bigram/store/memstore"
	"github.com/cognicore/bigrams/pkg/bigram/store/sqlite"
)

const shutdownTimeout = 10 * time.Second

// settings are resolved from flags, BIGRAMS_* variables and an optional
// config file, in that order of precedence.
type settings struct {
	Addr  string
	DB    string
	Debug bool
}

func loadSettings(v *viper.Viper, cmd *cobra.Command) (settings, error) {
	v.SetEnvPrefix("BIGRAMS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return settings{}, fmt.Errorf("bind flags: %w", err)
	}
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return settings{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	s := settings{
		Addr:  v.GetString("addr"),
		DB:    v.GetString("db"),
		Debug: v.GetBool("debug"),
	}
	if s.Addr == "" {
		return settings{}, errors.New("addr must not be empty")
	}
	return s, nil
}

func openStore(ctx context.Context, s settings) (store.Store, error) {
	if s.DB == "" {
		return memstore.New(), nil
	}
	return sqlite.OpenSQLite(ctx, s.DB)
}

func serve(ctx context.Context, logger *slog.Logger, s settings) error {
	st, err := openStore(ctx, s)
	if err != nil {
		return fmt.Errorf("open run store: %w", err)
	}
	defer st.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	obs, err := web.NewPrometheusObserver(reg)
	if err != nil {
		return err
	}

	srv, err := web.New(web.Config{
		Debug:    s.Debug,
		Logger:   logger,
		Store:    st,
		Observer: obs,
		Gatherer: reg,
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              s.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", s.Addr, "db", s.DB)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func rootCmd(logger *slog.Logger) *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:           "bigrams-web",
		Short:         "Serve the bigram counter as a web form.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSettings(v, cmd)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), logger, s)
		},
	}
	fs := cmd.Flags()
	fs.String("addr", ":8080", "Listen address.")
	fs.String("db", "", "SQLite database for saved runs; in-memory when empty.")
	fs.Bool("debug", false, "Gin debug mode and request logging.")
	fs.String("config", "", "Optional config file (yaml, json or toml).")
	return cmd
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd(logger).ExecuteContext(ctx); err != nil {
		logger.Error("bigrams-web failed", "err", err)
		stop()
		os.Exit(1)
	}
}
