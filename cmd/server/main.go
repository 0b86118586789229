package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"winedash/internal/api"
	"winedash/internal/config"
	"winedash/internal/engine"
)

type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:          "winedash",
		Short:        "German wine market analysis dashboard backend",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.v, a.cfgFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			log.SetPrefix("winedash")
			log.SetLevel(cfg.Level())
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (yaml, json or toml)")
	pf.String("source", "embedded", "record source: embedded, csv:<path> or sqlite:<path>")
	pf.String("log-level", "info", "debug, info, warn, error or off")
	_ = a.v.BindPFlag("source", pf.Lookup("source"))
	_ = a.v.BindPFlag("log_level", pf.Lookup("log-level"))

	serve := a.serveCmd()
	root.AddCommand(serve, a.reportCmd(), a.exportCmd(), a.seedCmd())
	root.RunE = serve.RunE
	return root
}

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
	cmd.Flags().String("addr", ":8080", "listen address")
	cmd.Flags().Float64("rate-limit", 20, "requests per second per client, 0 disables")
	_ = a.v.BindPFlag("addr", cmd.Flags().Lookup("addr"))
	_ = a.v.BindPFlag("rate_limit", cmd.Flags().Lookup("rate-limit"))
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	src, err := openSource(a.cfg.Source)
	if err != nil {
		return err
	}

	// The API is live immediately and answers 503 until the store is set.
	h := api.NewHandler(nil)
	e := api.NewServer(h, api.Options{RateLimit: a.cfg.RateLimit, LogLevel: a.cfg.Level()})

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infof("BACKGROUND: loading records from %s", a.cfg.Source)
		t0 := time.Now()
		store, err := engine.LoadColumnar(ctx, src)
		if err != nil {
			return err
		}
		h.SetStore(store)
		log.Infof("BACKGROUND: load complete in %v. API is fully ready.", time.Since(t0))
		return nil
	})

	g.Go(func() error {
		log.Infof("Server ready on %s (data loading in background...)", a.cfg.Addr)
		if err := e.Start(a.cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		log.Infof("Shutting down")
		return e.Shutdown(sctx)
	})

	return g.Wait()
}
