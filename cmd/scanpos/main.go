package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"scanpos/internal/api"
	"scanpos/internal/cart"
	"scanpos/internal/cart/memory"
	"scanpos/internal/cart/sqlite"
	"scanpos/internal/catalog"
	"scanpos/internal/config"
	"scanpos/internal/report"
	"scanpos/internal/sale"
	"scanpos/internal/session"
	"scanpos/pkg/retry"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "scanpos",
	Short:         "Barcode point-of-sale terminal client",
	Long:          "scanpos is a terminal client for the POS backend: scan products into a cart, check out, finalize sales and read sales reports.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(addProductCmd)
	rootCmd.AddCommand(sellCmd)
	rootCmd.AddCommand(cartCmd)
	rootCmd.AddCommand(checkoutCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(historyCmd)
}

// app wires every component for one command invocation.
type app struct {
	cfg       config.Config
	session   *session.Manager
	client    *api.Client
	cart      *cart.Accumulator
	catalog   *catalog.Reader
	finalizer *sale.Finalizer
	reports   *report.Viewer
	closers   []func() error
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	a := &app{cfg: cfg}

	a.session = session.NewManager(session.NewFileStore(cfg.TokenPath(), cfg.DeviceSecret))
	a.client = api.New(cfg.BaseURL, cfg.RequestTimeout, a.session, retry.Policy{
		MaxAttempts: cfg.RetryMaxAttempts,
		BaseDelay:   cfg.RetryBaseDelay,
	})

	var storage cart.Storage
	if db, err := sqlite.Open(cfg.CartDBPath()); err != nil {
		log.Printf("[scanpos] WARN: cart db unavailable (%v), cart will not survive this run", err)
		storage = memory.New()
	} else {
		storage = db
		a.closers = append(a.closers, db.Close)
	}
	a.cart = cart.New(storage)

	cache := catalog.Cache(catalog.NoopCache{})
	if cfg.RedisAddr != "" {
		redisCache := catalog.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := redisCache.Ping(ctx); err != nil {
			log.Printf("[scanpos] WARN: redis unavailable (%v), using noop cache", err)
		} else {
			cache = redisCache
			a.closers = append(a.closers, redisCache.Close)
		}
	}
	a.catalog = catalog.NewReader(a.client, cache, cfg.CatalogCacheTTL)

	a.finalizer = sale.NewFinalizer(a.client, a.cart)
	a.reports = report.NewViewer(a.client)

	return a, nil
}

func (a *app) Close() {
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			log.Printf("[scanpos] close error: %v", err)
		}
	}
}

// runWithApp builds the app, runs fn and tears the app down again.
func runWithApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(cmd.Context(), a)
}
