package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-redis/redis_rate/v10"
	"github.com/ijalalfrz/skyswap-booking-client/internal/app/config"
	"github.com/ijalalfrz/skyswap-booking-client/internal/app/dto"
	"github.com/ijalalfrz/skyswap-booking-client/internal/app/endpoints"
	"github.com/ijalalfrz/skyswap-booking-client/internal/app/service"
	"github.com/ijalalfrz/skyswap-booking-client/internal/app/transport"
	"github.com/ijalalfrz/skyswap-booking-client/internal/app/tui"
	"github.com/ijalalfrz/skyswap-booking-client/internal/pkg/backend"
	"github.com/ijalalfrz/skyswap-booking-client/internal/pkg/logger"
	"github.com/ijalalfrz/skyswap-booking-client/internal/pkg/receipt"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
)

const (
	modeTUI  = "tui"
	modeHTTP = "http"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		mode       string
		configFile string
		logOutput  string
	)

	flagSet := pflag.NewFlagSet("skyswap", pflag.ContinueOnError)
	flagSet.StringVar(&mode, "mode", modeTUI, "view to run: tui or http")
	flagSet.StringVar(&configFile, "config", ".env", "path to the .env config file")
	flagSet.StringVar(&logOutput, "log-output", "", "write JSON log records to this file")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if mode != modeTUI && mode != modeHTTP {
		return fmt.Errorf("unknown mode %q, want %s or %s", mode, modeTUI, modeHTTP)
	}

	cfg, err := config.InitConfig(configFile)
	if err != nil {
		return err
	}

	if logOutput != "" {
		cfg.LogOutput = logOutput
	}

	logWriter, closeLog, err := openLogOutput(mode, cfg.LogOutput)
	if err != nil {
		return err
	}
	defer closeLog()

	logger.InitStructuredLogger(cfg.LogLevel, logWriter)

	if err := dto.InitValidator(); err != nil {
		return fmt.Errorf("init validator: %w", err)
	}

	slog.Debug("config loaded successfully", slog.String("mode", mode), slog.String("backend", cfg.Backend.BaseURL))

	bookingService := makeBookingService(&cfg)

	if mode == modeHTTP {
		runApp(cfg, bookingService)
		return nil
	}

	return runTUI(bookingService)
}

// openLogOutput picks the log destination. The terminal view owns stdout,
// so without a log file its logs are discarded.
func openLogOutput(mode, path string) (io.Writer, func(), error) {
	if path == "" {
		if mode == modeTUI {
			return io.Discard, func() {}, nil
		}
		return os.Stdout, func() {}, nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log output: %w", err)
	}

	return file, func() { file.Close() }, nil
}

func makeBookingService(cfg *config.Config) *service.BookingService {
	backendConfig := backend.Config{
		BaseURL:      cfg.Backend.BaseURL,
		Timeout:      cfg.Backend.Timeout,
		MaxRetries:   cfg.Backend.MaxRetries,
		RateLimitRPS: cfg.Backend.RateLimitRPS,
	}

	if cfg.RateLimited() {
		// init redis
		redisClient := redis.NewClient(&redis.Options{
			Addr:        cfg.Redis.Addr,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			DialTimeout: cfg.Redis.Timeout,
		})
		backendConfig.Limiter = redis_rate.NewLimiter(redisClient)

		slog.Info("backend rate limit enabled", slog.Int("rps", cfg.Backend.RateLimitRPS))
	}

	exporter := receipt.NewExporter(afero.NewOsFs(), cfg.Receipt.Dir)

	return service.NewBookingService(backend.NewClient(backendConfig), exporter, cfg.Backend.PricingConcurrency)
}

func runTUI(bookingService *service.BookingService) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	model := tui.NewModel(ctx, bookingService)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()

	return err
}

func runApp(cfg config.Config, bookingService *service.BookingService) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slog.InfoContext(ctx, "starting...", slog.String("log_level", string(cfg.LogLevel)))

	// the session view starts with the catalog loaded, like the terminal view
	if _, err := bookingService.LoadCatalog(ctx); err != nil {
		slog.WarnContext(ctx, "starting with an empty catalog", slog.String("error", err.Error()))
	}

	var waitGroup sync.WaitGroup
	// Starts the server in a go routine
	waitGroup.Add(1)
	go func() {
		defer waitGroup.Done()
		startHTTPServer(ctx, cfg, bookingService)
	}()

	sigChannel := make(chan os.Signal, 1)
	signal.Notify(sigChannel, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case sig := <-sigChannel:
		cancel()
		slog.InfoContext(ctx, "received OS signal. Exiting...", slog.String("signal", sig.String()))
	case <-ctx.Done():
		slog.ErrorContext(ctx, "failed to start HTTP server")
	}

	waitGroup.Wait()
	slog.InfoContext(ctx, "All service closed...")
}

func startHTTPServer(ctx context.Context, cfg config.Config, bookingService *service.BookingService) {
	endpts := endpoints.Endpoints{
		SessionEndpoint: endpoints.MakeSessionEndpoint(bookingService),
	}
	router := transport.MakeHTTPRouter(&cfg, endpts)
	server := &http.Server{
		Handler:      router,
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		WriteTimeout: cfg.HTTP.Timeout,
		ReadTimeout:  cfg.HTTP.Timeout,
	}

	slog.Info("running HTTP server...", slog.Int("port", cfg.HTTP.Port))

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "failed to start HTTP server", slog.String("error", err.Error()))
		}
	}()

	<-ctx.Done()

	if err := server.Shutdown(context.Background()); err != nil {
		slog.ErrorContext(ctx, "failed to shutdown HTTP server", slog.String("error", err.Error()))
	}

	slog.InfoContext(ctx, "HTTP server shutdown gracefully")
}
