package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"portfolio-contact/config"
	"portfolio-contact/internal/delivery/cli"
	"portfolio-contact/internal/delivery/tui"
	"portfolio-contact/internal/domain"
	"portfolio-contact/internal/repository/mailer"
	"portfolio-contact/internal/usecase"
	"portfolio-contact/pkg/audit"
	"portfolio-contact/pkg/logger"
	"portfolio-contact/pkg/validation"

	"github.com/go-playground/validator/v10"
)

const serviceName = "portfolio-contact"

func main() {
	os.Exit(run())
}

func run() int {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		return 1
	}

	// 2. Setup Logger
	// The terminal belongs to the form, so logs go to a file.
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Printf("Failed to open log file %s: %v", cfg.LogFile, err)
		return 1
	}
	defer logFile.Close()
	logger.Init(logFile, cfg.LogLevel)
	logger.Log.Info("Starting contact relay", "provider", cfg.ContactProvider, "env", cfg.Environment)

	events := audit.InitLogger(serviceName, cfg.Environment, cfg.AuditLogFile)
	defer events.Sync()

	// 3. Setup Provider
	provider := mailer.NewFromConfig(cfg)
	if !provider.Configured {
		logger.Log.Warn("Contact provider not fully configured - submissions will fail", "provider", provider.Name)
	}
	if cfg.ContactEmailTo == "" {
		logger.Log.Warn("CONTACT_EMAIL_TO not set - submissions will fail")
	}

	// 4. Setup UseCases
	validate := validator.New()
	validation.RegisterValidators(validate)

	newController := func() domain.ContactController {
		return usecase.NewContactController(provider.Sender, validate, usecase.ContactOptions{
			Recipient: cfg.ContactEmailTo,
			Provider:  provider.Name,
			Timeout:   cfg.ProviderTimeout,
			Events:    events,
		})
	}
	healthUC := usecase.NewHealthUsecase(usecase.ProviderInfo{
		Name:       provider.Name,
		Configured: provider.Configured,
		Recipient:  cfg.ContactEmailTo,
	})

	// 5. Setup Commands
	root := cli.NewRootCommand(cli.CommandDeps{
		NewController: newController,
		Health:        healthUC,
		RunForm:       tui.Run,
	})

	// 6. Run until done or interrupted
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = root.ExecuteContext(ctx)
	if err != nil {
		logger.Log.Error("Command failed", "error", err)
		if !cli.Reported(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
	}
	return cli.ExitCode(err)
}
