package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"langtrends/app"
	"langtrends/domain/core"
	"langtrends/internal/config"
	"langtrends/internal/container"
	"langtrends/internal/errors"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load application configuration
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appContainer, err := container.New(ctx, appConfig)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}
	defer appContainer.Close()

	result, err := appContainer.ReportService.Run(ctx)
	if err != nil {
		if core.IsSourceUnavailable(err) {
			fmt.Fprintf(os.Stderr, "Cannot read %s: %v\n", appConfig.Source.File, err)
			fmt.Fprintln(os.Stderr, "Set REPORT_FILE to the language report workbook (.xlsx) or a CSV export of its data sheet.")
			appContainer.Close()
			os.Exit(2)
		}
		if errors.IsAppError(err) {
			log.Fatalf("Report run failed [%s]: %v", errors.GetCode(err), err)
		}
		log.Fatalf("Report run failed: %v", err)
	}

	fmt.Println(result.String())
	for _, out := range result.Manifest.Outputs {
		fmt.Printf("  %-8s %s\n", out.Exporter, out.Location)
	}
}

func init() {
	if v := os.Getenv("CODE_VERSION"); v != "" {
		app.CodeVersion = v
	}
}
