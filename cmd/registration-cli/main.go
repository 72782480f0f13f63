// cmd/registration-cli/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"business-registration/internal/common/config"
	"business-registration/internal/common/errors"
	"business-registration/internal/common/logger"
	"business-registration/internal/common/observability"
	"business-registration/internal/registration/form"
	"business-registration/internal/registration/submission"
	"business-registration/internal/registration/wizard"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred shutdowns complete first.
func run() int {
	draftPath := flag.String("draft", "", "Path to a YAML or JSON draft document")
	configPath := flag.String("config", "", "Path to a config file (defaults to configs/config.yaml)")
	endpoint := flag.String("endpoint", "", "Override the sink endpoint")
	listTags := flag.Bool("tags", false, "List the service tag catalog and exit")
	validateOnly := flag.Bool("validate", false, "Validate the draft without submitting")
	flag.Parse()

	if *listTags {
		printCatalog()
		return 0
	}

	if *draftPath == "" {
		fmt.Println("Error: -draft is required.")
		flag.Usage()
		return 1
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return 1
	}
	if *endpoint != "" {
		cfg.Submission.Endpoint = *endpoint
	}

	log := logger.NewStructured(logger.Options{
		Level:  cfg.Logging.Level,
		Format: "console",
		Output: "stderr",
	})

	shutdownTracing, err := observability.InitTracing(observability.TracingOptions{
		Enabled:        cfg.Observability.TracingEnabled,
		ServiceName:    cfg.Observability.ServiceName + "-cli",
		Environment:    cfg.App.Environment,
		JaegerEndpoint: cfg.Observability.JaegerEndpoint,
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			log.Warn("Failed to flush traces", map[string]interface{}{"error": err.Error()})
		}
	}()

	coordinator, err := submission.NewCoordinator(
		submission.ServiceDependencies{Logger: log},
		submission.ConfigFrom(cfg.Submission),
	)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}

	session, err := wizard.NewSession(wizard.SessionDependencies{
		Logger:    log,
		Submitter: coordinator,
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}

	doc, err := form.LoadDraft(*draftPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}
	if err := session.Load(doc); err != nil {
		fmt.Printf("Error: draft rejected: %s\n", errors.AsStandardError(err).Details)
		return 1
	}
	if doc.Address.FullAddress == "" {
		session.FillFullAddress()
	}

	for session.ActiveTab() != wizard.TabServices {
		if _, err := session.Next(); err != nil {
			return fail(session, err)
		}
	}

	if *validateOnly {
		if err := validateAll(session); err != nil {
			return fail(session, err)
		}
		fmt.Println("Draft is valid.")
		return 0
	}

	ack, err := session.Submit(context.Background())
	if err != nil {
		return fail(session, err)
	}

	notice, _ := session.Notice()
	fmt.Printf("%s (status %d, %dms)\n", notice.Message, ack.StatusCode, ack.Duration.Milliseconds())
	return 0
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// validateAll runs the full pass without contacting the sink.
func validateAll(session *wizard.Session) error {
	v, err := form.NewValidator()
	if err != nil {
		return err
	}
	doc := session.Document()
	result := v.ValidateAll(&doc)
	if result.Valid {
		return nil
	}
	for _, e := range result.Errors {
		fmt.Printf("  %s: %s\n", e.Field, e.Message)
	}
	return errors.NewValidationFailedError(errors.MsgFormInvalid, result.Fields())
}

func fail(session *wizard.Session, err error) int {
	fmt.Printf("Error: %s\n", errors.UserMessage(err))
	for _, e := range session.Errors() {
		fmt.Printf("  %s: %s\n", e.Field, e.Message)
	}
	return 1
}

func printCatalog() {
	for _, category := range form.TagCatalog() {
		fmt.Printf("%s:\n  %s\n", category.Name, strings.Join(category.Tags, ", "))
	}
}
