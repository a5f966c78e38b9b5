package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/automate-formation/orchestrator/api"
	"github.com/automate-formation/orchestrator/config"
	"github.com/automate-formation/orchestrator/notify"
	"github.com/automate-formation/orchestrator/orchestrator"
	"github.com/automate-formation/orchestrator/policy"
	"github.com/automate-formation/orchestrator/render"
	"github.com/automate-formation/orchestrator/schedule"
	"github.com/automate-formation/orchestrator/store"
	"github.com/automate-formation/orchestrator/workflow"
)

func main() {
	task := flag.String("task", "", "run one batch phase and exit (all | new_requests | scheduled | completed | upcoming)")
	serve := flag.Bool("serve", false, "start the HTTP API")
	daemon := flag.Bool("daemon", false, "run the trigger table on a cron schedule")
	cronSpec := flag.String("cron", "@hourly", "cron expression used in daemon mode")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting automation orchestrator...")
	log.Printf("Database: %s", cfg.DatabaseURL)

	db, err := store.NewSQLiteStore(cfg.DatabaseURL, cfg.SignedURLSecret)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	renderer, err := render.NewTemplateRenderer()
	if err != nil {
		log.Fatalf("Failed to initialize renderer: %v", err)
	}

	sender := notify.NewResendClient(cfg.ResendBaseURL, cfg.ResendAPIKey, cfg.EmailFrom, cfg.SendTimeout)

	ctx := context.Background()
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		log.Fatalf("Failed to initialize policy engine: %v", err)
	}

	org := render.Organisme{
		Nom:       cfg.OrganismeNom,
		Siret:     cfg.OrganismeSiret,
		NDA:       cfg.OrganismeNDA,
		Adresse:   cfg.OrganismeAdresse,
		Email:     cfg.OrganismeEmail,
		Telephone: cfg.OrganismeTelephone,
	}

	clock := workflow.RealClock()
	steps := workflow.NewSteps(db, renderer, sender, policyEngine, clock, org, cfg.StorageBucket, cfg.AdminEmail)
	scheduler := schedule.NewScheduler(db, schedule.Triggers(steps))
	orch := orchestrator.New(scheduler)

	if *task != "" {
		phase, err := orchestrator.ParsePhase(*task)
		if err != nil {
			log.Fatalf("Invalid task: %v", err)
		}
		result, err := orch.RunPhase(ctx, phase)
		if err != nil {
			log.Fatalf("Failed to run phase %s: %v", phase, err)
		}
		log.Printf("phase %s done: %s", phase, result)
		for _, e := range result.Errors {
			log.Printf("ERROR: %s", e)
		}
		return
	}

	if !*serve && !*daemon {
		log.Fatalf("Nothing to do: pass -task, -serve or -daemon")
	}

	if *daemon {
		d, err := schedule.NewDaemon(scheduler, *cronSpec)
		if err != nil {
			log.Fatalf("Failed to initialize daemon: %v", err)
		}
		d.Start()
		defer d.Stop()
		log.Printf("Daemon scheduled: %s", *cronSpec)
	}

	if *serve {
		handler := api.NewHandler(db, steps, orch, db, clock, cfg.StorageBucket)

		e := echo.New()
		e.HideBanner = true
		e.Use(middleware.Logger())
		e.Use(middleware.Recover())
		handler.RegisterRoutes(e)

		go func() {
			addr := fmt.Sprintf(":%d", cfg.HTTPPort)
			log.Printf("HTTP API listening on %s", addr)
			if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
				log.Fatalf("Server failed: %v", err)
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Printf("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Printf("ERROR: shutdown: %v", err)
		}
		return
	}

	// Daemon only: block until a signal arrives.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutting down...")
}
