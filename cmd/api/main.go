package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lyanh238/VNASelf/config"
	_ "github.com/lyanh238/VNASelf/docs" // Swagger docs
	"github.com/lyanh238/VNASelf/internal/httpserver"
	"github.com/lyanh238/VNASelf/internal/scheduling/repository/gcal"
	"github.com/lyanh238/VNASelf/internal/scheduling/usecase"
	"github.com/lyanh238/VNASelf/pkg/datemath"
	"github.com/lyanh238/VNASelf/pkg/gcalendar"
	"github.com/lyanh238/VNASelf/pkg/log"
	"github.com/lyanh238/VNASelf/pkg/productivity"
)

// @title       VNASelf Scheduling API
// @description Calendar scheduling engine with conflict detection, resolution workflows, and productivity-ranked suggestions on top of Google Calendar.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting VNASelf scheduler...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	location := cfg.GoogleCalendar.Location()

	// 3. Google Calendar client
	calendarClient, err := gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath)
	if err != nil {
		logger.Errorf(ctx, "Google Calendar not available: %v", err)
		logger.Error(ctx, "Run `go run scripts/gcal-auth/main.go` to generate token.json")
		return
	}
	calendarClient.WithLocation(location)
	logger.Info(ctx, "Google Calendar initialized")

	// 4. Repository
	calendarRepo := gcal.New(calendarClient, logger, gcal.Config{
		CalendarID:     cfg.GoogleCalendar.CalendarID,
		Timezone:       cfg.GoogleCalendar.Timezone,
		Timeout:        cfg.Scheduler.BackingTimeout,
		RetryAttempts:  cfg.Scheduler.ReadRetryAttempts,
		RetryBaseDelay: cfg.Scheduler.ReadRetryBaseDelay,
	})

	// 5. Scoring and date parsing
	profiles := cfg.Scheduler.ActivityProfiles
	if len(profiles) == 0 {
		profiles = productivity.DefaultProfiles()
	}
	scorer := productivity.NewScorer(profiles)

	dateParser, err := datemath.NewParser(location)
	if err != nil {
		logger.Errorf(ctx, "Failed to create date parser: %v", err)
		return
	}

	// 6. Scheduling UseCase
	schedulingUC := usecase.New(logger, calendarRepo, scorer, dateParser, usecase.Config{
		HorizonDays:     cfg.Scheduler.HorizonDays,
		MaxSuggestions:  cfg.Scheduler.MaxSuggestions,
		WorkdayStartMin: cfg.Scheduler.WorkdayStartMin,
		WorkdayEndMin:   cfg.Scheduler.WorkdayEndMin,
		QueryPadding:    cfg.Scheduler.QueryPadding,
		Location:        location,
	})

	// 7. HTTP Server
	httpServer, err := httpserver.New(httpserver.Config{
		Logger:       logger,
		Port:         cfg.HTTPServer.Port,
		Mode:         cfg.HTTPServer.Mode,
		Environment:  cfg.Environment.Name,
		SchedulingUC: schedulingUC,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 8. Run
	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
