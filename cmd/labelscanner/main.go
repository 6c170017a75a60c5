package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	adapthttp "labelscanner/internal/adapter/http"
	"labelscanner/internal/adapter/postgres"
	"labelscanner/internal/adapter/vision"
	"labelscanner/internal/app"
)

const undoWindow = 8 * time.Second

func main() {
	_ = godotenv.Load()

	addr := env("ADDR", ":8080")
	webDir := env("WEB_DIR", "web")

	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		log.Fatal("DATABASE_URL is required")
	}
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY is required")
	}

	db, err := postgres.Open(connStr)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()

	analyzer, err := vision.NewGeminiAnalyzer(ctx, apiKey, os.Getenv("GEMINI_MODEL"))
	if err != nil {
		log.Fatalf("gemini client: %v", err)
	}

	sessionRepo := postgres.NewSessionRepo(db)

	totalsSvc := app.NewTotalsService(db, db, db)
	settingsSvc := app.NewSettingsService(db)
	habitSvc := app.NewHabitService(db, db, db)
	logSvc := app.NewLogService(db, totalsSvc, habitSvc, undoWindow)
	waterSvc := app.NewWaterService(db, totalsSvc)
	historySvc := app.NewHistoryService(db, db, db)
	scanSvc := app.NewScanService(analyzer, settingsSvc)
	favSvc := app.NewFavoriteService(db)
	authSvc := app.NewAuthService(db, sessionRepo)

	srv := adapthttp.New(adapthttp.Services{
		Logs:      logSvc,
		Scan:      scanSvc,
		Totals:    totalsSvc,
		Water:     waterSvc,
		Habits:    habitSvc,
		History:   historySvc,
		Settings:  settingsSvc,
		Favorites: favSvc,
		Auth:      authSvc,
	}, webDir)

	if issuer := os.Getenv("OIDC_ISSUER"); issuer != "" {
		cfg, err := adapthttp.NewOIDCConfig(ctx, issuer,
			os.Getenv("OIDC_CLIENT_ID"),
			os.Getenv("OIDC_CLIENT_SECRET"),
			os.Getenv("OIDC_REDIRECT_URL"))
		if err != nil {
			log.Fatalf("oidc setup: %v", err)
		}
		srv = srv.WithOIDC(cfg)
		log.Printf("sso enabled via %s", issuer)
	}

	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
