package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/kakeibo/internal/config"
	kakeiboHttp "github.com/MrJamesThe3rd/kakeibo/internal/http"
	"github.com/MrJamesThe3rd/kakeibo/internal/http/ledgerapi"
	"github.com/MrJamesThe3rd/kakeibo/internal/ledger"
	"github.com/MrJamesThe3rd/kakeibo/internal/ledger/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	svc := ledger.NewService(store.New(cfg.Ledger.File))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
	defer cancel()

	initial, err := svc.Load(ctx)
	if err != nil {
		slog.Error("failed to load ledger", "file", cfg.Ledger.File, "error", err)
		os.Exit(1)
	}

	handler := ledgerapi.NewHandler(svc, initial)
	router := kakeiboHttp.New(handler, cfg.Server.CORSOrigins)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port, "ledger", cfg.Ledger.File, "transactions", len(initial))

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
