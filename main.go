package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"shopfront/app/config"
	"shopfront/app/server"
	"shopfront/app/service/cart"
	"shopfront/app/service/catalog"
	"shopfront/app/service/conversation"
	"shopfront/app/service/llm"
	"shopfront/app/util/mylog"

	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
)

func main() {
	di := do.New()
	defer di.Shutdown()
	defer log.Info("Waiting for services to finish...")

	mylog.Preinit()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	do.ProvideValue(di, appCtx)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	do.Provide(di, catalog.New)
	do.Provide(di, cart.New)
	do.Provide(di, llm.New)
	do.Provide(di, conversation.New)
	do.Provide(di, server.New)

	slog.Info("Storefront started", "addr", cfg.Server.Addr)

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		log.Info("Shutting down...")

		cancel()
	}()

	if err = do.MustInvoke[*server.Service](di).Run(appCtx); err != nil {
		slog.Error("Server stopped", "error", err)
	}
}
