package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	intconfig "shuttle/internal/config"
	router "shuttle/internal/http"
	"shuttle/internal/http/handlers"
	"shuttle/internal/repositories"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db, err := intconfig.ConnectDB(env.DBDSN)
	if err != nil {
		log.Fatalf("connect db: %v", err)
	}
	defer intconfig.CloseDB()

	schemaCtx, schemaCancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := repositories.EnsureSchema(schemaCtx, db); err != nil {
		schemaCancel()
		log.Fatalf("ensure shuttle schema: %v", err)
	}
	schemaCancel()

	settings, err := buildSettings(env)
	if err != nil {
		log.Fatalf("invalid shuttle config: %v", err)
	}
	notifier, closeNotifier, err := buildNotifier(env)
	if err != nil {
		log.Fatalf("set up notifier: %v", err)
	}
	defer closeNotifier()

	handlers.SetDeps(handlers.Deps{
		Settings:   settings,
		Notifier:   notifier,
		ShareLinks: buildShareLinks(env, settings),
	})

	r := router.NewRouter(env)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("run server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown failed: %v", err)
		return
	}

	log.Println("Server stopped cleanly.")
}
