package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kiwari-pos/floor/internal/auth"
	"github.com/kiwari-pos/floor/internal/config"
	"github.com/kiwari-pos/floor/internal/router"
	"github.com/kiwari-pos/floor/internal/service"
	"github.com/kiwari-pos/floor/internal/store"
	"github.com/kiwari-pos/floor/internal/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.DevSecret() {
		log.Println("WARNING: Using the development JWT secret. Set JWT_SECRET in production!")
	}
	if len(cfg.Staff) == 0 {
		log.Println("WARNING: No staff accounts configured; nobody can sign in. Run `seed init` to create one.")
	}

	seed, err := loadSeed(cfg.SeedFile)
	if err != nil {
		log.Fatalf("Failed to load seed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := ws.NewHub()
	go hub.Run(ctx)

	st := store.New(seed, store.WithNotifier(hub))
	payments := service.NewPaymentService(st, cfg.TaxRate)

	accounts := make([]auth.Account, len(cfg.Staff))
	for i, s := range cfg.Staff {
		accounts[i] = auth.Account{ID: s.ID, Name: s.Name, Email: s.Email, PasswordHash: s.PasswordHash, Role: s.Role}
	}
	staff := auth.NewDirectory(accounts...)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router.New(cfg, st, payments, staff, hub),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting server on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: shutdown: %v", err)
	}
}

// loadSeed reads the floor snapshot from path, or the built-in demo floor
// when path is empty.
func loadSeed(path string) (store.Seed, error) {
	if path == "" {
		return store.DefaultSeed(time.Now())
	}
	f, err := os.Open(path)
	if err != nil {
		return store.Seed{}, err
	}
	defer f.Close()
	return store.LoadSeed(f, time.Now())
}
