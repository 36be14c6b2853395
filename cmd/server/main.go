package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"littlelemon/internal/auth"
	"littlelemon/internal/config"
	"littlelemon/internal/handlers"
	"littlelemon/internal/middleware"
	"littlelemon/internal/service"
	"littlelemon/internal/storage"
	"littlelemon/internal/storage/sqlite"
	"littlelemon/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))
	log := slog.Default()

	log.Info("starting restaurant ordering api",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
	)

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		log.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	log.Info("storage initialized", "database", cfg.DBPath)

	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TokenTTLHours)*time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store)

	if err := bootstrapAdmin(context.Background(), store, authenticator, cfg.Admin); err != nil {
		log.Error("failed to bootstrap admin account", "error", err)
		os.Exit(1)
	}

	// Services
	authService := service.NewAuthService(authenticator, jwtManager, log)
	catalogService := service.NewCatalogService(store)
	cartService := service.NewCartService(store)
	orderService := service.NewOrderService(store)
	rosterService := service.NewRosterService(store)

	// Handlers
	healthHandler := handlers.NewHealthHandler(log)
	authHandler := handlers.NewAuthHandler(authService, log)
	catalogHandler := handlers.NewCatalogHandler(catalogService, log)
	cartHandler := handlers.NewCartHandler(cartService, log)
	orderHandler := handlers.NewOrderHandler(orderService, log)
	managerRoster := handlers.NewRosterHandler(rosterService, auth.RoleManager, log)
	crewRoster := handlers.NewRosterHandler(rosterService, auth.RoleDeliveryCrew, log)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(chimiddleware.Throttle(cfg.Server.Throttle))
	r.Use(middleware.Metrics)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", healthHandler.ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Everything below requires a valid token.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(jwtManager, store))

			r.Get("/auth/me", authHandler.Me)

			r.Get("/categories", catalogHandler.ListCategories)
			r.Post("/categories", catalogHandler.CreateCategory)
			r.Delete("/categories/{categoryId}", catalogHandler.DeleteCategory)

			r.Get("/menu-items", catalogHandler.ListMenuItems)
			r.Post("/menu-items", catalogHandler.CreateMenuItem)
			r.Get("/menu-items/{menuItemId}", catalogHandler.GetMenuItem)
			r.Put("/menu-items/{menuItemId}", catalogHandler.UpdateMenuItem)
			r.Patch("/menu-items/{menuItemId}", catalogHandler.UpdateMenuItem)
			r.Delete("/menu-items/{menuItemId}", catalogHandler.DeleteMenuItem)

			r.Get("/cart/menu-items", cartHandler.List)
			r.Post("/cart/menu-items", cartHandler.Add)
			r.Delete("/cart/menu-items", cartHandler.Clear)

			r.Get("/orders", orderHandler.List)
			r.Post("/orders", orderHandler.Create)
			r.Get("/orders/{orderId}", orderHandler.Get)
			r.Put("/orders/{orderId}", orderHandler.Update)
			r.Patch("/orders/{orderId}", orderHandler.PartialUpdate)
			r.Delete("/orders/{orderId}", orderHandler.Delete)

			r.Get("/groups/manager/users", managerRoster.List)
			r.Post("/groups/manager/users", managerRoster.Add)
			r.Get("/groups/manager/users/{userId}", managerRoster.Get)
			r.Delete("/groups/manager/users/{userId}", managerRoster.Remove)

			r.Get("/groups/delivery-crew/users", crewRoster.List)
			r.Post("/groups/delivery-crew/users", crewRoster.Add)
			r.Delete("/groups/delivery-crew/users/{userId}", crewRoster.Remove)
		})
	})

	// h2c serves HTTP/2 without TLS for clients that ask for it.
	h2cHandler := h2c.NewHandler(r, &http2.Server{})

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      h2cHandler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// bootstrapAdmin creates the configured superuser account on first start.
func bootstrapAdmin(ctx context.Context, store storage.Store, authenticator *auth.PasswordAuthenticator, cfg config.AdminConfig) error {
	if cfg.Username == "" || cfg.Password == "" {
		return nil
	}

	_, err := store.GetUserByUsername(ctx, cfg.Username)
	if err == nil {
		return nil // already bootstrapped
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	user, err := authenticator.Register(ctx, cfg.Username, cfg.Email, cfg.Password)
	if err != nil {
		return err
	}
	// Registration does not know about superusers; flip the flag directly.
	if err := store.SetSuperuser(ctx, user.ID, true); err != nil {
		return err
	}
	slog.Info("admin account bootstrapped", "username", cfg.Username)
	return nil
}
