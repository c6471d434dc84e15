package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	"food-preorder/internal/api"
	"food-preorder/internal/auth"
	"food-preorder/internal/config"
	"food-preorder/internal/database"
	"food-preorder/internal/logger"
	"food-preorder/internal/messaging"
	"food-preorder/internal/services/account"
	"food-preorder/internal/services/cart"
	"food-preorder/internal/services/menu"
	"food-preorder/internal/services/notification"
	"food-preorder/internal/services/order"
	"food-preorder/internal/services/restaurant"
)

func main() {
	var (
		mode     = flag.String("mode", "", "Service mode (api-server, notification-subscriber)")
		port     = flag.Int("port", 3000, "HTTP port")
		prefetch = flag.Int("prefetch", 1, "RabbitMQ prefetch count")
	)
	flag.Parse()

	if *mode == "" {
		fmt.Fprintf(os.Stderr, "Error: --mode flag is required\n")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(*mode)
	requestID := logger.GenerateRequestID()

	log.Info("service_started", fmt.Sprintf("Starting %s", *mode), requestID, map[string]interface{}{
		"mode": *mode,
		"port": *port,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	switch *mode {
	case "api-server":
		if err := runAPIServer(ctx, cfg, log, *port); err != nil {
			log.Error("service_failed", "API server failed", requestID, err, nil)
			os.Exit(1)
		}
	case "notification-subscriber":
		if err := runNotificationSubscriber(ctx, cfg, log, *prefetch); err != nil && err != context.Canceled {
			log.Error("service_failed", "Notification subscriber failed", requestID, err, nil)
			os.Exit(1)
		}
	default:
		log.Error("validation_failed", fmt.Sprintf("Unknown mode: %s", *mode), requestID, nil, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

// runAPIServer wires storage, messaging and the HTTP surface together.
func runAPIServer(ctx context.Context, cfg *config.Config, log *logger.Logger, port int) error {
	requestID := logger.GenerateRequestID()

	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	if err := db.RunMigrations(ctx, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)

	publisher := messaging.NewPublisher(conn, log)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTL)*time.Minute)

	accountHandler := account.NewHandler(account.NewService(db, tokens, log), log)
	restaurantHandler := restaurant.NewHandler(restaurant.NewService(db, log), log)

	menuStore := menu.NewCachedStore(menu.NewService(db, log), redisClient, log)
	menuHandler := menu.NewHandler(menuStore, log)

	orderService := order.NewService(db, publisher, log)
	orderHandler := order.NewHandler(orderService, log)

	cartHandler := cart.NewHandler(cart.NewService(redisClient, menuStore, orderService, log), log)

	router := newRouter(log, db, redisClient, tokens,
		accountHandler, restaurantHandler, menuHandler, orderHandler, cartHandler)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: router,
	}

	go func() {
		log.Info("service_started", fmt.Sprintf("API server started on port %d", port), requestID, map[string]interface{}{
			"port": port,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server_failed", "HTTP server failed", requestID, err, nil)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}

func newRouter(
	log *logger.Logger,
	db *database.DB,
	redisClient *redis.Client,
	tokens *auth.TokenManager,
	accountHandler *account.Handler,
	restaurantHandler *restaurant.Handler,
	menuHandler *menu.Handler,
	orderHandler *order.Handler,
	cartHandler *cart.Handler,
) http.Handler {
	r := chi.NewRouter()

	r.Use(api.RequestLogger(log))
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			api.WriteError(w, http.StatusInternalServerError, "Database unavailable")
			return
		}
		if err := redisClient.Ping(ctx).Err(); err != nil {
			api.WriteError(w, http.StatusInternalServerError, "Cache unavailable")
			return
		}
		api.WriteData(w, http.StatusOK, map[string]interface{}{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", accountHandler.Register)
		r.Post("/auth/login", accountHandler.Login)
		r.With(tokens.Require).Get("/auth/me", accountHandler.Me)

		// Catalog reads are public; writes require a session.
		r.Get("/restaurants", restaurantHandler.List)
		r.Get("/restaurants/{id}", restaurantHandler.Get)
		r.Get("/menu", menuHandler.List)
		r.Get("/menu/{id}", menuHandler.Get)
		r.Get("/menu/restaurant/{restaurantId}", menuHandler.ListByRestaurant)

		r.Group(func(r chi.Router) {
			r.Use(tokens.Require)

			r.Post("/restaurants", restaurantHandler.Create)
			r.Put("/restaurants/{id}", restaurantHandler.Update)
			r.Delete("/restaurants/{id}", restaurantHandler.Delete)

			r.Post("/menu", menuHandler.Create)
			r.Put("/menu/{id}", menuHandler.Update)
			r.Delete("/menu/{id}", menuHandler.Delete)

			r.Post("/orders", orderHandler.Create)
			r.Get("/orders", orderHandler.List)
			r.Get("/orders/{id}", orderHandler.Get)
			r.Put("/orders/{id}", orderHandler.Update)
			r.Delete("/orders/{id}", orderHandler.Cancel)
			r.Get("/orders/{id}/history", orderHandler.History)

			r.Get("/cart", cartHandler.Get)
			r.Delete("/cart", cartHandler.Clear)
			r.Post("/cart/items", cartHandler.AddItem)
			r.Delete("/cart/items/{menuItemId}", cartHandler.RemoveItem)
			r.Post("/cart/checkout", cartHandler.Checkout)
		})
	})

	return r
}

// runNotificationSubscriber consumes order status updates and prints them.
func runNotificationSubscriber(ctx context.Context, cfg *config.Config, log *logger.Logger, prefetch int) error {
	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	consumer := messaging.NewConsumer(conn, log, messaging.StatusQueue, "notification-subscriber", prefetch)
	subscriber := notification.NewSubscriber(consumer, log)

	return subscriber.Start(ctx)
}
