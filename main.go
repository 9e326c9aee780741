package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"catalog/internal/config"
	"catalog/internal/database"
	"catalog/internal/media"
	"catalog/internal/repositories"
	"catalog/internal/server"
	"catalog/internal/services"
	"catalog/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// --- Store ---
	st, err := openStore(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.StoreDriver, err)
	}

	// --- Media host ---
	uploader, err := newUploader(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize %s media host: %v", cfg.MediaDriver, err)
	}

	// --- RabbitMQ (optional) ---
	var events services.EventPublisher
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Printf("Warning: RabbitMQ unavailable, change events disabled: %v", err)
		} else {
			events = mqClient
			if err := mqClient.ConsumeEvents(rabbitmq.LogEvent); err != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", err)
			}
		}
	}

	app := server.New(cfg, server.Deps{
		Products: st.products,
		Users:    st.users,
		Uploader: uploader,
		Events:   events,
		Ping:     st.ping,
	})

	// --- Start HTTP Server ---
	log.Printf("Starting catalog server on port %s (store: %s, media: %s)", cfg.AppPort, cfg.StoreDriver, cfg.MediaDriver)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	if err := st.close(); err != nil {
		log.Printf("Error closing %s store: %v", cfg.StoreDriver, err)
	}
	if mqClient != nil {
		if err := mqClient.Close(); err != nil {
			log.Printf("Error closing RabbitMQ client: %v", err)
		}
	}
	log.Println("Server gracefully stopped")
}

// store bundles the repositories of one driver with its lifecycle hooks.
type store struct {
	products repositories.ProductRepository
	users    repositories.UserRepository
	ping     func(ctx context.Context) error
	close    func() error
}

func openStore(ctx context.Context, cfg config.Config) (*store, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, db, err := database.OpenMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		products := repositories.NewMongoProductRepository(db.Collection(database.ProductsCollection))
		users := repositories.NewMongoUserRepository(db.Collection(database.UsersCollection))
		if err := errors.Join(products.EnsureIndexes(ctx), users.EnsureIndexes(ctx)); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return &store{
			products: products,
			users:    users,
			ping:     func(ctx context.Context) error { return database.PingMongo(ctx, client) },
			close:    func() error { return client.Disconnect(context.Background()) },
		}, nil

	case config.DriverPostgres, config.DriverSQLite:
		db, err := database.OpenGORM(cfg.StoreDriver, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		return &store{
			products: repositories.NewGORMProductRepository(db),
			users:    repositories.NewGORMUserRepository(db),
			ping:     func(ctx context.Context) error { return database.PingGORM(ctx, db) },
			close:    func() error { return database.CloseGORM(db) },
		}, nil

	case config.DriverMemory:
		log.Println("Using in-memory store, data is lost on restart")
		return &store{
			products: repositories.NewMemoryProductRepository(),
			users:    repositories.NewMemoryUserRepository(),
			close:    func() error { return nil },
		}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func newUploader(cfg config.Config) (media.Uploader, error) {
	switch cfg.MediaDriver {
	case config.MediaS3:
		return media.NewS3Uploader(cfg.S3)
	case config.MediaLocal:
		return media.NewLocalUploader(cfg.MediaDir, cfg.MediaBaseURL)
	default:
		return nil, fmt.Errorf("unknown media driver %q", cfg.MediaDriver)
	}
}
