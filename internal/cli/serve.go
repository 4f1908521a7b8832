package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"art-quiz-service/internal/catalog"
	"art-quiz-service/internal/config"
	"art-quiz-service/internal/domain"
	"art-quiz-service/internal/infra/memory"
	infrapg "art-quiz-service/internal/infra/postgres"
	infraredis "art-quiz-service/internal/infra/redis"
	"art-quiz-service/internal/quiz"
	transport "art-quiz-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// defaultCatalogSource names the dataset served when none is configured.
const defaultCatalogSource = "nga"

// NewServeCmd builds the CLI subcommand to start the server.
func NewServeCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the art quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	catalogSource := cfg.Catalog.Source
	if catalogSource == "" {
		catalogSource = defaultCatalogSource
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 10*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var loader memory.CatalogLoader = memory.NewStaticCatalogLoader(sampleCatalog())
	if pool != nil {
		loader = infrapg.NewCatalogLoader(pool)
	}

	catalogTTL := config.TTLDuration(cfg.Catalog.TTL, 10*time.Minute)
	var catalogRepo quiz.CatalogRepository
	if redisClient != nil {
		catalogRepo = infraredis.NewCatalogRepository(redisClient, loader, catalogTTL)
	} else {
		catalogRepo = memory.NewCatalogRepository(loader, catalogTTL)
	}

	var sessions quiz.SessionRepository
	if redisClient != nil {
		sessions = infraredis.NewSessionStore(redisClient, redisTTL)
	} else {
		sessions = memory.NewSessionStore()
	}

	var profiles quiz.ProfileStore
	switch {
	case pool != nil:
		profiles = infrapg.NewProfileStore(pool)
	case redisClient != nil:
		profiles = infraredis.NewProfileStore(redisClient)
	default:
		profiles = memory.NewProfileStore()
	}

	service := quiz.NewService(sessions, catalogRepo, profiles, catalogSource)

	// The browse API serves from a long-lived store; a load failure leaves
	// it empty and the endpoints report the empty state.
	store := catalog.NewStore()
	if cat, err := catalogRepo.GetCatalog(ctx, catalogSource); err != nil {
		log.Printf("load catalog %q: %v", catalogSource, err)
	} else {
		store.Load(cat.Artworks)
	}

	wsHandler := transport.NewWSHandler(service, profiles, store)
	browseHandler := transport.NewBrowseHandler(store)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	browseHandler.Register(mux)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting art quiz service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleCatalog provides a minimal artwork set; swap the loader for the
// Postgres-backed one in production.
func sampleCatalog() map[string][]domain.Artwork {
	return map[string][]domain.Artwork{
		defaultCatalogSource: {
			{
				ID:          "obj-1",
				Title:       "Girl with a Watering Can",
				Artist:      "Auguste Renoir",
				DisplayDate: "1876",
				Medium:      "oil on canvas",
				Genre:       "Painting",
				Museum:      "National Gallery of Art",
				IIIFBaseURL: "https://api.nga.gov/iiif/60efb4a6",
			},
			{
				ID:          "obj-2",
				Title:       "The Japanese Footbridge",
				Artist:      "Claude Monet",
				DisplayDate: "1899",
				Medium:      "oil on canvas",
				Genre:       "Painting",
				Museum:      "National Gallery of Art",
				IIIFBaseURL: "https://api.nga.gov/iiif/0c05000c",
			},
			{
				ID:          "obj-3",
				Title:       "Self-Portrait",
				Artist:      "Vincent van Gogh",
				DisplayDate: "1889",
				Medium:      "oil on canvas",
				Genre:       "Painting",
				Museum:      "National Gallery of Art",
				IIIFBaseURL: "https://api.nga.gov/iiif/8hd72c1a",
			},
			{
				ID:          "obj-4",
				Title:       "A Lady Writing",
				Artist:      "Johannes Vermeer",
				DisplayDate: "c. 1665",
				Medium:      "oil on canvas",
				Genre:       "Painting",
				Museum:      "National Gallery of Art",
				IIIFBaseURL: "https://api.nga.gov/iiif/46ddcbe7",
			},
			{
				ID:          "obj-5",
				Title:       "The Old Musician",
				Artist:      "Édouard Manet",
				DisplayDate: "1862",
				Medium:      "oil on canvas",
				Genre:       "Painting",
				Museum:      "National Gallery of Art",
				IIIFBaseURL: "https://api.nga.gov/iiif/8b3a7ee2",
			},
		},
	}
}
