package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/arena-go-api/internal/config"
	"github.com/noah-isme/arena-go-api/internal/database"
	"github.com/noah-isme/arena-go-api/internal/handler"
	"github.com/noah-isme/arena-go-api/internal/middleware"
	"github.com/noah-isme/arena-go-api/internal/models"
	"github.com/noah-isme/arena-go-api/internal/repository"
	"github.com/noah-isme/arena-go-api/internal/router"
	"github.com/noah-isme/arena-go-api/internal/service"
	"github.com/noah-isme/arena-go-api/pkg/ai"
	"github.com/noah-isme/arena-go-api/pkg/tavily"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Debate{}, &models.Debater{}, &models.Evaluation{}, &models.TranscriptEntry{}, &models.FactCheck{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = nats.Connect(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Close()
	}

	completer := buildCompleter(cfg, logger)
	searcher := buildSearcher(cfg, logger)

	validate := validator.New(validator.WithRequiredStructEnabled())

	debateRepo := repository.NewDebateRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)
	transcriptRepo := repository.NewTranscriptRepository(db)
	factCheckRepo := repository.NewFactCheckRepository(db)

	ledgers := service.NewLedgerRegistry(debateRepo, evaluationRepo, logger)
	resultsCache := service.NewResultsCache(redisClient, cfg.ResultsCacheTTL, logger)
	liveService := service.NewLiveService(natsConn, cfg.NATSSubjectBase, logger)

	debateService := service.NewDebateService(debateRepo, transcriptRepo, ledgers, resultsCache, validate, logger)
	moderatorService := service.NewModeratorService(debateRepo, evaluationRepo, transcriptRepo, ledgers, completer, cfg.AIProvider, liveService, resultsCache, validate, logger)
	factCheckService := service.NewFactCheckService(debateRepo, factCheckRepo, transcriptRepo, searcher, validate, logger)

	debateHandler := handler.NewDebateHandler(debateService, logger)
	evaluationHandler := handler.NewEvaluationHandler(moderatorService, logger)
	factCheckHandler := handler.NewFactCheckHandler(factCheckService, logger)
	liveHandler := handler.NewLiveHandler(liveService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		DebateHandler:     debateHandler,
		EvaluationHandler: evaluationHandler,
		FactCheckHandler:  factCheckHandler,
		LiveHandler:       liveHandler,
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	liveService.Start(ctx)

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

// buildCompleter selects the LLM backend from configuration. A missing API
// key yields a nil completer, which routes every evaluation through the
// placeholder path instead of failing requests.
func buildCompleter(cfg config.Config, logger zerolog.Logger) ai.Completer {
	switch cfg.AIProvider {
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			logger.Warn().Msg("anthropic api key not configured, evaluations will use placeholder scores")
			return nil
		}
		client, err := ai.NewAnthropicClient(ai.AnthropicConfig{
			APIKey: cfg.AnthropicAPIKey,
			Model:  cfg.AnthropicModel,
			Logger: logger,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("failed to build anthropic client, evaluations will use placeholder scores")
			return nil
		}
		return client
	default:
		if cfg.OpenAIAPIKey == "" {
			logger.Warn().Msg("openai api key not configured, evaluations will use placeholder scores")
			return nil
		}
		client, err := ai.NewOpenAIClient(ai.OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
			Logger:  logger,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("failed to build openai client, evaluations will use placeholder scores")
			return nil
		}
		return client
	}
}

// buildSearcher wires the fact-check search backend; nil disables the feature.
func buildSearcher(cfg config.Config, logger zerolog.Logger) service.Searcher {
	if cfg.TavilyAPIKey == "" {
		logger.Warn().Msg("tavily api key not configured, fact-checking disabled")
		return nil
	}
	client, err := tavily.New(cfg.TavilyAPIKey, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to build tavily client, fact-checking disabled")
		return nil
	}
	return client
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
