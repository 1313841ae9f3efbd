package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"auto-bargain/internal/config"
	"auto-bargain/internal/domain"
	apihttp "auto-bargain/internal/http"
	"auto-bargain/internal/llm"
	"auto-bargain/internal/service"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	var llmClient llm.Client
	switch cfg.LLMProvider {
	case "openai":
		llmClient = llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, zap.NewStdLog(logger))
	case "gemini":
		gem, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Fatal("gemini client init", zap.Error(err))
		}
		defer gem.Close()
		llmClient = gem
	case "", "none":
		logger.Info("no llm provider configured, running on local templates")
	default:
		logger.Fatal("unknown llm provider", zap.String("provider", cfg.LLMProvider))
	}

	opts := []service.Option{service.WithMaxRounds(cfg.MaxRounds)}
	if llmClient != nil {
		responder := service.NewLLMResponder(llmClient, time.Duration(cfg.LLMTimeoutSeconds)*time.Second, logger)
		opts = append(opts, service.WithResponder(responder))
	}

	locations := domain.DefaultLocations()
	negotiationSvc, err := service.NewNegotiationService(logger, locations, domain.DefaultPhrases(), domain.DefaultKeywords(), opts...)
	if err != nil {
		logger.Fatal("negotiation service init", zap.Error(err))
	}

	if cfg.SessionSecret == "" {
		logger.Fatal("SESSION_SECRET not configured")
	}
	tokenSvc := service.NewSessionTokenService(cfg.SessionSecret, time.Duration(cfg.SessionTTLMinutes)*time.Minute)

	var limiter service.SessionRateLimiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, rate limiting disabled", zap.Error(err))
		} else {
			limiter = service.NewRedisSessionRateLimiter(redisClient, time.Minute, 10)
		}
		cancel()
	}

	handler := apihttp.NewNegotiationHandler(logger, negotiationSvc, tokenSvc, limiter, locations)
	router := apihttp.NewRouter(logger, handler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
