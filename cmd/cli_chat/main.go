package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"auto-bargain/internal/config"
	"auto-bargain/internal/domain"
	"auto-bargain/internal/llm"
	"auto-bargain/internal/service"
)

func main() {
	locationID := flag.String("location", "uncle", "location preset: airport, railway, market, residential or uncle")
	flag.Parse()

	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	opts := []service.Option{service.WithMaxRounds(cfg.MaxRounds)}
	if cfg.LLMProvider == "openai" && cfg.LLMAPIKey != "" {
		client := llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, zap.NewStdLog(logger))
		opts = append(opts, service.WithResponder(service.NewLLMResponder(client, time.Duration(cfg.LLMTimeoutSeconds)*time.Second, logger)))
	} else if cfg.LLMProvider == "gemini" && cfg.GeminiAPIKey != "" {
		gem, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("gemini: %v", err)
		}
		defer gem.Close()
		opts = append(opts, service.WithResponder(service.NewLLMResponder(gem, time.Duration(cfg.LLMTimeoutSeconds)*time.Second, logger)))
	}

	svc, err := service.NewNegotiationService(logger, domain.DefaultLocations(), domain.DefaultPhrases(), domain.DefaultKeywords(), opts...)
	if err != nil {
		log.Fatalf("service: %v", err)
	}

	info, err := svc.StartSession(*locationID)
	if err != nil {
		log.Fatalf("start session: %v", err)
	}

	fmt.Printf("=== %s (%s) ===\n", info.Location, info.Difficulty)
	fmt.Printf("DRIVER: %s\n", info.Greeting)
	fmt.Printf("Asking price: ₹%d (type /reset to start over, /quit to leave)\n\n", info.Price)

	for {
		fmt.Print("YOU: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)

		switch line {
		case "/quit", "/exit":
			return
		case "/reset":
			info, err = svc.ResetSession(info.ID)
			if err != nil {
				log.Fatalf("reset: %v", err)
			}
			fmt.Printf("\nDRIVER: %s\n", info.Greeting)
			fmt.Printf("Asking price: ₹%d\n\n", info.Price)
			continue
		case "":
			continue
		}

		turn, err := svc.SubmitUtterance(ctx, info.ID, line)
		if err != nil {
			if errors.Is(err, domain.ErrSessionEnded) {
				fmt.Println("The driver already left. /reset to try again.")
				continue
			}
			fmt.Printf("error: %v\n", err)
			continue
		}

		fmt.Printf("DRIVER: %s\n", turn.Reply)
		fmt.Printf("  [round %d/%d, price ₹%d, mood %s]\n\n", turn.Round, info.MaxRounds, turn.NewPrice, turn.Mood)

		if turn.Ended {
			s := turn.Score
			fmt.Printf("=== Negotiation over ===\n")
			fmt.Printf("Final price ₹%d (started at ₹%d, saved ₹%d)\n", s.FinalPrice, s.InitialPrice, s.Saved)
			fmt.Printf("Score: %d/100 (grade %s) - savings %d, cultural %d, efficiency %d, mood %d\n",
				s.Total, s.Grade, s.SavingsScore, s.CulturalBonus, s.EfficiencyBonus, s.MoodBonus)
			fmt.Println("Type /reset to negotiate again or /quit to leave.")
		}
	}
}
