// File: cmd/diagnostic/main.go
//
// Command diagnostic checks that the configured feed, AI backend and
// datastore answer before the server is deployed.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/iyunix/go-newsbot/internal/config"
	"github.com/iyunix/go-newsbot/internal/database"
	"github.com/iyunix/go-newsbot/internal/services"
	"github.com/iyunix/go-newsbot/internal/services/ai"
	"github.com/iyunix/go-newsbot/internal/services/feed"
)

func main() {
	keyword := flag.String("keyword", "인공지능", "keyword for the feed check")
	prompt := flag.String("prompt", "한 문장으로 자기소개를 해주세요.", "prompt for the AI check")
	flag.Parse()

	cfg := config.Load()
	logger := services.NewLogger("newsbot_diagnostic")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	failed := false
	check := func(name string, fn func() error) {
		start := time.Now()
		if err := fn(); err != nil {
			failed = true
			fmt.Printf("FAIL %-9s %v\n", name, err)
			return
		}
		fmt.Printf("OK   %-9s (%s)\n", name, time.Since(start).Round(time.Millisecond))
	}

	check("feed", func() error {
		items, err := feed.NewFetcher(cfg.FeedBaseURL, nil, logger).Search(ctx, *keyword)
		if err != nil {
			return err
		}
		for i, n := range items {
			fmt.Printf("     [%d] %s (%s)\n", i+1, n.Title, n.Source)
		}
		return nil
	})

	check("ai", func() error {
		aiConfig := ai.DefaultConfig()
		aiConfig.Provider = cfg.AIProvider
		aiConfig.APIKey = cfg.AIAPIKey
		aiConfig.BaseURL = cfg.AIBaseURL
		aiConfig.Model = cfg.AIModel

		c, err := ai.NewProvider(aiConfig).Client()
		if err != nil {
			return err
		}
		resp, err := c.Generate(ctx, *prompt)
		if err != nil {
			return err
		}
		fmt.Printf("     %s\n", ai.ExtractText(resp, "(empty response)"))
		return nil
	})

	check("database", func() error {
		p := database.NewProvider(cfg.DatabaseURL, cfg.DatabaseAnonKey, cfg.DatabaseServiceKey)
		defer p.Close()
		for _, h := range []database.Handle{p.Anon(), p.Service()} {
			db, err := h.DB(ctx)
			if err != nil {
				return err
			}
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			if err := sqlDB.PingContext(ctx); err != nil {
				return err
			}
		}
		return nil
	})

	if failed {
		log.Println("one or more checks failed")
		os.Exit(1)
	}
}
