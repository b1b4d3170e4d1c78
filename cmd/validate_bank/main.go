// Command validate_bank loads the configured content and reports what it
// holds, or why it cannot be loaded. It exits non-zero on failure.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"classics-study/internal/bank"
	"classics-study/internal/config"
	"classics-study/internal/logger"

	"go.uber.org/zap"
)

func main() {
	dir := flag.String("dir", "", "validate documents in this directory instead of the configured source")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *dir != "" {
		cfg.Content.Source = "dir"
		cfg.Content.Location = *dir
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	source, err := bank.NewSource(cfg.Content)
	if err != nil {
		l.Fatal("Failed to configure content source", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	b, err := bank.NewLoader(source).Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: invalid content: %v\n", source.Describe(), err)
		os.Exit(1)
	}

	fmt.Printf("%s: %d texts, %d questions\n", source.Describe(), len(b.Texts()), len(b.Questions()))
	for _, t := range b.Texts() {
		n := b.QuestionCount(t.ID)
		fmt.Printf("  %4d  %-12s %3d questions\n", t.ID, t.Title, n)
		if n == 0 {
			l.Warn("Text has no questions", zap.Int("text_id", t.ID), zap.String("title", t.Title))
		}
	}
}
