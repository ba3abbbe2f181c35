// Command ingest runs the word-ingestion pipeline for a batch of words from
// the command line or a word list file, on behalf of one user. It is meant
// for pre-filling a dictionary offline, not as part of the main server.
//
// Flags:
//
//	--user   UUID of the user to link ingested words to (required)
//	--base   base language code (default: from the user's settings)
//	--target target language code (default: from the user's settings)
//	--file   path to a word list, one word per line ("-" for stdin)
//
// Remaining arguments are treated as words. Exit codes: 0 = success,
// 1 = error, 2 = finished with per-word failures.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/polyglotta/polyglotta-backend/internal/adapter/postgres"
	dictionaryrepo "github.com/polyglotta/polyglotta-backend/internal/adapter/postgres/dictionary"
	userrepo "github.com/polyglotta/polyglotta-backend/internal/adapter/postgres/user"
	userdictrepo "github.com/polyglotta/polyglotta-backend/internal/adapter/postgres/userdict"
	wordrepo "github.com/polyglotta/polyglotta-backend/internal/adapter/postgres/word"
	analysisprovider "github.com/polyglotta/polyglotta-backend/internal/adapter/provider/analysis"
	"github.com/polyglotta/polyglotta-backend/internal/config"
	"github.com/polyglotta/polyglotta-backend/internal/domain"
	"github.com/polyglotta/polyglotta-backend/internal/service/ingestion"
	"github.com/polyglotta/polyglotta-backend/pkg/ctxutil"
)

func main() {
	userFlag := flag.String("user", "", "UUID of the user to link ingested words to")
	baseFlag := flag.String("base", "", "base language code")
	targetFlag := flag.String("target", "", "target language code")
	fileFlag := flag.String("file", "", `path to a word list, one word per line ("-" for stdin)`)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	userID, err := uuid.Parse(*userFlag)
	if err != nil {
		logger.Error("--user must be a valid UUID", slog.String("error", err.Error()))
		os.Exit(1)
	}

	words, err := collectWords(*fileFlag, flag.Args())
	if err != nil {
		logger.Error("read word list", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if len(words) == 0 {
		logger.Info("nothing to ingest")
		return
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	users := userrepo.New(pool)

	base, target := domain.Language(*baseFlag), domain.Language(*targetFlag)
	if base == "" || target == "" {
		settings, err := users.GetSettings(ctx, userID)
		if err != nil {
			logger.Error("resolve languages from user settings", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if base == "" {
			base = settings.BaseLanguage
		}
		if target == "" {
			target = settings.TargetLanguage
		}
	}

	analyzer := analysisprovider.NewProvider(analysisprovider.Config{
		APIKey:  cfg.Analysis.APIKey,
		Model:   cfg.Analysis.Model,
		Timeout: cfg.Analysis.Timeout,
	}, logger)

	svc := ingestion.NewService(logger, analyzer,
		wordrepo.New(pool), dictionaryrepo.New(pool), userdictrepo.New(pool),
		users, users, postgres.NewTxManager(pool),
		cfg.Dictionary)

	ctx = ctxutil.WithUserID(ctx, userID)

	failed := 0
	for _, word := range words {
		if err := ingestOne(ctx, svc, word, base, target); err != nil {
			logger.Error("ingest failed",
				slog.String("word", word), slog.String("error", err.Error()))
			failed++
			continue
		}
		logger.Info("ingested", slog.String("word", word))
	}

	logger.Info("done",
		slog.Int("total", len(words)),
		slog.Int("ok", len(words)-failed),
		slog.Int("failed", failed),
	)
	if failed > 0 {
		os.Exit(2)
	}
}

// ingestOne ingests a single word, retrying transient failures (provider
// unavailable, write conflicts) with exponential backoff.
func ingestOne(ctx context.Context, svc *ingestion.Service, word string, base, target domain.Language) error {
	op := func() error {
		_, err := svc.IngestWord(ctx, ingestion.IngestInput{
			Word:           word,
			BaseLanguage:   base,
			TargetLanguage: target,
		})
		if err != nil && !domain.IsRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = time.Second
	bo.MaxInterval = 30 * time.Second

	err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(bo, 4), ctx))
	var perm *backoff.PermanentError
	if errors.As(err, &perm) {
		return perm.Unwrap()
	}
	return err
}

func collectWords(path string, args []string) ([]string, error) {
	seen := make(map[string]struct{})
	var words []string
	add := func(w string) {
		w = strings.TrimSpace(w)
		if w == "" {
			return
		}
		key := domain.NormalizeText(w)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		words = append(words, w)
	}

	for _, a := range args {
		add(a)
	}

	if path == "" {
		return words, nil
	}

	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		add(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan word list: %w", err)
	}

	return words, nil
}
