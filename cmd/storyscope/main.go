package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	charmlog "github.com/charmbracelet/log"
	_ "github.com/joho/godotenv/autoload"
	gommonlog "github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/vampirenirmal/storyscope/internal/config"
	"github.com/vampirenirmal/storyscope/internal/domain/manuscript"
	"github.com/vampirenirmal/storyscope/internal/engine"
	"github.com/vampirenirmal/storyscope/internal/server"
	"github.com/vampirenirmal/storyscope/internal/storage"
)

func main() {
	handler := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
		Level:           charmlog.InfoLevel,
	})
	if os.Getenv("STORYSCOPE_DEBUG") != "" {
		handler.SetLevel(charmlog.DebugLevel)
	}
	logger := slog.New(handler)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("loading config", "error", err)
		os.Exit(1)
	}

	eng, err := engine.New(cfg.Limits, logger)
	if err != nil {
		logger.Error("building engine", "error", err)
		os.Exit(1)
	}

	reports := storage.NewReports(storage.NewFileSystem(cfg.Paths.OutputDir))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch os.Args[1] {
	case "analyze":
		err = runAnalyze(ctx, os.Args[2:], eng, reports, logger)
	case "batch":
		err = runBatch(ctx, os.Args[2:], cfg, eng, reports, logger)
	case "serve":
		err = runServe(ctx, os.Args[2:], cfg, eng, reports, logger)
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage:
  storyscope analyze <file> [--names a,b,c] [--out dir]
  storyscope batch <dir> [--names a,b,c]
  storyscope serve [--addr host:port]`)
}

func runAnalyze(ctx context.Context, args []string, eng *engine.Engine, reports *storage.Reports, logger *slog.Logger) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	names := fs.String("names", "", "comma-separated canonical character names")
	out := fs.String("out", "", "report output directory (overrides config)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("analyze needs exactly one manuscript file")
	}
	if *out != "" {
		reports = storage.NewReports(storage.NewFileSystem(*out))
	}

	results, err := analyzeFile(ctx, fs.Arg(0), splitNames(*names), eng, reports)
	if err != nil {
		return err
	}
	printSummary(results)
	return nil
}

func runBatch(ctx context.Context, args []string, cfg *config.Config, eng *engine.Engine, reports *storage.Reports, logger *slog.Logger) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	names := fs.String("names", "", "comma-separated canonical character names")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("batch needs exactly one directory")
	}

	files, err := manuscriptFiles(fs.Arg(0))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no manuscript files found in %s", fs.Arg(0))
	}

	canonical := splitNames(*names)
	limiter := rate.NewLimiter(rate.Limit(float64(cfg.Limits.RateLimit.AnalysesPerMinute)/60), cfg.Limits.RateLimit.BurstSize)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Limits.BatchWorkers)
	for _, file := range files {
		file := file
		g.Go(func() error {
			if err := limiter.Wait(gctx); err != nil {
				return err
			}
			results, err := analyzeFile(gctx, file, canonical, eng, reports)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			logger.Info("analyzed",
				"file", filepath.Base(file),
				"words", results.WordCount,
				"structure_score", structureScore(results),
				"report", results.ID)
			return nil
		})
	}
	return g.Wait()
}

func runServe(ctx context.Context, args []string, cfg *config.Config, eng *engine.Engine, reports *storage.Reports, logger *slog.Logger) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", cfg.Server.Addr, "listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	srv := server.New(eng, reports)
	srv.Echo.Logger.SetLevel(gommonlog.INFO)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(*addr)
	}()
	logger.Info("serving", "addr", *addr)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		return srv.Shutdown(context.Background())
	}
}

func analyzeFile(ctx context.Context, path string, names []string, eng *engine.Engine, reports *storage.Reports) (*manuscript.AnalysisResults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manuscript: %w", err)
	}
	results := eng.Analyze(manuscript.Request{
		Text:           string(data),
		SourceName:     filepath.Base(path),
		CharacterNames: names,
	})
	if _, err := reports.Save(ctx, results); err != nil {
		return nil, err
	}
	return results, nil
}

func manuscriptFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".txt", ".md", ".fountain":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}

func splitNames(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func structureScore(r *manuscript.AnalysisResults) int {
	if r.Plot == nil {
		return 0
	}
	return r.Plot.StructureScore
}

func printSummary(r *manuscript.AnalysisResults) {
	fmt.Printf("Report %s (%s)\n", r.ID, r.SourceName)
	fmt.Printf("  words=%d sentences=%d paragraphs=%d pages=%d\n",
		r.WordCount, r.SentenceCount, r.ParagraphCount, r.PageCount)
	fmt.Printf("  prose: passive=%d adverbs=%d cliches=%d filter=%d reading_level=%s\n",
		r.Prose.PassiveVoiceCount, r.Prose.AdverbCount, r.Prose.ClicheCount,
		r.Prose.FilterWordCount, r.Prose.ReadingLevel)
	fmt.Printf("  dialogue: segments=%d quality=%.0f\n",
		r.Dialogue.SegmentCount, r.Dialogue.QualityScore)
	if r.Plot != nil {
		fmt.Printf("  plot: format=%s score=%d points=%d missing=%s\n",
			r.Plot.Format, r.Plot.StructureScore, len(r.Plot.PlotPoints),
			strings.Join(r.Plot.MissingPoints, ", "))
		for _, issue := range r.Plot.StructuralIssues {
			fmt.Printf("    [%s] %s\n", issue.Severity, issue.Description)
		}
	}
	for _, loop := range r.DecisionBeliefLoops {
		fmt.Printf("  arc %s: %d entries, quality=%s\n",
			loop.Character, len(loop.Entries), loop.ArcQuality())
	}
}
