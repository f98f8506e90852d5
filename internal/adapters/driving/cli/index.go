package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/doclens-cli/internal/core/services"
	"github.com/custodia-labs/doclens-cli/internal/logger"
)

var (
	indexWatch       bool
	indexConcurrency int
	indexRetries     int
	indexRate        float64
)

// rebuildDebounce coalesces bursts of filesystem events into one rebuild.
const rebuildDebounce = 500 * time.Millisecond

var indexCmd = &cobra.Command{
	Use:   "index [file]",
	Short: "Build the embedding index from a corpus file",
	Long: `Parses the corpus markdown file into document sections, embeds each
section, and writes the index snapshot to disk. The snapshot replaces
any previous one atomically.

With --watch, the corpus file is monitored and the index is rebuilt
from scratch whenever it changes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVarP(&indexWatch, "watch", "w", false, "rebuild when the corpus file changes")
	indexCmd.Flags().IntVar(&indexConcurrency, "concurrency", 0, "parallel embedding requests (default from config)")
	indexCmd.Flags().IntVar(&indexRetries, "retries", -1, "retries per embedding request (default from config)")
	indexCmd.Flags().Float64Var(&indexRate, "rate", 0, "embedding requests per second, 0 for unlimited (default from config)")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	source := cfg.Source
	if len(args) == 1 {
		source = args[0]
	}
	if source == "" {
		return errors.New("no corpus file: pass one as an argument or set 'source' in the config")
	}

	if corpusParser == nil {
		return errors.New("corpus parser not configured")
	}
	if err := ensureEmbedding(); err != nil {
		return err
	}
	ensureStore()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := buildIndex(ctx, cmd, source); err != nil {
		return err
	}
	if !indexWatch {
		return nil
	}
	return watchIndex(ctx, cmd, source)
}

// buildIndex runs one full parse, embed and save cycle.
func buildIndex(ctx context.Context, cmd *cobra.Command, source string) error {
	f, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	records, err := corpusParser.Parse(ctx, f)
	if err != nil {
		return fmt.Errorf("parse corpus: %w", err)
	}
	cmd.Printf("Parsed %d sections from %s\n", len(records), source)

	concurrency := cfg.Index.Concurrency
	if indexConcurrency > 0 {
		concurrency = indexConcurrency
	}
	retries := cfg.Index.Retries
	if indexRetries >= 0 {
		retries = indexRetries
	}
	rate := cfg.Index.RateLimit
	if indexRate > 0 {
		rate = indexRate
	}

	indexer := services.NewIndexService(embeddingService,
		services.WithConcurrency(concurrency),
		services.WithRetries(retries),
		services.WithRateLimit(rate),
	)

	corpus, err := indexer.Build(ctx, records)
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}

	if err := corpusStore.Save(ctx, corpus); err != nil {
		return fmt.Errorf("save index: %w", err)
	}

	cmd.Printf("Indexed %d documents (%d dimensions, model %s)\n",
		len(corpus), corpus.Dimensions(), embeddingService.ModelName())
	return nil
}

// watchIndex monitors the corpus file and rebuilds the index on change.
// Blocks until the context is cancelled or an interrupt arrives.
func watchIndex(ctx context.Context, cmd *cobra.Command, source string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors replace files via
	// rename, which drops a watch on the file itself.
	dir := filepath.Dir(source)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	target, err := filepath.Abs(source)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", source, err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	cmd.Printf("Watching %s for changes (Ctrl-C to stop)\n", source)

	var debounce *time.Timer
	rebuild := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-sigCh:
			cmd.Println("Stopping watch")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || abs != target {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(rebuildDebounce, func() {
				select {
				case rebuild <- struct{}{}:
				default:
				}
			})

		case <-rebuild:
			cmd.Printf("Change detected, rebuilding index\n")
			if err := buildIndex(ctx, cmd, source); err != nil {
				// Keep watching: a half-written file will settle.
				logger.Error("rebuild failed: %v", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error: %v", err)
		}
	}
}
