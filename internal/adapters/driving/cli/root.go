// Package cli implements the doclens command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/doclens-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/doclens-cli/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/doclens-cli/internal/config"
	"github.com/custodia-labs/doclens-cli/internal/core/ports/driven"
	"github.com/custodia-labs/doclens-cli/internal/logger"
	"github.com/custodia-labs/doclens-cli/internal/parser/markdown"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	cfgFile string
	verbose bool

	cfg *config.Config

	// Services are wired in ensure* helpers. Tests pre-set them to
	// avoid touching the network or the real config directory.
	corpusParser     driven.CorpusParser
	corpusStore      driven.CorpusStore
	embeddingService driven.EmbeddingService
	llmService       driven.LLMService
)

var rootCmd = &cobra.Command{
	Use:   "doclens",
	Short: "Documentation coverage analysis from the command line",
	Long: `doclens indexes a documentation corpus with vector embeddings and
answers free-text queries about coverage: which documents address a
topic, and where the gaps are.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		logger.SetOutput(cmd.ErrOrStderr())

		if cfg == nil {
			loaded, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = loaded
		}
		if corpusParser == nil {
			corpusParser = markdown.New()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.doclens/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ensureEmbedding creates and validates the embedding service for the
// configured provider unless one is already wired.
func ensureEmbedding() error {
	if embeddingService != nil {
		return nil
	}
	svc, err := ai.CreateAndValidateEmbeddingService(cfg)
	if err != nil {
		return err
	}
	embeddingService = svc
	return nil
}

// ensureLLM creates and validates the generative service for the
// configured provider unless one is already wired.
func ensureLLM() error {
	if llmService != nil {
		return nil
	}
	svc, err := ai.CreateAndValidateLLMService(cfg)
	if err != nil {
		return err
	}
	llmService = svc
	return nil
}

// ensureStore creates the snapshot store at the configured path unless
// one is already wired. The model name is recorded in the snapshot
// header when an embedding service is available.
func ensureStore() {
	if corpusStore != nil {
		return
	}
	var opts []file.Option
	if embeddingService != nil {
		opts = append(opts, file.WithModel(embeddingService.ModelName()))
	}
	corpusStore = file.NewCorpusStore(cfg.Snapshot, opts...)
}
