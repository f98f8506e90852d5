package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/doclens-cli/internal/core/domain"
	"github.com/custodia-labs/doclens-cli/internal/core/services"
)

var (
	queryTop  int
	queryJSON bool
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	titleStyle   = lipgloss.NewStyle().Bold(true)
	scoreStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	slugStyle    = lipgloss.NewStyle().Faint(true)
	bodyStyle    = lipgloss.NewStyle().PaddingLeft(2).Width(80)
)

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Analyse documentation coverage for a question",
	Long: `Embeds the question, ranks the indexed documents by similarity, and
asks the generative service whether the corpus covers the topic or has
a gap. Requires an index built with 'doclens index'.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().IntVarP(&queryTop, "top", "n", 0, "number of documents to retrieve (default from config)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output the report as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	query := args[0]

	if err := ensureEmbedding(); err != nil {
		return err
	}
	if err := ensureLLM(); err != nil {
		return err
	}
	ensureStore()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	corpus, err := corpusStore.Load(ctx)
	if err != nil {
		return fmt.Errorf("load index: %w", err)
	}

	k := cfg.TopK
	if queryTop > 0 {
		k = queryTop
	}

	analyzer := services.NewCoverageService(corpus, embeddingService, llmService)
	report, err := analyzer.Analyze(ctx, query, k)
	if err != nil {
		// A generative failure still yields the ranked references;
		// show them before reporting the error.
		if report != nil && errors.Is(err, domain.ErrGenerativeService) {
			if renderErr := outputReport(cmd, report); renderErr != nil {
				return renderErr
			}
		}
		return fmt.Errorf("coverage analysis: %w", err)
	}

	return outputReport(cmd, report)
}

func outputReport(cmd *cobra.Command, report *domain.CoverageReport) error {
	if queryJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(headingStyle.Render("Relevant documents"))
	if len(report.Documents) == 0 {
		cmd.Println("  (none)")
	}
	for i, ref := range report.Documents {
		cmd.Printf("  %d. %s %s %s\n",
			i+1,
			titleStyle.Render(ref.Title),
			scoreStyle.Render(fmt.Sprintf("%.4f", ref.Score)),
			slugStyle.Render(ref.Slug),
		)
	}
	cmd.Println()

	if report.Analysis != "" {
		cmd.Println(headingStyle.Render("Coverage analysis"))
		cmd.Println(bodyStyle.Render(report.Analysis))
	}
	return nil
}
