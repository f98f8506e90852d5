package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/doclens-cli/internal/core/domain"
	"github.com/custodia-labs/doclens-cli/internal/core/ports/driven"
)

// Generation settings per prompt flavour. Gap suggestions benefit from
// a higher temperature; refinement stays closer to the given context.
const (
	gapTemperature    = 0.7
	refineTemperature = 0.4
	analysisMaxTokens = 2048
)

const gapPromptTemplate = `The current documentation contains no direct information about the topic: %q.
Based on your general knowledge of information security product documentation,
suggest 5 possible document topics or sections that could be created to cover
this subject. Format the suggestions as a simple numbered list.

Suggestions:
`

const refinePromptTemplate = `The question/topic under coverage analysis is: %q.
Based on the existing documentation context provided below, and on your general
knowledge of information security product documentation, identify 3 to 5 points
of improvement or expansion in the current documentation related to this topic.
Format each suggestion as a numbered list item with a suggested title and
suggested content as sub-items. Where manuals or other documents are mentioned,
suggest adding direct links.

Relevant documentation context (full document content with title, slug and file path):
%s
Coverage improvement suggestions for %q:
`

// buildPrompt assembles the prompt for the generative reasoning
// service. With no ranked documents it asks for gap-filling topics;
// otherwise it asks for refinements grounded in the retrieved context.
func buildPrompt(query string, results []domain.RankedResult) (string, driven.GenerateOptions) {
	if len(results) == 0 {
		return fmt.Sprintf(gapPromptTemplate, query), driven.GenerateOptions{
			MaxTokens:   analysisMaxTokens,
			Temperature: gapTemperature,
		}
	}

	var ctx strings.Builder
	for _, res := range results {
		fmt.Fprintf(&ctx, "Title: %s\nSlug: %s\nFile path: %s\nContent: %s\n\n",
			res.Document.Title, res.Document.Slug, res.Document.FilePath, res.Document.Content)
	}
	return fmt.Sprintf(refinePromptTemplate, query, ctx.String(), query), driven.GenerateOptions{
		MaxTokens:   analysisMaxTokens,
		Temperature: refineTemperature,
	}
}

// analysisPreamble prefixes the generated text so the answer states
// up front whether the topic is covered at all.
func analysisPreamble(query string, covered bool) string {
	if !covered {
		return fmt.Sprintf("No clear coverage of %q was found in the documentation.\n\nPossible topics to close this gap:\n", query)
	}
	return fmt.Sprintf("The existing documentation already covers %q in part. For broader coverage, consider the following improvements:\n\n", query)
}
