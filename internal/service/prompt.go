package service

import (
	"strings"

	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/domain"
	"github.com/tmc/langchaingo/prompts"
)

// NoInformationAnswer is what the model is told to say when nothing was retrieved.
const NoInformationAnswer = "I don't have any information on that."

const answerTemplate = `
Offer supportive advice for the question {{.query}} with supporting quotes from
---
"{{.docs}}".
---

If there are no documents to quote, say "` + NoInformationAnswer + `"

Mention the quote you're pulling from
Don't quote from other sources.
Make responses about 600 characters
`

// PromptBuilder renders the answer prompt from a query and retrieved quotes.
type PromptBuilder struct {
	template prompts.PromptTemplate
}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{
		template: prompts.NewPromptTemplate(answerTemplate, []string{"query", "docs"}),
	}
}

// Build joins the quote contents with newlines and fills in the template.
func (b *PromptBuilder) Build(query string, quotes []domain.RetrievedQuote) (string, error) {
	docs := make([]string, len(quotes))
	for i, q := range quotes {
		docs[i] = q.Content
	}

	return b.template.Format(map[string]any{
		"query": query,
		"docs":  strings.Join(docs, "\n"),
	})
}
