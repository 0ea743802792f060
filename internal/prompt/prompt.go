package prompt

import (
	"fmt"
	"strings"
)

const (
	// NoContextPlaceholder stands in when retrieval found nothing; the
	// question is still asked and the model should answer it doesn't know.
	NoContextPlaceholder = "No relevant context found."

	contextSeparator = "\n\n---\n\n"
)

// Grounded assembles the single-turn prompt sent to the model: instructions,
// the retrieved passages in retrieval order, then the question.
func Grounded(query string, passages []string) string {
	contextBlock := NoContextPlaceholder
	if len(passages) > 0 {
		contextBlock = strings.Join(passages, contextSeparator)
	}

	return fmt.Sprintf(`You are a helpful assistant. Answer the user's question using ONLY the context provided below.
Cite sources by filename in parentheses when relevant. If the answer is not in the context, say you don't know.

Context:
%s

Question: %s

Answer:`, contextBlock, query)
}
