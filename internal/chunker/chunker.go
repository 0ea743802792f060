package chunker

import (
	"regexp"
	"strings"
)

// DefaultChunkSize is a soft bound: a single sentence longer than the limit is
// never split mid-sentence.
const DefaultChunkSize = 500

var sentenceRe = regexp.MustCompile(`[^.!?]+[.!?]+`)

type Chunk struct {
	Text  string `json:"text"`
	Index int    `json:"index"`
}

// Split breaks text into sentence-aligned chunks. Sentences are greedily
// accumulated until appending the next one would push the buffer past
// maxChunkSize; the buffer is then flushed and the sentence starts a new one.
// Pure function, no error conditions; empty input yields no chunks.
func Split(text string, maxChunkSize int) []Chunk {
	if maxChunkSize <= 0 {
		maxChunkSize = DefaultChunkSize
	}

	sentences := sentenceRe.FindAllString(text, -1)
	if len(sentences) == 0 {
		// No terminator anywhere: the whole input is one sentence unit.
		sentences = []string{text}
	}

	var chunks []Chunk
	var current string
	chunkIndex := 0

	for _, sentence := range sentences {
		if len(current)+len(sentence) > maxChunkSize && len(current) > 0 {
			chunks = append(chunks, Chunk{Text: strings.TrimSpace(current), Index: chunkIndex})
			chunkIndex++
			current = sentence
		} else {
			current += " " + sentence
		}
	}

	if strings.TrimSpace(current) != "" {
		chunks = append(chunks, Chunk{Text: strings.TrimSpace(current), Index: chunkIndex})
	}

	return chunks
}

// Texts returns the chunk texts in index order.
func Texts(chunks []Chunk) []string {
	out := make([]string, len(chunks))
	for i, c := range chunks {
		out[i] = c.Text
	}
	return out
}
