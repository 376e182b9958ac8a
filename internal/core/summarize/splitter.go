package summarize

import (
	"strings"
)

// WordsToTokensRatio converts a word count into an approximate token cost.
// The 1.3 factor matches observed tokenizer behavior closely enough for
// context budgeting.
const WordsToTokensRatio = 1.3

// EstimateTokens returns the approximate token cost of text.
func EstimateTokens(text string) float64 {
	return float64(len(strings.Fields(text))) * WordsToTokensRatio
}

// Chunk is a size-bounded slice of a transcript. Chunks after the first
// carry OverlapSentences leading sentences repeated from the previous
// chunk's tail for context continuity.
type Chunk struct {
	Index            int
	Text             string
	TokenEstimate    float64
	OverlapSentences int
}

// SplitSentences splits text on sentence-final punctuation (., !, ?)
// followed by whitespace, and on newlines. Deterministic: the same input
// always yields the same sentence sequence.
func SplitSentences(text string) []string {
	var sentences []string
	var cur strings.Builder

	flush := func() {
		s := strings.TrimSpace(cur.String())
		if s != "" {
			sentences = append(sentences, s)
		}
		cur.Reset()
	}

	runes := []rune(text)
	for i, r := range runes {
		if r == '\n' {
			flush()
			continue
		}
		cur.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			// boundary only when followed by whitespace or end of text,
			// so "3.14" and "e.g." stay intact
			if i+1 >= len(runes) || runes[i+1] == ' ' || runes[i+1] == '\t' || runes[i+1] == '\n' {
				flush()
			}
		}
	}
	flush()
	return sentences
}

// Split partitions text into chunks of at most maxTokens estimated tokens,
// accumulating whole sentences greedily. When a chunk closes, the next one
// is seeded with as many trailing sentences of the closed chunk as fit
// within overlapTokens, walking backward from the end, kept in original
// order. A single sentence larger than maxTokens is never cut: it occupies
// its own (oversized) chunk.
func Split(text string, maxTokens, overlapTokens int) []Chunk {
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	costs := make([]float64, len(sentences))
	for i, s := range sentences {
		costs[i] = EstimateTokens(s)
	}

	budget := float64(maxTokens)
	overlapBudget := float64(overlapTokens)

	var chunks []Chunk
	var cur []int // indexes into sentences
	var curTokens float64
	overlapCount := 0

	closeChunk := func() {
		if len(cur) == 0 {
			return
		}
		parts := make([]string, len(cur))
		for i, idx := range cur {
			parts[i] = sentences[idx]
		}
		chunks = append(chunks, Chunk{
			Index:            len(chunks),
			Text:             strings.Join(parts, " "),
			TokenEstimate:    curTokens,
			OverlapSentences: overlapCount,
		})
	}

	for i := range sentences {
		if len(cur) > 0 && curTokens+costs[i] > budget {
			closeChunk()

			// seed the next chunk with the closed chunk's tail
			var overlap []int
			var overlapTok float64
			for j := len(cur) - 1; j >= 0; j-- {
				idx := cur[j]
				if overlapTok+costs[idx] > overlapBudget {
					break
				}
				overlap = append([]int{idx}, overlap...)
				overlapTok += costs[idx]
			}

			// drop overlap from the front if it would push this chunk
			// over budget together with the incoming sentence
			for len(overlap) > 0 && overlapTok+costs[i] > budget {
				overlapTok -= costs[overlap[0]]
				overlap = overlap[1:]
			}

			cur = overlap
			curTokens = overlapTok
			overlapCount = len(overlap)
		}

		cur = append(cur, i)
		curTokens += costs[i]
	}
	closeChunk()

	return chunks
}
