package services

import (
	"math"
	"regexp"
	"strings"
)

// Option matching: the QA model returns a free-text answer; MatchOption maps
// it onto one of the fixed choices by building TF-IDF vectors over the
// filtered options plus the answer and picking the option whose vector has
// the highest cosine similarity to the answer's. Pure, no I/O.

// Tokens are runs of 2+ word characters, lowercased.
var tokenPattern = regexp.MustCompile(`\w\w+`)

func tokenize(s string) []string {
	return tokenPattern.FindAllString(strings.ToLower(s), -1)
}

// MatchOption returns the option most similar to generatedAnswer, verbatim
// from the original slice. Empty options are ignored for scoring but their
// original positions are preserved. Ties resolve to the earliest option.
// ok is false when no usable candidates remain or fewer than two documents
// exist to build a vector space from.
func MatchOption(generatedAnswer string, options []string) (best string, ok bool) {
	type candidate struct {
		origIndex int
		text      string
	}

	var filtered []candidate
	for i, opt := range options {
		if opt != "" {
			filtered = append(filtered, candidate{origIndex: i, text: opt})
		}
	}
	if len(filtered) == 0 {
		return "", false
	}

	docs := make([][]string, 0, len(filtered)+1)
	for _, c := range filtered {
		docs = append(docs, tokenize(c.text))
	}
	docs = append(docs, tokenize(generatedAnswer))
	if len(docs) < 2 {
		return "", false
	}

	vectors := tfidfVectors(docs)
	answerVec := vectors[len(vectors)-1]

	bestIdx := -1
	bestScore := math.Inf(-1)
	for i := 0; i < len(filtered); i++ {
		score := dot(vectors[i], answerVec)
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return "", false
	}

	return options[filtered[bestIdx].origIndex], true
}

// tfidfVectors builds L2-normalized TF-IDF vectors with smoothed IDF
// (ln((1+n)/(1+df)) + 1) over the shared vocabulary of docs. Cosine
// similarity between normalized vectors reduces to their dot product.
func tfidfVectors(docs [][]string) []map[string]float64 {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, tok := range doc {
			if !seen[tok] {
				seen[tok] = true
				df[tok]++
			}
		}
	}

	n := float64(len(docs))
	idf := make(map[string]float64, len(df))
	for tok, count := range df {
		idf[tok] = math.Log((1+n)/(1+float64(count))) + 1
	}

	vectors := make([]map[string]float64, len(docs))
	for i, doc := range docs {
		tf := make(map[string]float64)
		for _, tok := range doc {
			tf[tok]++
		}

		vec := make(map[string]float64, len(tf))
		var norm float64
		for tok, count := range tf {
			w := count * idf[tok]
			vec[tok] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for tok := range vec {
				vec[tok] /= norm
			}
		}
		vectors[i] = vec
	}

	return vectors
}

func dot(a, b map[string]float64) float64 {
	// Iterate the smaller map
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for tok, w := range a {
		sum += w * b[tok]
	}
	return sum
}
