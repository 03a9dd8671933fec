package model

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// Tokens are runs of at least two letters or digits, lowercased.
var tokenPattern = regexp.MustCompile(`[\pL\pN]{2,}`)

func tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// terms expands tokens into unigrams and bigrams.
func terms(tokens []string) []string {
	out := make([]string, 0, 2*len(tokens))
	out = append(out, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		out = append(out, tokens[i]+" "+tokens[i+1])
	}
	return out
}

// vectorizer maps text to L2-normalized TF-IDF vectors over a fixed
// vocabulary learned from a training corpus.
type vectorizer struct {
	Vocabulary map[string]int
	IDF        []float64
}

// fitVectorizer builds the vocabulary and IDF weights from the corpus.
// When the corpus yields more than maxFeatures distinct terms, the most
// frequent ones are kept (ties broken alphabetically, so fitting is
// deterministic).
func fitVectorizer(docs []string, maxFeatures int) *vectorizer {
	docFreq := make(map[string]int)
	termFreq := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, term := range terms(tokenize(doc)) {
			termFreq[term]++
			if !seen[term] {
				seen[term] = true
				docFreq[term]++
			}
		}
	}

	vocab := make([]string, 0, len(termFreq))
	for term := range termFreq {
		vocab = append(vocab, term)
	}
	if len(vocab) > maxFeatures {
		sort.Slice(vocab, func(i, j int) bool {
			if termFreq[vocab[i]] != termFreq[vocab[j]] {
				return termFreq[vocab[i]] > termFreq[vocab[j]]
			}
			return vocab[i] < vocab[j]
		})
		vocab = vocab[:maxFeatures]
	}
	sort.Strings(vocab)

	v := &vectorizer{
		Vocabulary: make(map[string]int, len(vocab)),
		IDF:        make([]float64, len(vocab)),
	}
	n := float64(len(docs))
	for i, term := range vocab {
		v.Vocabulary[term] = i
		// Smoothed IDF, as if every term appeared in one extra document.
		v.IDF[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}
	return v
}

// Transform converts text into an L2-normalized TF-IDF vector. Terms
// outside the vocabulary are ignored.
func (v *vectorizer) Transform(text string) []float64 {
	x := make([]float64, len(v.IDF))
	for _, term := range terms(tokenize(text)) {
		if i, ok := v.Vocabulary[term]; ok {
			x[i] += v.IDF[i]
		}
	}

	var norm float64
	for _, val := range x {
		norm += val * val
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range x {
			x[i] /= norm
		}
	}
	return x
}
