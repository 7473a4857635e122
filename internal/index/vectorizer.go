package index

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/hyperjump/kotae/pkg/utils"
)

// Tokens of two or more letters/digits; single characters carry no signal.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}][\p{L}\p{N}]+`)

// Tokenize returns lowercase unigram and bigram terms for text.
func Tokenize(text string) []string {
	words := tokenPattern.FindAllString(strings.ToLower(text), -1)
	if len(words) == 0 {
		return nil
	}
	terms := make([]string, 0, 2*len(words)-1)
	terms = append(terms, words...)
	for i := 0; i+1 < len(words); i++ {
		terms = append(terms, words[i]+" "+words[i+1])
	}
	return terms
}

// Vectorizer maps texts to L2-normalized TF-IDF vectors over a fixed
// vocabulary. The vocabulary and IDF weights are frozen by Fit; Transform
// never grows them, and terms outside the vocabulary are ignored.
type Vectorizer struct {
	Terms []string  `json:"terms"` // vocabulary, sorted
	IDF   []float64 `json:"idf"`   // per-term inverse document frequency

	vocab map[string]int // term -> column, derived from Terms
}

// Fit builds a vectorizer from the corpus texts. The vocabulary is capped to
// the maxFeatures most frequent terms across the corpus (ties broken by term
// order); maxFeatures <= 0 means no cap.
func Fit(texts []string, maxFeatures int) *Vectorizer {
	df := make(map[string]int) // document frequency
	cf := make(map[string]int) // corpus-wide term frequency, for the cap
	for _, text := range texts {
		seen := make(map[string]struct{})
		for _, term := range Tokenize(text) {
			cf[term]++
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	terms := make([]string, 0, len(cf))
	for term := range cf {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if cf[terms[i]] != cf[terms[j]] {
			return cf[terms[i]] > cf[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if maxFeatures > 0 && len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}
	sort.Strings(terms)

	v := &Vectorizer{
		Terms: terms,
		IDF:   make([]float64, len(terms)),
	}
	n := float64(len(texts))
	for i, term := range terms {
		v.IDF[i] = smoothedIDF(n, float64(df[term]))
	}
	v.rebuildVocab()
	return v
}

// Transform returns the L2-normalized TF-IDF vector for text over the frozen
// vocabulary. Texts sharing no vocabulary terms map to the zero vector.
func (v *Vectorizer) Transform(text string) []float64 {
	vec := make([]float64, len(v.Terms))
	for _, term := range Tokenize(text) {
		if col, ok := v.vocab[term]; ok {
			vec[col] += v.IDF[col]
		}
	}
	utils.NormalizeL2(vec)
	return vec
}

// Dim returns the vocabulary size.
func (v *Vectorizer) Dim() int {
	return len(v.Terms)
}

func (v *Vectorizer) rebuildVocab() {
	v.vocab = make(map[string]int, len(v.Terms))
	for i, term := range v.Terms {
		v.vocab[term] = i
	}
}

// smoothedIDF is ln((1+n)/(1+df)) + 1, so terms present in every document
// still contribute a positive weight.
func smoothedIDF(n, df float64) float64 {
	return math.Log((1+n)/(1+df)) + 1
}
