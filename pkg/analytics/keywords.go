package analytics

import (
	"sort"
	"strings"
	"unicode"
)

// stopWords are excluded from keyword extraction.
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "in": true, "on": true,
	"at": true, "to": true, "for": true, "of": true, "and": true,
	"or": true, "is": true, "with": true, "from": true, "vs": true,
	"by": true, "are": true, "be": true, "as": true, "it": true,
	"this": true, "that": true, "my": true, "your": true,
	"i": true, "you": true,
}

// KeywordCount is one extracted keyword with its frequency.
type KeywordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// KeywordReport is the keyword-salience output: the most frequent title
// tokens among the channel's top-performing videos.
type KeywordReport struct {
	SampleSize int            `json:"sample_size"`
	Keywords   []KeywordCount `json:"keywords"`
}

// Tokenize splits a title into lower-cased word tokens, dropping stop
// words and tokens of length 2 or less.
func Tokenize(title string) []string {
	words := strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var tokens []string
	for _, w := range words {
		if len(w) > 2 && !stopWords[w] {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

// TopKeywords ranks token frequency over the top fraction of records by
// view count. Selection ties keep the original record order; frequency
// ties keep first-encountered token order. At least one record is always
// sampled so small catalogs still produce output.
func TopKeywords(records []Record, fraction float64, n int) KeywordReport {
	if fraction <= 0 || fraction > 1 {
		fraction = 0.1
	}
	if n <= 0 {
		n = 15
	}
	if len(records) == 0 {
		return KeywordReport{}
	}

	ranked := make([]Record, len(records))
	copy(ranked, records)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Video.Views > ranked[j].Video.Views
	})

	take := int(float64(len(ranked)) * fraction)
	if take < 1 {
		take = 1
	}
	top := ranked[:take]

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for _, r := range top {
		for _, tok := range Tokenize(r.Video.Title) {
			if _, seen := counts[tok]; !seen {
				firstSeen[tok] = len(firstSeen)
			}
			counts[tok]++
		}
	}

	keywords := make([]KeywordCount, 0, len(counts))
	for w, c := range counts {
		keywords = append(keywords, KeywordCount{Word: w, Count: c})
	}
	sort.SliceStable(keywords, func(i, j int) bool {
		if keywords[i].Count != keywords[j].Count {
			return keywords[i].Count > keywords[j].Count
		}
		return firstSeen[keywords[i].Word] < firstSeen[keywords[j].Word]
	})

	if len(keywords) > n {
		keywords = keywords[:n]
	}
	return KeywordReport{SampleSize: take, Keywords: keywords}
}
