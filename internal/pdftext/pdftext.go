// Package pdftext extracts text from a PDF invoice through several
// independent strategies and scores each rendering so the best one can be
// picked for downstream field extraction.
package pdftext

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Variant is one extraction strategy's rendering of a PDF's text, scored by
// a cheap structural quality heuristic.
type Variant struct {
	Text          string
	ExtractorName string
	QualityScore  float64
}

// Result holds every variant produced for one PDF.
type Result struct {
	Variants []Variant
}

// BestText returns the text of the highest-quality-scored variant.
func (r Result) BestText() (string, bool) {
	if len(r.Variants) == 0 {
		return "", false
	}
	best := r.Variants[0]
	for _, v := range r.Variants[1:] {
		if v.QualityScore > best.QualityScore {
			best = v
		}
	}
	return best.Text, true
}

// FromText wraps an already-extracted text (e.g. an inline PDF attachment
// body the caller decoded itself) as a single-variant Result.
func FromText(text, extractorName string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{}
	}
	return Result{Variants: []Variant{{Text: text, ExtractorName: extractorName, QualityScore: calculateQuality(text)}}}
}

var (
	keywordPattern       = regexp.MustCompile(`(?i)\b(invoice|total|amount|date|vat|tax)\b`)
	amountThenCurrency   = regexp.MustCompile(`\d+[.,]\d{2}\s*(EUR|USD|SEK|€|\$)`)
	currencyThenAmount   = regexp.MustCompile(`(EUR|USD|SEK|€|\$)\s*\d+[.,]\d{2}`)
)

// calculateQuality scores a rendering on document shape (a sane line count,
// a plausible space-to-character ratio), the presence of invoice keywords,
// and at least one currency-adjacent amount, penalizing runs of very long
// "words" that usually indicate a garbled extraction.
func calculateQuality(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}

	var score float64

	lines := nonEmptyLines(text)
	if len(lines) > 5 && len(lines) < 500 {
		score += 0.2
	}

	spaceRatio := float64(strings.Count(text, " ")) / float64(len(text))
	if spaceRatio > 0.1 && spaceRatio < 0.3 {
		score += 0.3
	}

	score += float64(len(keywordPattern.FindAllString(text, -1))) * 0.05

	if amountThenCurrency.MatchString(text) {
		score += 0.2
	}
	if currencyThenAmount.MatchString(text) {
		score += 0.2
	}

	longWords := 0
	for _, word := range strings.Split(text, " ") {
		if len(word) > 30 {
			longWords++
		}
	}
	score -= float64(longWords) * 0.05

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

var wordSplitChars = []string{" ", "\n", "\r", "\t", ".", ",", ":", ";", "-", "_"}

func extractWordSet(text string) map[string]bool {
	for _, sep := range wordSplitChars {
		text = strings.ReplaceAll(text, sep, " ")
	}

	words := make(map[string]bool)
	for _, word := range strings.Split(strings.ToLower(text), " ") {
		if len(word) >= 3 {
			words[word] = true
		}
	}
	return words
}

// CalculateSimilarity returns the Jaccard similarity of the two texts' word
// sets (3+ letter tokens, case-insensitive), 0 if either is blank.
func CalculateSimilarity(text1, text2 string) float64 {
	if strings.TrimSpace(text1) == "" || strings.TrimSpace(text2) == "" {
		return 0
	}

	words1, words2 := extractWordSet(text1), extractWordSet(text2)
	if len(words1) == 0 || len(words2) == 0 {
		return 0
	}

	intersection := 0
	for word := range words1 {
		if words2[word] {
			intersection++
		}
	}
	union := len(words1) + len(words2) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// SerializeVariants encodes one text per distinct extractor name (first
// occurrence wins) as a JSON object, for storage alongside the parsed
// invoice record.
func SerializeVariants(result Result) (string, bool) {
	if len(result.Variants) == 0 {
		return "", false
	}

	seen := make(map[string]bool)
	json := "{}"
	for _, v := range result.Variants {
		if seen[v.ExtractorName] {
			continue
		}
		seen[v.ExtractorName] = true

		var err error
		json, err = sjson.Set(json, v.ExtractorName, v.Text)
		if err != nil {
			continue
		}
	}
	return json, true
}

// DeserializeVariants decodes a JSON object produced by SerializeVariants
// back into a Result. Every reconstructed variant has quality score 0, since
// the score is cheap to recompute but not worth persisting.
func DeserializeVariants(jsonValue string) (Result, bool) {
	if strings.TrimSpace(jsonValue) == "" {
		return Result{}, false
	}
	parsed := gjson.Parse(jsonValue)
	if !parsed.IsObject() {
		return Result{}, false
	}

	var variants []Variant
	parsed.ForEach(func(key, value gjson.Result) bool {
		variants = append(variants, Variant{Text: value.String(), ExtractorName: key.String()})
		return true
	})
	if len(variants) == 0 {
		return Result{}, false
	}
	return Result{Variants: variants}, true
}
