package extract

// voteTally accumulates votes per value, preserving first-seen order so
// that tie-breaks are deterministic.
type voteTally struct {
	order []string
	votes map[string]int
}

func newVoteTally() *voteTally {
	return &voteTally{votes: make(map[string]int)}
}

func (t *voteTally) add(value string, n int) {
	if _, ok := t.votes[value]; !ok {
		t.order = append(t.order, value)
	}
	t.votes[value] += n
}

func (t *voteTally) collect(texts []string, ctx Context, extractors []Extractor) {
	for _, text := range texts {
		textCtx := ctx.WithText(text)
		for _, extractor := range extractors {
			for _, result := range extractor.ExtractAll(textCtx) {
				if !result.HasValue() {
					continue
				}
				t.add(result.Value, result.Votes)
			}
		}
	}
}

// Tally is one value's summed vote count, as returned by ExtractAllAcrossVariants.
type Tally struct {
	Value string
	Votes int
}

// ExtractBestAcrossVariants runs every extractor against every text variant,
// sums votes per distinct value, and returns the value with the most votes.
// Ties go to whichever value was seen first, matching the insertion-order
// tie-break used throughout the aggregation pipeline.
func ExtractBestAcrossVariants(texts []string, ctx Context, extractors []Extractor) (string, bool) {
	tally := newVoteTally()
	tally.collect(texts, ctx, extractors)
	if len(tally.order) == 0 {
		return "", false
	}

	bestValue := tally.order[0]
	bestVotes := tally.votes[bestValue]
	for _, value := range tally.order[1:] {
		if votes := tally.votes[value]; votes > bestVotes {
			bestValue, bestVotes = value, votes
		}
	}
	return bestValue, true
}

// ExtractAllAcrossVariants runs every extractor against every text variant
// and returns every distinct value with its summed vote count, ordered from
// most to least votes (ties preserve insertion order).
func ExtractAllAcrossVariants(texts []string, ctx Context, extractors []Extractor) []Tally {
	tally := newVoteTally()
	tally.collect(texts, ctx, extractors)

	results := make([]Tally, 0, len(tally.order))
	for _, value := range tally.order {
		results = append(results, Tally{Value: value, Votes: tally.votes[value]})
	}

	for i := 1; i < len(results); i++ {
		for j := i; j > 0 && results[j].Votes > results[j-1].Votes; j-- {
			results[j], results[j-1] = results[j-1], results[j]
		}
	}
	return results
}
