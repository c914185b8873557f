// Package extract implements the anchored extraction engine: correlating
// candidate values (dates, amounts, invoice numbers, vendor names) with
// nearby label anchors using two-dimensional distance over reconstructed
// text, and aggregating votes across extractors and text variants.
package extract

import (
	"math"
	"regexp"
	"strings"
)

// TextPosition locates a matched span within layout-reconstructed text.
type TextPosition struct {
	Line      int
	Column    int
	EndColumn int
	CharIndex int
}

// Length returns the span width in bytes.
func (p TextPosition) Length() int { return p.EndColumn - p.Column }

// AnchorPosition is a value's relative position to its matched anchor.
type AnchorPosition int

const (
	PositionNone AnchorPosition = iota
	PositionLeft
	PositionRight
	PositionAbove
	PositionBelow
	PositionAny
)

func (p AnchorPosition) String() string {
	switch p {
	case PositionLeft:
		return "Left"
	case PositionRight:
		return "Right"
	case PositionAbove:
		return "Above"
	case PositionBelow:
		return "Below"
	case PositionAny:
		return "Any"
	default:
		return "None"
	}
}

// Anchor is a static label pattern that awards bonus votes to values found
// near it. Anchors are grouped by field and compiled once at package load.
type Anchor struct {
	Pattern     string
	BonusVotes  int
	Description string
	compiled    *regexp.Regexp
}

func newAnchor(pattern string, bonusVotes int, description string) Anchor {
	return Anchor{
		Pattern:     pattern,
		BonusVotes:  bonusVotes,
		Description: description,
		compiled:    regexp.MustCompile(`(?i)` + pattern),
	}
}

// FoundAnchor is an anchor match located within the text.
type FoundAnchor struct {
	Anchor      Anchor
	Position    TextPosition
	MatchedText string
}

// FoundValue is a value-pattern match located within the text.
type FoundValue struct {
	Value       string
	Position    TextPosition
	MatchedText string
}

// AnchoredMatch pairs a candidate value with the best-scoring anchor found
// near it, if any.
type AnchoredMatch struct {
	Value         string
	BaseVotes     int
	AnchorBonus   int
	AnchorMatched string
	Position      AnchorPosition
	Distance      int
	MatchedText   string
	ValuePosition TextPosition
}

// TotalVotes is BaseVotes plus whatever anchor bonus was awarded.
func (m AnchoredMatch) TotalVotes() int { return m.BaseVotes + m.AnchorBonus }

const (
	maxHorizontalDistance = 30
	maxVerticalDistance   = 2
	columnTolerance       = 10
)

func buildLineIndex(text string) []int {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func position(charIndex, length int, lineStarts []int) TextPosition {
	line := 0
	for i, start := range lineStarts {
		if start > charIndex {
			break
		}
		line = i
	}
	column := charIndex - lineStarts[line]
	return TextPosition{Line: line, Column: column, EndColumn: column + length, CharIndex: charIndex}
}

func findAnchors(text string, anchors []Anchor, lineStarts []int) []FoundAnchor {
	var found []FoundAnchor
	for _, anchor := range anchors {
		for _, loc := range anchor.compiled.FindAllStringIndex(text, -1) {
			pos := position(loc[0], loc[1]-loc[0], lineStarts)
			found = append(found, FoundAnchor{Anchor: anchor, Position: pos, MatchedText: text[loc[0]:loc[1]]})
		}
	}
	return found
}

func findValues(text string, valuePattern string, lineStarts []int) []FoundValue {
	re := regexp.MustCompile(`(?i)` + valuePattern)
	var found []FoundValue
	for _, loc := range re.FindAllStringIndex(text, -1) {
		matched := text[loc[0]:loc[1]]
		pos := position(loc[0], loc[1]-loc[0], lineStarts)
		found = append(found, FoundValue{Value: strings.TrimSpace(matched), Position: pos, MatchedText: matched})
	}
	return found
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func relativePosition(anchor FoundAnchor, value FoundValue) (AnchorPosition, int) {
	a := anchor.Position
	v := value.Position

	if a.Line == v.Line {
		if a.EndColumn <= v.Column {
			distance := v.Column - a.EndColumn
			if distance <= maxHorizontalDistance {
				return PositionLeft, distance
			}
		} else if v.EndColumn <= a.Column {
			distance := a.Column - v.EndColumn
			if distance <= maxHorizontalDistance {
				return PositionRight, distance
			}
		}
	}

	lineDiff := v.Line - a.Line
	if abs(lineDiff) <= maxVerticalDistance {
		columnsAlign := abs(a.Column-v.Column) <= columnTolerance || abs(a.EndColumn-v.Column) <= columnTolerance
		if columnsAlign {
			if lineDiff > 0 {
				return PositionAbove, lineDiff
			}
			if lineDiff < 0 {
				return PositionBelow, -lineDiff
			}
		}
	}

	charDistance := abs(v.CharIndex - a.Position.CharIndex)
	if charDistance <= maxHorizontalDistance*3 {
		return PositionAny, charDistance
	}

	return PositionNone, math.MaxInt32
}

func calculateBonus(anchor Anchor, pos AnchorPosition, distance int) int {
	if pos == PositionNone {
		return 0
	}

	var multiplier float64
	switch pos {
	case PositionLeft:
		if distance <= 3 {
			multiplier = 1.0
		} else {
			multiplier = math.Max(0.5, 1.0-float64(distance)/30.0)
		}
	case PositionAbove:
		if distance == 1 {
			multiplier = 0.9
		} else {
			multiplier = 0.7
		}
	case PositionRight:
		multiplier = 0.4
	case PositionBelow:
		multiplier = 0.3
	case PositionAny:
		multiplier = 0.3
	}

	return int(math.Round(float64(anchor.BonusVotes) * multiplier))
}

// FindAnchored locates every match of valuePattern in text and scores it
// against the best-placed anchor from anchors, by two-dimensional distance.
func FindAnchored(text string, valuePattern string, anchors []Anchor, baseVotes int) []AnchoredMatch {
	lineStarts := buildLineIndex(text)
	foundAnchors := findAnchors(text, anchors, lineStarts)
	foundValues := findValues(text, valuePattern, lineStarts)

	results := make([]AnchoredMatch, 0, len(foundValues))
	for _, value := range foundValues {
		bestBonus := 0
		var bestDesc string
		bestPosition := PositionNone
		bestDistance := math.MaxInt32

		for _, anchor := range foundAnchors {
			pos, distance := relativePosition(anchor, value)
			if pos == PositionNone {
				continue
			}

			bonus := calculateBonus(anchor.Anchor, pos, distance)
			if bonus > bestBonus || (bonus == bestBonus && distance < bestDistance) {
				bestBonus = bonus
				bestDesc = anchor.Anchor.Description
				bestPosition = pos
				bestDistance = distance
			}
		}

		results = append(results, AnchoredMatch{
			Value:         value.Value,
			BaseVotes:     baseVotes,
			AnchorBonus:   bestBonus,
			AnchorMatched: bestDesc,
			Position:      bestPosition,
			Distance:      bestDistance,
			MatchedText:   value.MatchedText,
			ValuePosition: value.Position,
		})
	}
	return results
}

// ExtractBest returns the highest-total-vote anchored match, or NoMatch.
func ExtractBest(text, valuePattern string, anchors []Anchor, baseVotes int) Result {
	matches := FindAnchored(text, valuePattern, anchors, baseVotes)
	if len(matches) == 0 {
		return NoMatch
	}

	best := matches[0]
	for _, m := range matches[1:] {
		if m.TotalVotes() > best.TotalVotes() {
			best = m
		}
	}
	return Result{Value: best.Value, Votes: best.TotalVotes(), MatchedText: best.MatchedText}
}
