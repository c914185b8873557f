// Package textlayout reconstructs logical text blocks from a monospaced,
// layout-preserving text dump using a recursive XY-cut segmenter, then
// normalizes and formats the resulting blocks into label-aligned prose.
package textlayout

import "strings"

type span struct {
	start, end int // inclusive
}

// toMatrix splits text into lines and right-pads every line with spaces to
// the width of the longest line, forming a rectangular character matrix.
func toMatrix(text string) []string {
	lines := strings.Split(text, "\n")
	width := 0
	for _, l := range lines {
		if len(l) > width {
			width = len(l)
		}
	}
	for i, l := range lines {
		if len(l) < width {
			lines[i] = l + strings.Repeat(" ", width-len(l))
		}
	}
	return lines
}

func isBlankRow(row string) bool {
	return strings.TrimSpace(row) == ""
}

func isBlankCol(matrix []string, col, startRow, endRow int) bool {
	for r := startRow; r <= endRow; r++ {
		if matrix[r][col] != ' ' {
			return false
		}
	}
	return true
}

// splitHorizontal finds maximal runs of non-blank rows.
func splitHorizontal(matrix []string) []span {
	var sections []span
	inSection := false
	start := 0

	for r := range matrix {
		if isBlankRow(matrix[r]) {
			if inSection {
				sections = append(sections, span{start, r - 1})
				inSection = false
			}
		} else if !inSection {
			start = r
			inSection = true
		}
	}
	if inSection {
		sections = append(sections, span{start, len(matrix) - 1})
	}
	return sections
}

// findVerticalGaps finds maximal runs of blank columns of width >= minGap
// within the given row range.
func findVerticalGaps(matrix []string, startRow, endRow, minGap int) []span {
	if len(matrix) == 0 || len(matrix[0]) == 0 {
		return nil
	}
	width := len(matrix[0])
	var gaps []span
	inGap := false
	gapStart := 0

	for c := 0; c < width; c++ {
		if isBlankCol(matrix, c, startRow, endRow) {
			if !inGap {
				gapStart = c
				inGap = true
			}
		} else if inGap {
			if c-gapStart >= minGap {
				gaps = append(gaps, span{gapStart, c - 1})
			}
			inGap = false
		}
	}
	return gaps
}

// findTextBounds returns the tightened [minCol,maxCol] of non-blank
// characters within the region, or ok=false if the region is entirely
// blank. startCol/endCol follow the Python source's half-open convention
// (endCol is exclusive).
func findTextBounds(matrix []string, startRow, endRow, startCol, endCol int) (span, bool) {
	minC, maxC := endCol+1, startCol-1
	for r := startRow; r <= endRow; r++ {
		for c := startCol; c < endCol; c++ {
			if matrix[r][c] != ' ' {
				if c < minC {
					minC = c
				}
				if c > maxC {
					maxC = c
				}
			}
		}
	}
	if maxC >= minC {
		return span{minC, maxC}, true
	}
	return span{}, false
}

// splitVertical splits a horizontal section into columns by whitespace
// gaps, tightening each column's bounds to its actual non-blank content.
func splitVertical(matrix []string, startRow, endRow, minGap int) []span {
	if len(matrix) == 0 || len(matrix[0]) == 0 {
		return nil
	}
	width := len(matrix[0])
	gaps := findVerticalGaps(matrix, startRow, endRow, minGap)

	if len(gaps) == 0 {
		if bounds, ok := findTextBounds(matrix, startRow, endRow, 0, width); ok {
			return []span{bounds}
		}
		return nil
	}

	var columns []span
	prevEnd := 0
	for _, gap := range gaps {
		if bounds, ok := findTextBounds(matrix, startRow, endRow, prevEnd, gap.start); ok {
			columns = append(columns, bounds)
		}
		prevEnd = gap.end + 1
	}
	if prevEnd < width {
		if bounds, ok := findTextBounds(matrix, startRow, endRow, prevEnd, width); ok {
			columns = append(columns, bounds)
		}
	}
	return columns
}

// extractBlock slices out a rectangular region, right-trims every row,
// drops leading/trailing blank lines, and normalizes what remains.
func extractBlock(matrix []string, startRow, endRow, startCol, endCol int) string {
	lines := make([]string, 0, endRow-startRow+1)
	for r := startRow; r <= endRow; r++ {
		lines = append(lines, strings.TrimRight(matrix[r][startCol:endCol+1], " "))
	}

	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return normalizeBlock(lines)
}

// DetectBlocks runs the XY-cut decomposition: first splitting on blank
// rows into horizontal sections, then within each section splitting on
// blank-column runs of width >= minGap, yielding one block per resulting
// rectangle whose content is non-blank.
func DetectBlocks(text string, minGap int) []string {
	matrix := toMatrix(text)

	var blocks []string
	for _, section := range splitHorizontal(matrix) {
		for _, col := range splitVertical(matrix, section.start, section.end, minGap) {
			content := extractBlock(matrix, section.start, section.end, col.start, col.end)
			if strings.TrimSpace(content) != "" {
				blocks = append(blocks, content)
			}
		}
	}
	return blocks
}
