package textlayout

import "strings"

// isLabelLine reports whether line looks like a "label: value" pair
// rather than, say, a URL containing a scheme colon.
func isLabelLine(line string) bool {
	if !strings.Contains(line, ":") || strings.TrimSpace(line) == "" {
		return false
	}
	if strings.HasPrefix(line, "http://") || strings.HasPrefix(line, "https://") {
		return false
	}
	colonPos := strings.Index(line, ":")
	if colonPos >= 2 && line[colonPos-1] == '/' && line[colonPos-2] == '/' {
		return false
	}
	return true
}

// alignKeyValueGroups pads the label portion of consecutive label-line
// groups (2 or more) so every colon in the group lands on the same column.
func alignKeyValueGroups(text string) string {
	lines := strings.Split(text, "\n")
	var result []string
	i := 0

	for i < len(lines) {
		var group []string
		for i < len(lines) && isLabelLine(lines[i]) {
			group = append(group, lines[i])
			i++
		}

		if len(group) >= 2 {
			maxLabelWidth := 0
			for _, line := range group {
				colonPos := strings.Index(line, ":")
				if colonPos > maxLabelWidth {
					maxLabelWidth = colonPos
				}
			}
			for _, line := range group {
				colonPos := strings.Index(line, ":")
				label := line[:colonPos]
				value := strings.TrimLeft(line[colonPos+1:], " \t")
				padding := strings.Repeat(" ", maxLabelWidth-len(label))
				result = append(result, label+padding+": "+value)
			}
		} else if len(group) == 1 {
			result = append(result, group...)
		} else {
			result = append(result, lines[i])
			i++
		}
	}

	return strings.Join(result, "\n")
}

// collapseBlankLines collapses any run of 3 or more consecutive newlines
// down to exactly 2 (a single blank line).
func collapseBlankLines(text string) string {
	for strings.Contains(text, "\n\n\n") {
		text = strings.ReplaceAll(text, "\n\n\n", "\n\n")
	}
	return text
}

// collapseBetweenLabels removes a single blank line sitting between two
// lines that both contain a colon.
func collapseBetweenLabels(text string) string {
	lines := strings.Split(text, "\n")
	var result []string
	i := 0

	for i < len(lines) {
		line := lines[i]
		if strings.TrimSpace(line) == "" && len(result) > 0 && i+1 < len(lines) &&
			strings.Contains(result[len(result)-1], ":") && strings.Contains(lines[i+1], ":") {
			i++
			continue
		}
		result = append(result, line)
		i++
	}

	return strings.Join(result, "\n")
}

// FormatOutput joins blocks with a blank line, collapses excess blank
// runs, removes blank lines between adjacent labeled lines, and aligns
// key:value groups.
func FormatOutput(blocks []string) string {
	output := strings.Join(blocks, "\n\n")
	output = collapseBlankLines(output)
	output = collapseBetweenLabels(output)
	output = alignKeyValueGroups(output)
	return output
}

// Extract runs the full pipeline (XY-cut segmentation, block
// normalization, output formatting) over raw layout-preserving text. It
// never fails; empty input yields an empty string.
func Extract(text string, minGap int) string {
	blocks := DetectBlocks(text, minGap)
	return FormatOutput(blocks)
}
