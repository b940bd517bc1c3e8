package extract

import (
	"strings"

	"github.com/pkordes/travelbuddy/internal/domain"
)

// SplitOptions cuts text into one block per option. A new block starts at
// every line whose left-trimmed text begins with marker; any lines before the
// first marker form a leading block of their own. Blocks that never mention
// marker are dropped, and each returned block is whitespace-trimmed.
func SplitOptions(text, marker string) []domain.OptionBlock {
	if marker == "" {
		return []domain.OptionBlock{}
	}

	var (
		groups  [][]string
		current []string
	)
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimLeft(line, " \t"), marker) && len(current) > 0 {
			groups = append(groups, current)
			current = nil
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}

	blocks := []domain.OptionBlock{}
	for _, g := range groups {
		block := strings.TrimSpace(strings.Join(g, "\n"))
		if strings.Contains(block, marker) {
			blocks = append(blocks, domain.OptionBlock(block))
		}
	}
	return blocks
}
