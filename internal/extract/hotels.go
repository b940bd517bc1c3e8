package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pkordes/travelbuddy/internal/domain"
)

var (
	areaLine  = regexp.MustCompile(`(?i)^area\s*:\s*(.*)$`)
	priceLine = regexp.MustCompile(`(?i)^nightly\s+price\s*:\s*[$€£¥]?\s*([0-9][0-9,]*(?:\.[0-9]+)?)\s*(?:\S.*)?$`)

	// listPrefix strips markdown headings, bullets and "1." / "2)" numbering.
	listPrefix = regexp.MustCompile(`^(?:#+\s*|[-*+•]\s+|\d+[.)]\s*)+`)
)

// ParseHotels recognises repeating listing blocks of the shape
//
//	<property name>
//
//	Area: <area>
//	Nightly Price: $<price>
//
// and returns one HotelOption per block in the order they appear. Blocks whose
// price is missing or not numeric are skipped. The result is never nil.
func ParseHotels(text string) []domain.HotelOption {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i := range lines {
		lines[i] = cleanLine(lines[i])
	}

	hotels := []domain.HotelOption{}
	for i := 0; i+3 < len(lines); i++ {
		name := strings.Trim(listPrefix.ReplaceAllString(lines[i], ""), "*_ ")
		if name == "" || lines[i+1] != "" {
			continue
		}
		area := areaLine.FindStringSubmatch(lines[i+2])
		if area == nil {
			continue
		}
		price := priceLine.FindStringSubmatch(lines[i+3])
		if price == nil {
			continue
		}
		nightly, err := decimal.NewFromString(strings.ReplaceAll(price[1], ",", ""))
		if err != nil {
			continue
		}
		hotels = append(hotels, domain.HotelOption{
			Name:         strings.TrimSpace(name),
			Area:         strings.TrimSpace(area[1]),
			NightlyPrice: nightly,
		})
		i += 3
	}
	return hotels
}

// cleanLine drops markdown emphasis and surrounding whitespace so that
// "**Area:** Gothic Quarter" reads as "Area: Gothic Quarter".
func cleanLine(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	return strings.TrimSpace(s)
}
