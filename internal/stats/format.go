package stats

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var countPrinter = message.NewPrinter(language.English)

// FormatPercent renders a rate in [0,1] as a percentage with two decimals
func FormatPercent(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate*100)
}

// FormatCount renders a count with thousands separators
func FormatCount(n int) string {
	return countPrinter.Sprintf("%d", n)
}
