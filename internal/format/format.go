package format

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var supported = []language.Tag{
	language.AmericanEnglish, // first entry is the fallback
	language.BritishEnglish,
	language.German,
	language.French,
	language.Spanish,
	language.Russian,
}

var matcher = language.NewMatcher(supported)

// Printer renders numbers for display with locale grouping
type Printer struct {
	p *message.Printer
}

// ForAcceptLanguage picks the best supported locale for an Accept-Language header
func ForAcceptLanguage(header string) *Printer {
	tag, _ := language.MatchStrings(matcher, header)
	return &Printer{p: message.NewPrinter(tag)}
}

// Money formats v with two decimals and a currency symbol prefix
func (pr *Printer) Money(symbol string, v float64) string {
	if v < 0 {
		return "-" + symbol + pr.p.Sprintf("%.2f", -v)
	}
	return symbol + pr.p.Sprintf("%.2f", v)
}

// Number formats v with the given decimals
func (pr *Printer) Number(v float64, decimals int) string {
	return pr.p.Sprintf(fmt.Sprintf("%%.%df", decimals), v)
}

// Percent formats a percentage value (18.5 -> "18.50%")
func (pr *Printer) Percent(v float64) string {
	return pr.p.Sprintf("%.2f", v) + "%"
}
