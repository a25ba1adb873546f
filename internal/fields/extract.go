package fields

import (
	"regexp"
	"strings"
)

// rule describes how one record slot is located: label alternatives plus the
// expected value shape, compiled as patterns tried in priority order. The
// first pattern that matches wins; within a pattern, standard regexp
// semantics pick the first occurrence top-to-bottom.
type rule struct {
	patterns []*regexp.Regexp
	clean    func(string) string
	assign   func(*Record, string)
}

var (
	// Amount: a money label, an optional currency symbol, then a numeric
	// token with optional thousands separators and decimal point.
	reAmount = regexp.MustCompile(`(?i)(?:Total|Amount|Balance due|Invoice Total)[:\s]*[$€£]?\s*([\d,]+\.?\d*)`)

	// Date, numeric style: 1-2 digit day/month, 2-4 digit year, separated
	// by / - or . The leading "Date" also anchors inside "Invoice Date",
	// which is why this pattern outranks the textual one below.
	reDateNumeric = regexp.MustCompile(`(?i)Date[:\s]*(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})`)

	// Date, textual style: "Invoice Date: January 5, 2024".
	reDateTextual = regexp.MustCompile(`(?i)(?:Invoice Date|Bill Date)[:\s]*([A-Za-z]+\s+\d{1,2},\s+\d{4})`)

	// Buyer/seller: label then the remainder of the same line. The
	// separator class stays on the label's line so that a label with
	// nothing after it yields an empty capture, not the next line.
	reBuyer  = regexp.MustCompile(`(?i)Bill To[:\t ]*([^\n]*)`)
	reSeller = regexp.MustCompile(`(?i)(?:From|Seller|Vendor)[:\t ]*([^\n]*)`)
)

var rules = []rule{
	{
		patterns: []*regexp.Regexp{reAmount},
		clean:    cleanAmount,
		assign:   func(r *Record, v string) { r.Amount = v },
	},
	{
		patterns: []*regexp.Regexp{reDateNumeric, reDateTextual},
		clean:    strings.TrimSpace,
		assign:   func(r *Record, v string) { r.Date = v },
	},
	{
		patterns: []*regexp.Regexp{reBuyer},
		clean:    cleanLine,
		assign:   func(r *Record, v string) { r.Buyer = v },
	},
	{
		patterns: []*regexp.Regexp{reSeller},
		clean:    cleanLine,
		assign:   func(r *Record, v string) { r.Seller = v },
	},
}

// Extract scans text for the four invoice fields and returns a fully
// populated Record. It is pure and deterministic: no I/O, no shared state,
// and it never fails — malformed or empty input yields empty fields.
func Extract(text string) Record {
	var rec Record
	if text == "" {
		return rec
	}
	for _, ru := range rules {
		for _, re := range ru.patterns {
			m := re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			ru.assign(&rec, ru.clean(m[1]))
			break
		}
	}
	return rec
}

// cleanAmount strips thousands separators and whitespace, keeping the value
// as a canonical numeric string. No float parsing happens here: rounding and
// locale conversion are the caller's problem, not ours.
func cleanAmount(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
}

// cleanLine keeps only the first line of a captured span, trimmed.
func cleanLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
