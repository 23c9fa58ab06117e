package pdf

import (
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// WordsUnavailable is printed when an amount cannot be spelled out. The
// document still renders.
const WordsUnavailable = "Amount in words not available"

const wordsCurrencySuffix = " Dirhams Only"

var onesWords = [...]string{
	"zero", "one", "two", "three", "four", "five", "six", "seven", "eight",
	"nine", "ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen",
	"sixteen", "seventeen", "eighteen", "nineteen",
}

var tensWords = [...]string{
	"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy",
	"eighty", "ninety",
}

var scaleWords = []struct {
	value int64
	name  string
}{
	{1_000_000_000_000, "trillion"},
	{1_000_000_000, "billion"},
	{1_000_000, "million"},
	{1_000, "thousand"},
}

// AmountInWords spells out the integer Dirham part of an amount in
// title-cased English, e.g. 126 -> "One Hundred And Twenty Six Dirhams Only".
// Invalid or unsupported magnitudes yield WordsUnavailable; this never fails.
func AmountInWords(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return WordsUnavailable
	}
	n := int64(amount)
	if n >= 1_000_000_000_000_000 {
		return WordsUnavailable
	}
	caser := cases.Title(language.English)
	return caser.String(intToWords(n)) + wordsCurrencySuffix
}

func intToWords(n int64) string {
	if n < 20 {
		return onesWords[n]
	}
	var parts []string
	for _, scale := range scaleWords {
		if n >= scale.value {
			parts = append(parts, belowThousand(n/scale.value), scale.name)
			n %= scale.value
		}
	}
	if n > 0 {
		parts = append(parts, belowThousand(n))
	}
	return strings.Join(parts, " ")
}

func belowThousand(n int64) string {
	if n >= 100 {
		s := onesWords[n/100] + " hundred"
		if rem := n % 100; rem > 0 {
			s += " and " + belowHundred(rem)
		}
		return s
	}
	return belowHundred(n)
}

func belowHundred(n int64) string {
	if n < 20 {
		return onesWords[n]
	}
	s := tensWords[n/10]
	if n%10 > 0 {
		s += " " + onesWords[n%10]
	}
	return s
}
