package common

import (
	"strings"
	"unicode"
)

var profaneWords = map[string]struct{}{
	"arse":         {},
	"asshole":      {},
	"bastard":      {},
	"bitch":        {},
	"bollocks":     {},
	"crap":         {},
	"damn":         {},
	"dick":         {},
	"fuck":         {},
	"fucking":      {},
	"motherfucker": {},
	"piss":         {},
	"prick":        {},
	"shit":         {},
	"slut":         {},
	"twat":         {},
	"wanker":       {},
	"whore":        {},
}

// ContainsProfanity reports whether any whole word of text is on the blocked list.
func ContainsProfanity(text string) bool {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		if _, ok := profaneWords[w]; ok {
			return true
		}
	}
	return false
}
