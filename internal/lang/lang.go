// Package lang holds the closed table of languages the bot translates into.
package lang

import "strings"

// Language is one entry of the supported-language table.
type Language struct {
	Code  string // 2-letter ISO 639-1 code, lowercase
	Name  string
	Emoji string
}

// Supported is the ordered, closed set of target languages. Lookups are
// case-sensitive exact matches on Code.
var Supported = []Language{
	{Code: "en", Name: "english", Emoji: "🇬🇧"},
	{Code: "de", Name: "german", Emoji: "🇩🇪"},
	{Code: "fr", Name: "french", Emoji: "🇫🇷"},
	{Code: "es", Name: "spanish", Emoji: "🇪🇸"},
	{Code: "ru", Name: "russian", Emoji: "🇷🇺"},
	{Code: "ko", Name: "korean", Emoji: "🇰🇷"},
}

// Parse resolves a code against the supported table.
func Parse(code string) (Language, bool) {
	for _, l := range Supported {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

// Codes returns the supported codes in table order, comma-separated.
// Used in user-facing error replies.
func Codes() string {
	codes := make([]string, len(Supported))
	for i, l := range Supported {
		codes[i] = l.Code
	}
	return strings.Join(codes, ", ")
}
