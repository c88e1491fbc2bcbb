// Package htmlsafe sanitizes user input arriving from web surfaces before
// it enters the annotation pipeline or a generated query.
package htmlsafe

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// StripMarkup removes all HTML markup from the input and returns the
// concatenated text content. Script and style bodies are dropped entirely.
// Input without markup passes through unchanged.
func StripMarkup(input string) string {
	if !strings.ContainsAny(input, "<>&") {
		return input
	}

	tokenizer := html.NewTokenizer(strings.NewReader(input))

	var b strings.Builder
	skipDepth := 0
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if isHiddenElement(string(name)) {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if isHiddenElement(string(name)) && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth == 0 {
				b.Write(tokenizer.Text())
				b.WriteByte(' ')
			}
		}
	}
}

func isHiddenElement(name string) bool {
	return name == "script" || name == "style"
}

// EscapeNonAlnum backslash-escapes every character that is neither
// alphanumeric nor whitespace. With keepQuotations set, single and double
// quotation marks stay unescaped so quoted search phrases survive.
func EscapeNonAlnum(text string, keepQuotations bool) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r):
		case keepQuotations && (r == '\'' || r == '"'):
		default:
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
