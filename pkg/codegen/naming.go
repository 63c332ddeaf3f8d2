package codegen

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// initialisms are kept upper-case in Go identifiers.
var initialisms = map[string]bool{
	"API": true, "ASCII": true, "CPU": true, "CSS": true, "DNS": true,
	"EOF": true, "GUID": true, "HTML": true, "HTTP": true, "HTTPS": true,
	"ID": true, "IP": true, "JSON": true, "JWT": true, "OS": true,
	"SQL": true, "SSH": true, "TLS": true, "TTL": true, "UI": true,
	"URI": true, "URL": true, "UTF8": true, "UUID": true, "XML": true,
}

// goName converts a schema, property or operation name into an exported Go
// identifier: "projectId" -> "ProjectID", "created_at" -> "CreatedAt".
func goName(s string) string {
	caser := cases.Title(language.Und)

	var b strings.Builder
	for _, w := range splitWords(s) {
		if up := strings.ToUpper(w); initialisms[up] {
			b.WriteString(up)
			continue
		}
		b.WriteString(caser.String(w))
	}

	name := b.String()
	if name == "" {
		return "X"
	}
	if r := []rune(name)[0]; unicode.IsDigit(r) {
		return "X" + name
	}
	return name
}

// splitWords splits on separators and on case boundaries, keeping
// upper-case runs together ("HTTPServer" -> "HTTP", "Server").
func splitWords(s string) []string {
	var words []string
	var cur []rune

	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if len(cur) > 0 && unicode.IsUpper(r) {
			prev := cur[len(cur)-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}
