// Package slug genera identificadores en minúsculas y seguros para URL a partir de nombres.
package slug

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrEmpty se devuelve cuando el nombre no contiene ningún carácter aprovechable.
var ErrEmpty = errors.New("slug vacío")

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Make deriva el slug de forma determinista: "Apple Inc" -> "apple-inc", "Café Ñandú" -> "cafe-nandu".
func Make(name string) (string, error) {
	s := slugify(name)
	if s == "" {
		return "", ErrEmpty
	}
	return s, nil
}

// Valid informa si s ya es un slug: no vacío y estable frente a Make.
func Valid(s string) bool {
	return s != "" && slugify(s) == s
}

func slugify(s string) string {
	lower := strings.ToLower(strings.TrimSpace(foldAccents(s)))
	return strings.Trim(nonSlugChars.ReplaceAllString(lower, "-"), "-")
}

// foldAccents elimina las marcas diacríticas (NFD + quitar Mn + NFC).
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
