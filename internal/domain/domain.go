// Package domain cleans user-supplied company domains.
package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Normalize strips a leading http:// or https:// scheme, a leading "www." and
// one trailing slash. Case is preserved and the result is not validated.
func Normalize(raw string) string {
	d := raw
	if strings.HasPrefix(d, "https://") {
		d = strings.TrimPrefix(d, "https://")
	} else {
		d = strings.TrimPrefix(d, "http://")
	}
	d = strings.TrimPrefix(d, "www.")
	d = strings.TrimSuffix(d, "/")
	return d
}

// CompanyName derives a display name from the leading DNS label:
// "acme-carbon.com" becomes "Acme Carbon".
func CompanyName(domain string) string {
	label, _, _ := strings.Cut(domain, ".")
	words := strings.Split(label, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
