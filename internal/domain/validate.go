package domain

import "regexp"

var nonDigitRegex = regexp.MustCompile(`\D`)

// NormalizeDigits strips every non-digit character from s.
func NormalizeDigits(s string) string {
	return nonDigitRegex.ReplaceAllString(s, "")
}

// ValidEAN reports whether ean is an acceptable product barcode. The field is
// optional, so empty is valid; otherwise it must reduce to exactly 13 digits.
func ValidEAN(ean string) bool {
	if ean == "" {
		return true
	}
	return len(NormalizeDigits(ean)) == 13
}

// ValidCNPJ reports whether cnpj is an acceptable company identifier. The
// field is optional, so empty is valid; otherwise it must reduce to exactly
// 14 digits.
func ValidCNPJ(cnpj string) bool {
	if cnpj == "" {
		return true
	}
	return len(NormalizeDigits(cnpj)) == 14
}
