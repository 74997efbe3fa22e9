// Package textutil utilidades de normalización de texto para búsquedas.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold normaliza una cadena para comparación de búsqueda: minúsculas y sin
// diacríticos ("González" → "gonzalez"). Los nombres venezolanos llegan con y
// sin acentos según quién los capturó; la búsqueda no debe distinguirlos.
func Fold(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}

// Contains reporta si s contiene substr comparando en forma normalizada.
func Contains(s, substr string) bool {
	return strings.Contains(Fold(s), Fold(substr))
}
