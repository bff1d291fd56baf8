package bulkimport

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// normalizer descompone (NFD), elimina marcas diacríticas y recompone (NFC).
// Los archivos de carga suelen venir con códigos tipeados a mano con acentos
// ("CÓD-001" vs "COD-001"); sin esto la reconciliación duplicaría materiales.
var normalizer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeCode canoniza un código de material: recorta espacios, quita
// diacríticos y pasa a mayúsculas.
func NormalizeCode(code string) string {
	code = strings.TrimSpace(code)
	if out, _, err := transform.String(normalizer, code); err == nil {
		code = out
	}
	return strings.ToUpper(code)
}
