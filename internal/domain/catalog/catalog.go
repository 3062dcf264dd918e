// Package catalog define la taxonomía fija de dos niveles del catálogo de
// productos: categoría principal y sus sous-catégories permitidas.
package catalog

import "strings"

// Categorías principales.
const (
	WhiteGoods = "WHITE_GOODS"
	BrownGoods = "BROWN_GOODS"
)

// Vocabulario controlado: 7 sous-catégories por categoría. Cambiar de categoría
// invalida cualquier sous-catégorie elegida antes (selección en cascada).
var subCategories = map[string][]string{
	WhiteGoods: {
		"Lave-linge",
		"Réfrigérateur",
		"Lave-vaisselle",
		"Four",
		"Micro-ondes",
		"Congélateur",
		"Sèche-linge",
	},
	BrownGoods: {
		"Téléviseur",
		"Smartphone",
		"Tablette",
		"Ordinateur",
		"Écran",
		"Enceinte",
		"Casque",
	},
}

// ValidCategory indica si c es una categoría conocida.
func ValidCategory(c string) bool {
	_, ok := subCategories[c]
	return ok
}

// SubCategories devuelve la lista de sous-catégories de una categoría (copia).
func SubCategories(category string) []string {
	src, ok := subCategories[category]
	if !ok {
		return nil
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// ValidSubCategory indica si sub pertenece al vocabulario de category.
func ValidSubCategory(category, sub string) bool {
	for _, s := range subCategories[category] {
		if s == sub {
			return true
		}
	}
	return false
}

// NormalizeCategory acepta las variantes observadas en los CSV importados
// ("White Goods", "white_goods", ...) y devuelve la constante canónica.
// Devuelve "" si no reconoce el valor.
func NormalizeCategory(raw string) string {
	upper := strings.ToUpper(strings.TrimSpace(raw))
	switch {
	case strings.Contains(upper, "WHITE"):
		return WhiteGoods
	case strings.Contains(upper, "BROWN"):
		return BrownGoods
	default:
		return ""
	}
}
