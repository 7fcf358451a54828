// Package catalog defines the fixed ordered element catalog for alloy
// composition vectors.  The catalog is constructed once at startup and never
// changes; its order defines the canonical index alignment used by every
// composition vector, projection, and attribution in the system.
package catalog

// Element is an immutable record describing one alloying element.
type Element struct {
	// Key is the stable machine identifier (lower-case symbol name).
	Key string

	// DisplayName is the human-readable element name.
	DisplayName string

	// ColorToken is the presentation color token used by the dashboard
	// charts; the core never interprets it.
	ColorToken string

	// DescriptionTag is a short metallurgical role tag shown in tooltips.
	DescriptionTag string

	// Weight is the economic/strength attribution weight used only for
	// dominant-driver attribution, never for optimization.  Values mirror
	// the strength coefficients of the optimizer's surrogate model.
	Weight float64
}

// Canonical element indices.  Composition vectors are aligned positionally
// to this order.
const (
	Carbon = iota
	Manganese
	Silicon
	Chromium
	Nickel
	Molybdenum
)

// Size is the number of catalog elements; every composition vector has
// exactly this many entries.
const Size = 6

// elements is the process-lifetime catalog.  Package-private so it cannot be
// mutated after initialization; Catalog() hands out copies of the slice
// header over the same backing array, and Element values are copied by value.
var elements = [Size]Element{
	{Key: "c", DisplayName: "Carbon", ColorToken: "slate", DescriptionTag: "hardness driver", Weight: 700},
	{Key: "mn", DisplayName: "Manganese", ColorToken: "violet", DescriptionTag: "hardenability", Weight: 120},
	{Key: "si", DisplayName: "Silicon", ColorToken: "amber", DescriptionTag: "deoxidizer", Weight: 0},
	{Key: "cr", DisplayName: "Chromium", ColorToken: "emerald", DescriptionTag: "corrosion resistance", Weight: 80},
	{Key: "ni", DisplayName: "Nickel", ColorToken: "sky", DescriptionTag: "toughness", Weight: 0},
	{Key: "mo", DisplayName: "Molybdenum", ColorToken: "rose", DescriptionTag: "creep strength", Weight: 250},
}

// Catalog returns the ordered element catalog.  The returned slice is a
// fresh copy; mutating it does not affect the canonical catalog.
func Catalog() []Element {
	out := make([]Element, Size)
	copy(out, elements[:])
	return out
}

// At returns the element at catalog index i.  Panics on out-of-range input;
// callers index with the canonical constants above.
func At(i int) Element {
	return elements[i]
}

// Weights returns the ordered attribution weight vector.
func Weights() []float64 {
	out := make([]float64, Size)
	for i, e := range elements {
		out[i] = e.Weight
	}
	return out
}

// Labels returns the ordered display names, sized exactly as the catalog.
func Labels() []string {
	out := make([]string, Size)
	for i, e := range elements {
		out[i] = e.DisplayName
	}
	return out
}
