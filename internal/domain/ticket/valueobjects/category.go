package valueobjects

import (
	"strings"

	"golang.org/x/text/cases"
)

// Category is the canonical garment type of a line item.
type Category string

const (
	CategoryShirt   Category = "Shirt"
	CategoryBlouse  Category = "Blouse"
	CategoryPants   Category = "Pants"
	CategoryJeans   Category = "Jeans"
	CategorySkirt   Category = "Skirt"
	CategoryDress   Category = "Dress"
	CategorySuit    Category = "Suit"
	CategoryJacket  Category = "Jacket"
	CategoryCoat    Category = "Coat"
	CategorySweater Category = "Sweater"
	CategoryTie     Category = "Tie"
	CategoryOther   Category = "Other"
)

// orderedCategories fixes the order substring matching walks.
var orderedCategories = []Category{
	CategoryShirt,
	CategoryBlouse,
	CategoryPants,
	CategoryJeans,
	CategorySkirt,
	CategoryDress,
	CategorySuit,
	CategoryJacket,
	CategoryCoat,
	CategorySweater,
	CategoryTie,
	CategoryOther,
}

// categoryAliases maps synonyms and common misspellings seen on
// hand-written slips to a canonical category.
var categoryAliases = map[string]Category{
	"t-shirt":     CategoryShirt,
	"tshirt":      CategoryShirt,
	"t shirt":     CategoryShirt,
	"tee":         CategoryShirt,
	"polo":        CategoryShirt,
	"button down": CategoryShirt,
	"button-down": CategoryShirt,
	"dress shirt": CategoryShirt,
	"shrit":       CategoryShirt,
	"shirts":      CategoryShirt,
	"blouses":     CategoryBlouse,
	"blose":       CategoryBlouse,
	"slacks":      CategoryPants,
	"trousers":    CategoryPants,
	"khakis":      CategoryPants,
	"chinos":      CategoryPants,
	"pant":        CategoryPants,
	"pnats":       CategoryPants,
	"denim":       CategoryJeans,
	"jean":        CategoryJeans,
	"skirts":      CategorySkirt,
	"gown":        CategoryDress,
	"dres":        CategoryDress,
	"suits":       CategorySuit,
	"blazer":      CategoryJacket,
	"sport coat":  CategoryJacket,
	"sportcoat":   CategoryJacket,
	"suit jacket": CategoryJacket,
	"jaket":       CategoryJacket,
	"overcoat":    CategoryCoat,
	"parka":       CategoryCoat,
	"trench":      CategoryCoat,
	"raincoat":    CategoryCoat,
	"cardigan":    CategorySweater,
	"pullover":    CategorySweater,
	"hoodie":      CategorySweater,
	"jumper":      CategorySweater,
	"sweter":      CategorySweater,
	"necktie":     CategoryTie,
	"bow tie":     CategoryTie,
	"bowtie":      CategoryTie,
	"misc":        CategoryOther,
}

var (
	foldedCategories map[string]Category
	foldedAliases    map[string]Category
)

func init() {
	caser := cases.Fold()
	foldedCategories = make(map[string]Category, len(orderedCategories))
	for _, c := range orderedCategories {
		foldedCategories[caser.String(string(c))] = c
	}
	foldedAliases = make(map[string]Category, len(categoryAliases))
	for alias, c := range categoryAliases {
		foldedAliases[caser.String(alias)] = c
	}
}

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	for _, known := range orderedCategories {
		if c == known {
			return true
		}
	}
	return false
}

// AllCategories returns the canonical categories in display order.
func AllCategories() []Category {
	out := make([]Category, len(orderedCategories))
	copy(out, orderedCategories)
	return out
}

// CategoryNames returns the canonical names joined for messages.
func CategoryNames() string {
	names := make([]string, len(orderedCategories))
	for i, c := range orderedCategories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// ResolveCategory maps free text to a canonical category. An exact name
// wins, then the alias table, then the first category (in display order)
// whose name the input starts with or contains. Matching ignores case.
func ResolveCategory(raw string) (Category, bool) {
	s := fold(strings.TrimSpace(raw))
	if s == "" {
		return "", false
	}

	if c, ok := foldedCategories[s]; ok {
		return c, true
	}
	if c, ok := foldedAliases[s]; ok {
		return c, true
	}

	for _, c := range orderedCategories {
		name := fold(string(c))
		if strings.HasPrefix(s, name) || strings.Contains(s, name) {
			return c, true
		}
	}
	return "", false
}

// fold builds a caser per call; cases.Caser keeps state and is not safe
// for concurrent use.
func fold(s string) string {
	return cases.Fold().String(s)
}
