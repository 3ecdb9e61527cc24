// Package taxonomy holds the closed vocabularies of the catalog and the filter option mapping
package taxonomy

import (
	"slices"
	"strings"
)

// All is the filter value meaning no constraint
const All = "all"

// Catalog year bounds, inclusive
const (
	YearMin = 1960
	YearMax = 2025
)

// Organism is an experiment organism
type Organism string

// Catalog organisms
const (
	Human       Organism = "Human"
	Mouse       Organism = "Mouse"
	Arabidopsis Organism = "Arabidopsis"
	Drosophila  Organism = "Drosophila"
	EColi       Organism = "E. coli"
	Zebrafish   Organism = "Zebrafish"
	Tomato      Organism = "Tomato"
	Rice        Organism = "Rice"
	OtherOrg    Organism = "Other"
)

// Organisms lists the catalog organism enum in declaration order
func Organisms() []Organism {
	return []Organism{Human, Mouse, Arabidopsis, Drosophila, EColi, Zebrafish, Tomato, Rice, OtherOrg}
}

// Category is an organism category
type Category string

// Organism categories
const (
	Plant    Category = "Plant"
	Mammal   Category = "Mammal"
	Insect   Category = "Insect"
	Microbe  Category = "Microbe"
	Fish     Category = "Fish"
	OtherCat Category = "Other"
)

// Categories lists the category enum in declaration order
func Categories() []Category {
	return []Category{Plant, Mammal, Insect, Microbe, Fish, OtherCat}
}

// options narrows organism choices once a category is picked
// some entries (Wheat, Rat, Bee, Yeast, Bacteria) are valid filters with no catalog rows
var options = map[Category][]string{
	Plant:   {"Arabidopsis", "Tomato", "Rice", "Wheat"},
	Mammal:  {"Mouse", "Rat", "Human"},
	Insect:  {"Drosophila", "Bee"},
	Microbe: {"E. coli", "Yeast", "Bacteria"},
}

// OrganismsFor returns the organism options for a category
// All or empty yields every filterable organism; a category without a mapping (Fish, Other) yields none
func OrganismsFor(c string) []string {
	if IsAll(c) {
		return FilterableOrganisms()
	}
	return slices.Clone(options[Category(strings.TrimSpace(c))])
}

// FilterableOrganisms is the union of the organism enum and every mapped option, enum first
func FilterableOrganisms() []string {
	out := make([]string, 0, 16)
	for _, o := range Organisms() {
		out = append(out, string(o))
	}
	for _, c := range Categories() {
		for _, o := range options[c] {
			if !slices.Contains(out, o) {
				out = append(out, o)
			}
		}
	}
	return out
}

// IsAll reports whether a filter value means no constraint
func IsAll(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, All)
}

// ValidCategory reports whether v is a category filter value, All included
func ValidCategory(v string) bool {
	return IsAll(v) || slices.Contains(Categories(), Category(strings.TrimSpace(v)))
}

// ValidOrganism reports whether v is an organism filter value, All included
func ValidOrganism(v string) bool {
	return IsAll(v) || slices.Contains(FilterableOrganisms(), strings.TrimSpace(v))
}

// AnnotationCategory classifies admin content
type AnnotationCategory string

// Annotation categories
const (
	Biology    AnnotationCategory = "biology"
	Mission    AnnotationCategory = "mission"
	OrganismAC AnnotationCategory = "organism"
	Technology AnnotationCategory = "technology"
	General    AnnotationCategory = "general"
)

// AnnotationCategories lists the annotation category enum
func AnnotationCategories() []AnnotationCategory {
	return []AnnotationCategory{Biology, Mission, OrganismAC, Technology, General}
}

// AnnotationCategoryOr returns v as a category, def when v is blank
// ok is false for unknown values
func AnnotationCategoryOr(v string, def AnnotationCategory) (AnnotationCategory, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return def, true
	}
	c := AnnotationCategory(v)
	return c, slices.Contains(AnnotationCategories(), c)
}
