package taxonomy

import (
	"slices"
	"testing"
)

func TestOrganismsFor(t *testing.T) {
	cases := []struct {
		category string
		want     []string
	}{
		{"Plant", []string{"Arabidopsis", "Tomato", "Rice", "Wheat"}},
		{"Mammal", []string{"Mouse", "Rat", "Human"}},
		{"Insect", []string{"Drosophila", "Bee"}},
		{"Microbe", []string{"E. coli", "Yeast", "Bacteria"}},
	}
	for _, c := range cases {
		if got := OrganismsFor(c.category); !slices.Equal(got, c.want) {
			t.Fatalf("OrganismsFor(%s) = %v want %v", c.category, got, c.want)
		}
	}
	for _, c := range []string{"all", "", " ALL "} {
		if got := OrganismsFor(c); !slices.Equal(got, FilterableOrganisms()) {
			t.Fatalf("OrganismsFor(%q) = %v", c, got)
		}
	}
	for _, c := range []string{"Fish", "Other", "Reptile"} {
		if got := OrganismsFor(c); len(got) != 0 {
			t.Fatalf("OrganismsFor(%q) = %v want none", c, got)
		}
	}

	got := OrganismsFor("Plant")
	got[0] = "mutated"
	if OrganismsFor("Plant")[0] != "Arabidopsis" {
		t.Fatal("OrganismsFor leaked the shared slice")
	}
}

func TestFilterableOrganisms(t *testing.T) {
	got := FilterableOrganisms()
	if len(got) != 14 {
		t.Fatalf("len = %d: %v", len(got), got)
	}
	if got[0] != "Human" || got[8] != "Other" {
		t.Fatalf("enum should come first: %v", got)
	}
	for _, o := range []string{"Wheat", "Rat", "Bee", "Yeast", "Bacteria"} {
		if !slices.Contains(got, o) {
			t.Fatalf("%s missing", o)
		}
	}
}

func TestValidFilters(t *testing.T) {
	cases := []struct {
		fn   func(string) bool
		in   string
		want bool
	}{
		{ValidCategory, "", true},
		{ValidCategory, "ALL", true},
		{ValidCategory, "Plant", true},
		{ValidCategory, " Fish ", true},
		{ValidCategory, "plant", false},
		{ValidCategory, "Fungus", false},
		{ValidOrganism, "all", true},
		{ValidOrganism, "E. coli", true},
		{ValidOrganism, "Wheat", true},
		{ValidOrganism, "Dog", false},
	}
	for i, c := range cases {
		if got := c.fn(c.in); got != c.want {
			t.Fatalf("case %d (%q) = %v want %v", i, c.in, got, c.want)
		}
	}
}

func TestAnnotationCategoryOr(t *testing.T) {
	cases := []struct {
		in   string
		want AnnotationCategory
		ok   bool
	}{
		{"", General, true},
		{"  ", General, true},
		{"mission", Mission, true},
		{"Mission", "Mission", false},
		{"gossip", "gossip", false},
	}
	for _, c := range cases {
		got, ok := AnnotationCategoryOr(c.in, General)
		if got != c.want || ok != c.ok {
			t.Fatalf("AnnotationCategoryOr(%q) = %q,%v", c.in, got, ok)
		}
	}
}
