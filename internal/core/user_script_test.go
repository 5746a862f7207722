package core

import "testing"

func TestParseFrontMatter(t *testing.T) {
	src := `// @name: Recipes
// @description: Track recipe notes
schema("Recipe", { fields: [] });
`
	fm := parseFrontMatter(src)
	if fm.Name != "Recipes" {
		t.Errorf("Name = %q, want %q", fm.Name, "Recipes")
	}
	if fm.Description != "Track recipe notes" {
		t.Errorf("Description = %q, want %q", fm.Description, "Track recipe notes")
	}
}

func TestParseFrontMatterStopsAtCode(t *testing.T) {
	src := `// @name: Early
schema("X", {});
// @name: Ignored
`
	fm := parseFrontMatter(src)
	if fm.Name != "Early" {
		t.Errorf("Name = %q, want %q (front matter after code must be ignored)", fm.Name, "Early")
	}
}

func TestParseFrontMatterEmpty(t *testing.T) {
	fm := parseFrontMatter("schema(\"X\", {});")
	if fm.Name != "" || fm.Description != "" {
		t.Errorf("expected empty front matter, got %+v", fm)
	}
}
