package scripting

import "testing"

func TestSchemaValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"missing fields", `schema("Bad", {});`},
		{"missing name", `schema("Bad", { fields: [{type:"text"}] });`},
		{"missing type", `schema("Bad", { fields: [{name:"x"}] });`},
		{"negative max", `schema("Bad", { fields: [{name:"x", type:"rating", max:-1}] });`},
		{"non-string options", `schema("Bad", { fields: [{name:"x", type:"select", options:[1,2]}] });`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reg, err := New()
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if err := reg.LoadUserScript(tc.src); err == nil {
				t.Errorf("expected an error for %s", tc.name)
			}
		})
	}
}

func TestSchemaValidOptionsAndMax(t *testing.T) {
	reg, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	src := `schema("Rated", { fields: [{name:"stars", type:"rating", max:5}, {name:"kind", type:"select", options:["a","b"]}] });`
	if err := reg.LoadUserScript(src); err != nil {
		t.Fatalf("LoadUserScript: %v", err)
	}
	schema, ok := reg.GetSchema("Rated")
	if !ok {
		t.Fatal("expected Rated schema to be registered")
	}
	if schema.Fields[0].Max == nil || *schema.Fields[0].Max != 5 {
		t.Errorf("stars.Max = %v, want 5", schema.Fields[0].Max)
	}
	if len(schema.Fields[1].Options) != 2 {
		t.Errorf("kind.Options = %v, want 2 entries", schema.Fields[1].Options)
	}
}
