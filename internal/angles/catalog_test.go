package angles

import "testing"

func TestCatalogOrder(t *testing.T) {
	specs := Catalog()
	if len(specs) != Count {
		t.Fatalf("catalog size: got %d want %d", len(specs), Count)
	}
	names := []string{"High Angle", "Low Angle", "Close-Up", "Wide Shot", "Over-the-Shoulder", "Dutch Tilt"}
	for i, want := range names {
		if specs[i].Name != want {
			t.Fatalf("catalog[%d] = %q, want %q", i, specs[i].Name, want)
		}
		if specs[i].Description == "" {
			t.Fatalf("catalog[%d] has empty description", i)
		}
	}
}

func TestCatalogReturnsCopy(t *testing.T) {
	first := Catalog()
	first[0].Name = "mutated"
	if Catalog()[0].Name != "High Angle" {
		t.Fatal("catalog should not be mutable through the returned slice")
	}
}
