package image

import (
	"strings"
	"testing"
)

func TestBuildInstruction(t *testing.T) {
	got := BuildInstruction("a definitive low-angle shot")

	checks := []string{
		"a definitive low-angle shot",
		"must remain identical",
		"Only change the camera perspective",
		"Do not add any text or watermarks",
	}
	for _, expect := range checks {
		if !strings.Contains(got, expect) {
			t.Fatalf("instruction missing %q: %s", expect, got)
		}
	}
}
