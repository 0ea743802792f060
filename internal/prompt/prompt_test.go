package prompt

import (
	"strings"
	"testing"
)

func TestGroundedContainsInstructionsContextAndQuestion(t *testing.T) {
	p := Grounded("what is photosynthesis?", []string{"passage one", "passage two"})

	for _, want := range []string{
		"ONLY the context provided",
		"Cite sources by filename",
		"say you don't know",
		"passage one",
		"passage two",
		"Question: what is photosynthesis?",
	} {
		if !strings.Contains(p, want) {
			t.Fatalf("prompt missing %q:\n%s", want, p)
		}
	}
}

func TestGroundedPreservesPassageOrder(t *testing.T) {
	p := Grounded("q", []string{"alpha", "beta", "gamma"})
	ia := strings.Index(p, "alpha")
	ib := strings.Index(p, "beta")
	ig := strings.Index(p, "gamma")
	if !(ia < ib && ib < ig) {
		t.Fatalf("passages reordered: alpha=%d beta=%d gamma=%d", ia, ib, ig)
	}
}

func TestGroundedSeparatesPassages(t *testing.T) {
	p := Grounded("q", []string{"alpha", "beta"})
	if !strings.Contains(p, "alpha\n\n---\n\nbeta") {
		t.Fatalf("passages not separated:\n%s", p)
	}
}

func TestGroundedNoContextPlaceholder(t *testing.T) {
	p := Grounded("anything here?", nil)
	if !strings.Contains(p, NoContextPlaceholder) {
		t.Fatalf("placeholder missing:\n%s", p)
	}
	if !strings.Contains(p, "Question: anything here?") {
		t.Fatalf("question missing:\n%s", p)
	}
}
