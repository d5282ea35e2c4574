package stopword

import "testing"

func TestBuildUnionMinusRemove(t *testing.T) {
	base := []string{"the", "a", "and"}
	add := []string{"cat", "dog"}
	remove := []string{"a", "dog"}

	set := Build(base, add, remove)

	for _, w := range []string{"the", "and", "cat"} {
		if !set.Has(w) {
			t.Errorf("%q should be in the set", w)
		}
	}
	for _, w := range []string{"a", "dog"} {
		if set.Has(w) {
			t.Errorf("%q should have been removed", w)
		}
	}
	if set.Len() != 3 {
		t.Errorf("Expected 3 stopwords, got %d", set.Len())
	}
}

func TestBuildAddAndRemoveSameWord(t *testing.T) {
	set := Build([]string{"the"}, []string{"cat"}, []string{"cat"})

	if set.Has("cat") {
		t.Error("Word in both add and remove lists must end up removed")
	}
	if !set.Has("the") {
		t.Error("Base word should survive")
	}
}

func TestBuildEmptyInputs(t *testing.T) {
	set := Build(nil, nil, nil)
	if set.Len() != 0 {
		t.Errorf("Expected empty set, got %d entries", set.Len())
	}
}

func TestWordsSorted(t *testing.T) {
	set := Build([]string{"zebra", "apple", "mango"}, nil, nil)

	words := set.Words()
	if len(words) != 3 || words[0] != "apple" || words[1] != "mango" || words[2] != "zebra" {
		t.Errorf("Expected sorted words, got %v", words)
	}
}

func TestRemoveFromText(t *testing.T) {
	set := Build([]string{"the", "of"}, nil, nil)

	got := Remove("the taste of summer", set)
	if got != "taste summer" {
		t.Errorf("Expected 'taste summer', got %q", got)
	}
}

func TestDefaultList(t *testing.T) {
	words := Default()
	if len(words) == 0 {
		t.Fatal("Default list should not be empty")
	}

	set := Build(words, nil, nil)
	for _, w := range []string{"the", "and", "of", "with"} {
		if !set.Has(w) {
			t.Errorf("Default list should contain %q", w)
		}
	}

	// Default returns a copy: mutating it must not affect later calls.
	words[0] = "mutated"
	if Default()[0] == "mutated" {
		t.Error("Default should return a fresh copy")
	}
}
