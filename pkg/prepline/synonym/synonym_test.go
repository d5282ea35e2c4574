package synonym

import "testing"

func buildMapper(t *testing.T, pairs [][2]string) *Mapper {
	t.Helper()
	table := NewTable()
	for _, p := range pairs {
		table.Add(p[0], p[1])
	}
	m, err := NewMapper(table)
	if err != nil {
		t.Fatalf("NewMapper: %v", err)
	}
	return m
}

func TestReplaceWholeWord(t *testing.T) {
	m := buildMapper(t, [][2]string{{"foo", "baz"}})

	got := m.Replace("foo bar")
	if got != "baz bar" {
		t.Errorf("Expected 'baz bar', got %q", got)
	}
}

func TestReplaceRespectsWordBoundary(t *testing.T) {
	m := buildMapper(t, [][2]string{{"foo", "baz"}})

	got := m.Replace("foobar foo")
	if got != "foobar baz" {
		t.Errorf("Substring should be untouched, got %q", got)
	}
}

func TestReplaceMultiplePairs(t *testing.T) {
	m := buildMapper(t, [][2]string{
		{"soy milk", "soymilk"},
		{"soy", "soybean"},
	})

	// First-listed alternative wins at a given position.
	got := m.Replace("soy milk and soy sauce")
	if got != "soymilk and soybean sauce" {
		t.Errorf("Expected leftmost-first alternation, got %q", got)
	}
}

func TestEmptyTableIsIdentity(t *testing.T) {
	m := buildMapper(t, nil)

	in := "nothing to see here"
	if got := m.Replace(in); got != in {
		t.Errorf("Empty table should not rewrite, got %q", got)
	}
}

func TestTableKeysKeepOrder(t *testing.T) {
	table := NewTable()
	table.Add("b", "1")
	table.Add("a", "2")
	table.Add("b", "3")

	keys := table.Keys()
	if len(keys) != 2 || keys[0] != "b" || keys[1] != "a" {
		t.Errorf("Expected insertion order [b a], got %v", keys)
	}

	if to, ok := table.Lookup("b"); !ok || to != "3" {
		t.Errorf("Repeated source should overwrite replacement, got %q", to)
	}
}

func TestReplaceMultiWordSource(t *testing.T) {
	m := buildMapper(t, [][2]string{{"vitamin c", "ascorbic acid"}})

	got := m.Replace("rich in vitamin c today")
	if got != "rich in ascorbic acid today" {
		t.Errorf("Multi-word source should match, got %q", got)
	}
}
