package annotation

import "testing"

func TestUriSetBasics(t *testing.T) {
	set := NewUriSet(
		NewUri("https://example.org/b", ObjectPosition),
		NewUri("https://example.org/a", ObjectPosition),
	)

	if !set.Contains("https://example.org/a") {
		t.Error("set should contain added uri")
	}
	if set.Contains("https://example.org/c") {
		t.Error("set should not contain unknown uri")
	}

	urls := set.URLs()
	if len(urls) != 2 || urls[0] != "https://example.org/a" {
		t.Errorf("URLs should be sorted, got %v", urls)
	}
}

func TestUriSetEqualAndKey(t *testing.T) {
	a := NewUriSet(NewUri("u1", ObjectPosition), NewUri("u2", ObjectPosition))
	b := NewUriSet(NewUri("u2", ObjectPosition), NewUri("u1", ObjectPosition))
	c := NewUriSet(NewUri("u1", ObjectPosition))

	if !a.Equal(b) {
		t.Error("sets with same urls should be equal")
	}
	if a.Equal(c) {
		t.Error("sets with different urls should not be equal")
	}
	if a.Key() != b.Key() {
		t.Error("equal sets should share a key")
	}
	if a.Key() == c.Key() {
		t.Error("different sets should have different keys")
	}
}

func TestUriSetClone(t *testing.T) {
	original := NewUriSet(NewUri("u1", ObjectPosition))
	clone := original.Clone()

	clone.Add(NewUri("u2", ObjectPosition))
	if original.Contains("u2") {
		t.Error("clone should not share storage with original")
	}

	var nilSet UriSet
	if nilSet.Clone() != nil {
		t.Error("cloning nil should stay nil")
	}
}

func TestWordIDAndJoin(t *testing.T) {
	first := &Word{Begin: 0, End: 5, Text: "Fagus", Lemma: "fagus"}
	second := &Word{Begin: 6, End: 15, Text: "sylvatica", Lemma: "sylvatica"}

	if first.ID() != "0/5" {
		t.Errorf("unexpected id %q", first.ID())
	}

	joined := first.Join(second)
	if joined.Begin != 0 || joined.End != 15 {
		t.Errorf("joined span should cover both words, got %d/%d", joined.Begin, joined.End)
	}
	if joined.Text != "Fagus sylvatica" {
		t.Errorf("unexpected joined text %q", joined.Text)
	}
	if joined.Lemma != "fagus sylvatica" {
		t.Errorf("unexpected joined lemma %q", joined.Lemma)
	}
}

func TestAnnotationClone(t *testing.T) {
	ann := &Annotation{
		Word:            Word{Begin: 0, End: 5, Text: "Paris"},
		NamedEntityType: Plant,
		Uris:            NewUriSet(NewUri("u1", ObjectPosition)),
	}
	ann.Ambiguities = append(ann.Ambiguities, &Annotation{NamedEntityType: Location})

	clone := ann.Clone()
	clone.Uris.Add(NewUri("u2", ObjectPosition))
	if ann.Uris.Contains("u2") {
		t.Error("clone must not share the uri set")
	}
	if clone.NamedEntityType != Plant || len(clone.Ambiguities) != 1 {
		t.Error("clone should copy type and ambiguities")
	}
}

func TestParseNamedEntityType(t *testing.T) {
	cases := map[string]NamedEntityType{
		"Plant":          Plant,
		"plant_flora":    Plant,
		"Animal_Fauna":   Animal,
		"LOCATION_PLACE": Location,
		"taxon":          Taxon,
		"misc":           Miscellaneous,
	}
	for name, want := range cases {
		got, err := ParseNamedEntityType(name)
		if err != nil {
			t.Fatalf("parse %q: %v", name, err)
		}
		if got != want {
			t.Errorf("parse %q: got %q, want %q", name, got, want)
		}
	}

	if _, err := ParseNamedEntityType("building"); err == nil {
		t.Error("unknown type name should fail")
	}
}
