package annotation

import "sort"

// AbstractedText rewrites the query text so that annotations and literals
// become position-stable markers. Annotations turn into "{<type><id>}",
// literals into "<text><id>", e.g.
//
//	"Fagus sylvatica in Paris" ->
//	"{plant<0/15>} in<16/18> {location<19/24>}"
//
// The markers are what the disambiguation cues and the dependency patterns
// match against.
func AbstractedText(text string, annotations []*Annotation, literals []*Word) string {
	type span struct {
		begin, end int
		marker     string
	}

	spans := make([]span, 0, len(annotations)+len(literals))
	for _, a := range annotations {
		marker := a.Text
		if a.NamedEntityType != "" {
			marker = a.NamedEntityType.Placeholder()
		}
		spans = append(spans, span{a.Begin, a.End, "{" + marker + "<" + a.ID() + ">}"})
	}
	for _, l := range literals {
		spans = append(spans, span{l.Begin, l.End, l.Text + "<" + l.ID() + ">"})
	}

	// Replace back to front so earlier offsets stay valid.
	sort.Slice(spans, func(i, j int) bool { return spans[i].begin > spans[j].begin })

	abstracted := text
	for _, s := range spans {
		abstracted = ReplaceSpan(abstracted, s.marker, s.begin, s.end)
	}
	return abstracted
}

// ReplaceSpan substitutes the characters between begin and end (half-open)
// with the given text.
func ReplaceSpan(text, substitute string, begin, end int) string {
	if begin < 0 {
		begin = 0
	}
	if end > len(text) {
		end = len(text)
	}
	return text[:begin] + substitute + text[end:]
}
