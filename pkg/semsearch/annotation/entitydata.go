package annotation

import (
	"encoding/json"
	"fmt"
)

// UriRef is one candidate identifier from a label-store value.
type UriRef struct {
	URL              string
	PositionInTriple int
}

// UnmarshalJSON decodes the wire form of a candidate, a two-element array
// of [identifier, position_in_triple].
func (r *UriRef) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("uri reference needs 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &r.URL); err != nil {
		return fmt.Errorf("uri reference identifier: %w", err)
	}
	if err := json.Unmarshal(pair[1], &r.PositionInTriple); err != nil {
		return fmt.Errorf("uri reference position: %w", err)
	}
	return nil
}

// DecodeEntityData parses a label-store value. The keys are named entity
// type names as stored by the deployment (e.g. "Plant_Flora"), the values
// are candidate URI lists:
//
//	{"Plant_Flora": [["https://example.org/plant#1", 3]]}
func DecodeEntityData(raw string) (map[string][]UriRef, error) {
	var data map[string][]UriRef
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("decode entity data: %w", err)
	}
	return data, nil
}

// UriSetFromRefs converts decoded candidates into a UriSet.
func UriSetFromRefs(refs []UriRef) UriSet {
	set := make(UriSet, len(refs))
	for _, ref := range refs {
		set.Add(NewUri(ref.URL, ref.PositionInTriple))
	}
	return set
}
