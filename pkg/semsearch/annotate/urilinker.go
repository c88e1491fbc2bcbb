package annotate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/biofinder/semsearch/pkg/semsearch/annotation"
	"github.com/biofinder/semsearch/pkg/semsearch/internalerr"
	"github.com/biofinder/semsearch/pkg/semsearch/store"
)

// UriLinker resolves every named entity to its candidate URIs, one set per
// possible entity type. The sets end up in the result's entity linking
// table keyed by annotation position, so disambiguation can swap the type
// without re-reading the store.
type UriLinker struct {
	labels store.KeyValue
}

// NewUriLinker creates a linker over the given label store.
func NewUriLinker(labels store.KeyValue) *UriLinker {
	return &UriLinker{labels: labels}
}

// Name implements Engine.
func (u *UriLinker) Name() string { return UriLinkerName }

// Requires implements Engine.
func (u *UriLinker) Requires() []string { return []string{RecognizerName} }

// Annotate implements Engine. A recognized entity whose label has vanished
// from the store since recognition is simply left unlinked.
func (u *UriLinker) Annotate(ctx context.Context, _ string, result *annotation.Result) error {
	for _, ann := range result.NamedEntities {
		data, err := u.readEntity(ctx, &ann.Word)
		if errors.Is(err, internalerr.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}

		decoded, err := annotation.DecodeEntityData(data)
		if err != nil {
			return err
		}

		perType := make(map[annotation.NamedEntityType]annotation.UriSet, len(decoded))
		for name, refs := range decoded {
			entityType, err := annotation.ParseNamedEntityType(name)
			if err != nil {
				return fmt.Errorf("linking %q: %w", ann.Text, err)
			}
			perType[entityType] = annotation.UriSetFromRefs(refs)
		}
		result.EntityLinking[ann.ID()] = perType
	}
	return nil
}

func (u *UriLinker) readEntity(ctx context.Context, word *annotation.Word) (string, error) {
	data, err := u.labels.Read(ctx, strings.ToLower(word.Text))
	if err == nil || !errors.Is(err, internalerr.ErrNotFound) {
		return data, err
	}
	if word.Lemma != "" && word.Lemma != word.Text {
		return u.labels.Read(ctx, strings.ToLower(word.Lemma))
	}
	return "", err
}
