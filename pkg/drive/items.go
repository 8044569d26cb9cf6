package drive

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/atriumhq/atrium-go/pkg/collection"
	"github.com/atriumhq/atrium-go/pkg/models"
	"github.com/atriumhq/atrium-go/pkg/transport"
)

// Items is the drive-items collection: the generic CRUD engine plus
// path-based lookup.
type Items struct {
	*collection.Collection[*models.DriveItem]
}

// NewItems creates the items collection for one drive, rooted at path
// (e.g. "/drives/abc/items").
func NewItems(client *transport.Client, path string) *Items {
	return &Items{
		Collection: collection.New(client, path, collection.Hydrate[models.DriveItem]()),
	}
}

// FindOptions tunes path resolution.
type FindOptions struct {
	// CaseSensitive requests exact-case matching from the backend.
	CaseSensitive bool
}

// PathResolution is the outcome of a successful path lookup: either a single
// item (the path named a file) or the listing of a folder.
type PathResolution struct {
	// Item is set when the path resolved to a file.
	Item *models.DriveItem

	// Listing is set when the path resolved to a folder; it holds the
	// folder's full contents.
	Listing []*models.DriveItem
}

// IsFolder reports whether the resolution is a folder listing.
func (r *PathResolution) IsFolder() bool { return r.Item == nil }

// FindByPath resolves a slash-delimited logical path to an item or a folder
// listing. Resolution is delegated to the backend rather than walked
// client-side. A 404 answer resolves to (nil, nil): absence is an expected
// outcome of a lookup, not an error.
func (i *Items) FindByPath(ctx context.Context, path string, opts *FindOptions) (*PathResolution, error) {
	trimmed := strings.TrimPrefix(path, "/")
	if trimmed == "" {
		return nil, fmt.Errorf("atrium: path is required to find a drive item")
	}

	params := transport.Params{"path": trimmed}
	if opts != nil && opts.CaseSensitive {
		params["case_sensitive"] = true
	}

	env, err := i.Client().Do(ctx, http.MethodGet, i.Path()+"/path", nil, params)
	if err != nil {
		if transport.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("atrium: find %s by path: %w", i.Path(), err)
	}
	if len(env.Data) == 0 {
		return nil, fmt.Errorf("atrium: find %s by path: response missing data", i.Path())
	}
	return i.resolve(env.Data)
}

func (i *Items) resolve(raw json.RawMessage) (*PathResolution, error) {
	factory := collection.Hydrate[models.DriveItem]()

	var entities []models.Entity
	if err := json.Unmarshal(raw, &entities); err == nil {
		listing := make([]*models.DriveItem, 0, len(entities))
		for _, entity := range entities {
			item, err := factory(entity, i.Path())
			if err != nil {
				return nil, fmt.Errorf("atrium: find %s by path: %w", i.Path(), err)
			}
			listing = append(listing, item)
		}
		return &PathResolution{Listing: listing}, nil
	}

	var entity models.Entity
	if err := json.Unmarshal(raw, &entity); err != nil {
		return nil, fmt.Errorf("atrium: find %s by path: failed to decode data: %w", i.Path(), err)
	}
	item, err := factory(entity, i.Path())
	if err != nil {
		return nil, fmt.Errorf("atrium: find %s by path: %w", i.Path(), err)
	}
	return &PathResolution{Item: item}, nil
}
