// Package collection implements the generic CRUD engine behind every Atrium
// resource type. A Collection is parameterized by its URI path segment and a
// factory that hydrates raw entities into typed models; each concrete
// resource collection is a thin instantiation of this one type.
package collection

import (
	"context"
	"fmt"
	"net/http"

	"github.com/atriumhq/atrium-go/pkg/models"
	"github.com/atriumhq/atrium-go/pkg/transport"
)

// Factory hydrates one raw entity into a model. baseURI is the API path the
// instance was fetched from, used by models to construct sub-resource paths.
type Factory[T any] func(raw models.Entity, baseURI string) (T, error)

// ListResult carries the hydrated items of a list request along with the
// server's paging metadata, when present.
type ListResult[T any] struct {
	Items  []T
	Paging *models.Paging
}

// Collection provides uniform CRUD operations for exactly one resource type.
// It holds no caches and no session state; every call is one request through
// the transport client.
type Collection[T any] struct {
	client  *transport.Client
	path    string
	factory Factory[T]
}

// New creates a collection rooted at path ("/agents", "/drives/abc/items").
func New[T any](client *transport.Client, path string, factory Factory[T]) *Collection[T] {
	return &Collection[T]{client: client, path: path, factory: factory}
}

// Path returns the collection's API path.
func (c *Collection[T]) Path() string { return c.path }

// Client returns the transport client the collection issues requests with.
func (c *Collection[T]) Client() *transport.Client { return c.client }

// List fetches the collection with optional filter and pagination params.
// Array order from the server is preserved. A server that answers a list
// request with a single object yields a one-item result.
func (c *Collection[T]) List(ctx context.Context, params transport.Params) (*ListResult[T], error) {
	env, err := c.client.Do(ctx, http.MethodGet, c.path, nil, params)
	if err != nil {
		return nil, c.opError("list", err)
	}
	if len(env.Data) == 0 {
		return nil, c.missingData("list")
	}

	entities, err := decodeEntities(env.Data)
	if err != nil {
		return nil, c.opError("list", err)
	}

	result := &ListResult[T]{
		Items:  make([]T, 0, len(entities)),
		Paging: env.Paging,
	}
	for _, entity := range entities {
		item, err := c.hydrate(entity, c.itemURI(entity))
		if err != nil {
			return nil, c.opError("list", err)
		}
		result.Items = append(result.Items, item)
	}
	return result, nil
}

// GetOne fetches a single resource by id. The id is required and validated
// before any network call.
func (c *Collection[T]) GetOne(ctx context.Context, id string, params transport.Params) (T, error) {
	var zero T
	if id == "" {
		return zero, fmt.Errorf("atrium: id is required to get a %s resource", c.path)
	}
	env, err := c.client.Do(ctx, http.MethodGet, c.path+"/"+id, nil, params)
	if err != nil {
		return zero, c.opError("get", err)
	}
	if len(env.Data) == 0 {
		return zero, c.missingData("get")
	}
	entity, err := decodeEntity(env.Data)
	if err != nil {
		return zero, c.opError("get", err)
	}
	return c.hydrate(entity, c.path+"/"+id)
}

// Create persists a new resource. The entity must not carry an id; the
// server assigns identity.
func (c *Collection[T]) Create(ctx context.Context, entity models.Entity) (T, error) {
	var zero T
	if id, ok := entity["id"]; ok && id != "" {
		return zero, fmt.Errorf("atrium: entity for create must not carry an id, got %v", id)
	}
	env, err := c.client.Do(ctx, http.MethodPost, c.path, entity, nil)
	if err != nil {
		return zero, c.opError("create", err)
	}
	if len(env.Data) == 0 {
		return zero, c.missingData("create")
	}
	created, err := decodeEntity(env.Data)
	if err != nil {
		return zero, c.opError("create", err)
	}
	return c.hydrate(created, c.itemURI(created))
}

// Update sends a partial update for the resource with the given id and
// returns the updated model, hydrated from the item's own URI so that
// subsequent sub-resource access resolves correctly.
func (c *Collection[T]) Update(ctx context.Context, id string, updates models.Entity, params transport.Params) (T, error) {
	var zero T
	if id == "" {
		return zero, fmt.Errorf("atrium: id is required to update a %s resource", c.path)
	}
	env, err := c.client.Do(ctx, http.MethodPut, c.path+"/"+id, updates, params)
	if err != nil {
		return zero, c.opError("update", err)
	}
	if len(env.Data) == 0 {
		return zero, c.missingData("update")
	}
	updated, err := decodeEntity(env.Data)
	if err != nil {
		return zero, c.opError("update", err)
	}
	return c.hydrate(updated, c.path+"/"+id)
}

// Delete removes the resource with the given id. The id is required and
// validated before any network call.
func (c *Collection[T]) Delete(ctx context.Context, id string, params transport.Params) error {
	if id == "" {
		return fmt.Errorf("atrium: id is required to delete a %s resource", c.path)
	}
	if _, err := c.client.Do(ctx, http.MethodDelete, c.path+"/"+id, nil, params); err != nil {
		return c.opError("delete", err)
	}
	return nil
}

func (c *Collection[T]) hydrate(entity models.Entity, baseURI string) (T, error) {
	item, err := c.factory(entity, baseURI)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to hydrate %s entity: %w", c.path, err)
	}
	return item, nil
}

// itemURI derives the item-specific URI for an entity that carries an id,
// falling back to the collection path when it does not.
func (c *Collection[T]) itemURI(entity models.Entity) string {
	if id, ok := entity["id"].(string); ok && id != "" {
		return c.path + "/" + id
	}
	return c.path
}

func (c *Collection[T]) opError(op string, err error) error {
	return fmt.Errorf("atrium: %s %s: %w", op, c.path, err)
}

func (c *Collection[T]) missingData(op string) error {
	return fmt.Errorf("atrium: %s %s: response missing data", op, c.path)
}
