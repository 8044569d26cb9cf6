package collection

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/atriumhq/atrium-go/pkg/models"
)

// URISetter is implemented by models that record the base URI they were
// hydrated from. models.Resource satisfies it.
type URISetter interface {
	SetURI(uri string)
}

// Hydrate returns a Factory that decodes raw entities into *T via
// mapstructure and records the base URI on models that accept one. Unknown
// attributes in the entity bag are ignored rather than rejected; the server
// is free to add fields.
func Hydrate[T any]() Factory[*T] {
	return func(raw models.Entity, baseURI string) (*T, error) {
		out := new(T)
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           out,
			TagName:          "mapstructure",
			WeaklyTypedInput: true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build decoder: %w", err)
		}
		if err := decoder.Decode(raw); err != nil {
			return nil, fmt.Errorf("failed to decode entity: %w", err)
		}
		if setter, ok := any(out).(URISetter); ok {
			setter.SetURI(baseURI)
		}
		return out, nil
	}
}

// decodeEntity parses raw JSON into a single entity bag.
func decodeEntity(raw json.RawMessage) (models.Entity, error) {
	var entity models.Entity
	if err := json.Unmarshal(raw, &entity); err != nil {
		return nil, fmt.Errorf("failed to decode entity: %w", err)
	}
	return entity, nil
}

// decodeEntities parses raw JSON into an entity slice, accepting either an
// array or a single object.
func decodeEntities(raw json.RawMessage) ([]models.Entity, error) {
	var entities []models.Entity
	if err := json.Unmarshal(raw, &entities); err == nil {
		return entities, nil
	}
	entity, err := decodeEntity(raw)
	if err != nil {
		return nil, fmt.Errorf("data is neither an entity array nor an entity: %w", err)
	}
	return []models.Entity{entity}, nil
}
