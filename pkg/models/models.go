// Package models contains the typed resource shapes returned by the Atrium
// API. Every resource embeds Resource, which carries the server-assigned ID
// and the base URI the instance was hydrated from; child collections are
// constructed from that URI.
package models

// Entity is the raw attribute bag for one resource instance as transmitted
// over the wire. The SDK treats it as opaque pass-through data: it is neither
// validated nor interpreted beyond hydration into a typed model.
type Entity = map[string]any

// Paging is the optional envelope field returned alongside list results. It
// is opaque to the collection engine and passed through to the caller.
type Paging struct {
	Limit  int `json:"limit" mapstructure:"limit"`
	Offset int `json:"offset" mapstructure:"offset"`
	Total  int `json:"total" mapstructure:"total"`
}

// Resource is the common core of every API resource.
type Resource struct {
	ID        string `json:"id" mapstructure:"id"`
	CreatedAt string `json:"created_at,omitempty" mapstructure:"created_at"`
	UpdatedAt string `json:"updated_at,omitempty" mapstructure:"updated_at"`

	// URI is the API path this instance was hydrated from. For items from a
	// list it is the collection path; for a single fetch or update it is the
	// item path. Sub-resource paths are built from it.
	URI string `json:"-" mapstructure:"-"`
}

// SetURI records the base URI the instance was hydrated from. Called by the
// collection engine; satisfies collection.URISetter.
func (r *Resource) SetURI(uri string) { r.URI = uri }
