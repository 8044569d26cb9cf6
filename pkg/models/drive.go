package models

// Drive is a file storage space scoped to an organization or app. Its items
// and uploads live under the drive's own URI, so a hydrated Drive must know
// where it came from (see Resource.URI).
type Drive struct {
	Resource `mapstructure:",squash"`

	Name      string `json:"name" mapstructure:"name"`
	OwnerID   string `json:"owner_id,omitempty" mapstructure:"owner_id"`
	QuotaSize int64  `json:"quota_size,omitempty" mapstructure:"quota_size"`
	UsedSize  int64  `json:"used_size,omitempty" mapstructure:"used_size"`
}

// ItemsURI returns the path of the drive's items collection.
func (d *Drive) ItemsURI() string { return d.URI + "/items" }

// UploadsURI returns the path uploads for this drive are created under.
func (d *Drive) UploadsURI() string { return d.URI + "/uploads" }

// DriveItem is a file or folder inside a drive.
type DriveItem struct {
	Resource `mapstructure:",squash"`

	Name     string `json:"name" mapstructure:"name"`
	Path     string `json:"path,omitempty" mapstructure:"path"`
	MimeType string `json:"mime_type,omitempty" mapstructure:"mime_type"`
	Size     int64  `json:"size,omitempty" mapstructure:"size"`
	IsFolder bool   `json:"is_folder,omitempty" mapstructure:"is_folder"`
	ParentID string `json:"parent_id,omitempty" mapstructure:"parent_id"`
}
