package models

// Agent is a deployed agent on the platform.
type Agent struct {
	Resource `mapstructure:",squash"`

	Name        string         `json:"name" mapstructure:"name"`
	Description string         `json:"description,omitempty" mapstructure:"description"`
	Status      string         `json:"status,omitempty" mapstructure:"status"`
	Tags        []string       `json:"tags,omitempty" mapstructure:"tags"`
	Settings    map[string]any `json:"settings,omitempty" mapstructure:"settings"`
}

// App is an application workspace grouping agents and resources.
type App struct {
	Resource `mapstructure:",squash"`

	Name           string `json:"name" mapstructure:"name"`
	Description    string `json:"description,omitempty" mapstructure:"description"`
	OrganizationID string `json:"organization_id,omitempty" mapstructure:"organization_id"`
}

// AIModel is a model deployment available to agents. The resource lives
// under the "models" path segment.
type AIModel struct {
	Resource `mapstructure:",squash"`

	Name     string         `json:"name" mapstructure:"name"`
	Provider string         `json:"provider,omitempty" mapstructure:"provider"`
	Features []string       `json:"features,omitempty" mapstructure:"features"`
	Settings map[string]any `json:"settings,omitempty" mapstructure:"settings"`
}

// Organization is a tenant on the platform.
type Organization struct {
	Resource `mapstructure:",squash"`

	Name  string `json:"name" mapstructure:"name"`
	Plan  string `json:"plan,omitempty" mapstructure:"plan"`
	Email string `json:"email,omitempty" mapstructure:"email"`
}

// User is a member of an organization.
type User struct {
	Resource `mapstructure:",squash"`

	Name  string   `json:"name" mapstructure:"name"`
	Email string   `json:"email,omitempty" mapstructure:"email"`
	Roles []string `json:"roles,omitempty" mapstructure:"roles"`
}

// BillingMeter tracks metered usage for billing.
type BillingMeter struct {
	Resource `mapstructure:",squash"`

	Name      string  `json:"name" mapstructure:"name"`
	EventName string  `json:"event_name,omitempty" mapstructure:"event_name"`
	Unit      string  `json:"unit,omitempty" mapstructure:"unit"`
	Value     float64 `json:"value,omitempty" mapstructure:"value"`
}

// Permission is an access grant on a resource.
type Permission struct {
	Resource `mapstructure:",squash"`

	SubjectID    string `json:"subject_id,omitempty" mapstructure:"subject_id"`
	ResourceID   string `json:"resource_id,omitempty" mapstructure:"resource_id"`
	ResourceType string `json:"resource_type,omitempty" mapstructure:"resource_type"`
	Role         string `json:"role,omitempty" mapstructure:"role"`
}
