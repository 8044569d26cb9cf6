// Package atrium is the Go client SDK for the Atrium platform API. It wires
// the transport layer, the shared configuration store and one collection per
// resource type into a single Client.
//
// Basic usage:
//
//	client, err := atrium.New(config.Config{
//		APIURL:  "https://api.atrium.dev",
//		Version: "1",
//		APIKey:  os.Getenv("ATRIUM_API_KEY"),
//	})
//	if err != nil {
//		return err
//	}
//	agents, err := client.Agents.List(ctx, transport.Params{"limit": 10})
package atrium

import (
	"fmt"
	"net/http"

	"github.com/hashicorp/go-hclog"

	"github.com/atriumhq/atrium-go/pkg/auth"
	"github.com/atriumhq/atrium-go/pkg/collection"
	"github.com/atriumhq/atrium-go/pkg/config"
	"github.com/atriumhq/atrium-go/pkg/drive"
	"github.com/atriumhq/atrium-go/pkg/models"
	"github.com/atriumhq/atrium-go/pkg/transport"
)

// Client is the top-level SDK handle. Each exported collection is a
// parameterization of the generic engine over one resource type.
type Client struct {
	Agents        *collection.Collection[*models.Agent]
	Apps          *collection.Collection[*models.App]
	AIModels      *collection.Collection[*models.AIModel]
	Organizations *collection.Collection[*models.Organization]
	Users         *collection.Collection[*models.User]
	Drives        *collection.Collection[*models.Drive]
	BillingMeters *collection.Collection[*models.BillingMeter]
	Permissions   *collection.Collection[*models.Permission]

	store     *config.Store
	transport *transport.Client
	logger    hclog.Logger
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	logger     hclog.Logger
	httpClient *http.Client
	refresher  auth.Refresher
	userAgent  string
}

// WithLogger sets the logger used across the SDK. Verbose request and
// response diagnostics are emitted at Debug level when the configuration's
// Verbose flag is set.
func WithLogger(logger hclog.Logger) Option {
	return func(o *clientOptions) { o.logger = logger }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = hc }
}

// WithRefresher installs the session refresher invoked when the configured
// session token expires.
func WithRefresher(r auth.Refresher) Option {
	return func(o *clientOptions) { o.refresher = r }
}

// WithUserAgent overrides the User-Agent header on every request.
func WithUserAgent(ua string) Option {
	return func(o *clientOptions) { o.userAgent = ua }
}

// New validates cfg and builds a Client.
func New(cfg config.Config, opts ...Option) (*Client, error) {
	if cfg.Version == "" {
		cfg.Version = config.DefaultVersion
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("atrium: invalid configuration: %w", err)
	}

	options := &clientOptions{logger: hclog.NewNullLogger()}
	for _, opt := range opts {
		opt(options)
	}

	store := config.NewStore(cfg)

	transportOpts := []transport.Option{transport.WithLogger(options.logger)}
	if options.httpClient != nil {
		transportOpts = append(transportOpts, transport.WithHTTPClient(options.httpClient))
	}
	if options.refresher != nil {
		transportOpts = append(transportOpts, transport.WithRefresher(options.refresher))
	}
	if options.userAgent != "" {
		transportOpts = append(transportOpts, transport.WithUserAgent(options.userAgent))
	}
	tc := transport.NewClient(store, transportOpts...)

	return &Client{
		Agents:        collection.New(tc, "/agents", collection.Hydrate[models.Agent]()),
		Apps:          collection.New(tc, "/apps", collection.Hydrate[models.App]()),
		AIModels:      collection.New(tc, "/models", collection.Hydrate[models.AIModel]()),
		Organizations: collection.New(tc, "/organizations", collection.Hydrate[models.Organization]()),
		Users:         collection.New(tc, "/users", collection.Hydrate[models.User]()),
		Drives:        collection.New(tc, "/drives", collection.Hydrate[models.Drive]()),
		BillingMeters: collection.New(tc, "/billing/meters", collection.Hydrate[models.BillingMeter]()),
		Permissions:   collection.New(tc, "/permissions", collection.Hydrate[models.Permission]()),

		store:     store,
		transport: tc,
		logger:    options.logger,
	}, nil
}

// Config returns a copy of the current configuration.
func (c *Client) Config() config.Config {
	return c.store.Get()
}

// SetConfig replaces the configuration shared by every component.
func (c *Client) SetConfig(cfg config.Config) {
	c.store.Set(cfg)
}

// Transport exposes the underlying transport client for callers that need
// endpoints the typed collections do not cover.
func (c *Client) Transport() *transport.Client {
	return c.transport
}

// DriveItems returns the items collection of a hydrated drive.
func (c *Client) DriveItems(d *models.Drive) *drive.Items {
	return drive.NewItems(c.transport, d.ItemsURI())
}

// DriveItemsByID returns the items collection for a drive id without
// fetching the drive first.
func (c *Client) DriveItemsByID(driveID string) *drive.Items {
	return drive.NewItems(c.transport, "/drives/"+driveID+"/items")
}

// DriveUploader returns the upload orchestrator of a hydrated drive.
func (c *Client) DriveUploader(d *models.Drive, opts ...drive.UploaderOption) *drive.Uploader {
	opts = append([]drive.UploaderOption{drive.WithUploaderLogger(c.logger)}, opts...)
	return drive.NewUploader(c.transport, d.UploadsURI(), opts...)
}

// DriveUploaderByID returns the upload orchestrator for a drive id.
func (c *Client) DriveUploaderByID(driveID string, opts ...drive.UploaderOption) *drive.Uploader {
	opts = append([]drive.UploaderOption{drive.WithUploaderLogger(c.logger)}, opts...)
	return drive.NewUploader(c.transport, "/drives/"+driveID+"/uploads", opts...)
}
