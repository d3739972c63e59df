package codaio

import (
	"context"
	"time"

	"github.com/blasterai/codaio-go/codaio/resources"
	"github.com/blasterai/codaio-go/internal/httpx"
	"github.com/blasterai/codaio-go/internal/poll"
)

var errEmptyResponse = resources.ErrEmptyResponse

// Client is the main Coda SDK client.
type Client struct {
	cfg       *Config
	transport *httpx.Transport

	// Resource accessors
	docs     *resources.DocsResource
	sections *resources.SectionsResource
	tables   *resources.TablesResource
	columns  *resources.ColumnsResource
	rows     *resources.RowsResource
}

// NewClient creates a new Coda client with the given options.
func NewClient(opts ...Option) (*Client, error) {
	cfg := resolveConfig(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := httpx.NewTransport(httpx.Config{
		BaseURL:    cfg.BaseURL,
		APIKey:     cfg.APIKey,
		UserAgent:  cfg.UserAgent,
		Headers:    cfg.Headers,
		Timeout:    cfg.Timeout,
		HTTPClient: cfg.HTTPClient,
		RateLimit: httpx.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		},
		Logger: wrapLogger(cfg.Logger),
	})

	c := &Client{
		cfg:       cfg,
		transport: transport,
	}
	c.initResources()

	return c, nil
}

// wrapLogger wraps a codaio.Logger to an httpx.Logger.
func wrapLogger(l Logger) httpx.Logger {
	if l == nil {
		return nil
	}
	return l
}

func (c *Client) initResources() {
	c.docs = resources.NewDocsResource(c.transport)
	c.sections = resources.NewSectionsResource(c.transport)
	c.tables = resources.NewTablesResource(c.transport)
	c.columns = resources.NewColumnsResource(c.transport)
	c.rows = resources.NewRowsResource(c.transport)
}

// Close releases idle connections held by the HTTP client.
func (c *Client) Close() error {
	c.transport.CloseIdleConnections()
	return nil
}

// GetConfig returns a copy of the client configuration.
func (c *Client) GetConfig() Config {
	cfg := *c.cfg
	cfg.Headers = make(map[string]string, len(c.cfg.Headers))
	for k, v := range c.cfg.Headers {
		cfg.Headers[k] = v
	}
	return cfg
}

// BaseURL returns the API root requests are sent to.
func (c *Client) BaseURL() string {
	return c.transport.BaseURL()
}

// Docs returns the docs resource.
func (c *Client) Docs() *resources.DocsResource { return c.docs }

// Sections returns the sections resource.
func (c *Client) Sections() *resources.SectionsResource { return c.sections }

// Tables returns the tables resource.
func (c *Client) Tables() *resources.TablesResource { return c.tables }

// Columns returns the columns resource.
func (c *Client) Columns() *resources.ColumnsResource { return c.columns }

// Rows returns the rows resource.
func (c *Client) Rows() *resources.RowsResource { return c.rows }

// Document loads a doc's metadata. A missing or empty response yields a
// *DocumentNotFoundError.
func (c *Client) Document(ctx context.Context, docID string) (*Document, error) {
	d := &Document{client: c}
	d.ID = docID
	if err := d.Refresh(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

// ListDocuments lists the docs visible to the token.
func (c *Client) ListDocuments(ctx context.Context, params *resources.ListDocsParams) ([]*Document, error) {
	records, err := c.docs.List(ctx, params)
	if err != nil {
		return nil, err
	}
	docs := make([]*Document, len(records))
	for i, rec := range records {
		docs[i] = &Document{DocumentRecord: rec, client: c}
	}
	return docs, nil
}

func (c *Client) pollPolicy(notify func(attempt int)) poll.Policy {
	return poll.Policy{
		Interval:    c.cfg.Poll.Interval,
		MaxAttempts: c.cfg.Poll.MaxAttempts,
		Notify: func(attempt int, _ time.Duration) {
			if notify != nil {
				notify(attempt)
			}
		},
	}
}

func (c *Client) log(msg string, keysAndValues ...any) {
	if c.cfg.Logger != nil {
		c.cfg.Logger.Debug(msg, keysAndValues...)
	}
}
