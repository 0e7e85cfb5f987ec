package asimplevectors

import (
	"context"
	"fmt"
	"net/http"

	"github.com/billionvectors/asimplevectors-go/v1/observability"
)

// Logger is the logging contract used by the client. logger.LoggerClient
// satisfies it.
//
//go:generate go tool mockgen -source=setup.go -destination=mock_logger_test.go -package=asimplevectors
type Logger interface {
	Debug(msg string, err error, fields ...map[string]interface{})
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})

	DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

// Client gives typed access to the asimplevectors HTTP API. Operations are
// grouped by resource family:
//
//	client.Cluster    // /cluster/*
//	client.Spaces     // /api/space, /api/spaces
//	client.Versions   // /api/space/{name}/version(s)
//	client.Vectors    // /api/space/{name}[/version/{id}]/vector(s)
//	client.Search     // search and BM25 rerank
//	client.Snapshots  // snapshot create/list/download/restore
//	client.Tokens     // /api/security/tokens
//	client.KeyValues  // /api/space/{name}/key(s)
//
// A Client is safe for concurrent use. It holds no state besides the
// current bearer token.
type Client struct {
	cfg       *Config
	http      *http.Client
	auth      *AuthContext
	transport *transport

	logger   Logger
	observer observability.Observer

	Cluster   *ClusterService
	Spaces    *SpaceService
	Versions  *VersionService
	Vectors   *VectorService
	Search    *SearchService
	Snapshots *SnapshotService
	Tokens    *TokenService
	KeyValues *KeyValueService
}

// service is embedded by every resource client.
type service struct {
	client *Client
}

func (s *service) transport() *transport { return s.client.transport }

// NewClient validates cfg and builds a client. A nil cfg means
// DefaultConfig().
//
// Example:
//
//	client, err := asimplevectors.NewClient(asimplevectors.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	err = client.Spaces.Create(ctx, &asimplevectors.SpaceRequest{
//	    Name:      "docs",
//	    Dimension: 384,
//	    Metric:    asimplevectors.MetricCosine,
//	})
func NewClient(cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid asimplevectors config: %w", err)
	}

	c := &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		auth: &AuthContext{},
	}
	c.auth.SetToken(cfg.Token)
	c.transport = newTransport(cfg, c.http, c.auth, c)

	base := service{client: c}
	c.Cluster = &ClusterService{base}
	c.Spaces = &SpaceService{base}
	c.Versions = &VersionService{base}
	c.Vectors = &VectorService{base}
	c.Search = &SearchService{base}
	c.Snapshots = &SnapshotService{base}
	c.Tokens = &TokenService{base}
	c.KeyValues = &KeyValueService{base}

	return c, nil
}

// WithLogger sets the logger for this client and returns the client for
// method chaining. Successful requests are logged at debug level, failed
// ones at warn level. Request logs go through the *WithContext methods with
// the request span's context, so a logger with tracing enabled adds
// trace_id and span_id.
func (c *Client) WithLogger(logger Logger) *Client {
	c.logger = logger
	return c
}

// WithObserver sets the observer notified after every request and returns
// the client for method chaining.
//
// Example:
//
//	m := metrics.NewMetrics(metrics.Config{})
//	client = client.WithObserver(m)
func (c *Client) WithObserver(observer observability.Observer) *Client {
	c.observer = observer
	return c
}

// WithHTTPClient replaces the underlying *http.Client, e.g. to install a
// custom RoundTripper. Config.Timeout is not applied to hc.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	c.transport.http = hc
	return c
}

// Auth returns the token holder shared by all requests of this client.
func (c *Client) Auth() *AuthContext { return c.auth }

// SetToken replaces the bearer token used by subsequent requests.
func (c *Client) SetToken(token string) { c.auth.SetToken(token) }

// Endpoint returns the base URL requests are sent to.
func (c *Client) Endpoint() string { return c.transport.baseURL }

// Close releases idle connections. The client must not be used afterwards.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}
