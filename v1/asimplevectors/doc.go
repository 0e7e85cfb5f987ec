// Package asimplevectors provides a typed client for the asimplevectors
// vector database HTTP API.
//
// The client covers cluster administration, space, version and vector
// management, similarity search, BM25 rerank, snapshot backup and restore,
// RBAC tokens and the per-space key-value store. The vector engine itself
// runs on the server; this package only speaks its HTTP protocol.
//
// # Architecture
//
// Every operation follows the same path:
//
//	Client.<Service>.<Op>(ctx, ...)  ->  transport  ->  envelope normalizer  ->  typed result
//
// The stages are:
//
//   - transport: one HTTP request per call, JSON bodies, bearer token from the
//     AuthContext, an X-Request-Id per request, a client span and W3C trace
//     headers. It never retries.
//   - envelope normalizer: removes the server's wire quirks. Cluster metrics
//     arrive as {"Ok": {...}}, vector listings nest floats in
//     {"data": {"data": [...]}}, key-value reads answer with either "text" or
//     "value", and snapshot listings may or may not carry a date. Callers
//     never see these shapes.
//   - services: ClusterService, SpaceService, VersionService, VectorService,
//     SearchService, SnapshotService, TokenService and KeyValueService.
//
// # Direct Usage (Without FX)
//
//	client, err := asimplevectors.NewClient(asimplevectors.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	ctx := context.Background()
//	err = client.Spaces.Create(ctx, &asimplevectors.SpaceRequest{
//		Name:       "docs",
//		Dimension:  4,
//		Metric:     asimplevectors.MetricL2,
//		HNSWConfig: &asimplevectors.HNSWConfig{M: asimplevectors.Int(32), EfConstruct: asimplevectors.Int(123)},
//	})
//
//	md, _ := asimplevectors.MetadataOf(map[string]interface{}{"label": "first"})
//	err = client.Vectors.Upsert(ctx, "docs", []asimplevectors.Vector{
//		{ID: 1, Data: []float32{0.1, 0.2, 0.3, 0.4}, Metadata: md},
//	})
//
//	hits, err := client.Search.Search(ctx, "docs", &asimplevectors.SearchRequest{
//		Vector: []float32{0.1, 0.2, 0.3, 0.4},
//		TopK:   5,
//	})
//
// # Errors
//
// Failures are returned unchanged; nothing is retried. Three concrete types
// cover all cases:
//
//   - *TransportError: no HTTP response (DNS, refused connection, timeout).
//   - *StatusError: non-2xx response, with method, path, status and body.
//   - *EnvelopeError: 2xx response with an unexpected body shape.
//
// Use the helpers to branch on the kind of failure:
//
//	if err := client.KeyValues.Delete(ctx, "docs", "k"); err != nil && !asimplevectors.IsNotFound(err) {
//		return err
//	}
//
// IsUnauthorized matches 401 and 403, IsConflict matches 409.
//
// # Snapshots
//
// Snapshots are identified by the date token of their file name
// ("snapshot-20240115.zip" has date "20240115"). Download writes to a
// temporary file and renames it once complete; UploadRestore streams a
// multipart upload without buffering the archive.
//
//	path, err := client.Snapshots.Download(ctx, "20240115", "/var/backups")
//	err = client.Snapshots.UploadRestore(ctx, path)
//
// # Authentication
//
// The bearer token can be changed at any time and applies to every request
// sent afterwards:
//
//	created, err := client.Tokens.Create(ctx, &asimplevectors.TokenRequest{
//		Space: asimplevectors.PermissionWrite,
//	})
//	client.SetToken(created.Token)
//
// # Filters
//
// SearchRequest.Filter and ListOptions.Filter take the server's expression
// syntax verbatim. FilterSet renders simple expressions:
//
//	filter, err := (&asimplevectors.FilterSet{
//		Should: []asimplevectors.FilterCondition{
//			&asimplevectors.MatchCondition{Field: "meta", Value: "first"},
//			&asimplevectors.MatchCondition{Field: "meta", Value: "second"},
//		},
//	}).Build()
//
// # FX Module Integration
//
//	app := fx.New(
//		logger.FXModule,
//		asimplevectors.FXModule,
//		fx.Provide(asimplevectors.NewConfigFromEnv),
//		fx.Invoke(func(c *asimplevectors.Client) { /* ... */ }),
//	)
//
// # Thread Safety
//
// A Client may be shared between goroutines. The library imposes no order
// on concurrent calls; callers that need a space to exist before upserting
// into it must wait for Create to return.
package asimplevectors
