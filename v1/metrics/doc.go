// Package metrics exposes Prometheus metrics for the asimplevectors client.
//
// *Metrics implements observability.Observer. Attach it to a client and every
// API call is counted by outcome and timed; streaming snapshot transfers also
// add to a byte counter:
//
//	m := metrics.NewMetrics(metrics.Config{Address: ":9090", ServiceName: "indexer"})
//	go m.Server.ListenAndServe()
//
//	client, _ := asimplevectors.NewClient(cfg)
//	client.WithObserver(m)
//
// The "status" label is one of success, not_found, unauthorized,
// client_error, server_error or error (transport and decoding failures).
package metrics
