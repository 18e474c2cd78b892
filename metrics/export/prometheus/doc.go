// Package prometheus renders authkit metrics in the Prometheus text
// exposition format (version 0.0.4) without depending on the Prometheus
// client library.
//
// [PrometheusExporter.Handler] serves a scrape endpoint; [PrometheusExporter.Render]
// returns the exposition text directly for embedding in an existing handler.
//
// # What this package must NOT do
//
//   - Start its own HTTP server.
//   - Mutate engine state.
package prometheus
