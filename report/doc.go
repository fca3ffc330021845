// Package report mirrors connection health into NATS JetStream KV.
//
// The report mechanism lets external systems observe a connection's health
// without talking to the process that owns it. The Publisher subscribes to
// a Monitor's health transitions and writes a JSON entry per transition to
// a KV bucket; dashboards and supervisors watch the bucket instead of
// polling the application.
//
// # Publisher Lifecycle
//
// The Publisher manages the complete reporting lifecycle:
//
//  1. Create publisher with New(kv, key, monitor)
//  2. Optionally set a logger with SetLogger and metrics with SetMetrics
//  3. Start mirroring with Start(ctx)
//  4. Stop mirroring with Stop()
//
// Example:
//
//	publisher := report.New(kv, "gateway", mon)
//	publisher.SetLogger(myLogger)
//
//	if err := publisher.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer publisher.Stop()
//
// # Entry Format
//
// Each write stores a JSON Entry under the configured key:
//
//	{"health":"Warned","last_activity":"...","observed_at":"..."}
//
// Start writes the current health immediately; afterwards an entry is
// written only when the health changes. Stop deletes the key, so an absent
// key means "nobody is reporting", not "healthy".
//
// # Failure Handling
//
// Writes from the background loop are best-effort: a failed write is
// logged and counted, and the loop keeps running. Only the initial write
// can fail Start.
package report
