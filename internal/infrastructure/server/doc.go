// Package server assembles the gallery server from its parts.
//
// NewServer resolves the configured directories, builds the logger,
// metrics, tracer, resource registry and gallery service, and mounts the
// middleware chain (recovery, tracing, metrics, CORS, optional rate limit)
// in front of the API routes and /metrics.
//
// Lifecycle:
//   - Start: optional registry prewarm and periodic sweep, bound to ctx
//   - Run/Serve: HTTP until ctx is cancelled, then graceful shutdown
//   - Close: drain spans and sync the logger
//
// Example Usage:
//
//	srv, err := server.NewServer(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer srv.Close()
//	err = srv.Run(ctx)
package server
