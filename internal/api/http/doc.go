// Package http provides HTTP handlers and routing for the gallery REST API.
//
// Handlers translate requests into gallery.Service calls and map the
// service's sentinel errors onto status codes with a {"error": "..."} body.
//
// Endpoints:
//   - Health: /health
//   - Pages: / (gallery), /viewer (single image)
//   - Listings: GET /api/subdirectories, GET /api/images/:directory_id
//   - Images: GET|HEAD|DELETE /api/image/:file_id
//   - Rename: PUT /api/subdirectories/:directory_id {"new_name": "..."}
//   - Legacy: GET|HEAD /api/raw/*path (opt-in)
//
// Anything else is served from the static directory.
//
// Status Codes:
//   - 404: unknown or stale identifier
//   - 415: identifier points at a non-image file
//   - 400: invalid rename target
//   - 409: rename target exists
//   - 403: legacy path escapes the base directory
//   - 500: filesystem failure
//
// Example Usage:
//
//	handlers := http.NewHandlers(svc, http.NewHandlerMetrics(metrics), logger).WithStatic(staticDir)
//	http.RegisterRoutes(router, handlers, http.RouteOptions{})
package http
