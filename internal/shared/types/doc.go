// Package types provides the JSON schema of the gallery API.
//
// Response Types:
//   - SubdirectoriesResponse: DirectoryEntry list, newest name first
//   - ImagesResponse: ImageEntry list of one subdirectory
//   - DeleteImageResponse, RenameDirectoryResponse: mutation results
//   - ErrorResponse: {"error": "..."} body of every failure
//   - HealthResponse: liveness check
//
// Request Types:
//   - RenameDirectoryRequest: {"new_name": "..."}
//
// Lists are never encoded as null; handlers allocate empty slices.
package types
