package types

// DirectoryEntry is a listed subdirectory
type DirectoryEntry struct {
	DirectoryID string `json:"directory_id"`
	Name        string `json:"name"`
}

// ImageEntry is a listed image
type ImageEntry struct {
	FileID string `json:"file_id"`
	Name   string `json:"name"`
}

// SubdirectoriesResponse answers GET /api/subdirectories
type SubdirectoriesResponse struct {
	Subdirectories []DirectoryEntry `json:"subdirectories"`
}

// ImagesResponse answers GET /api/images/:directory_id
type ImagesResponse struct {
	DirectoryID  string       `json:"directory_id"`
	Subdirectory string       `json:"subdirectory"`
	Images       []ImageEntry `json:"images"`
}

// DeleteImageResponse answers DELETE /api/image/:file_id
type DeleteImageResponse struct {
	Deleted string `json:"deleted"`
	FileID  string `json:"file_id"`
}

// RenameDirectoryResponse answers PUT /api/subdirectories/:directory_id
type RenameDirectoryResponse struct {
	DirectoryID string `json:"directory_id"`
	RenamedFrom string `json:"renamed_from"`
	RenamedTo   string `json:"renamed_to"`
}

// ErrorResponse is the body of every API error
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse answers GET /health
type HealthResponse struct {
	Status          string `json:"status"`
	BaseDir         string `json:"base_dir"`
	RegistryEntries int    `json:"registry_entries"`
}
