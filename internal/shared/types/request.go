package types

// RenameDirectoryRequest is the body of PUT /api/subdirectories/:directory_id.
// NewName is a pointer so binding rejects only an absent field.
type RenameDirectoryRequest struct {
	NewName *string `json:"new_name" binding:"required"`
}
