package dto

// UploadResponse is returned on a successful paper upload. Filename is the
// name the file was stored under, not the original upload name.
type UploadResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Filename string `json:"filename"`
	FileURL  string `json:"fileUrl,omitempty"`
}
