package uploads

// DeleteFilesRequest represents a delete-files service request.
type DeleteFilesRequest struct {
	References []string `json:"references"`
	UploadRoot string   `json:"upload_root"`
}

// DeleteFilesResponse represents a delete-files service response.
type DeleteFilesResponse struct {
	Deleted []string `json:"deleted"`
	Failed  []string `json:"failed"`
}
