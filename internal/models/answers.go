package models

type UploadedFile struct {
	Name string
	Data []byte
}

type AskRequest struct {
	Question string
	File     *UploadedFile
}

// HasFile reports whether a named file was uploaded.
func (r *AskRequest) HasFile() bool {
	return r.File != nil && r.File.Name != ""
}

type AnswerResponse struct {
	Answer string `json:"answer"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
