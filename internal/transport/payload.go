package transport

import (
	"mime/multipart"
	"net/http"
	"strings"

	"qatrah-api/internal/middleware"
)

const maxMultipartMemory = 10 << 20 // 10 MB

// decodePayload decodes the request body into v and validates it. Plain
// JSON bodies are decoded directly. Multipart bodies carry the JSON payload
// in the "data" form field with the optional upload in the "image" file
// field; the file header is returned for the caller to store and attach to
// the payload before persisting.
func decodePayload(r *http.Request, v interface{}) (*multipart.FileHeader, error) {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		return nil, middleware.DecodeAndValidate(r, v)
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, err
	}

	var file *multipart.FileHeader
	if r.MultipartForm != nil {
		if headers := r.MultipartForm.File["image"]; len(headers) > 0 {
			file = headers[0]
		}
	}

	data := r.FormValue("data")
	if data == "" {
		data = "{}"
	}

	if err := middleware.DecodeAndValidateBytes([]byte(data), v); err != nil {
		return file, err
	}

	return file, nil
}
