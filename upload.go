package radmachine

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
)

// FileUpload is binary content destined for an upload test. The bytes
// are transmitted as a base64-encoded string inside the JSON perform
// payload, not as multipart form data.
type FileUpload struct {
	Filename string
	Data     []byte
}

// FileUploadFromPath reads a file from disk and names the upload after
// its base name.
func FileUploadFromPath(path string) (FileUpload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileUpload{}, fmt.Errorf("read upload file: %w", err)
	}
	return FileUpload{Filename: filepath.Base(path), Data: data}, nil
}

// TestResult returns the perform-QA entry for the upload, with the
// bytes base64-encoded per the server's attachment convention.
func (f FileUpload) TestResult() TestResult {
	return TestResult{
		Filename: f.Filename,
		Encoding: "base64",
		Value:    base64.StdEncoding.EncodeToString(f.Data),
	}
}
