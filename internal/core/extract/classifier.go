package extract

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Kind names one extractor category.
type Kind string

const (
	KindPDF    Kind = "pdf"
	KindImage  Kind = "image"
	KindOffice Kind = "office"
)

// acceptedExtensions is the upload allowlist advertised to clients.
var acceptedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
}

// AcceptedExtensions returns the upload file extensions the pipeline accepts,
// sorted for stable output.
func AcceptedExtensions() []string {
	out := make([]string, 0, len(acceptedExtensions))
	for ext := range acceptedExtensions {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// AcceptedExtension reports whether the filename carries an accepted upload
// extension.
func AcceptedExtension(filename string) bool {
	return acceptedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Classify routes a file to exactly one extractor based on its declared MIME
// type and filename. It is a pure function with no side effects; the declared
// MIME type is authoritative, the filename only breaks ties for office
// documents. Unsupported inputs fail with CodeUnsupportedFileType carrying the
// rejected MIME type.
func Classify(contentType, filename string) (Kind, error) {
	mime := strings.ToLower(contentType)
	name := strings.ToLower(filename)

	switch {
	case mime == "application/pdf":
		return KindPDF, nil
	case strings.Contains(mime, "image/"):
		return KindImage, nil
	case strings.Contains(mime, "document"), strings.Contains(mime, "msword"),
		strings.HasSuffix(name, ".doc"), strings.HasSuffix(name, ".docx"):
		return KindOffice, nil
	}

	return "", newError(CodeUnsupportedFileType,
		fmt.Sprintf("unsupported file type: %s", contentType))
}
