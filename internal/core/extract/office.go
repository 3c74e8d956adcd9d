package extract

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
)

const (
	mimeDoc  = "application/msword"
	mimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var _ Extractor = OfficeExtractor{}

// OfficeExtractor converts DOC/DOCX binary content to raw text via docconv.
// Conversion is a single atomic operation with no partial-success semantics.
type OfficeExtractor struct{}

func (OfficeExtractor) Extract(ctx context.Context, file SourceFile) (string, error) {
	res, err := docconv.Convert(bytes.NewReader(file.Data), officeMIME(file), false)
	if err != nil {
		return "", wrapError(CodeConversionFailed,
			fmt.Sprintf("converting %s", file.Name), err)
	}
	if err := ctx.Err(); err != nil {
		return "", wrapError(CodeConversionFailed, "conversion cancelled", err)
	}
	return res.Body, nil
}

// officeMIME resolves the mimetype docconv dispatches on. Browsers sometimes
// send application/octet-stream for .doc files, so the extension wins when the
// declared type is not a word-processing one.
func officeMIME(file SourceFile) string {
	mime := strings.ToLower(file.ContentType)
	if strings.Contains(mime, "document") || strings.Contains(mime, "msword") {
		return file.ContentType
	}
	if strings.EqualFold(filepath.Ext(file.Name), ".doc") {
		return mimeDoc
	}
	return mimeDocx
}
