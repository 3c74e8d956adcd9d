package extract

import (
	"context"
)

// SourceFile is one uploaded file handed to the pipeline: raw bytes plus the
// metadata the browser declared for it.
type SourceFile struct {
	Name        string
	ContentType string
	Data        []byte
}

func (f SourceFile) absent() bool {
	return f.Name == "" && f.ContentType == "" && f.Data == nil
}

// Extractor converts one file category into plain text. Implementations
// return a typed *Error on failure so the orchestrator can record a precise
// failure reason per job.
type Extractor interface {
	Extract(ctx context.Context, file SourceFile) (string, error)
}
