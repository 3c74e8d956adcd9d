package extract

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// ProgressFunc receives advisory recognition-stage updates for UI feedback.
// Calls carry no correctness requirement and may be dropped.
type ProgressFunc func(stage string)

var _ Extractor = (*ImageExtractor)(nil)

// ImageExtractor runs optical character recognition over raster images.
// Recognition language is fixed to English.
type ImageExtractor struct {
	language string
	progress ProgressFunc
}

// NewImageExtractor builds an OCR extractor. progress may be nil.
func NewImageExtractor(progress ProgressFunc) *ImageExtractor {
	return &ImageExtractor{language: "eng", progress: progress}
}

func (e *ImageExtractor) Extract(ctx context.Context, file SourceFile) (string, error) {
	e.report(fmt.Sprintf("recognizing %s", file.Name))

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.language); err != nil {
		return "", wrapError(CodeRecognitionFailed, "setting ocr language", err)
	}
	if err := client.SetImageFromBytes(file.Data); err != nil {
		return "", wrapError(CodeRecognitionFailed,
			fmt.Sprintf("loading image %s", file.Name), err)
	}

	text, err := client.Text()
	if err != nil {
		return "", wrapError(CodeRecognitionFailed,
			fmt.Sprintf("recognizing text in %s", file.Name), err)
	}
	if err := ctx.Err(); err != nil {
		return "", wrapError(CodeRecognitionFailed, "recognition cancelled", err)
	}

	e.report(fmt.Sprintf("recognized %s", file.Name))
	return text, nil
}

func (e *ImageExtractor) report(stage string) {
	if e.progress != nil {
		e.progress(stage)
	}
}
