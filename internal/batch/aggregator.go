package batch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ananyajain10/pitchparse-ai/internal/models"
)

// ErrNothingToSend means the prompt would be empty: no typed message and no
// successfully extracted document text. Sending is disallowed in that case.
var ErrNothingToSend = errors.New("nothing to send: no message and no extracted documents")

// BuildPrompt combines free-form user text with the extracted text of every
// done job. User text comes first; each file's text follows under a separator
// header naming its source file, blocks separated by a blank line. Jobs that
// failed or produced only whitespace are skipped.
func BuildPrompt(userText string, jobs []models.UploadJob) (string, error) {
	var blocks []string
	if t := strings.TrimSpace(userText); t != "" {
		blocks = append(blocks, t)
	}
	for _, job := range jobs {
		if job.State != models.JobDone || strings.TrimSpace(job.ExtractedText) == "" {
			continue
		}
		blocks = append(blocks,
			fmt.Sprintf("--- %s ---\n%s", job.FileName, strings.TrimSpace(job.ExtractedText)))
	}
	if len(blocks) == 0 {
		return "", ErrNothingToSend
	}
	return strings.Join(blocks, "\n\n"), nil
}
