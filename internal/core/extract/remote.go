package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

var _ Extractor = (*RemoteClient)(nil)

// RemoteClient delegates PDF text extraction to a hosted service. The file is
// posted as multipart form data to baseURL + "/extract-pdf-text"; a 2xx reply
// carries {"text": ...}, anything else carries {"error": ...} or nothing.
type RemoteClient struct {
	baseURL string
	client  *http.Client
}

// NewRemoteClient builds a client for the extraction service at baseURL.
func NewRemoteClient(baseURL string) *RemoteClient {
	return &RemoteClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

func (c *RemoteClient) Extract(ctx context.Context, file SourceFile) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", file.Name)
	if err != nil {
		return "", wrapError(CodeRemoteFailed, "building upload form", err)
	}
	if _, err := part.Write(file.Data); err != nil {
		return "", wrapError(CodeRemoteFailed, "building upload form", err)
	}
	if err := writer.Close(); err != nil {
		return "", wrapError(CodeRemoteFailed, "building upload form", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/extract-pdf-text", &buf)
	if err != nil {
		return "", wrapError(CodeRemoteFailed, "building request", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", wrapError(CodeRemoteFailed, "extraction service unreachable", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", wrapError(CodeRemoteFailed, "reading extraction response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var failure struct {
			Error string `json:"error"`
		}
		msg := fmt.Sprintf("extraction service returned status %d", resp.StatusCode)
		if json.Unmarshal(body, &failure) == nil && failure.Error != "" {
			msg = failure.Error
		}
		return "", newError(CodeRemoteFailed, msg)
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", wrapError(CodeRemoteFailed, "malformed extraction response", err)
	}
	return out.Text, nil
}
