package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/ledongthuc/pdf"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultMaxFileSize bounds the raw PDF size accepted for extraction.
	DefaultMaxFileSize = 50 << 20 // 50 MB

	// DefaultMaxPages caps how many pages are processed per document.
	DefaultMaxPages = 1000

	// DefaultLoadTimeout bounds how long a document open may take.
	DefaultLoadTimeout = 30 * time.Second

	// DefaultPageDelimiter joins per-page texts in the final output.
	DefaultPageDelimiter = "\n\n"

	// pageWindow is how many pages are extracted in flight at a time.
	// Bounded rather than full fan-out to cap peak memory and CPU.
	pageWindow = 3

	selfTestTimeout = 5 * time.Second
)

// malformedProbe is a header-only, deliberately incomplete PDF used by the
// engine self-test. The engine is expected to reject it promptly; only a hang
// fails the test.
var malformedProbe = []byte{
	0x25, 0x50, 0x44, 0x46, 0x2d, 0x31, 0x2e, 0x34, 0x0a,
	0x25, 0xe2, 0xe3, 0xcf, 0xd3,
}

// Options tunes a PDF extraction. Start from DefaultOptions and override
// individual fields; the zero value for a duration or count falls back to the
// package default.
type Options struct {
	MaxPages            int
	IncludeMetadata     bool
	NormalizeWhitespace bool
	PageDelimiter       string
	LoadTimeout         time.Duration
}

// DefaultOptions returns the standard extraction options.
func DefaultOptions() Options {
	return Options{
		MaxPages:            DefaultMaxPages,
		NormalizeWhitespace: true,
		PageDelimiter:       DefaultPageDelimiter,
		LoadTimeout:         DefaultLoadTimeout,
	}
}

func (o Options) withDefaults() Options {
	if o.MaxPages <= 0 {
		o.MaxPages = DefaultMaxPages
	}
	if o.PageDelimiter == "" {
		o.PageDelimiter = DefaultPageDelimiter
	}
	if o.LoadTimeout <= 0 {
		o.LoadTimeout = DefaultLoadTimeout
	}
	return o
}

// Metadata holds the document info fields of a PDF.
type Metadata struct {
	Title            string    `json:"title,omitempty"`
	Author           string    `json:"author,omitempty"`
	Subject          string    `json:"subject,omitempty"`
	Creator          string    `json:"creator,omitempty"`
	Producer         string    `json:"producer,omitempty"`
	CreationDate     time.Time `json:"creation_date,omitempty"`
	ModificationDate time.Time `json:"modification_date,omitempty"`
}

// Result is the outcome of one successful PDF extraction. PageCount is the
// document's true page count even when extraction was capped at MaxPages.
type Result struct {
	Text           string
	PageCount      int
	Metadata       *Metadata
	ProcessingTime time.Duration
}

// PDFExtractor pulls per-page text out of PDF documents with bounded page
// concurrency. The underlying engine state is process-wide and initialized at
// most once; concurrent callers share the same in-flight attempt.
type PDFExtractor struct {
	opts        Options
	maxFileSize int64

	initOnce sync.Once
	initErr  error
}

// NewPDFExtractor builds an extractor with the given options. maxFileSize <= 0
// selects DefaultMaxFileSize.
func NewPDFExtractor(opts Options, maxFileSize int64) *PDFExtractor {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	return &PDFExtractor{opts: opts.withDefaults(), maxFileSize: maxFileSize}
}

// init runs the one-time engine self-test. The probe is malformed on purpose:
// a prompt rejection proves the parser is responsive, a hang means the engine
// is unusable and the extractor stays failed without retrying.
func (e *PDFExtractor) init() error {
	e.initOnce.Do(func() {
		done := make(chan struct{})
		go func() {
			defer close(done)
			defer func() { _ = recover() }()
			_, _ = pdf.NewReader(bytes.NewReader(malformedProbe), int64(len(malformedProbe)))
		}()
		select {
		case <-done:
		case <-time.After(selfTestTimeout):
			e.initErr = newError(CodeInitFailed, "pdf engine self-test timed out")
		}
	})
	return e.initErr
}

// Extract satisfies Extractor, discarding page count and metadata.
func (e *PDFExtractor) Extract(ctx context.Context, file SourceFile) (string, error) {
	res, err := e.ExtractText(ctx, file)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// ExtractText runs the full extraction: validate, load with a timeout race,
// pull page text in a bounded window, then assemble text and metadata. A
// single page failure never aborts the document; it is replaced with a
// placeholder marker and extraction continues.
func (e *PDFExtractor) ExtractText(ctx context.Context, file SourceFile) (*Result, error) {
	start := time.Now()

	if err := e.init(); err != nil {
		return nil, err
	}
	if err := e.validate(file); err != nil {
		return nil, err
	}

	reader, err := e.load(ctx, file.Data)
	if err != nil {
		return nil, err
	}

	pageCount := reader.NumPage()
	if pageCount == 0 {
		return nil, newError(CodeNoPages, "pdf contains no pages")
	}

	pages := pageCount
	if pages > e.opts.MaxPages {
		log.Printf("pdf: %s has %d pages, limiting to %d", file.Name, pageCount, e.opts.MaxPages)
		pages = e.opts.MaxPages
	}

	// Pages settle independently inside a window of pageWindow in flight.
	// Results are placed by page index, so the final order is always
	// ascending by page number regardless of completion timing.
	texts := make([]string, pages)
	var g errgroup.Group
	g.SetLimit(pageWindow)
	for i := 0; i < pages; i++ {
		i := i
		g.Go(func() error {
			texts[i] = e.pageText(reader, i+1)
			return nil
		})
	}
	_ = g.Wait()

	var md *Metadata
	if e.opts.IncludeMetadata {
		md = documentMetadata(reader)
	}

	return &Result{
		Text:           strings.Join(texts, e.opts.PageDelimiter),
		PageCount:      pageCount,
		Metadata:       md,
		ProcessingTime: time.Since(start),
	}, nil
}

// validate checks the input before any engine call, in a fixed order so each
// bad input maps to one distinct failure code.
func (e *PDFExtractor) validate(file SourceFile) error {
	if file.absent() {
		return newError(CodeInvalidFile, "no file provided")
	}
	if file.ContentType != "application/pdf" &&
		!strings.EqualFold(filepath.Ext(file.Name), ".pdf") {
		return newError(CodeInvalidFileType, "file must be a PDF document")
	}
	if int64(len(file.Data)) > e.maxFileSize {
		return newError(CodeFileTooLarge,
			fmt.Sprintf("file size exceeds maximum limit of %dMB", e.maxFileSize>>20))
	}
	if len(file.Data) == 0 {
		return newError(CodeEmptyFile, "file is empty")
	}
	return nil
}

type loadResult struct {
	reader *pdf.Reader
	err    error
}

// load opens the document raced against the configured timeout. The document
// lives entirely in memory, so an abandoned load holds no handles that would
// need releasing.
func (e *PDFExtractor) load(ctx context.Context, data []byte) (*pdf.Reader, error) {
	ch := make(chan loadResult, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				ch <- loadResult{err: fmt.Errorf("pdf engine panic: %v", p)}
			}
		}()
		r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
		ch <- loadResult{reader: r, err: err}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			return nil, mapEngineError(res.err)
		}
		return res.reader, nil
	case <-time.After(e.opts.LoadTimeout):
		return nil, newError(CodeLoadTimeout, "pdf loading timeout")
	case <-ctx.Done():
		return nil, wrapError(CodeLoadTimeout, "pdf loading cancelled", ctx.Err())
	}
}

// mapEngineError translates engine failures into the extraction taxonomy.
func mapEngineError(err error) error {
	msg := err.Error()
	switch {
	case errors.Is(err, pdf.ErrInvalidPassword) || strings.Contains(msg, "encrypted"):
		return wrapError(CodePasswordProtected, "pdf is password protected", err)
	case strings.Contains(msg, "not a PDF file") ||
		strings.Contains(msg, "malformed") ||
		strings.Contains(msg, "invalid"):
		return wrapError(CodeInvalidPDF, "invalid or corrupted pdf file", err)
	case strings.Contains(msg, "EOF"):
		return wrapError(CodeMissingPDF, "pdf file truncated or empty", err)
	default:
		return wrapError(CodeProcessingFailed, "pdf processing failed", err)
	}
}

// pageText extracts one page, absorbing errors and engine panics into a
// placeholder so sibling pages keep going.
func (e *PDFExtractor) pageText(reader *pdf.Reader, num int) (text string) {
	defer func() {
		if p := recover(); p != nil {
			log.Printf("pdf: page %d extraction panicked: %v", num, p)
			text = pagePlaceholder(num)
		}
	}()

	page := reader.Page(num)
	if page.V.IsNull() {
		return ""
	}
	raw, err := page.GetPlainText(nil)
	if err != nil {
		log.Printf("pdf: page %d extraction failed: %v", num, err)
		return pagePlaceholder(num)
	}
	if e.opts.NormalizeWhitespace {
		raw = normalizeWhitespace(raw)
	}
	return raw
}

func pagePlaceholder(num int) string {
	return fmt.Sprintf("[error extracting page %d]", num)
}

var whitespaceRun = regexp.MustCompile(`\s+`)

func normalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// documentMetadata reads the trailer Info dict. Any failure here is swallowed;
// metadata is best-effort and never fails the extraction.
func documentMetadata(reader *pdf.Reader) (md *Metadata) {
	defer func() {
		if p := recover(); p != nil {
			log.Printf("pdf: metadata extraction failed: %v", p)
			md = nil
		}
	}()

	info := reader.Trailer().Key("Info")
	if info.IsNull() {
		return nil
	}
	return &Metadata{
		Title:            info.Key("Title").Text(),
		Author:           info.Key("Author").Text(),
		Subject:          info.Key("Subject").Text(),
		Creator:          info.Key("Creator").Text(),
		Producer:         info.Key("Producer").Text(),
		CreationDate:     parsePDFDate(info.Key("CreationDate").Text()),
		ModificationDate: parsePDFDate(info.Key("ModDate").Text()),
	}
}

// parsePDFDate decodes the PDF date format "D:YYYYMMDDHHmmSS..." ignoring the
// timezone suffix. Returns the zero time when the value does not parse.
func parsePDFDate(s string) time.Time {
	s = strings.TrimPrefix(s, "D:")
	digits := s
	for i, r := range s {
		if r < '0' || r > '9' {
			digits = s[:i]
			break
		}
	}
	layouts := []string{"20060102150405", "200601021504", "20060102"}
	for _, layout := range layouts {
		if len(digits) < len(layout) {
			continue
		}
		if t, err := time.Parse(layout, digits[:len(layout)]); err == nil {
			return t
		}
	}
	return time.Time{}
}
