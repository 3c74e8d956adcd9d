// Package batch tracks the upload jobs created from one file-selection action
// and assembles their extracted text into a prompt body.
package batch

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ananyajain10/pitchparse-ai/internal/core/extract"
	"github.com/ananyajain10/pitchparse-ai/internal/models"
)

// Orchestrator owns the UploadJob collection. Each submitted file gets its own
// tracked job and its own extraction goroutine; jobs settle independently, so
// one file's failure never blocks or aborts its siblings.
type Orchestrator struct {
	pdf    extract.Extractor
	office extract.Extractor
	image  extract.Extractor

	mu    sync.Mutex
	jobs  map[string]*models.UploadJob
	order []string
}

// NewOrchestrator wires the per-category extractors.
func NewOrchestrator(pdf, office, image extract.Extractor) *Orchestrator {
	return &Orchestrator{
		pdf:    pdf,
		office: office,
		image:  image,
		jobs:   make(map[string]*models.UploadJob),
	}
}

// Submit creates one pending job per file and dispatches each extraction
// concurrently. It returns the created jobs immediately; callers observe
// completion through Jobs. No ordering is guaranteed across files.
func (o *Orchestrator) Submit(ctx context.Context, files []extract.SourceFile) []models.UploadJob {
	out := make([]models.UploadJob, 0, len(files))
	for _, f := range files {
		now := time.Now()
		job := &models.UploadJob{
			ID:          uuid.NewString(),
			FileName:    f.Name,
			ContentType: f.ContentType,
			ByteSize:    int64(len(f.Data)),
			State:       models.JobPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		o.mu.Lock()
		o.jobs[job.ID] = job
		o.order = append(o.order, job.ID)
		o.mu.Unlock()

		out = append(out, *job)
		go o.run(ctx, job.ID, f)
	}
	return out
}

func (o *Orchestrator) run(ctx context.Context, id string, file extract.SourceFile) {
	o.setProcessing(id)

	text, err := o.extractOne(ctx, file)

	o.mu.Lock()
	defer o.mu.Unlock()
	job, ok := o.jobs[id]
	if !ok {
		// Removed mid-flight. The extraction was allowed to complete;
		// its result is discarded and must not touch sibling state.
		log.Printf("batch: discarding result for removed job %s (%s)", id, file.Name)
		return
	}
	if err != nil {
		job.State = models.JobFailed
		job.FailureReason = err.Error()
		log.Printf("batch: extraction failed for %s: %v", file.Name, err)
	} else {
		job.State = models.JobDone
		job.ExtractedText = text
	}
	job.UpdatedAt = time.Now()
}

func (o *Orchestrator) setProcessing(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if job, ok := o.jobs[id]; ok {
		job.State = models.JobProcessing
		job.UpdatedAt = time.Now()
	}
}

func (o *Orchestrator) extractOne(ctx context.Context, file extract.SourceFile) (string, error) {
	kind, err := extract.Classify(file.ContentType, file.Name)
	if err != nil {
		return "", err
	}
	switch kind {
	case extract.KindPDF:
		return o.pdf.Extract(ctx, file)
	case extract.KindImage:
		return o.image.Extract(ctx, file)
	default:
		return o.office.Extract(ctx, file)
	}
}

// Jobs returns a snapshot of all tracked jobs in submission order.
func (o *Orchestrator) Jobs() []models.UploadJob {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]models.UploadJob, 0, len(o.order))
	for _, id := range o.order {
		if job, ok := o.jobs[id]; ok {
			out = append(out, *job)
		}
	}
	return out
}

// Remove discards a job by ID regardless of its state. An in-flight
// extraction is not cancelled; its result is dropped when it settles.
func (o *Orchestrator) Remove(id string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.jobs[id]; !ok {
		return false
	}
	delete(o.jobs, id)
	for i, jid := range o.order {
		if jid == id {
			o.order = append(o.order[:i], o.order[i+1:]...)
			break
		}
	}
	return true
}

// HasUsableResult reports whether at least one job finished with non-empty
// text.
func (o *Orchestrator) HasUsableResult() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, job := range o.jobs {
		if job.State == models.JobDone && strings.TrimSpace(job.ExtractedText) != "" {
			return true
		}
	}
	return false
}

// Clear drops every tracked job, typically after a successful send.
func (o *Orchestrator) Clear() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.jobs = make(map[string]*models.UploadJob)
	o.order = nil
}
