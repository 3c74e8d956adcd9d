package batch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ananyajain10/pitchparse-ai/internal/core/extract"
	"github.com/ananyajain10/pitchparse-ai/internal/models"
)

type fakeExtractor struct {
	text    string
	err     error
	release chan struct{} // when set, Extract blocks until closed
	called  chan string
}

func (f *fakeExtractor) Extract(ctx context.Context, file extract.SourceFile) (string, error) {
	if f.called != nil {
		f.called <- file.Name
	}
	if f.release != nil {
		<-f.release
	}
	return f.text, f.err
}

// waitSettled polls until every tracked job is done or failed.
func waitSettled(t *testing.T, o *Orchestrator) []models.UploadJob {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		jobs := o.Jobs()
		settled := true
		for _, j := range jobs {
			if j.State != models.JobDone && j.State != models.JobFailed {
				settled = false
			}
		}
		if settled {
			return jobs
		}
		select {
		case <-deadline:
			t.Fatalf("jobs did not settle: %+v", jobs)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestOrchestratorJobsSettleIndependently(t *testing.T) {
	o := NewOrchestrator(
		&fakeExtractor{text: "deck contents"},
		&fakeExtractor{err: errors.New("conversion exploded")},
		&fakeExtractor{text: "ocr text"},
	)

	o.Submit(context.Background(), []extract.SourceFile{
		{Name: "good.pdf", ContentType: "application/pdf", Data: []byte("x")},
		{Name: "bad.docx", ContentType: "application/msword", Data: []byte("y")},
	})

	jobs := waitSettled(t, o)
	if len(jobs) != 2 {
		t.Fatalf("len(jobs) = %d, want 2", len(jobs))
	}

	byName := map[string]models.UploadJob{}
	for _, j := range jobs {
		byName[j.FileName] = j
	}

	good := byName["good.pdf"]
	if good.State != models.JobDone || good.ExtractedText != "deck contents" {
		t.Errorf("good.pdf = %+v, want done with text", good)
	}
	bad := byName["bad.docx"]
	if bad.State != models.JobFailed {
		t.Errorf("bad.docx state = %s, want failed", bad.State)
	}
	if bad.FailureReason == "" {
		t.Error("failed job must carry a non-empty reason")
	}
	if bad.ExtractedText != "" {
		t.Error("failed job must not carry extracted text")
	}
}

func TestOrchestratorUnsupportedTypeNeverReachesExtractor(t *testing.T) {
	called := make(chan string, 3)
	fake := &fakeExtractor{text: "x", called: called}
	o := NewOrchestrator(fake, fake, fake)

	o.Submit(context.Background(), []extract.SourceFile{
		{Name: "notes.txt", ContentType: "text/plain", Data: []byte("plain")},
	})

	jobs := waitSettled(t, o)
	if jobs[0].State != models.JobFailed {
		t.Fatalf("state = %s, want failed", jobs[0].State)
	}
	select {
	case name := <-called:
		t.Errorf("extractor was called for %s", name)
	default:
	}
}

func TestOrchestratorRemoveMidFlight(t *testing.T) {
	release := make(chan struct{})
	o := NewOrchestrator(
		&fakeExtractor{text: "late result", release: release},
		&fakeExtractor{text: "doc"},
		&fakeExtractor{text: "img"},
	)

	jobs := o.Submit(context.Background(), []extract.SourceFile{
		{Name: "slow.pdf", ContentType: "application/pdf", Data: []byte("x")},
		{Name: "sibling.docx", ContentType: "application/msword", Data: []byte("y")},
	})

	var slowID string
	for _, j := range jobs {
		if j.FileName == "slow.pdf" {
			slowID = j.ID
		}
	}

	if !o.Remove(slowID) {
		t.Fatal("Remove() = false, want true")
	}
	close(release)

	// The in-flight extraction completes and is discarded; it must not
	// reappear or disturb the sibling.
	settled := waitSettled(t, o)
	if len(settled) != 1 {
		t.Fatalf("len(jobs) = %d, want 1", len(settled))
	}
	if settled[0].FileName != "sibling.docx" || settled[0].State != models.JobDone {
		t.Errorf("sibling = %+v, want done", settled[0])
	}

	time.Sleep(20 * time.Millisecond)
	if got := len(o.Jobs()); got != 1 {
		t.Errorf("removed job reappeared; len(jobs) = %d, want 1", got)
	}

	if o.Remove("no-such-id") {
		t.Error("Remove(unknown) = true, want false")
	}
}

func TestOrchestratorHasUsableResult(t *testing.T) {
	o := NewOrchestrator(
		&fakeExtractor{text: "   "},
		&fakeExtractor{text: "doc"},
		&fakeExtractor{text: "img"},
	)

	if o.HasUsableResult() {
		t.Error("HasUsableResult() on empty batch = true")
	}

	o.Submit(context.Background(), []extract.SourceFile{
		{Name: "blank.pdf", ContentType: "application/pdf", Data: []byte("x")},
	})
	waitSettled(t, o)
	if o.HasUsableResult() {
		t.Error("whitespace-only extraction counted as usable")
	}

	o.Submit(context.Background(), []extract.SourceFile{
		{Name: "real.docx", ContentType: "application/msword", Data: []byte("y")},
	})
	waitSettled(t, o)
	if !o.HasUsableResult() {
		t.Error("HasUsableResult() = false, want true")
	}

	o.Clear()
	if len(o.Jobs()) != 0 || o.HasUsableResult() {
		t.Error("Clear() left jobs behind")
	}
}
