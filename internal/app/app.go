package app

import (
	"context"
	"log"
	"time"

	"github.com/ananyajain10/pitchparse-ai/internal/batch"
	"github.com/ananyajain10/pitchparse-ai/internal/config"
	"github.com/ananyajain10/pitchparse-ai/internal/core/extract"
	"github.com/ananyajain10/pitchparse-ai/internal/keystore"
)

type App struct {
	Orchestrator *batch.Orchestrator
	Keys         *keystore.Store
	Server       *Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	keys, err := keystore.New(cfg.CredentialsPath)
	if err != nil {
		return nil, err
	}
	// An env-supplied key seeds the store once; a key the user saved earlier
	// is not overwritten on restart.
	if cfg.GeminiAPIKey != "" && !keys.Configured() {
		if err := keys.Set(cfg.GeminiAPIKey); err != nil {
			log.Printf("WARN: seeding API key from env failed: %v", err)
		}
	}

	pdfOpts := extract.DefaultOptions()
	pdfOpts.MaxPages = cfg.MaxPages
	pdfOpts.LoadTimeout = time.Duration(cfg.LoadTimeoutMs) * time.Millisecond

	var pdfExtractor extract.Extractor
	if cfg.ExtractAPIURL != "" {
		pdfExtractor = extract.NewRemoteClient(cfg.ExtractAPIURL)
		log.Printf("pdf extraction delegated to %s", cfg.ExtractAPIURL)
	} else {
		pdfExtractor = extract.NewPDFExtractor(pdfOpts, int64(cfg.MaxFileSizeMB)<<20)
	}

	orchestrator := batch.NewOrchestrator(
		pdfExtractor,
		extract.OfficeExtractor{},
		extract.NewImageExtractor(func(stage string) { log.Printf("ocr: %s", stage) }),
	)

	server := NewServer(cfg, orchestrator, keys)

	return &App{Orchestrator: orchestrator, Keys: keys, Server: server}, nil
}
