package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/ananyajain10/pitchparse-ai/internal/batch"
	"github.com/ananyajain10/pitchparse-ai/internal/core/llm"
	"github.com/ananyajain10/pitchparse-ai/internal/keystore"
)

type AnalyzeHandler struct {
	orch     *batch.Orchestrator
	keys     *keystore.Store
	genModel string
}

func NewAnalyzeHandler(orch *batch.Orchestrator, keys *keystore.Store, genModel string) *AnalyzeHandler {
	return &AnalyzeHandler{orch: orch, keys: keys, genModel: genModel}
}

type analyzeRequest struct {
	Message string `json:"message"`
}

// Analyze builds the prompt from the typed message plus every successfully
// extracted document, runs the model, and clears the batch on success.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	prompt, err := batch.BuildPrompt(req.Message, h.orch.Jobs())
	if errors.Is(err, batch.ErrNothingToSend) {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	analysis, err := llm.AnalyzePitch(ctx, h.keys.Key(), h.genModel, prompt)
	if err != nil {
		log.Printf("analyze: %v", err)
		if errors.Is(err, llm.ErrAnalysisParse) {
			http.Error(w, "analysis response could not be parsed", http.StatusBadGateway)
			return
		}
		http.Error(w, "error analyzing the pitch deck", http.StatusBadGateway)
		return
	}

	h.orch.Clear()
	writeJSON(w, http.StatusOK, analysis)
}
