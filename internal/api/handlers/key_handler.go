package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ananyajain10/pitchparse-ai/internal/core/llm"
	"github.com/ananyajain10/pitchparse-ai/internal/keystore"
)

// KeyHandler manages the stored Gemini API key: the setup flow runs until a
// key is configured, and clearing the key forces it to run again.
type KeyHandler struct {
	keys *keystore.Store
}

func NewKeyHandler(keys *keystore.Store) *KeyHandler {
	return &KeyHandler{keys: keys}
}

type setKeyRequest struct {
	APIKey string `json:"api_key"`
}

func (h *KeyHandler) Status(w http.ResponseWriter, r *http.Request) {
	key := h.keys.Key()
	writeJSON(w, http.StatusOK, map[string]bool{
		"configured": key != "",
		"demo_mode":  llm.IsDemoKey(key),
	})
}

func (h *KeyHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req setKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	if err := h.keys.Set(req.APIKey); err != nil {
		if errors.Is(err, keystore.ErrInvalidKey) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{
		"configured": true,
		"demo_mode":  llm.IsDemoKey(req.APIKey),
	})
}

func (h *KeyHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.keys.Clear(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
