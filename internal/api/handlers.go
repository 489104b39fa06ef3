package api

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/martinmajer/mechanika/internal/document"
	"github.com/martinmajer/mechanika/internal/frame"
	"github.com/martinmajer/mechanika/internal/nscp"
	"github.com/martinmajer/mechanika/internal/store"
)

// maxBody limits request documents
const maxBody = 4 << 20

// Handler serves the analysis API. Store may be nil, in which case the
// model library routes answer 503.
type Handler struct {
	Store        *store.Store
	Combinations []nscp.LoadCombination
	Logger       *log.Logger
}

type saveRequest struct {
	Name     string          `json:"name"`
	Document json.RawMessage `json:"document"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (h *Handler) combos() []nscp.LoadCombination {
	if h.Combinations == nil {
		return nscp.LoadCombinations
	}
	return h.Combinations
}

// solve rebuilds the model of d and applies the combination named in the
// combo query parameter
func (h *Handler) solve(r *http.Request, d *document.Document) (*frame.Model, error) {
	m, err := d.ToModel(h.combos())
	if err != nil {
		return nil, err
	}
	if id := r.URL.Query().Get("combo"); id != "" {
		c, err := nscp.Find(h.combos(), id)
		if err != nil {
			return nil, err
		}
		m.SetCombination(c)
	}
	return m, nil
}

func readDocument(r *http.Request) (*document.Document, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		return nil, err
	}
	return document.Unmarshal(data)
}

// Analyze solves the document in the request body
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	d, err := readDocument(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	m, err := h.solve(r, d)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, NewAnalysisView(m))
}

// ListCombinations lists the available load combinations
func (h *Handler) ListCombinations(w http.ResponseWriter, r *http.Request) {
	type item struct {
		ID          string  `json:"id"`
		Description string  `json:"description"`
		Dead        float64 `json:"D"`
		Live        float64 `json:"L"`
		Roof        float64 `json:"Lr"`
		Wind        float64 `json:"W"`
		Earthquake  float64 `json:"E"`
		Rain        float64 `json:"R"`
	}
	all := append([]nscp.LoadCombination{nscp.Unfactored}, h.combos()...)
	out := make([]item, 0, len(all))
	for _, c := range all {
		out = append(out, item{c.ID, c.Description, c.Dead, c.Live, c.Roof, c.Wind, c.Earthquake, c.Rain})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) requireStore(w http.ResponseWriter) bool {
	if h.Store == nil {
		writeError(w, http.StatusServiceUnavailable, "model library disabled")
		return false
	}
	return true
}

func (h *Handler) storeError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if h.Logger != nil {
		h.Logger.Printf("store: %v", err)
	}
	writeError(w, http.StatusInternalServerError, "storage error")
}

func (h *Handler) ListModels(w http.ResponseWriter, r *http.Request) {
	if !h.requireStore(w) {
		return
	}
	list, err := h.Store.List(r.Context())
	if err != nil {
		h.storeError(w, err)
		return
	}
	if list == nil {
		list = []store.Record{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) SaveModel(w http.ResponseWriter, r *http.Request) {
	if !h.requireStore(w) {
		return
	}
	var req saveRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	d, err := document.Unmarshal(req.Document)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rec, err := h.Store.Save(r.Context(), req.Name, d)
	if err != nil {
		h.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *Handler) GetModel(w http.ResponseWriter, r *http.Request) {
	if !h.requireStore(w) {
		return
	}
	e, err := h.Store.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *Handler) DeleteModel(w http.ResponseWriter, r *http.Request) {
	if !h.requireStore(w) {
		return
	}
	if err := h.Store.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AnalyzeModel(w http.ResponseWriter, r *http.Request) {
	if !h.requireStore(w) {
		return
	}
	e, err := h.Store.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.storeError(w, err)
		return
	}
	m, err := h.solve(r, e.Document)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, NewAnalysisView(m))
}

func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}
