package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/okian/telerisk/internal/adapters/render"
	"github.com/okian/telerisk/internal/domain/batch"
)

const maxBodyBytes = 4 << 20

type batchRequest struct {
	Requests []batch.Request `json:"requests"`
}

// AssessHandler handles single, sample and batch assessment requests.
type AssessHandler struct {
	deps Dependencies
}

// NewAssessHandler creates a new assessment handler.
func NewAssessHandler(deps Dependencies) *AssessHandler {
	return &AssessHandler{deps: deps}
}

// HandleAssess handles POST /assess requests.
func (h *AssessHandler) HandleAssess(w http.ResponseWriter, r *http.Request) {
	const op = "api.assess"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	format, err := responseFormat(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	var req batch.Request
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	rep, err := h.deps.AssessProject(r.Context(), req.Project, req.Sectors)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeEncoded(w, format, rep.Document())
}

// HandleSample handles GET /samples/{kind} requests by assessing the sample project.
func (h *AssessHandler) HandleSample(w http.ResponseWriter, r *http.Request) {
	const op = "api.sample"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	kind := strings.TrimPrefix(r.URL.Path, "/samples/")
	if kind == "" || strings.Contains(kind, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	format, err := responseFormat(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	p, err := h.deps.SampleProject(kind)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rep, err := h.deps.AssessProject(r.Context(), p, nil)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeEncoded(w, format, rep.Document())
}

// HandleBatch handles POST /assess/batch requests.
func (h *AssessHandler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.assess_batch"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	format, err := responseFormat(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	var req batchRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if len(req.Requests) == 0 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrEmptyBatch))
		return
	}

	res, err := h.deps.AssessBatch(r.Context(), req.Requests)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeEncoded(w, format, render.Batch(res))
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// responseFormat reads ?format=json|yaml. JSON is the default.
func responseFormat(r *http.Request) (render.Format, error) {
	name := r.URL.Query().Get("format")
	if name == "" {
		return render.FormatJSON, nil
	}
	f, err := render.ParseFormat(name)
	if err != nil {
		return "", err
	}
	if f == render.FormatSummary {
		return "", fmt.Errorf("%w: %q (want json or yaml)", render.ErrUnknownFormat, name)
	}
	return f, nil
}

func writeEncoded(w http.ResponseWriter, f render.Format, v any) {
	if f == render.FormatYAML {
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_ = render.YAML(w, v)
		return
	}
	writeJSON(w, http.StatusOK, v)
}
