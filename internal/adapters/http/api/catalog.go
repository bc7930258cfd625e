package api

import (
	"net/http"

	service "github.com/okian/telerisk/internal/app"
)

// CatalogHandler serves sector and UAE context information.
type CatalogHandler struct {
	deps Dependencies
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(deps Dependencies) *CatalogHandler {
	return &CatalogHandler{deps: deps}
}

type sectorsResponse struct {
	Sectors []service.SectorInfo `json:"sectors"`
}

type samplesResponse struct {
	Samples []string `json:"samples"`
}

// HandleSectors handles GET /sectors requests.
func (h *CatalogHandler) HandleSectors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, sectorsResponse{Sectors: h.deps.SectorInformation(r.Context())})
}

// HandleContext handles GET /context requests.
func (h *CatalogHandler) HandleContext(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.UAEContext(r.Context()))
}

// HandleListSamples handles GET /samples requests.
func (h *CatalogHandler) HandleListSamples(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, samplesResponse{Samples: service.SampleKinds()})
}
