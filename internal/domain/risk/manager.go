// Package risk aggregates per-sector assessments into an overall project
// risk and ranked risk factors and recommendations.
package risk

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/okian/telerisk/internal/domain/catalog"
	"github.com/okian/telerisk/internal/domain/model"
	"github.com/okian/telerisk/internal/domain/sectors"
	"github.com/okian/telerisk/pkg/logger"
	"github.com/okian/telerisk/pkg/metrics"
)

// neutralRisk is reported when nothing could be weighted.
const neutralRisk = 0.5

// Manager owns one scorer per configured sector. It holds no mutable state
// after construction and is safe for concurrent use.
type Manager struct {
	catalog *catalog.Catalog
	scorers map[string]sectors.Scorer
	ids     []string
	logger  logger.Logger
}

// SectorSummary describes one configured sector and its scorer.
type SectorSummary struct {
	ID               string  `json:"id" yaml:"id"`
	Name             string  `json:"name" yaml:"name"`
	Weight           float64 `json:"weight" yaml:"weight"`
	RiskFactorsCount int     `json:"risk_factors_count" yaml:"risk_factors_count"`
	Implemented      bool    `json:"implemented" yaml:"implemented"`
}

// NewManager binds a scorer to every sector in c.
func NewManager(c *catalog.Catalog, opts ...Option) *Manager {
	m := &Manager{
		catalog: c,
		scorers: sectors.Build(c),
		ids:     c.IDs(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = logger.Named("risk")
	}
	return m
}

// Scorer returns the scorer bound to id.
func (m *Manager) Scorer(id string) (sectors.Scorer, error) {
	sc, ok := m.scorers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", catalog.ErrUnknownSector, id)
	}
	return sc, nil
}

// AssessProjectRisk runs the scorer of every requested sector. A nil or empty
// sectorIDs means every configured sector; unknown ids are skipped. A failing
// or panicking scorer yields a fallback assessment for its sector only.
func (m *Manager) AssessProjectRisk(ctx context.Context, p model.ProjectData, sectorIDs []string) map[string]model.RiskAssessment {
	if len(sectorIDs) == 0 {
		sectorIDs = m.ids
	}

	out := make(map[string]model.RiskAssessment, len(sectorIDs))
	for _, id := range sectorIDs {
		sc, ok := m.scorers[id]
		if !ok {
			continue
		}
		if _, done := out[id]; done {
			continue
		}
		out[id] = m.assessSector(ctx, sc, p)
	}

	m.logger.Debug(ctx, "project sectors assessed",
		logger.String("project", p.ProjectID),
		logger.Int("sectors", len(out)),
	)
	return out
}

func (m *Manager) assessSector(ctx context.Context, sc sectors.Scorer, p model.ProjectData) (a model.RiskAssessment) {
	defer func() {
		if r := recover(); r != nil {
			a = m.fallback(ctx, sc, p, fmt.Errorf("%w: %v", ErrScorerPanic, r))
		}
	}()

	a, err := sc.Assess(ctx, p)
	if err != nil {
		return m.fallback(ctx, sc, p, err)
	}
	metrics.RecordSectorAssessment(sc.ID())
	return a
}

func (m *Manager) fallback(ctx context.Context, sc sectors.Scorer, p model.ProjectData, cause error) model.RiskAssessment {
	m.logger.Error(ctx, "sector assessment failed, using fallback",
		logger.String("sector", sc.ID()),
		logger.String("project", p.ProjectID),
		logger.Error(cause),
	)
	metrics.RecordScorerFailure(sc.ID())
	return sectors.Fallback(sc, cause)
}

// OverallRisk is the risk of the assessed sectors averaged by their catalog
// weights. Scorer overrides do not change a sector's weight.
func (m *Manager) OverallRisk(assessments map[string]model.RiskAssessment) float64 {
	weighted, total := 0.0, 0.0
	for _, id := range m.assessedIDs(assessments) {
		sec, err := m.catalog.Sector(id)
		if err != nil {
			continue
		}
		w := sec.Weight
		weighted += assessments[id].RiskLevel * w
		total += w
	}
	if total <= 0 {
		return neutralRisk
	}
	return math.Min(weighted/total, 1)
}

// TopRiskFactors flattens every assessment's factors, ranks them by their
// sector's risk (stable, highest first) and keeps at most limit entries.
func (m *Manager) TopRiskFactors(assessments map[string]model.RiskAssessment, limit int) []model.RankedItem {
	var items []model.RankedItem
	for _, id := range m.assessedIDs(assessments) {
		a := assessments[id]
		name := m.scorers[id].Name()
		for _, f := range a.RiskFactors {
			items = append(items, model.RankedItem{Text: f, Sector: name, RiskLevel: a.RiskLevel})
		}
	}
	return rank(items, limit)
}

// PriorityRecommendations ranks every sector's recommendations the way
// TopRiskFactors ranks factors.
func (m *Manager) PriorityRecommendations(assessments map[string]model.RiskAssessment, limit int) []model.RankedItem {
	var items []model.RankedItem
	for _, id := range m.assessedIDs(assessments) {
		a := assessments[id]
		sc := m.scorers[id]
		for _, r := range sc.Recommendations(a) {
			items = append(items, model.RankedItem{Text: r, Sector: sc.Name(), RiskLevel: a.RiskLevel})
		}
	}
	return rank(items, limit)
}

// SectorSummary lists every configured sector in id order.
func (m *Manager) SectorSummary() []SectorSummary {
	out := make([]SectorSummary, 0, len(m.ids))
	for _, id := range m.ids {
		sc := m.scorers[id]
		sec, _ := m.catalog.Sector(id)
		out = append(out, SectorSummary{
			ID:               id,
			Name:             sc.Name(),
			Weight:           sec.Weight,
			RiskFactorsCount: len(sc.RiskFactors()),
			Implemented:      sc.Implemented(),
		})
	}
	return out
}

// assessedIDs returns the known sector ids present in assessments, sorted.
func (m *Manager) assessedIDs(assessments map[string]model.RiskAssessment) []string {
	ids := make([]string, 0, len(assessments))
	for id := range assessments {
		if _, ok := m.scorers[id]; ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func rank(items []model.RankedItem, limit int) []model.RankedItem {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].RiskLevel > items[j].RiskLevel
	})
	if limit < 0 {
		limit = 0
	}
	if len(items) > limit {
		items = items[:limit]
	}
	if items == nil {
		items = []model.RankedItem{}
	}
	return items
}
