package sectors

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/okian/telerisk/internal/domain/catalog"
	"github.com/okian/telerisk/internal/domain/model"
)

const (
	placeholderComplexityFactor = 0.8
	placeholderFactorCount      = 3
	placeholderConfidence       = 0.5
)

// Placeholder scores any configured sector without a dedicated variant from
// project complexity alone.
type Placeholder struct {
	profile
}

// NewPlaceholder builds a placeholder scorer for s.
func NewPlaceholder(s catalog.Sector) Scorer {
	return &Placeholder{profile{sector: s}}
}

func (p *Placeholder) Implemented() bool { return false }

func (p *Placeholder) Assess(ctx context.Context, project model.ProjectData) (model.RiskAssessment, error) {
	if err := ctx.Err(); err != nil {
		return model.RiskAssessment{}, err
	}

	factors := p.RiskFactors()
	if len(factors) > placeholderFactorCount {
		factors = factors[:placeholderFactorCount]
	}

	name := strings.ToLower(p.Name())
	strategies := []string{
		fmt.Sprintf("Conduct %s risk assessment", name),
		fmt.Sprintf("Implement %s best practices", name),
		fmt.Sprintf("Monitor %s key metrics", name),
	}

	risk := math.Min(project.ComplexityScore*placeholderComplexityFactor, 1)
	return p.assessment(risk, factors, strategies, placeholderConfidence), nil
}

func (p *Placeholder) Recommendations(model.RiskAssessment) []string {
	name := strings.ToLower(p.Name())
	return []string{
		fmt.Sprintf("Develop comprehensive %s strategy", name),
		fmt.Sprintf("Implement %s monitoring", name),
		fmt.Sprintf("Regular %s reviews", name),
	}
}
