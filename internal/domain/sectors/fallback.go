package sectors

import (
	"fmt"

	"github.com/okian/telerisk/internal/domain/model"
)

const (
	fallbackRisk       = 0.5
	fallbackConfidence = 0.1
)

// Fallback is the assessment substituted when sc fails with cause.
func Fallback(sc Scorer, cause error) model.RiskAssessment {
	return model.RiskAssessment{
		SectorID:    sc.ID(),
		RiskLevel:   fallbackRisk,
		RiskFactors: []string{"Assessment error occurred"},
		MitigationStrategies: []string{
			fmt.Sprintf("Review %s assessment methodology", sc.Name()),
			"Conduct manual risk evaluation",
			"Seek expert consultation",
		},
		Confidence: fallbackConfidence,
		Timestamp:  now(),
		Failure:    &model.ScorerFailure{SectorID: sc.ID(), Cause: cause},
	}
}
