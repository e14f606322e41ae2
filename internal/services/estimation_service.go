package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"kitarchive/internal/models"
)

// Estimation constants. These are a client-facing contract: existing frontends
// reproduce the same tables, so the values must not drift.
var (
	estimationBasePrices = map[string]float64{
		"Authentic": 140,
		"Replica":   90,
		"Other":     60,
	}
	estimationCompetitionCoeff = map[string]float64{
		"National Championship": 0.0,
		"National Cup":          0.05,
		"Continental Cup":       1.0,
		"Intercontinental Cup":  1.0,
		"World Cup":             1.0,
	}
	estimationOriginCoeff = map[string]float64{
		"Club Stock":     0.5,
		"Match Prepared": 1.0,
		"Match Worn":     1.5,
		"Training":       0.0,
		"Shop":           0.0,
	}
	estimationStateCoeff = map[string]float64{
		"New with tag":      0.3,
		"Very good":         0.1,
		"Used":              0.0,
		"Damaged":           -0.2,
		"Needs restoration": -0.4,
	}
	estimationFlockingCoeff = map[string]float64{
		"Official":     0.15,
		"Personalized": 0.0,
	}
)

const (
	estimationBasePriceDefault = 60.0
	estimationSignedCoeff      = 1.5
	estimationSignedProofCoeff = 1.0
	estimationAgeCoeffPerYear  = 0.05
	estimationAgeMax           = 1.0
)

// EstimationService computes advisory market-value estimates for a jersey.
// It is pure: no store access, and the clock is injected so identical input
// always yields identical output.
type EstimationService struct {
	now func() time.Time
}

func NewEstimationService() *EstimationService {
	return &EstimationService{now: time.Now}
}

// Estimate prices a jersey from its attribute set. Unknown attribute values
// contribute a zero coefficient; there is no error path.
func (s *EstimationService) Estimate(req models.EstimationRequest) models.EstimationResult {
	base, ok := estimationBasePrices[req.ModelType]
	if !ok {
		base = estimationBasePriceDefault
	}

	coeffSum := 0.0
	breakdown := []models.EstimationFactor{}

	coeffSum += addFactor(&breakdown, "Competition", req.Competition, estimationCompetitionCoeff)
	coeffSum += addFactor(&breakdown, "Origin", req.ConditionOrigin, estimationOriginCoeff)
	coeffSum += addFactor(&breakdown, "State", req.PhysicalState, estimationStateCoeff)
	coeffSum += addFactor(&breakdown, "Flocking", req.FlockingOrigin, estimationFlockingCoeff)

	if req.Signed {
		coeffSum += estimationSignedCoeff
		breakdown = append(breakdown, models.EstimationFactor{Label: "Signed", Coeff: estimationSignedCoeff})
		// Proof bonus only applies on top of a signed jersey
		if req.SignedProof {
			coeffSum += estimationSignedProofCoeff
			breakdown = append(breakdown, models.EstimationFactor{Label: "Proof/Certificate", Coeff: estimationSignedProofCoeff})
		}
	}

	age := 0
	if req.SeasonYear != 0 {
		age = s.now().UTC().Year() - req.SeasonYear
		if age < 0 {
			age = 0
		}
	}
	ageCoeff := float64(age) * estimationAgeCoeffPerYear
	if ageCoeff > estimationAgeMax {
		ageCoeff = estimationAgeMax
	}
	coeffSum += ageCoeff
	if age > 0 {
		breakdown = append(breakdown, models.EstimationFactor{
			Label: fmt.Sprintf("Age: %d years", age),
			Coeff: round2(ageCoeff),
		})
	}

	return models.EstimationResult{
		BasePrice:      base,
		ModelType:      req.ModelType,
		CoeffSum:       round2(coeffSum),
		EstimatedPrice: round2(base * (1 + coeffSum)),
		Breakdown:      breakdown,
	}
}

// addFactor resolves one coefficient and appends a breakdown line when the
// input value was supplied. An empty value contributes nothing.
func addFactor(breakdown *[]models.EstimationFactor, label, value string, table map[string]float64) float64 {
	coeff := table[value]
	if value != "" {
		*breakdown = append(*breakdown, models.EstimationFactor{
			Label: fmt.Sprintf("%s: %s", label, value),
			Coeff: coeff,
		})
	}
	return coeff
}

func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
