package services

import (
	"reflect"
	"testing"
	"time"

	"kitarchive/internal/models"
)

// fixedClock pins the estimator to 2025 so age math is reproducible.
func fixedClock() *EstimationService {
	return &EstimationService{
		now: func() time.Time {
			return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		},
	}
}

func TestEstimateIsDeterministic(t *testing.T) {
	svc := fixedClock()
	req := models.EstimationRequest{
		ModelType:       "Authentic",
		Competition:     "World Cup",
		ConditionOrigin: "Match Worn",
		PhysicalState:   "Very good",
		Signed:          true,
		SignedProof:     true,
		SeasonYear:      2019,
	}

	first := svc.Estimate(req)
	second := svc.Estimate(req)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical input produced different results: %+v vs %+v", first, second)
	}
}

func TestEstimateBareReplica(t *testing.T) {
	svc := fixedClock()
	result := svc.Estimate(models.EstimationRequest{ModelType: "Replica"})

	if result.BasePrice != 90 {
		t.Errorf("expected base price 90, got %v", result.BasePrice)
	}
	if result.CoeffSum != 0 {
		t.Errorf("expected coeff sum 0, got %v", result.CoeffSum)
	}
	if result.EstimatedPrice != 90 {
		t.Errorf("expected estimated price 90, got %v", result.EstimatedPrice)
	}
	if len(result.Breakdown) != 0 {
		t.Errorf("expected empty breakdown, got %v", result.Breakdown)
	}
}

func TestEstimateUnknownModelFallsBack(t *testing.T) {
	svc := fixedClock()
	result := svc.Estimate(models.EstimationRequest{ModelType: "Bootleg"})

	if result.BasePrice != 60 {
		t.Errorf("expected default base price 60, got %v", result.BasePrice)
	}
	if result.EstimatedPrice != 60 {
		t.Errorf("expected estimated price 60, got %v", result.EstimatedPrice)
	}
}

func TestEstimateFullyLoadedJersey(t *testing.T) {
	svc := fixedClock()
	result := svc.Estimate(models.EstimationRequest{
		ModelType:       "Authentic",
		Competition:     "World Cup",
		ConditionOrigin: "Match Worn",
		PhysicalState:   "New with tag",
		FlockingOrigin:  "Official",
		Signed:          true,
		SignedProof:     true,
		SeasonYear:      2019,
	})

	// 1.0 + 1.5 + 0.3 + 0.15 + 1.5 + 1.0 + 6*0.05 = 5.75
	if result.CoeffSum != 5.75 {
		t.Errorf("expected coeff sum 5.75, got %v", result.CoeffSum)
	}
	// 140 * (1 + 5.75)
	if result.EstimatedPrice != 945.0 {
		t.Errorf("expected estimated price 945.0, got %v", result.EstimatedPrice)
	}
	if len(result.Breakdown) != 7 {
		t.Fatalf("expected 7 breakdown lines, got %d: %v", len(result.Breakdown), result.Breakdown)
	}
	last := result.Breakdown[len(result.Breakdown)-1]
	if last.Label != "Age: 6 years" || last.Coeff != 0.3 {
		t.Errorf("unexpected age line: %+v", last)
	}
}

func TestEstimateProofRequiresSignature(t *testing.T) {
	svc := fixedClock()
	result := svc.Estimate(models.EstimationRequest{
		ModelType:   "Replica",
		SignedProof: true,
	})

	if result.EstimatedPrice != 90 {
		t.Errorf("proof without signature must not change the price, got %v", result.EstimatedPrice)
	}
	for _, f := range result.Breakdown {
		if f.Label == "Proof/Certificate" {
			t.Errorf("proof line present without a signature: %v", result.Breakdown)
		}
	}
}

func TestEstimateSignedWithoutProof(t *testing.T) {
	svc := fixedClock()
	result := svc.Estimate(models.EstimationRequest{
		ModelType: "Replica",
		Signed:    true,
	})

	// 90 * (1 + 1.5)
	if result.EstimatedPrice != 225.0 {
		t.Errorf("expected 225.0, got %v", result.EstimatedPrice)
	}
}

func TestEstimateAgeIsCapped(t *testing.T) {
	svc := fixedClock()
	result := svc.Estimate(models.EstimationRequest{
		ModelType:  "Replica",
		SeasonYear: 1990, // 35 years, coeff would be 1.75 uncapped
	})

	if result.CoeffSum != 1.0 {
		t.Errorf("expected capped coeff sum 1.0, got %v", result.CoeffSum)
	}
	if result.EstimatedPrice != 180.0 {
		t.Errorf("expected 180.0, got %v", result.EstimatedPrice)
	}
	if len(result.Breakdown) != 1 || result.Breakdown[0].Label != "Age: 35 years" {
		t.Errorf("unexpected breakdown: %v", result.Breakdown)
	}
}

func TestEstimateFutureSeasonCountsAsNew(t *testing.T) {
	svc := fixedClock()
	result := svc.Estimate(models.EstimationRequest{
		ModelType:  "Replica",
		SeasonYear: 2030,
	})

	if result.EstimatedPrice != 90 {
		t.Errorf("future season must not add an age premium, got %v", result.EstimatedPrice)
	}
	if len(result.Breakdown) != 0 {
		t.Errorf("expected no breakdown lines, got %v", result.Breakdown)
	}
}

func TestEstimateUnknownAttributeValues(t *testing.T) {
	svc := fixedClock()
	result := svc.Estimate(models.EstimationRequest{
		ModelType:     "Authentic",
		Competition:   "Pub League",
		PhysicalState: "Mint???",
	})

	// Unknown values appear in the breakdown with a zero coefficient
	if result.CoeffSum != 0 {
		t.Errorf("unknown values must contribute nothing, got coeff sum %v", result.CoeffSum)
	}
	if result.EstimatedPrice != 140 {
		t.Errorf("expected base price 140, got %v", result.EstimatedPrice)
	}
	if len(result.Breakdown) != 2 {
		t.Errorf("expected 2 breakdown lines for supplied values, got %v", result.Breakdown)
	}
}
