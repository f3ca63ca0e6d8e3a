package molecule

import (
	"math/bits"

	"github.com/turtacn/SDF-Library-Mining/pkg/errors"
)

// SimilarityMetric names a fingerprint similarity measure.
type SimilarityMetric string

const (
	MetricTanimoto SimilarityMetric = "tanimoto"
)

// String returns the string representation of the similarity metric.
func (m SimilarityMetric) String() string { return string(m) }

// TanimotoCalculator implements Tanimoto similarity (Jaccard index over set
// bits).  Two empty fingerprints score 0.
type TanimotoCalculator struct{}

// NewTanimotoCalculator returns a calculator.
func NewTanimotoCalculator() *TanimotoCalculator { return &TanimotoCalculator{} }

// Calculate computes |A∩B| / |A∪B|.
func (c *TanimotoCalculator) Calculate(fp1, fp2 *Fingerprint) (float64, error) {
	if fp1 == nil || fp2 == nil {
		return 0, errors.New(errors.ErrCodeFingerprintMismatch, "fingerprint is nil")
	}
	if fp1.Type != fp2.Type || fp1.Length != fp2.Length || len(fp1.Bits) != len(fp2.Bits) {
		return 0, errors.New(errors.ErrCodeFingerprintMismatch, "fingerprints must have same type and dimension")
	}

	intersection, union := 0, 0
	for i := range fp1.Bits {
		intersection += bits.OnesCount8(fp1.Bits[i] & fp2.Bits[i])
		union += bits.OnesCount8(fp1.Bits[i] | fp2.Bits[i])
	}
	if union == 0 {
		return 0, nil
	}
	return float64(intersection) / float64(union), nil
}

// Metric returns MetricTanimoto.
func (c *TanimotoCalculator) Metric() SimilarityMetric { return MetricTanimoto }

//Personal.AI order the ending
