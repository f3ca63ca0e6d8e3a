package molecule

// StructureParser turns a structural identifier into a molecular graph.
type StructureParser interface {
	Parse(smiles string) (*Structure, error)
}

// FingerprintGenerator encodes a molecular graph as a fingerprint.
type FingerprintGenerator interface {
	Generate(s *Structure) (*Fingerprint, error)
}

// SimilarityCalculator compares two fingerprints.  Implementations are
// symmetric and bounded in [0, 1].
type SimilarityCalculator interface {
	Calculate(fp1, fp2 *Fingerprint) (float64, error)
	Metric() SimilarityMetric
}

var (
	_ StructureParser      = (*SMILESParser)(nil)
	_ FingerprintGenerator = (*TopologicalGenerator)(nil)
	_ SimilarityCalculator = (*TanimotoCalculator)(nil)
)

//Personal.AI order the ending
