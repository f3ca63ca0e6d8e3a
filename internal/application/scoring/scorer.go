// Package scoring compares candidate structures against a fixed reference
// panel and produces one similarity vector per candidate.
package scoring

import (
	"math"
	"strconv"

	"github.com/turtacn/SDF-Library-Mining/internal/domain/library"
	"github.com/turtacn/SDF-Library-Mining/internal/domain/molecule"
	"github.com/turtacn/SDF-Library-Mining/internal/infrastructure/monitoring/logging"
	pkgerrors "github.com/turtacn/SDF-Library-Mining/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Vector
// ─────────────────────────────────────────────────────────────────────────────

// Vector holds one score per reference, in reference order.  NaN marks a
// missing score.
type Vector []float64

// PlaceholderVector returns n missing scores.
func PlaceholderVector(n int) Vector {
	v := make(Vector, n)
	for i := range v {
		v[i] = math.NaN()
	}
	return v
}

// IsPlaceholder reports whether every entry is missing.
func (v Vector) IsPlaceholder() bool {
	for _, s := range v {
		if !math.IsNaN(s) {
			return false
		}
	}
	return true
}

// Format renders entry i with four decimals, or the placeholder.
func (v Vector) Format(i int) string {
	if i < 0 || i >= len(v) || math.IsNaN(v[i]) {
		return library.Placeholder
	}
	return strconv.FormatFloat(v[i], 'f', 4, 64)
}

// Strings renders every entry with Format.
func (v Vector) Strings() []string {
	out := make([]string, len(v))
	for i := range v {
		out[i] = v.Format(i)
	}
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Scorer
// ─────────────────────────────────────────────────────────────────────────────

type preparedReference struct {
	ref molecule.Reference
	fp  *molecule.Fingerprint
}

// Scorer holds the reference fingerprints, computed once at construction.
type Scorer struct {
	parser     molecule.StructureParser
	generator  molecule.FingerprintGenerator
	calculator molecule.SimilarityCalculator
	refs       []preparedReference
	logger     logging.Logger
}

// NewScorer fingerprints every reference.  A reference that cannot be parsed
// or fingerprinted is a construction error.
func NewScorer(
	parser molecule.StructureParser,
	generator molecule.FingerprintGenerator,
	calculator molecule.SimilarityCalculator,
	refs []molecule.Reference,
	logger logging.Logger,
) (*Scorer, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if len(refs) == 0 {
		return nil, pkgerrors.New(pkgerrors.ErrCodeReferenceSetInvalid, "reference set is empty")
	}

	s := &Scorer{
		parser:     parser,
		generator:  generator,
		calculator: calculator,
		refs:       make([]preparedReference, 0, len(refs)),
		logger:     logger,
	}
	for _, ref := range refs {
		fp, err := s.fingerprint(ref.SMILES)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.ErrCodeReferenceSetInvalid, "reference structure rejected").
				WithDetail("code=" + ref.Code).WithCause(err)
		}
		s.refs = append(s.refs, preparedReference{ref: ref, fp: fp})
	}
	return s, nil
}

// NewNucleosideScorer builds the default scorer: SMILES parsing, a path
// fingerprint of the given shape and Tanimoto similarity against the
// nucleoside panel.
func NewNucleosideScorer(bits, minPath, maxPath int, logger logging.Logger) (*Scorer, error) {
	return NewScorer(
		molecule.NewSMILESParser(),
		molecule.NewTopologicalGenerator(bits, minPath, maxPath),
		molecule.NewTanimotoCalculator(),
		molecule.Nucleosides(),
		logger,
	)
}

// Codes returns the reference column labels in score order.
func (s *Scorer) Codes() []string {
	out := make([]string, len(s.refs))
	for i, r := range s.refs {
		out[i] = r.ref.Code
	}
	return out
}

// Score compares smiles against every reference.  A candidate that cannot
// be parsed or fingerprinted yields a full placeholder vector.
func (s *Scorer) Score(smiles string) Vector {
	fp, err := s.fingerprint(smiles)
	if err != nil {
		s.logger.Debug("candidate rejected", logging.String("smiles", smiles), logging.Err(err))
		return PlaceholderVector(len(s.refs))
	}

	v := make(Vector, len(s.refs))
	for i, r := range s.refs {
		sim, err := s.calculator.Calculate(fp, r.fp)
		if err != nil {
			s.logger.Warn("similarity failed",
				logging.String("reference", r.ref.Code),
				logging.Err(err))
			sim = math.NaN()
		}
		v[i] = sim
	}
	return v
}

func (s *Scorer) fingerprint(smiles string) (*molecule.Fingerprint, error) {
	structure, err := s.parser.Parse(smiles)
	if err != nil {
		return nil, err
	}
	return s.generator.Generate(structure)
}

//Personal.AI order the ending
