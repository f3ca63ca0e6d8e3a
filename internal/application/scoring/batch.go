package scoring

import (
	"fmt"

	"github.com/turtacn/SDF-Library-Mining/internal/application/resolver"
	"github.com/turtacn/SDF-Library-Mining/internal/infrastructure/monitoring/logging"
)

// ScoredRow is one line of the final output table.
type ScoredRow struct {
	CAS    string
	Name   string
	SMILES string
	Scores Vector
}

// Stats summarises a scoring run.
type Stats struct {
	Total    int
	Scored   int
	Rejected int
}

// ScoreAll scores every row in order.  Rejected candidates carry a
// placeholder vector and never stop the run.
func (s *Scorer) ScoreAll(rows []resolver.ResolvedRow) ([]ScoredRow, Stats) {
	out := make([]ScoredRow, len(rows))
	stats := Stats{Total: len(rows)}
	for i, row := range rows {
		v := s.Score(row.SMILES)
		if v.IsPlaceholder() {
			stats.Rejected++
			s.logger.Warn("structure not scored",
				logging.String("progress", fmt.Sprintf("%d/%d", i+1, len(rows))),
				logging.String("cas", row.CAS))
		} else {
			stats.Scored++
		}
		out[i] = ScoredRow{CAS: row.CAS, Name: row.Name, SMILES: row.SMILES, Scores: v}
	}
	s.logger.Info("scoring complete",
		logging.Int("total", stats.Total),
		logging.Int("scored", stats.Scored),
		logging.Int("rejected", stats.Rejected))
	return out, stats
}

//Personal.AI order the ending
