package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollectorEmpty(t *testing.T) {
	p := NewPerfCollector(5)
	s := p.Stats()
	if s.AvgDuration != 0 || len(s.PhaseAvg) != 0 {
		t.Errorf("empty stats = %+v", s)
	}
}

func TestPerfCollectorPhases(t *testing.T) {
	p := NewPerfCollector(3)
	for i := 0; i < 5; i++ {
		p.StartGeneration()
		p.StartPhase(PhaseMutate)
		time.Sleep(time.Millisecond)
		p.StartPhase(PhaseStats)
		p.EndGeneration()
	}

	s := p.Stats()
	if s.AvgDuration <= 0 {
		t.Fatalf("AvgDuration = %v, want > 0", s.AvgDuration)
	}
	if s.MinDuration > s.AvgDuration || s.AvgDuration > s.MaxDuration {
		t.Errorf("min %v avg %v max %v out of order", s.MinDuration, s.AvgDuration, s.MaxDuration)
	}
	if _, ok := s.PhaseAvg[PhaseMutate]; !ok {
		t.Error("missing mutate phase")
	}
	if pct := s.PhasePct[PhaseMutate]; pct <= 0 || pct > 100 {
		t.Errorf("mutate pct = %v", pct)
	}

	row := s.ToCSV(7)
	if row.Generation != 7 || row.MutatePct != s.PhasePct[PhaseMutate] {
		t.Errorf("csv row = %+v", row)
	}
}
