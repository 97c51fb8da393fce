package telemetry

import (
	"log/slog"
	"math"
	"testing"

	"github.com/pthm-cable/bodyplan/body"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

// statsTree is a root of minimum genes with a maxed fixed child and a
// minimal rotational child.
func statsTree(t *testing.T) *body.Tree {
	t.Helper()
	tree := body.WithRoot(body.NewCuboid([3]float64{}, [3]float64{0, 0.5, 0.5}, [3]float64{}))
	big := body.NewCuboid([3]float64{1, 1, 1}, [3]float64{0, 0.5, 0.5}, [3]float64{1, 1, 1})
	if _, err := tree.AddChild(tree.Root(), big, body.FixedJoint()); err != nil {
		t.Fatal(err)
	}
	small := body.NewCuboid([3]float64{}, [3]float64{0.5, 0.5, 0.5}, [3]float64{})
	if _, err := tree.AddChild(tree.Root(), small, body.RotationalJoint(0.2, 0.8)); err != nil {
		t.Fatal(err)
	}
	return tree
}

func TestComputeGenerationStats(t *testing.T) {
	s := ComputeGenerationStats(4, body.Population{statsTree(t)})

	if s.Generation != 4 || s.Trees != 1 || s.Nodes != 3 || s.MaxHeight != 1 {
		t.Errorf("shape = gen %d trees %d nodes %d height %d", s.Generation, s.Trees, s.Nodes, s.MaxHeight)
	}
	if s.MeanNodes != 3 {
		t.Errorf("MeanNodes = %v, want 3", s.MeanNodes)
	}
	if s.JointFixed != 1 || s.JointRotational != 1 {
		t.Errorf("joints fixed=%d rotational=%d, want 1 and 1", s.JointFixed, s.JointRotational)
	}

	// six edges of 0.1 and three of 10
	if math.Abs(s.DimMean-3.4) > 1e-9 {
		t.Errorf("DimMean = %v, want 3.4", s.DimMean)
	}
	if math.Abs(s.DimP50-0.1) > 1e-9 {
		t.Errorf("DimP50 = %v, want 0.1", s.DimP50)
	}
	if math.Abs(s.DimP90-10) > 1e-9 {
		t.Errorf("DimP90 = %v, want 10", s.DimP90)
	}
	if s.DimStd <= 0 {
		t.Errorf("DimStd = %v, want > 0", s.DimStd)
	}
	if math.Abs(s.RotMean-math.Pi/3) > 1e-9 {
		t.Errorf("RotMean = %v, want pi/3", s.RotMean)
	}
	if s.RawMin != 0 || s.RawMax != 1 {
		t.Errorf("raw range = [%v, %v], want [0, 1]", s.RawMin, s.RawMax)
	}
}

func TestComputeGenerationStatsMeanNodes(t *testing.T) {
	single := body.WithRoot(body.NewCuboid([3]float64{0.5, 0.5, 0.5}, [3]float64{}, [3]float64{}))
	s := ComputeGenerationStats(0, body.Population{statsTree(t), single})
	if s.Trees != 2 || s.Nodes != 4 || s.MeanNodes != 2 {
		t.Errorf("trees %d nodes %d mean %v, want 2, 4, 2", s.Trees, s.Nodes, s.MeanNodes)
	}
}

func TestComputeGenerationStatsEmpty(t *testing.T) {
	s := ComputeGenerationStats(0, nil)
	if s != (GenerationStats{}) {
		t.Errorf("empty population stats = %+v, want zero", s)
	}
}

func TestComputeGenerationStatsSingleSegment(t *testing.T) {
	single := body.WithRoot(body.NewCuboid([3]float64{0, 0, 0}, [3]float64{}, [3]float64{}))
	s := ComputeGenerationStats(0, body.Population{single})
	if s.DimStd != 0 || math.IsNaN(s.RotStd) {
		t.Errorf("std of identical values = %v / %v, want 0", s.DimStd, s.RotStd)
	}
}

func TestGenerationStatsLogValue(t *testing.T) {
	v := GenerationStats{Generation: 2, Nodes: 9}.LogValue()
	if v.Kind() != slog.KindGroup {
		t.Fatalf("kind = %v, want group", v.Kind())
	}
	attrs := v.Group()
	if attrs[0].Key != "generation" || attrs[0].Value.Int64() != 2 {
		t.Errorf("first attr = %v", attrs[0])
	}
}
