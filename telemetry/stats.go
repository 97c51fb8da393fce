package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/bodyplan/body"
)

// GenerationStats summarizes a population after one generation of mutation.
type GenerationStats struct {
	Generation int `csv:"generation"`

	// Shape of the population
	Trees     int     `csv:"trees"`
	Nodes     int     `csv:"nodes"`
	MeanNodes float64 `csv:"mean_nodes"`
	MaxHeight int     `csv:"max_height"`

	// Scaled edge lengths across every segment
	DimMean float64 `csv:"dim_mean"`
	DimStd  float64 `csv:"dim_std"`
	DimP10  float64 `csv:"dim_p10"`
	DimP50  float64 `csv:"dim_p50"`
	DimP90  float64 `csv:"dim_p90"`

	// Scaled euler angles across every segment
	RotMean float64 `csv:"rot_mean"`
	RotStd  float64 `csv:"rot_std"`

	// Raw gene extremes, should stay inside [0,1]
	RawMin float64 `csv:"raw_min"`
	RawMax float64 `csv:"raw_max"`

	// Joint mix over non-root nodes
	JointFixed      int `csv:"joint_fixed"`
	JointRotational int `csv:"joint_rotational"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// meanStd returns the mean and sample standard deviation, with a zero
// deviation for fewer than two values.
func meanStd(values []float64) (mean, std float64) {
	switch len(values) {
	case 0:
		return 0, 0
	case 1:
		return values[0], 0
	}
	return stat.MeanStdDev(values, nil)
}

// ComputeGenerationStats walks every node of pop.
func ComputeGenerationStats(gen int, pop body.Population) GenerationStats {
	s := GenerationStats{Generation: gen, Trees: len(pop)}

	var dims, rots, raw []float64
	for _, t := range pop {
		s.Nodes += t.Len()
		if h := t.Height(); h > s.MaxHeight {
			s.MaxHeight = h
		}
		for i := 0; i < t.Len(); i++ {
			id := body.NodeID(i)
			seg, err := t.Segment(id)
			if err != nil {
				continue
			}
			x, y, z := seg.Size()
			dims = append(dims, x, y, z)
			ax, ay, az := seg.Angles()
			rots = append(rots, ax, ay, az)
			raw = append(raw, seg.Raw()...)

			_, j, ok, _ := t.Parent(id)
			if !ok {
				continue
			}
			switch j.Kind {
			case body.Fixed:
				s.JointFixed++
			case body.Rotational:
				s.JointRotational++
				raw = append(raw, j.Torque.Value, j.MaxSpeed.Value)
			}
		}
	}

	if s.Trees > 0 {
		s.MeanNodes = float64(s.Nodes) / float64(s.Trees)
	}

	s.DimMean, s.DimStd = meanStd(dims)
	sort.Float64s(dims)
	s.DimP10 = Percentile(dims, 0.10)
	s.DimP50 = Percentile(dims, 0.50)
	s.DimP90 = Percentile(dims, 0.90)

	s.RotMean, s.RotStd = meanStd(rots)

	if len(raw) > 0 {
		s.RawMin = floats.Min(raw)
		s.RawMax = floats.Max(raw)
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Int("trees", s.Trees),
		slog.Int("nodes", s.Nodes),
		slog.Float64("mean_nodes", s.MeanNodes),
		slog.Int("max_height", s.MaxHeight),
		slog.Float64("dim_mean", s.DimMean),
		slog.Float64("dim_std", s.DimStd),
		slog.Float64("dim_p10", s.DimP10),
		slog.Float64("dim_p50", s.DimP50),
		slog.Float64("dim_p90", s.DimP90),
		slog.Float64("rot_mean", s.RotMean),
		slog.Float64("rot_std", s.RotStd),
		slog.Float64("raw_min", s.RawMin),
		slog.Float64("raw_max", s.RawMax),
		slog.Int("joint_fixed", s.JointFixed),
		slog.Int("joint_rotational", s.JointRotational),
	)
}
