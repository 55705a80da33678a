package relief

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// HeightStats summarizes the z coordinates of all samples in a model.
type HeightStats struct {
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

// Heights returns the z coordinate of every sample in row-major order.
func (m *Model) Heights() []float64 {
	if len(m.Extrusions) == 0 {
		return nil
	}
	zs := make([]float64, 0, len(m.Extrusions)*len(m.Extrusions[0].Profile.Samples))
	for _, e := range m.Extrusions {
		for _, s := range e.Profile.Samples {
			zs = append(zs, s.Position.Z)
		}
	}
	return zs
}

// HeightStats computes summary statistics over Heights.
func (m *Model) HeightStats() HeightStats {
	zs := m.Heights()
	if len(zs) == 0 {
		return HeightStats{}
	}
	hs := HeightStats{
		Count: len(zs),
		Min:   floats.Min(zs),
		Max:   floats.Max(zs),
	}
	if len(zs) == 1 {
		hs.Mean = zs[0]
		return hs
	}
	hs.Mean, hs.StdDev = stat.MeanStdDev(zs, nil)
	return hs
}
