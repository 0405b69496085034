// Package telemetry aggregates simulation statistics over fixed windows
// and writes them to structured logs and CSV files.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one stats window.
type WindowStats struct {
	WindowEndTick int64   `csv:"window_end"`
	SimTimeSec    float64 `csv:"sim_time"`

	ParticleCount int    `csv:"particles"`
	Shape         string `csv:"shape"`

	// Events during the window
	Impulses     int `csv:"impulses"`
	ShapeSwitches int `csv:"shape_switches"`

	// Speed distribution sampled at window end
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`

	// RMS distance from the world-space target silhouette
	DisplacementRMS float64 `csv:"displacement_rms"`

	// True when the swarm is at rest on its silhouette
	Settled bool `csv:"settled"`
}

// Log mirrors the window to the structured log.
func (ws WindowStats) Log() {
	slog.Info("window stats",
		"tick", ws.WindowEndTick,
		"sim_time", ws.SimTimeSec,
		"particles", ws.ParticleCount,
		"shape", ws.Shape,
		"impulses", ws.Impulses,
		"shape_switches", ws.ShapeSwitches,
		"speed_mean", ws.SpeedMean,
		"speed_p90", ws.SpeedP90,
		"displacement_rms", ws.DisplacementRMS,
		"settled", ws.Settled,
	)
}

// SpeedSummary computes mean, standard deviation and the 10/50/90
// quantiles of a speed sample. The input slice is sorted in place.
func SpeedSummary(speeds []float64) (mean, std, p10, p50, p90 float64) {
	if len(speeds) == 0 {
		return 0, 0, 0, 0, 0
	}
	sort.Float64s(speeds)

	mean = stat.Mean(speeds, nil)
	if len(speeds) > 1 {
		std = stat.StdDev(speeds, nil)
	}
	p10 = stat.Quantile(0.1, stat.Empirical, speeds, nil)
	p50 = stat.Quantile(0.5, stat.Empirical, speeds, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, speeds, nil)
	return mean, std, p10, p50, p90
}
