package rl

import (
	"fmt"
	"os"
	"path"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/iliailmer/deepgroebner/util"
)

// ReturnsAnalyzer collects the undiscounted return of every episode
func ReturnsAnalyzer() Analyzer {
	return func(traces []*Trace) DataSet {
		returns := make([]float64, len(traces))
		for i, t := range traces {
			returns[i] = t.TotalReward()
		}
		return returns
	}
}

// EpisodeLengthAnalyzer collects the number of steps of every episode
func EpisodeLengthAnalyzer() Analyzer {
	return func(traces []*Trace) DataSet {
		lengths := make([]float64, len(traces))
		for i, t := range traces {
			lengths[i] = float64(t.Len())
		}
		return lengths
	}
}

// ReturnsPlotComparator plots per-episode returns of all experiments
// as moving averages and records the raw series as CSV
func ReturnsPlotComparator(plotPath string, window int) Comparator {
	return func(names []string, ds []DataSet) {
		if err := util.EnsureDir(plotPath); err != nil {
			fmt.Printf("cannot create %s: %v\n", plotPath, err)
			return
		}
		p := plot.New()
		p.Title.Text = "Episode returns"
		p.X.Label.Text = "Episode"
		p.Y.Label.Text = "Return"
		for i := 0; i < len(names); i++ {
			returns := ds[i].([]float64)
			smoothed := movingAverage(returns, window)
			points := make(plotter.XYs, len(smoothed))
			for j, v := range smoothed {
				points[j] = plotter.XY{X: float64(j), Y: v}
			}
			line, err := plotter.NewLine(points)
			if err != nil {
				continue
			}
			line.Color = plotutil.Color(i)
			p.Add(line)
			p.Legend.Add(names[i], line)
			fmt.Printf("Mean return %.3f over %d episodes for %s\n",
				stat.Mean(returns, nil), len(returns), names[i])

			csv := make([]string, len(returns))
			for j, v := range returns {
				csv[j] = fmt.Sprintf("%d,%g", j, v)
			}
			util.WriteToFile(path.Join(plotPath, names[i]+"_returns.csv"), csv...)
		}
		if err := p.Save(8*vg.Inch, 8*vg.Inch, path.Join(plotPath, "returns.png")); err != nil {
			fmt.Printf("cannot save plot: %v\n", err)
		}
	}
}

// PrintComparator prints mean returns without touching the filesystem
func PrintComparator() Comparator {
	return func(names []string, ds []DataSet) {
		for i := range names {
			returns := ds[i].([]float64)
			fmt.Fprintf(os.Stdout, "%s: mean return %.3f\n", names[i], stat.Mean(returns, nil))
		}
	}
}

func movingAverage(xs []float64, window int) []float64 {
	if window < 2 || len(xs) == 0 {
		out := make([]float64, len(xs))
		copy(out, xs)
		return out
	}
	out := make([]float64, len(xs))
	sum := 0.0
	for i, x := range xs {
		sum += x
		if i >= window {
			sum -= xs[i-window]
			out[i] = sum / float64(window)
		} else {
			out[i] = sum / float64(i+1)
		}
	}
	return out
}
