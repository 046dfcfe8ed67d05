package benchmarks

import (
	"github.com/spf13/cobra"

	"github.com/iliailmer/deepgroebner/policies"
	"github.com/iliailmer/deepgroebner/rl"
	"github.com/iliailmer/deepgroebner/rowreduce"
)

var (
	matrixRows int
	matrixCols int
	density    float64
)

func RowReduceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rowreduce",
		Short: "Compare row-selection policies on random binary matrices",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := rl.NewComparison(rl.ReturnsAnalyzer(), rl.ReturnsPlotComparator(saveFile, 100))
			s := experimentSeed()
			configs := []struct {
				name   string
				policy rl.Policy
			}{
				{"Random", policies.NewRandomPolicyWithSeed(s)},
				{"Degree", policies.NewDegreePolicy()},
				{"SoftMaxQ", policies.NewSoftMaxQPolicy(0.3, 0.99)},
			}
			for _, cfg := range configs {
				c.AddExperiment(rl.NewExperiment(cfg.name, &rl.AgentConfig{
					Episodes:    episodes,
					Horizon:     horizon,
					Policy:      cfg.policy,
					Environment: rowreduce.NewRowChoiceEnv(matrixRows, matrixCols, density, s),
				}))
			}
			return c.Run()
		},
	}
	cmd.Flags().IntVar(&matrixRows, "rows", 5, "Matrix rows")
	cmd.Flags().IntVar(&matrixCols, "cols", 8, "Matrix columns")
	cmd.Flags().Float64Var(&density, "density", 0.5, "Probability of a one in each entry")
	return cmd
}
