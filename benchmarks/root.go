// Package benchmarks wires the environments and policies into
// runnable experiment commands.
package benchmarks

import "github.com/spf13/cobra"

var (
	episodes int
	horizon  int
	saveFile string
	runs     int
	seed     uint64
)

func GetRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:   "deepgroebner",
		Short: "Benchmarks for pair-selection policies on Buchberger environments",
	}
	rootCommand.PersistentFlags().IntVarP(&episodes, "episodes", "e", 10000, "Number of episodes to run")
	rootCommand.PersistentFlags().IntVar(&horizon, "horizon", 1000, "Horizon of each episode")
	rootCommand.PersistentFlags().StringVarP(&saveFile, "save", "s", "results", "Save the result data in the specified folder")
	rootCommand.PersistentFlags().IntVar(&runs, "runs", 1, "Number of experiment runs")
	rootCommand.PersistentFlags().Uint64Var(&seed, "seed", 0, "Seed for ideal generation, 0 picks one from the clock")
	// adding the subcommands here
	rootCommand.AddCommand(BuchbergerCommand())
	rootCommand.AddCommand(RowReduceCommand())
	rootCommand.AddCommand(TrainCommand())
	return rootCommand
}
