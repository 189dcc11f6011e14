package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/arnavshah/roster-optimizer-go/pkg/models"
	"github.com/arnavshah/roster-optimizer-go/pkg/roster"
	"github.com/spf13/cobra"
)

var (
	inputPath string
	timeLimit float64
	workers   int
)

var rootCmd = &cobra.Command{
	Use:   "optimizer",
	Short: "Generate a monthly shift roster from a JSON request",
	Long: `Reads a roster request from stdin (or --input), solves the
coverage and rule constraints under a time budget, and writes the
day-by-shift assignment plan as JSON to stdout.`,
	RunE: run,
	// Errors are reported as a JSON object on stdout, not as usage text.
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVarP(&inputPath, "input", "i", "", "read the request from a file instead of stdin")
	rootCmd.Flags().Float64Var(&timeLimit, "time-limit", 0, "solver time budget in seconds (overrides the request)")
	rootCmd.Flags().IntVar(&workers, "workers", 0, "number of parallel search workers")
}

func run(cmd *cobra.Command, args []string) error {
	var data []byte
	var err error
	if inputPath != "" {
		data, err = os.ReadFile(inputPath)
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	req, err := roster.ParseRequest(data)
	if err != nil {
		return err
	}
	if timeLimit > 0 {
		if req.Constraints == nil {
			req.Constraints = &models.Constraints{}
		}
		req.Constraints.TimeLimit = timeLimit
	}

	problem, err := roster.Normalize(req)
	if err != nil {
		return err
	}
	if workers > 0 {
		problem.Options.Workers = workers
	}

	built := roster.BuildModel(problem)
	roster.ComposeObjective(built)
	solution := roster.CPEngine{}.Solve(built.Model, problem.Options.TimeLimit, problem.Options.Workers)
	resp := roster.FormatResult(built, solution)

	enc := json.NewEncoder(os.Stdout)
	return enc.Encode(resp)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		out, _ := json.Marshal(map[string]string{"error": err.Error()})
		fmt.Println(string(out))
		os.Exit(1)
	}
}
