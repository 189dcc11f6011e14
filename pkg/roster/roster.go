// Package roster turns a monthly scheduling request into a day-by-shift
// assignment plan: it normalizes the raw payload, encodes the rule catalog
// as a constraint model reconciled against pinned assignments, hands the
// model to a solving engine under a time budget, and formats the solved
// values back into assignments, statistics and conflicts.
package roster

import "github.com/arnavshah/roster-optimizer-go/pkg/models"

// Generate runs the full normalize -> build -> solve -> format pipeline
// with the in-process engine. The returned error is the fatal tier only;
// rule conflicts and shortfalls are reported inside the response summary.
func Generate(req *models.ScheduleRequest) (*models.ScheduleResponse, error) {
	return GenerateWith(CPEngine{}, req)
}

// GenerateWith runs the pipeline against a caller-supplied engine.
func GenerateWith(engine Engine, req *models.ScheduleRequest) (*models.ScheduleResponse, error) {
	problem, err := Normalize(req)
	if err != nil {
		return nil, err
	}
	built := BuildModel(problem)
	ComposeObjective(built)
	solution := engine.Solve(built.Model, problem.Options.TimeLimit, problem.Options.Workers)
	return FormatResult(built, solution), nil
}

// GenerateBytes parses a raw JSON payload and generates the roster.
func GenerateBytes(data []byte) (*models.ScheduleResponse, error) {
	req, err := ParseRequest(data)
	if err != nil {
		return nil, err
	}
	return Generate(req)
}
