package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	pathplanning "path-planning"
)

var (
	planRequestFile  string
	planObstacles    string
	planAsync        bool
	planSimplify     float64
	planSeed         int64
	planPollInterval time.Duration
	planTimeout      time.Duration
)

// planOutput is what the plan command prints.
type planOutput struct {
	Outcome    pathplanning.Outcome `json:"outcome"`
	Path       orb.LineString       `json:"path,omitempty"`
	Length     float64              `json:"length,omitempty"`
	Iterations int                  `json:"iterations"`
	Nodes      int                  `json:"nodes"`
}

var planCmd = &cobra.Command{
	Use:     "plan",
	Short:   "Plan a path for a request file",
	GroupID: "planning",
	Long: `Plan a path from the start pose to the goal pose of a JSON request.

The request holds the start and goal poses, the iteration budget, the step
size, the workspace (bounds and obstacles) and the robot. Obstacles from a
GeoJSON file or directory can be added with --obstacles.

The path is printed as JSON on stdout.`,
	Example: `  pathplanner plan --request req.json
  pathplanner plan --request req.json --obstacles zones/ --simplify 0.1
  pathplanner plan --request req.json --async --timeout 30s`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&planRequestFile, "request", "r", "", "JSON request file (required)")
	planCmd.Flags().StringVar(&planObstacles, "obstacles", "", "GeoJSON file or directory with extra obstacles")
	planCmd.Flags().BoolVar(&planAsync, "async", false, "Plan on a background worker and poll for the result")
	planCmd.Flags().Float64Var(&planSimplify, "simplify", 0, "Douglas-Peucker tolerance applied to the path")
	planCmd.Flags().Int64Var(&planSeed, "seed", 0, "Random seed (overrides the request)")
	planCmd.Flags().DurationVar(&planPollInterval, "poll-interval", 100*time.Millisecond, "Polling interval with --async")
	planCmd.Flags().DurationVar(&planTimeout, "timeout", 0, "Give up waiting after this long with --async (0 waits forever)")
	_ = planCmd.MarkFlagRequired("request")

	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	req, err := readRequest(planRequestFile)
	if err != nil {
		return err
	}

	if planObstacles != "" {
		extra, err := pathplanning.LoadObstacles(planObstacles, logger)
		if err != nil {
			return err
		}
		req.Space.Obstacles = append(req.Space.Obstacles, extra...)
	}
	if planSimplify > 0 {
		req.Options.SimplifyTolerance = planSimplify
	}
	if planSeed != 0 {
		req.Options.Seed = planSeed
	}

	planner, err := pathplanning.NewPlanner(req, logger)
	if err != nil {
		return err
	}

	var res *pathplanning.Result
	if planAsync {
		res, err = pollPlanner(cmd.Context(), planner)
		if err != nil {
			return err
		}
	} else {
		r := planner.Run()
		res = &r
	}

	out := planOutput{
		Outcome:    res.Outcome,
		Iterations: res.Iterations,
		Nodes:      res.Nodes,
	}
	path, err := pathplanning.Finalize(res)
	if err != nil {
		PrintError(fmt.Sprintf("No path found after %d iterations", res.Iterations))
		return err
	}
	out.Path = path
	out.Length = pathplanning.PathLength(path)

	PrintSuccess(fmt.Sprintf("Path found with %d waypoints", len(path)))
	PrintLabelValue("Length", fmt.Sprintf("%.3f", out.Length))
	PrintLabelValue("Iterations", fmt.Sprintf("%d", res.Iterations))
	return writeJSON(cmd.OutOrStdout(), out)
}

// pollPlanner starts the planner on a worker and polls it until it settles.
func pollPlanner(ctx context.Context, planner *pathplanning.Planner) (*pathplanning.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if planTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, planTimeout)
		defer cancel()
	}

	future := planner.PlanAsync()
	ticker := time.NewTicker(planPollInterval)
	defer ticker.Stop()

	for {
		res, err := future.Poll()
		if err != nil {
			return nil, err
		}
		if res != nil {
			return res, nil
		}

		select {
		case <-ctx.Done():
			PrintWarning("Stopped waiting for the planner")
			return nil, ctx.Err()
		case <-ticker.C:
			logger.Debug("planner still running")
		}
	}
}

func readRequest(file string) (pathplanning.Request, error) {
	var req pathplanning.Request

	data, err := os.ReadFile(file)
	if err != nil {
		return req, errors.Wrap(err, "failed to read request")
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, errors.Wrapf(err, "failed to parse request %s", file)
	}
	return req, nil
}
