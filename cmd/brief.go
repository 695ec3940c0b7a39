package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/account-brief/internal/config"
	"github.com/sells-group/account-brief/internal/export"
	"github.com/sells-group/account-brief/internal/model"
)

var (
	briefPush   bool
	briefOutput string
)

var briefCmd = &cobra.Command{
	Use:   "brief <domain>",
	Short: "Generate an account brief for a single domain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireBrief(cfg, briefPush); err != nil {
			return err
		}

		env, err := initPipeline(cfg)
		if err != nil {
			return err
		}

		result, err := runBrief(cmd.Context(), env, args[0], briefPush)
		if result.Brief == nil {
			return err
		}
		if werr := writeOutput(cmd.OutOrStdout(), briefOutput, result, []export.Result{result}); werr != nil {
			return werr
		}
		return err
	},
}

func requireBrief(c *config.Config, push bool) error {
	if err := c.Validate("brief"); err != nil {
		return err
	}
	if err := c.RequireGenerate(); err != nil {
		return err
	}
	if push {
		return c.RequirePush()
	}
	return nil
}

// runBrief generates one brief and optionally pushes it. A push failure is
// returned together with the generated brief.
func runBrief(ctx context.Context, env *pipelineEnv, domain string, push bool) (export.Result, error) {
	b, err := env.Generator.Generate(ctx, domain)
	if err != nil {
		return export.Result{Domain: domain}, err
	}
	result := export.Result{Domain: b.Domain, Brief: b}
	zap.L().Info("brief generated",
		zap.String("domain", b.Domain),
		zap.Int("icp_score", b.ICPScore.Score),
		zap.String("stakeholder_source", string(b.StakeholderSource)),
	)
	if !push {
		return result, nil
	}

	res, err := env.Pusher.Push(ctx, model.PushRequestFromBrief(b))
	if err != nil {
		result.Error = err.Error()
		return result, err
	}
	result.Push = res
	return result, nil
}

// writeOutput writes results to path, or v as JSON to w when path is empty.
func writeOutput(w io.Writer, path string, v any, results []export.Result) error {
	if path == "" {
		return export.WriteJSON(w, v)
	}
	if err := export.WriteResults(path, results); err != nil {
		return err
	}
	zap.L().Info("results written", zap.String("path", path), zap.Int("count", len(results)))
	return nil
}

func init() {
	briefCmd.Flags().BoolVar(&briefPush, "push", false, "push the brief to HubSpot after generating it")
	briefCmd.Flags().StringVarP(&briefOutput, "output", "o", "", "write the result to a .json or .xlsx file instead of stdout")
	rootCmd.AddCommand(briefCmd)
}
