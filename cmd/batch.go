package main

import (
	"context"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/account-brief/internal/export"
	"github.com/sells-group/account-brief/internal/model"
)

var (
	batchInput       string
	batchOutput      string
	batchConcurrency int
	batchPush        bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Generate briefs for a list of domains",
	Long:  "Reads domains from a .txt, .csv or .xlsx file, generates a brief for each, and writes the results as JSON or xlsx.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if batchConcurrency > 0 {
			cfg.Batch.Concurrency = batchConcurrency
		}
		if err := cfg.Validate("batch"); err != nil {
			return err
		}
		if err := requireBrief(cfg, batchPush); err != nil {
			return err
		}

		domains, err := export.ReadDomains(batchInput)
		if err != nil {
			return err
		}

		env, err := initPipeline(cfg)
		if err != nil {
			return err
		}

		var push pushFunc
		if batchPush {
			push = env.Pusher.Push
		}
		results := processBatch(ctx, domains, cfg.Batch.Concurrency, env.Generator.Generate, push)
		if ctx.Err() != nil {
			zap.L().Warn("batch interrupted, writing partial results")
		}
		return writeOutput(cmd.OutOrStdout(), batchOutput, results, results)
	},
}

// briefFunc generates a brief for a domain.
type briefFunc func(ctx context.Context, domain string) (*model.Brief, error)

// pushFunc writes a brief to the CRM.
type pushFunc func(ctx context.Context, req model.PushRequest) (*model.PushResult, error)

// processBatch generates briefs concurrently and returns one result per
// domain, in input order. Individual failures are recorded, never fatal.
// A nil push skips the CRM step.
func processBatch(ctx context.Context, domains []string, concurrency int, generate briefFunc, push pushFunc) []export.Result {
	results := make([]export.Result, len(domains))
	if len(domains) == 0 {
		zap.L().Info("no domains to process")
		return results
	}

	zap.L().Info("processing batch",
		zap.Int("domains", len(domains)),
		zap.Int("concurrency", concurrency),
		zap.Bool("push", push != nil),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(concurrency, 1))

	var succeeded, failed atomic.Int64

	for i, d := range domains {
		g.Go(func() error {
			log := zap.L().With(zap.String("domain", d))
			results[i] = export.Result{Domain: d}

			if err := gctx.Err(); err != nil {
				results[i].Error = eris.Wrap(err, "batch cancelled").Error()
				failed.Add(1)
				return nil
			}

			b, err := generate(gctx, d)
			if err != nil {
				failed.Add(1)
				log.Error("brief failed", zap.Error(err))
				results[i].Error = err.Error()
				return nil // don't abort batch on individual failure
			}
			results[i].Domain = b.Domain
			results[i].Brief = b

			if push != nil {
				res, err := push(gctx, model.PushRequestFromBrief(b))
				if err != nil {
					failed.Add(1)
					log.Error("push failed", zap.Error(err))
					results[i].Error = "push: " + err.Error()
					return nil
				}
				results[i].Push = res
			}

			succeeded.Add(1)
			log.Info("brief complete", zap.Int("icp_score", b.ICPScore.Score))
			return nil
		})
	}

	_ = g.Wait()

	zap.L().Info("batch complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
	)
	return results
}

func init() {
	batchCmd.Flags().StringVarP(&batchInput, "input", "i", "", "domain list (.txt, .csv or .xlsx)")
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "", "results file (.json or .xlsx); stdout when empty")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "briefs generated in parallel (default from config)")
	batchCmd.Flags().BoolVar(&batchPush, "push", false, "push each brief to HubSpot")
	_ = batchCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(batchCmd)
}
