package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/account-brief/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "account-brief",
	Short: "Sustainability account brief generator",
	Long: `account-brief researches a company by its web domain, synthesizes a
sustainability account brief with an LLM and optionally pushes it to HubSpot.

Commands:
  serve   HTTP API (/generate-brief, /push-hubspot, /search-sustainability)
  brief   one brief to stdout or --output file, --push to write it to HubSpot
  push    send a reviewed brief JSON (--file, "-" for stdin) to HubSpot
  batch   briefs for every domain in --input (.txt, .csv, .xlsx)

Configuration, highest precedence first:
  1. environment: BRIEF_<SECTION>_<KEY> (e.g. BRIEF_LLM_PROVIDER), plus
     TAVILY_API_KEY, APOLLO_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY and
     HUBSPOT_ACCESS_TOKEN
  2. .env in the working directory (never overrides the real environment)
  3. config.yaml in the working directory
  4. built-in defaults`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		cfg = c
		return eris.Wrap(config.InitLogger(cfg.Log), "init logger")
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
