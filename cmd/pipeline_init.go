package main

import (
	"github.com/openai/openai-go/option"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/account-brief/internal/brief"
	"github.com/sells-group/account-brief/internal/config"
	"github.com/sells-group/account-brief/internal/crm"
	"github.com/sells-group/account-brief/internal/metrics"
	anthropicpkg "github.com/sells-group/account-brief/pkg/anthropic"
	"github.com/sells-group/account-brief/pkg/apollo"
	"github.com/sells-group/account-brief/pkg/hubspot"
	"github.com/sells-group/account-brief/pkg/openai"
	"github.com/sells-group/account-brief/pkg/tavily"
)

// pipelineEnv holds the initialized generator and pusher shared by the
// serve, brief, push and batch commands.
type pipelineEnv struct {
	Generator *brief.Generator
	Pusher    *crm.Pusher
	Metrics   *metrics.Metrics
}

// initPipeline builds every client from c. Missing credentials are not an
// error here; callers check them with the config Require methods.
func initPipeline(c *config.Config) (*pipelineEnv, error) {
	m := metrics.New()

	prompt, err := loadPrompt(c.Prompt.Path)
	if err != nil {
		return nil, err
	}
	zap.L().Debug("prompt loaded",
		zap.String("name", prompt.Name),
		zap.String("version", prompt.Version),
	)

	tavilyClient := tavily.NewClient(c.Tavily.Key,
		tavily.WithBaseURL(c.Tavily.BaseURL),
		tavily.WithMaxResults(c.Tavily.MaxResults),
	)

	// Apollo is optional; without a key briefs fall back to LLM stakeholders.
	var people *brief.PeopleFinder
	if c.Apollo.Key != "" {
		people = brief.NewPeopleFinder(apollo.NewClient(c.Apollo.Key, apollo.WithBaseURL(c.Apollo.BaseURL)), c.Apollo.PerPage, m)
		zap.L().Info("apollo people search enabled")
	} else {
		zap.L().Debug("APOLLO_API_KEY not set, people search disabled")
	}

	synth := brief.NewSynthesizer(newCompleter(c), prompt, m)
	gen := brief.NewGenerator(tavilyClient, people, synth,
		brief.WithDisplayResults(c.Brief.DisplayResults),
		brief.WithMetrics(m),
	)

	hs := hubspot.NewClient(c.HubSpot.Token,
		hubspot.WithBaseURL(c.HubSpot.BaseURL),
		hubspot.WithRateLimit(c.HubSpot.RateLimit),
	)
	pusher := crm.NewPusher(hs,
		crm.WithPortalID(c.HubSpot.PortalID),
		crm.WithContactConcurrency(c.HubSpot.ContactConcurrency),
		crm.WithMetrics(m),
	)

	return &pipelineEnv{Generator: gen, Pusher: pusher, Metrics: m}, nil
}

func loadPrompt(path string) (*brief.PromptTemplate, error) {
	if path == "" {
		p, err := brief.DefaultPrompt()
		if err != nil {
			return nil, eris.Wrap(err, "load default prompt")
		}
		return p, nil
	}
	return brief.LoadPromptFile(path)
}

func newCompleter(c *config.Config) brief.Completer {
	if c.LLM.Provider == config.ProviderAnthropic {
		return brief.NewAnthropicCompleter(anthropicpkg.NewClient(c.Anthropic.Key), c.Anthropic.Model)
	}
	var opts []option.RequestOption
	if c.OpenAI.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(c.OpenAI.BaseURL))
	}
	return brief.NewOpenAICompleter(openai.NewClient(c.OpenAI.Key, opts...), c.OpenAI.Model)
}
