package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/account-brief/internal/brief"
	"github.com/sells-group/account-brief/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Tavily:    config.TavilyConfig{Key: "tvly-test", BaseURL: "http://127.0.0.1:0", MaxResults: 5},
		Apollo:    config.ApolloConfig{BaseURL: "http://127.0.0.1:0", PerPage: 10},
		OpenAI:    config.OpenAIConfig{Key: "sk-test", BaseURL: "http://127.0.0.1:0", Model: "gpt-4o-mini"},
		Anthropic: config.AnthropicConfig{Model: "claude-sonnet-4-5-20250929"},
		LLM:       config.LLMConfig{Provider: config.ProviderOpenAI},
		HubSpot:   config.HubSpotConfig{BaseURL: "http://127.0.0.1:0", RateLimit: 9, ContactConcurrency: 1},
		Brief:     config.BriefConfig{DisplayResults: 6},
		Batch:     config.BatchConfig{Concurrency: 3},
		Server:    config.ServerConfig{Port: 8080, ReadTimeoutSecs: 30, WriteTimeoutSecs: 120, CORSAllowedOrigins: []string{"*"}},
		Log:       config.LogConfig{Level: "info", Format: "json"},
	}
}

func TestInitPipeline(t *testing.T) {
	c := testConfig()
	c.Apollo.Key = "apollo-test"

	env, err := initPipeline(c)
	require.NoError(t, err)
	assert.NotNil(t, env.Generator)
	assert.NotNil(t, env.Pusher)
	assert.NotNil(t, env.Metrics)
}

func TestInitPipeline_BadPromptPath(t *testing.T) {
	c := testConfig()
	c.Prompt.Path = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := initPipeline(c)
	assert.Error(t, err)
}

func TestLoadPrompt(t *testing.T) {
	p, err := loadPrompt("")
	require.NoError(t, err)
	assert.Equal(t, "account_brief", p.Name)

	path := filepath.Join(t.TempDir(), "prompt.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: alt\nmax_tokens: 900\ntemplate: '{{.Domain}}'\n"), 0o644))
	p, err = loadPrompt(path)
	require.NoError(t, err)
	assert.Equal(t, "alt", p.Name)
	assert.Equal(t, 900, p.MaxTokens)
}

func TestNewCompleter(t *testing.T) {
	c := testConfig()
	assert.IsType(t, &brief.OpenAICompleter{}, newCompleter(c))
	assert.Equal(t, "openai", newCompleter(c).Provider())

	c.LLM.Provider = config.ProviderAnthropic
	c.Anthropic.Key = "sk-ant-test"
	assert.IsType(t, &brief.AnthropicCompleter{}, newCompleter(c))
	assert.Equal(t, "anthropic", newCompleter(c).Provider())
}
