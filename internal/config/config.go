package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/account-brief/internal/apperr"
)

// LLM backends selectable with llm.provider.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Config holds the full application configuration.
type Config struct {
	Tavily    TavilyConfig    `yaml:"tavily" mapstructure:"tavily"`
	Apollo    ApolloConfig    `yaml:"apollo" mapstructure:"apollo"`
	OpenAI    OpenAIConfig    `yaml:"openai" mapstructure:"openai"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	LLM       LLMConfig       `yaml:"llm" mapstructure:"llm"`
	HubSpot   HubSpotConfig   `yaml:"hubspot" mapstructure:"hubspot"`
	Brief     BriefConfig     `yaml:"brief" mapstructure:"brief"`
	Prompt    PromptConfig    `yaml:"prompt" mapstructure:"prompt"`
	Batch     BatchConfig     `yaml:"batch" mapstructure:"batch"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// TavilyConfig holds Tavily search settings.
type TavilyConfig struct {
	Key        string `yaml:"key" mapstructure:"key"`
	BaseURL    string `yaml:"base_url" mapstructure:"base_url"`
	MaxResults int    `yaml:"max_results" mapstructure:"max_results"`
}

// ApolloConfig holds Apollo.io people search settings. The key is optional.
type ApolloConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	PerPage int    `yaml:"per_page" mapstructure:"per_page"`
}

// OpenAIConfig holds OpenAI API settings.
type OpenAIConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Model   string `yaml:"model" mapstructure:"model"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// LLMConfig selects the synthesis backend.
type LLMConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"`
}

// HubSpotConfig holds HubSpot private-app settings.
type HubSpotConfig struct {
	Token              string  `yaml:"token" mapstructure:"token"`
	BaseURL            string  `yaml:"base_url" mapstructure:"base_url"`
	PortalID           string  `yaml:"portal_id" mapstructure:"portal_id"`
	RateLimit          float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
	ContactConcurrency int     `yaml:"contact_concurrency" mapstructure:"contact_concurrency"`
}

// BriefConfig configures brief assembly.
type BriefConfig struct {
	DisplayResults int `yaml:"display_results" mapstructure:"display_results"`
}

// PromptConfig points at an alternate prompt template file.
type PromptConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// BatchConfig configures the batch command.
type BatchConfig struct {
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port               int      `yaml:"port" mapstructure:"port"`
	ReadTimeoutSecs    int      `yaml:"read_timeout_secs" mapstructure:"read_timeout_secs"`
	WriteTimeoutSecs   int      `yaml:"write_timeout_secs" mapstructure:"write_timeout_secs"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins" mapstructure:"cors_allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// bareEnv maps config keys to the unprefixed variable names used by existing
// deployments of the dashboard.
var bareEnv = map[string]string{
	"tavily.key":    "TAVILY_API_KEY",
	"apollo.key":    "APOLLO_API_KEY",
	"openai.key":    "OPENAI_API_KEY",
	"anthropic.key": "ANTHROPIC_API_KEY",
	"hubspot.token": "HUBSPOT_ACCESS_TOKEN",
}

// Load reads configuration from .env, file and environment.
func Load() (*Config, error) {
	// .env is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, eris.Wrap(err, "config: load .env")
	}

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("BRIEF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, name := range bareEnv {
		if err := v.BindEnv(key, "BRIEF_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), name); err != nil {
			return nil, eris.Wrap(err, "config: bind env "+name)
		}
	}

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout_secs", 30)
	v.SetDefault("server.write_timeout_secs", 120)
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("tavily.base_url", "https://api.tavily.com")
	v.SetDefault("tavily.max_results", 5)
	v.SetDefault("apollo.base_url", "https://api.apollo.io")
	v.SetDefault("apollo.per_page", 10)
	v.SetDefault("openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("llm.provider", ProviderOpenAI)
	v.SetDefault("hubspot.base_url", "https://api.hubapi.com")
	v.SetDefault("hubspot.rate_limit", 9)
	v.SetDefault("hubspot.contact_concurrency", 1)
	v.SetDefault("brief.display_results", 6)
	v.SetDefault("batch.concurrency", 3)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.HubSpot.ContactConcurrency < 1 {
		c.HubSpot.ContactConcurrency = 1
	}
	if c.Brief.DisplayResults < 1 {
		c.Brief.DisplayResults = 6
	}
	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderAnthropic:
		return nil
	default:
		return eris.Errorf("config: unknown llm.provider %q", c.LLM.Provider)
	}
}

// Validate checks mode-specific settings. Credentials are not checked here;
// they are verified per request with the Require methods.
func (c *Config) Validate(mode string) error {
	var problems []string
	switch mode {
	case "serve":
		if c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
		}
	case "batch":
		if c.Batch.Concurrency < 1 || c.Batch.Concurrency > 20 {
			problems = append(problems, "batch.concurrency must be between 1 and 20")
		}
	case "brief", "push":
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}
	if c.HubSpot.RateLimit < 0 {
		problems = append(problems, "hubspot.rate_limit must be >= 0")
	}
	if len(problems) > 0 {
		return eris.Errorf("config: invalid for %s: %s", mode, strings.Join(problems, "; "))
	}
	return nil
}

// RequireSearch checks the credentials needed for the search-only flow.
func (c *Config) RequireSearch() error {
	if c.Tavily.Key == "" {
		return apperr.NewConfigurationError("TAVILY_API_KEY")
	}
	return nil
}

// RequireGenerate checks the credentials needed to generate a brief:
// Tavily plus the key of the selected LLM backend.
func (c *Config) RequireGenerate() error {
	if err := c.RequireSearch(); err != nil {
		return err
	}
	switch c.LLM.Provider {
	case ProviderAnthropic:
		if c.Anthropic.Key == "" {
			return apperr.NewConfigurationError("ANTHROPIC_API_KEY")
		}
	default:
		if c.OpenAI.Key == "" {
			return apperr.NewConfigurationError("OPENAI_API_KEY")
		}
	}
	return nil
}

// RequirePush checks the credentials needed to push to HubSpot.
func (c *Config) RequirePush() error {
	if c.HubSpot.Token == "" {
		return apperr.NewConfigurationError("HUBSPOT_ACCESS_TOKEN")
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
