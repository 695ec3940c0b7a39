package brief

import (
	"bytes"
	_ "embed"
	"io"
	"os"
	"text/template"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/account-brief/internal/model"
)

//go:embed prompts/account_brief.yaml
var defaultPromptYAML []byte

const defaultMaxItemsPerGroup = 5

// PromptTemplate is a versioned synthesis prompt with its sampling settings.
// Scoring bands and signal priorities live in Template as plain text.
type PromptTemplate struct {
	Name             string  `yaml:"name"`
	Version          string  `yaml:"version"`
	Temperature      float64 `yaml:"temperature"`
	MaxTokens        int     `yaml:"max_tokens"`
	MaxItemsPerGroup int     `yaml:"max_items_per_group"`
	Template         string  `yaml:"template"`

	tmpl *template.Template
}

// EvidenceGroup is a labeled list of search results shown to the model.
type EvidenceGroup struct {
	Label   string
	Results []model.SearchResult
}

// SynthesisInput is everything the prompt is rendered from.
type SynthesisInput struct {
	Domain                  string
	CompanyName             string
	Evidence                []EvidenceGroup
	HasVerifiedStakeholders bool
}

// DefaultPrompt returns the embedded prompt template.
func DefaultPrompt() (*PromptTemplate, error) {
	return LoadPrompt(bytes.NewReader(defaultPromptYAML))
}

// LoadPromptFile reads a prompt template from disk.
func LoadPromptFile(path string) (*PromptTemplate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "brief: open prompt %s", path)
	}
	defer f.Close() //nolint:errcheck

	p, err := LoadPrompt(f)
	if err != nil {
		return nil, eris.Wrapf(err, "brief: load prompt %s", path)
	}
	return p, nil
}

// LoadPrompt decodes and compiles a prompt template. Unknown keys are rejected.
func LoadPrompt(r io.Reader) (*PromptTemplate, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var p PromptTemplate
	if err := dec.Decode(&p); err != nil {
		return nil, eris.Wrap(err, "brief: decode prompt")
	}

	if p.Template == "" {
		return nil, eris.New("brief: prompt template is empty")
	}
	if p.Temperature < 0 || p.Temperature > 2 {
		return nil, eris.Errorf("brief: prompt temperature %.2f out of range", p.Temperature)
	}
	if p.MaxTokens <= 0 {
		return nil, eris.New("brief: prompt max_tokens must be > 0")
	}
	if p.MaxItemsPerGroup <= 0 {
		p.MaxItemsPerGroup = defaultMaxItemsPerGroup
	}

	tmpl, err := template.New(p.Name).
		Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
		Option("missingkey=error").
		Parse(p.Template)
	if err != nil {
		return nil, eris.Wrap(err, "brief: parse prompt template")
	}
	p.tmpl = tmpl
	return &p, nil
}

// Render fills the template, capping each evidence group.
func (p *PromptTemplate) Render(in SynthesisInput) (string, error) {
	capped := make([]EvidenceGroup, len(in.Evidence))
	for i, g := range in.Evidence {
		results := g.Results
		if len(results) > p.MaxItemsPerGroup {
			results = results[:p.MaxItemsPerGroup]
		}
		capped[i] = EvidenceGroup{Label: g.Label, Results: results}
	}
	in.Evidence = capped

	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, in); err != nil {
		return "", eris.Wrap(err, "brief: render prompt")
	}
	return buf.String(), nil
}
