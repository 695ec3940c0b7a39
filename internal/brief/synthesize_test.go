package brief

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/account-brief/internal/apperr"
	"github.com/sells-group/account-brief/internal/metrics"
)

type fakeCompleter struct {
	provider string
	reply    string
	err      error
	got      []CompletionRequest
}

func (f *fakeCompleter) Provider() string {
	if f.provider == "" {
		return "openai"
	}
	return f.provider
}

func (f *fakeCompleter) Complete(_ context.Context, req CompletionRequest) (string, error) {
	f.got = append(f.got, req)
	return f.reply, f.err
}

const validReply = `{
  "company": {"name": "Patagonia, Inc.", "industry": "Outdoor Apparel", "size": "1,000 - 5,000 employees", "headquarters": "Ventura, CA", "funding": "Private", "description": "Outdoor clothing."},
  "icpScore": {"score": 88, "reasoning": "Public climate goals."},
  "sustainabilitySignals": ["1% for the Planet"],
  "stakeholders": [{"name": "Jane Doe", "title": "VP Sustainability", "linkedinUrl": "https://www.linkedin.com/in/jane-doe"}],
  "talkingPoints": ["Scope 3 reporting"]
}`

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  \n```json\n{\"a\":1}\n```  \n", `{"a":1}`},
		{"unterminated fence", "```json\n{\"a\":1}", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripFences(tt.in))
		})
	}
}

func TestParseSynthesis(t *testing.T) {
	s, err := parseSynthesis("```json\n"+validReply+"\n```", "Patagonia")
	require.NoError(t, err)

	assert.Equal(t, "Patagonia, Inc.", s.Company.Name)
	assert.Equal(t, "Ventura, CA", s.Company.Headquarters)
	assert.Equal(t, 88, s.ICPScore.Score)
	assert.Equal(t, "Public climate goals.", s.ICPScore.Reasoning)
	assert.Equal(t, []string{"1% for the Planet"}, s.SustainabilitySignals)
	require.Len(t, s.Stakeholders, 1)
	assert.Equal(t, "Jane Doe", s.Stakeholders[0].Name)
	assert.Equal(t, []string{"Scope 3 reporting"}, s.TalkingPoints)
}

func TestParseSynthesis_Defaults(t *testing.T) {
	s, err := parseSynthesis(`{"icpScore": {"score": 40}}`, "Acme")
	require.NoError(t, err)

	assert.Equal(t, "Acme", s.Company.Name)
	assert.Equal(t, 40, s.ICPScore.Score)
	assert.NotNil(t, s.SustainabilitySignals)
	assert.Empty(t, s.SustainabilitySignals)
	assert.NotNil(t, s.Stakeholders)
	assert.NotNil(t, s.TalkingPoints)
}

func TestParseSynthesis_Score(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  int
	}{
		{"fractional rounds", `{"icpScore": {"score": 72.6}}`, 73},
		{"above range clamps", `{"icpScore": {"score": 140}}`, 100},
		{"below range clamps", `{"icpScore": {"score": -5}}`, 0},
		{"bounds kept", `{"icpScore": {"score": 100}}`, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := parseSynthesis(tt.reply, "Acme")
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.ICPScore.Score)
		})
	}
}

func TestParseSynthesis_Errors(t *testing.T) {
	tests := []struct {
		name   string
		reply  string
		reason string
	}{
		{"not json", "Sure! Here is the brief you asked for.", ""},
		{"truncated", `{"company": {"name": "Acme"`, ""},
		{"missing icp score", `{"company": {"name": "Acme"}}`, "missing icpScore.score"},
		{"missing score value", `{"icpScore": {"reasoning": "n/a"}}`, "missing icpScore.score"},
		{"null score", `{"icpScore": {"score": null}}`, "missing icpScore.score"},
		{"non numeric score", `{"icpScore": {"score": "high"}}`, ""},
		{"object company field", `{"company": {"headquarters": {"city": "Ventura"}}, "icpScore": {"score": 50}}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseSynthesis(tt.reply, "Acme")
			var perr *apperr.SynthesisParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.reply, perr.Raw)
			assert.Equal(t, tt.reason, perr.Reason)
			if tt.reason == "" {
				assert.Error(t, perr.Err, "decode failure is kept")
			}
		})
	}
}

func TestParseSynthesis_LooseTypes(t *testing.T) {
	reply := `{
  "company": {"name": "Acme", "industry": null, "size": 5000, "funding": 12.5, "description": true},
  "icpScore": {"score": "85", "reasoning": "Good fit"}
}`
	s, err := parseSynthesis(reply, "Acme")
	require.NoError(t, err)

	assert.Equal(t, "Acme", s.Company.Name)
	assert.Empty(t, s.Company.Industry)
	assert.Equal(t, "5000", s.Company.Size)
	assert.Equal(t, "12.5", s.Company.Funding)
	assert.Equal(t, "true", s.Company.Description)
	assert.Equal(t, 85, s.ICPScore.Score)
	assert.Equal(t, "Good fit", s.ICPScore.Reasoning)
}

func TestSynthesize(t *testing.T) {
	p, err := DefaultPrompt()
	require.NoError(t, err)
	llm := &fakeCompleter{reply: validReply}
	s := NewSynthesizer(llm, p, metrics.New())

	out, err := s.Synthesize(context.Background(), SynthesisInput{Domain: "patagonia.com", CompanyName: "Patagonia"})
	require.NoError(t, err)
	assert.Equal(t, 88, out.ICPScore.Score)

	require.Len(t, llm.got, 1)
	assert.InDelta(t, 0.7, llm.got[0].Temperature, 1e-9)
	assert.Equal(t, 1500, llm.got[0].MaxTokens)
	assert.Contains(t, llm.got[0].Prompt, "Patagonia (patagonia.com)")
}

func TestSynthesize_LLMError(t *testing.T) {
	p, err := DefaultPrompt()
	require.NoError(t, err)
	upstream := apperr.NewProviderError("OpenAI", 429, []byte("rate limited"))
	s := NewSynthesizer(&fakeCompleter{err: upstream}, p, nil)

	_, err = s.Synthesize(context.Background(), SynthesisInput{Domain: "acme.com", CompanyName: "Acme"})
	require.Error(t, err)
	_, isProvider := apperr.AsProvider(err)
	assert.True(t, isProvider)
}

func TestSynthesize_ParseError(t *testing.T) {
	p, err := DefaultPrompt()
	require.NoError(t, err)
	llm := &fakeCompleter{reply: "I cannot help with that."}
	s := NewSynthesizer(llm, p, nil)

	_, err = s.Synthesize(context.Background(), SynthesisInput{Domain: "acme.com", CompanyName: "Acme"})
	var perr *apperr.SynthesisParseError
	require.True(t, errors.As(err, &perr))
	assert.Len(t, llm.got, 1)
}
