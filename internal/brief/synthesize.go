package brief

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/account-brief/internal/apperr"
	"github.com/sells-group/account-brief/internal/metrics"
	"github.com/sells-group/account-brief/internal/model"
)

// Synthesis is the validated, structured part of a brief produced by the LLM.
type Synthesis struct {
	Company               model.CompanyProfile
	ICPScore              model.ICPScore
	SustainabilitySignals []string
	Stakeholders          []model.Stakeholder
	TalkingPoints         []string
}

// rawSynthesis mirrors the JSON the model is asked for. Pointers mark
// fields whose absence must be detected.
type rawSynthesis struct {
	Company  *rawCompany `json:"company"`
	ICPScore *struct {
		Score     *looseNumber `json:"score"`
		Reasoning looseString  `json:"reasoning"`
	} `json:"icpScore"`
	SustainabilitySignals []string            `json:"sustainabilitySignals"`
	Stakeholders          []model.Stakeholder `json:"stakeholders"`
	TalkingPoints         []string            `json:"talkingPoints"`
}

// rawCompany accepts any scalar for the free-text profile fields.
type rawCompany struct {
	Name         looseString `json:"name"`
	Industry     looseString `json:"industry"`
	Size         looseString `json:"size"`
	Headquarters looseString `json:"headquarters"`
	Funding      looseString `json:"funding"`
	Description  looseString `json:"description"`
}

func (c rawCompany) profile() model.CompanyProfile {
	return model.CompanyProfile{
		Name:         string(c.Name),
		Industry:     string(c.Industry),
		Size:         string(c.Size),
		Headquarters: string(c.Headquarters),
		Funding:      string(c.Funding),
		Description:  string(c.Description),
	}
}

// looseString decodes a JSON string, number, bool or null as text.
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		*s = ""
	case string:
		*s = looseString(t)
	case float64, bool:
		*s = looseString(b)
	default:
		return eris.Errorf("expected a scalar, got %s", b)
	}
	return nil
}

// looseNumber decodes a JSON number or a numeric string.
type looseNumber float64

func (n *looseNumber) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case float64:
		*n = looseNumber(t)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return eris.Errorf("score %q is not a number", t)
		}
		*n = looseNumber(f)
	default:
		return eris.Errorf("score must be a number, got %s", b)
	}
	return nil
}

// Synthesizer renders the prompt, calls the LLM once and validates the reply.
type Synthesizer struct {
	llm     Completer
	prompt  *PromptTemplate
	metrics *metrics.Metrics
}

// NewSynthesizer creates a Synthesizer. m may be nil.
func NewSynthesizer(llm Completer, prompt *PromptTemplate, m *metrics.Metrics) *Synthesizer {
	return &Synthesizer{llm: llm, prompt: prompt, metrics: m}
}

// Synthesize produces the structured brief content for in. Unparseable or
// schema-invalid output yields *apperr.SynthesisParseError; nothing is retried.
func (s *Synthesizer) Synthesize(ctx context.Context, in SynthesisInput) (*Synthesis, error) {
	prompt, err := s.prompt.Render(in)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	text, err := s.llm.Complete(ctx, CompletionRequest{
		Prompt:      prompt,
		Temperature: s.prompt.Temperature,
		MaxTokens:   s.prompt.MaxTokens,
	})
	s.metrics.ObserveProvider(s.llm.Provider(), start, err)
	if err != nil {
		return nil, eris.Wrap(err, "brief: synthesize")
	}

	out, err := parseSynthesis(text, in.CompanyName)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveICPScore(out.ICPScore.Score)
	return out, nil
}

// stripFences removes a leading ```json or ``` fence and the trailing fence.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	for _, fence := range []string{"```json", "```"} {
		if strings.HasPrefix(text, fence) {
			text = strings.TrimPrefix(text, fence)
			if idx := strings.LastIndex(text, "```"); idx >= 0 {
				text = text[:idx]
			}
			break
		}
	}
	return strings.TrimSpace(text)
}

func parseSynthesis(text, companyName string) (*Synthesis, error) {
	var raw rawSynthesis
	if err := json.Unmarshal([]byte(stripFences(text)), &raw); err != nil {
		return nil, &apperr.SynthesisParseError{Raw: text, Err: err}
	}
	if raw.ICPScore == nil || raw.ICPScore.Score == nil {
		return nil, &apperr.SynthesisParseError{Raw: text, Reason: "missing icpScore.score"}
	}

	rawScore := float64(*raw.ICPScore.Score)
	score := int(math.Round(rawScore))
	if score < 0 || score > 100 {
		zap.L().Warn("brief: icp score out of range, clamping",
			zap.Float64("score", rawScore))
		score = min(max(score, 0), 100)
	}

	out := &Synthesis{
		ICPScore:              model.ICPScore{Score: score, Reasoning: string(raw.ICPScore.Reasoning)},
		SustainabilitySignals: nonNil(raw.SustainabilitySignals),
		Stakeholders:          nonNil(raw.Stakeholders),
		TalkingPoints:         nonNil(raw.TalkingPoints),
	}
	if raw.Company != nil {
		out.Company = raw.Company.profile()
	}
	if out.Company.Name == "" {
		out.Company.Name = companyName
	}
	return out, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
