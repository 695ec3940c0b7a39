package crm

import (
	"fmt"
	"strings"
	"time"

	"github.com/sells-group/account-brief/internal/model"
)

const (
	noteDivider = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"
	noteFooter  = "Generated by Sustainability Account Brief Generator"
	noteDate    = "1/2/2006"
)

// FormatNote renders the plain-text brief stored on the company record.
// Sections whose data is absent are left out.
func FormatNote(req model.PushRequest, now time.Time) string {
	lines := []string{
		"📊 SUSTAINABILITY ACCOUNT BRIEF",
		"Generated: " + now.Format(noteDate),
		"Domain: " + req.Domain,
		"",
		noteDivider,
		"",
	}

	if req.ICPScore != nil {
		lines = append(lines,
			fmt.Sprintf("🎯 ICP FIT SCORE: %d/100", req.ICPScore.Score),
			req.ICPScore.Reasoning,
			"",
		)
	}

	if c := req.Company; c != nil {
		lines = append(lines, "🏢 COMPANY OVERVIEW")
		for _, f := range []struct{ label, value string }{
			{"Name", c.Name},
			{"Industry", c.Industry},
			{"Size", c.Size},
			{"HQ", c.Headquarters},
			{"Funding", c.Funding},
		} {
			if f.value != "" {
				lines = append(lines, "• "+f.label+": "+f.value)
			}
		}
		lines = append(lines, "")
	}

	if len(req.SustainabilitySignals) > 0 {
		lines = append(lines, "🌱 SUSTAINABILITY SIGNALS")
		for _, s := range req.SustainabilitySignals {
			lines = append(lines, "• "+s)
		}
		lines = append(lines, "")
	}

	if len(req.TalkingPoints) > 0 {
		lines = append(lines, "💬 TALKING POINTS")
		for i, p := range req.TalkingPoints {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, p))
		}
		lines = append(lines, "")
	}

	lines = append(lines, noteDivider, noteFooter)
	return strings.Join(lines, "\n")
}
