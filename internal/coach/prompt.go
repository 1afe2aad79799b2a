// Package coach answers free-form questions about a user's footprint.
//
// The client side (Coach, ProxyClient) holds no credential: it posts a
// prompt to an EcoTrack proxy. The proxy side (ProxyHandler) runs under
// `ecotrack serve`, reads the upstream API key from the environment and
// forwards the prompt to an OpenAI-compatible chat completions endpoint.
package coach

import (
	"fmt"
	"strings"

	"github.com/rshade/ecotrack/internal/engine"
	"github.com/rshade/ecotrack/internal/greenops"
	"github.com/rshade/ecotrack/internal/ledger"
)

// RecentActivityLimit is how many recent activities a prompt includes.
const RecentActivityLimit = 5

// SystemPrompt frames every upstream conversation.
const SystemPrompt = "You are EcoTrack's friendly sustainability coach. " +
	"Give short, specific and encouraging advice for lowering a personal carbon footprint, " +
	"based on the user's tracked data. Answer in at most four sentences."

// BuildPrompt renders the user's current statistics and question into a
// single prompt.
func BuildPrompt(question string, s engine.Summary, recent []ledger.Activity) string {
	var b strings.Builder

	b.WriteString("My carbon tracking data:\n")
	fmt.Fprintf(&b, "- Total: %.2f kg CO2\n", s.TotalKg)
	fmt.Fprintf(&b, "- Daily average: %.2f kg CO2\n", s.AvgDailyKg)
	fmt.Fprintf(&b, "- Current streak: %d days\n", s.Streak)

	if s.Breakdown.Empty {
		b.WriteString("- Breakdown: no activities yet\n")
	} else {
		b.WriteString("- Breakdown:")
		for _, share := range s.Breakdown.Shares {
			fmt.Fprintf(&b, " %s %.2f kg (%.1f%%);", share.Name, share.CarbonKg, share.Percent)
		}
		b.WriteString("\n")
	}

	if len(recent) > RecentActivityLimit {
		recent = recent[:RecentActivityLimit]
	}
	if len(recent) > 0 {
		b.WriteString("Recent activities:\n")
		for _, a := range recent {
			fmt.Fprintf(&b, "- %s %s %s: %s %s, %.2f kg CO2\n",
				a.Date, a.Category, a.Type,
				greenops.FormatFloat(a.Magnitude(), 1), a.Category.Unit(), a.CarbonKg)
		}
	}

	fmt.Fprintf(&b, "\nQuestion: %s", strings.TrimSpace(question))
	return b.String()
}
