package coach

import (
	"context"
	"strings"
	"time"

	"github.com/rshade/ecotrack/internal/engine"
	"github.com/rshade/ecotrack/internal/ledger"
	"github.com/rshade/ecotrack/internal/logging"
)

// FallbackMessage is shown whenever the coach cannot answer.
const FallbackMessage = "Sorry, I can't reach the coach right now. " +
	"In the meantime, try swapping one car trip for the bus or a bike ride this week!"

// Reply is the coach's answer. Fallback is set when Text is the static
// message rather than a real completion.
type Reply struct {
	Text     string `json:"text"`
	Fallback bool   `json:"fallback"`
}

// Coach asks a Completer about the user's statistics.
type Coach struct {
	completer Completer
	timeout   time.Duration
}

// New returns a coach. A positive timeout bounds each Ask.
func New(c Completer, timeout time.Duration) *Coach {
	return &Coach{completer: c, timeout: timeout}
}

// Ask never fails: any error from the completer, including a timeout, is
// logged and replaced by FallbackMessage.
func (c *Coach) Ask(ctx context.Context, question string, s engine.Summary, recent []ledger.Activity) Reply {
	logger := logging.FromContext(ctx).With().
		Str("component", "coach").
		Str("operation", "Ask").
		Logger()

	if c == nil || c.completer == nil {
		logger.Warn().Msg("coach not configured, using fallback")
		return Reply{Text: FallbackMessage, Fallback: true}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := c.completer.Complete(ctx, BuildPrompt(question, s, recent))
	if err == nil && strings.TrimSpace(text) == "" {
		err = ErrEmptyReply
	}
	if err != nil {
		logger.Warn().Err(err).Dur("elapsed", time.Since(start)).Msg("coach request failed, using fallback")
		return Reply{Text: FallbackMessage, Fallback: true}
	}

	logger.Debug().Dur("elapsed", time.Since(start)).Int("reply_len", len(text)).Msg("coach replied")
	return Reply{Text: strings.TrimSpace(text)}
}
