package llm

import (
	"context"
	"strconv"
	"strings"
)

// Fragment is one chunk of streamed text. The final fragment has Done
// set; a fragment with Err set terminates the stream early.
type Fragment struct {
	Text string
	Err  error
	Done bool
}

// StreamingProvider is implemented by providers that can deliver a
// response incrementally. Consumers cancel by cancelling the context;
// the channel is always closed when the stream ends.
type StreamingProvider interface {
	// GenerateStream sends a prompt and returns a channel of text
	// fragments. Schema-constrained requests are not streamable.
	GenerateStream(ctx context.Context, req Request) (<-chan Fragment, error)
}

// GenerateStream streams a response from p. Providers without native
// streaming fall back to a single fragment carrying the full response,
// so callers can always consume fragment-wise regardless of the
// configured provider.
func GenerateStream(ctx context.Context, p Provider, req Request) (<-chan Fragment, error) {
	if sp, ok := p.(StreamingProvider); ok {
		return sp.GenerateStream(ctx, req)
	}

	ch := make(chan Fragment, 2)
	go func() {
		defer close(ch)
		resp, err := p.Generate(ctx, req)
		if err != nil {
			ch <- Fragment{Err: err}
			return
		}
		select {
		case ch <- Fragment{Text: rawText(resp.Content)}:
		case <-ctx.Done():
			return
		}
		ch <- Fragment{Done: true}
	}()
	return ch, nil
}

// rawText unwraps a response body for display. Unschema'd responses are
// plain text; strip a JSON string quoting layer if one is present.
func rawText(raw []byte) string {
	s := string(raw)
	if strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) && len(s) >= 2 {
		if unquoted, err := strconv.Unquote(s); err == nil {
			return unquoted
		}
	}
	return s
}
