package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"mikulas-chat/internal/llm"
	"mikulas-chat/internal/models"
)

// DefaultCompletionTimeout bounds a provider call when no timeout is configured.
const DefaultCompletionTimeout = 25 * time.Second

// Completer produces one completion for a system instruction and a single
// user turn. Implementations must be safe for concurrent use.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

type ChatService struct {
	completer      Completer
	credentialName string
	credential     func() string
	timeout        time.Duration
}

// NewChatService wires a shared completer. credential is called on every
// request; an empty result fails the request with a *ConfigurationError that
// names credentialName.
func NewChatService(completer Completer, credentialName string, credential func() string, timeout time.Duration) *ChatService {
	if timeout <= 0 {
		timeout = DefaultCompletionTimeout
	}
	return &ChatService{
		completer:      completer,
		credentialName: credentialName,
		credential:     credential,
		timeout:        timeout,
	}
}

// Chat validates req, asks the provider for a reply under the persona and
// returns the first choice unmodified. Errors are one of *ValidationError,
// *ConfigurationError, *RateLimitedError, *UnreachableError, *ProviderError or
// *UnknownError.
func (s *ChatService) Chat(ctx context.Context, req models.ChatRequest) (models.ChatResponse, error) {
	if err := Validate(req); err != nil {
		return models.ChatResponse{}, err
	}

	if s.completer == nil || s.credential == nil || s.credential() == "" {
		return models.ChatResponse{}, &ConfigurationError{Variable: s.credentialName}
	}

	// The outbound call is bounded by its own timeout and outlives a caller
	// that hangs up early.
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	start := time.Now()
	reply, err := s.completer.Complete(callCtx, Persona, req.Message)
	if err != nil {
		classified := classify(err)
		zerolog.Ctx(ctx).Warn().
			Err(err).
			Str("outcome", outcome(classified)).
			Dur("elapsed", time.Since(start)).
			Msg("completion failed")
		return models.ChatResponse{}, classified
	}

	zerolog.Ctx(ctx).Debug().
		Int("reply_len", len(reply)).
		Dur("elapsed", time.Since(start)).
		Msg("completion succeeded")

	return models.ChatResponse{Reply: reply}, nil
}

// classify maps a provider failure onto exactly one outcome.
func classify(err error) error {
	switch {
	case llm.IsRateLimit(err):
		return &RateLimitedError{Message: "Rate limit exceeded. Please try again later."}
	case llm.IsConnection(err):
		return &UnreachableError{Message: "Unable to connect to the LLM provider", Cause: err}
	}

	if ae, ok := llm.AsAPIError(err); ok {
		return &ProviderError{Message: "LLM provider error: " + ae.Error(), Cause: err}
	}
	return &UnknownError{Cause: err}
}

func outcome(err error) string {
	switch err.(type) {
	case *RateLimitedError:
		return "rate_limited"
	case *UnreachableError:
		return "unreachable"
	case *ProviderError:
		return "provider_error"
	default:
		return "unknown"
	}
}
