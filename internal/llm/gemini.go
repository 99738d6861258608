package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
)

const providerGemini = "gemini"

// GeminiClient wraps a single genai client shared by all requests.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// Complete runs one generation. The model handle is built per call so the
// shared client is never mutated.
func (c *GeminiClient) Complete(ctx context.Context, system, user string) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}

	resp, err := model.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		return "", translateGeminiError(err)
	}

	text, ok := firstCandidateText(resp)
	if !ok {
		return "", errors.New("gemini: response contained no candidates")
	}
	return text, nil
}

func firstCandidateText(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", false
	}
	cand := resp.Candidates[0]
	if cand.Content == nil {
		return "", false
	}

	var text strings.Builder
	for _, part := range cand.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	return text.String(), true
}

// translateGeminiError maps SDK errors onto APIError and ConnectionError.
func translateGeminiError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &ConnectionError{Provider: providerGemini, Cause: err}
	}

	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return &APIError{Provider: providerGemini, StatusCode: http.StatusBadRequest, Code: "blocked", Message: blocked.Error()}
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return &APIError{Provider: providerGemini, StatusCode: gerr.Code, Message: gerr.Message}
	}

	var aerr *apierror.APIError
	if errors.As(err, &aerr) {
		if code := aerr.HTTPCode(); code > 0 {
			return &APIError{Provider: providerGemini, StatusCode: code, Code: aerr.Reason(), Message: aerr.Error()}
		}
		if st := aerr.GRPCStatus(); st != nil {
			switch st.Code() {
			case codes.Unavailable, codes.DeadlineExceeded:
				return &ConnectionError{Provider: providerGemini, Cause: err}
			}
			return &APIError{Provider: providerGemini, StatusCode: grpcToHTTP(st.Code()), Code: aerr.Reason(), Message: st.Message()}
		}
	}

	var ne net.Error
	if errors.As(err, &ne) {
		return &ConnectionError{Provider: providerGemini, Cause: err}
	}

	return err
}

func grpcToHTTP(code codes.Code) int {
	switch code {
	case codes.ResourceExhausted:
		return http.StatusTooManyRequests
	case codes.InvalidArgument, codes.FailedPrecondition, codes.OutOfRange:
		return http.StatusBadRequest
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
