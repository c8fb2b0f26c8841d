package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dcharly/atsparse/internal/core"
)

// ParseService is the text-flow orchestrator: it combines the extraction
// template with the raw resume text and issues exactly one bounded call to
// the remote extraction endpoint. The response is passed through unmodified.
type ParseService struct {
	llm      core.LLMProvider
	template *core.ExtractionTemplate
	timeout  time.Duration
}

func NewParseService(llm core.LLMProvider, template *core.ExtractionTemplate, timeout time.Duration) *ParseService {
	if template == nil {
		template = core.DefaultTemplate()
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &ParseService{llm: llm, template: template, timeout: timeout}
}

// ParseText returns the remote extractor's raw response for the given resume
// text. Empty input fails before any outbound call is made.
func (s *ParseService) ParseText(ctx context.Context, resumeText string) (string, error) {
	if strings.TrimSpace(resumeText) == "" {
		return "", core.NewError(core.ErrMissingInput, "resume text is required")
	}

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := s.llm.Generate(cctx, core.SystemPrompt, s.template.Prompt(resumeText))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || cctx.Err() == context.DeadlineExceeded {
			return "", core.WrapError(core.ErrTimeout, "remote extraction call timed out", err)
		}
		return "", core.WrapError(core.ErrRemoteCallFailed, "remote extraction call failed", err)
	}
	return out, nil
}
