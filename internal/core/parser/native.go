package parser

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"code.sajari.com/docconv"

	"github.com/dcharly/atsparse/internal/core"
)

var _ core.DocumentParser = (*NativeParser)(nil)

// NativeParser extracts the document text in-process with docconv and sends
// it through the LLM, so a deployment without the external extraction
// program can still serve the file flow.
type NativeParser struct {
	llm      core.LLMProvider
	template *core.ExtractionTemplate
	timeout  time.Duration
}

func NewNativeParser(llm core.LLMProvider, template *core.ExtractionTemplate, timeout time.Duration) *NativeParser {
	if template == nil {
		template = core.DefaultTemplate()
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &NativeParser{llm: llm, template: template, timeout: timeout}
}

func (p *NativeParser) ParseFile(ctx context.Context, path string) (json.RawMessage, error) {
	res, err := docconv.ConvertPath(path)
	if err != nil {
		return nil, core.WrapError(core.ErrProcessFailed, "text extraction failed", err)
	}

	text := strings.TrimSpace(res.Body)
	if text == "" {
		return nil, core.NewError(core.ErrProcessFailed, "no text extracted from document")
	}

	cctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	out, err := p.llm.Generate(cctx, core.SystemPrompt, p.template.Prompt(text))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || cctx.Err() == context.DeadlineExceeded {
			return nil, core.WrapError(core.ErrTimeout, "remote extraction call timed out", err)
		}
		return nil, core.WrapError(core.ErrRemoteCallFailed, "remote extraction call failed", err)
	}

	cleaned := stripFences(out)
	var payload json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, core.WrapError(core.ErrMalformedOutput, "extractor returned invalid JSON", err)
	}
	return payload, nil
}

// stripFences removes markdown code fences some models wrap JSON output in.
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
