package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"os/exec"
	"time"

	"github.com/dcharly/atsparse/internal/core"
)

var _ core.DocumentParser = (*ExternalParser)(nil)

// ExternalParser invokes the external extraction program as a child process.
// Invocation contract: argv = [args..., stored file path]; stdout must be
// exactly one JSON document on success; exit code 0 signals success, nonzero
// signals failure; stderr is diagnostic only and never reaches the result.
type ExternalParser struct {
	command string
	args    []string
	timeout time.Duration
}

func NewExternalParser(command string, args []string, timeout time.Duration) *ExternalParser {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ExternalParser{command: command, args: args, timeout: timeout}
}

func (p *ExternalParser) ParseFile(ctx context.Context, path string) (json.RawMessage, error) {
	cctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	argv := make([]string, 0, len(p.args)+1)
	argv = append(argv, p.args...)
	argv = append(argv, path)

	cmd := exec.CommandContext(cctx, p.command, argv...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if stderr.Len() > 0 {
		log.Printf("extractor stderr for %s: %s", path, stderr.String())
	}
	if cctx.Err() == context.DeadlineExceeded {
		return nil, core.WrapError(core.ErrTimeout, "extraction process timed out", cctx.Err())
	}
	if err != nil {
		return nil, core.WrapError(core.ErrProcessFailed, "extraction process failed", err)
	}

	out := bytes.TrimSpace(stdout.Bytes())
	var payload json.RawMessage
	if err := json.Unmarshal(out, &payload); err != nil {
		return nil, core.WrapError(core.ErrMalformedOutput, "extraction process produced invalid JSON", err)
	}
	return payload, nil
}
