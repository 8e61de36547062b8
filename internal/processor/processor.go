// Package processor bridges to the external import-processing service. The
// service is a subprocess speaking JSON over stdin/stdout: a document goes
// in, sort data comes out. Nothing in here understands import syntax.
package processor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"

	"github.com/bovan/import-sorter/internal/logging"
	"github.com/bovan/import-sorter/pkg/types"
)

// sortRequest is the stdin payload one invocation sends to the service.
type sortRequest struct {
	URI           string        `json:"uri"`
	Text          string        `json:"text"`
	Configuration *types.Config `json:"configuration"`
}

// Service runs the import-processing command once per document. The zero
// value is not usable; construct with New.
type Service struct {
	command []string
	workDir string
	env     map[string]string

	// sortFn computes sort data for one document. Production wiring points
	// it at the subprocess; tests swap in a scripted function.
	sortFn func(ctx context.Context, uri, text string, cfg *types.Config) (*types.SortResult, error)
}

// New creates a service that invokes command for each document. Extra env
// entries are appended to the inherited environment.
func New(command []string, workDir string, env map[string]string) *Service {
	s := &Service{
		command: command,
		workDir: workDir,
		env:     env,
	}
	s.sortFn = s.invoke
	return s
}

// SortImportData sends the document to the service and decodes its result.
func (s *Service) SortImportData(ctx context.Context, uri, text string, cfg *types.Config) (*types.SortResult, error) {
	return s.sortFn(ctx, uri, text, cfg)
}

func (s *Service) invoke(ctx context.Context, uri, text string, cfg *types.Config) (*types.SortResult, error) {
	if len(s.command) == 0 {
		return nil, fmt.Errorf("no processor command configured")
	}

	payload, err := json.Marshal(sortRequest{URI: uri, Text: text, Configuration: cfg})
	if err != nil {
		return nil, fmt.Errorf("encode processor request: %w", err)
	}

	cmd := exec.CommandContext(ctx, s.command[0], s.command[1:]...)
	cmd.Dir = s.workDir
	cmd.Env = os.Environ()
	for k, v := range s.env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdin = bytes.NewReader(payload)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	clog := logging.Component("processor")
	clog.Debug().Str("uri", uri).Str("command", s.command[0]).Msg("invoking processor")

	if err := cmd.Run(); err != nil {
		msg := stderr.String()
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("processor %s failed: %s", s.command[0], msg)
	}

	var res types.SortResult
	if err := json.Unmarshal(stdout.Bytes(), &res); err != nil {
		return nil, fmt.Errorf("decode processor response: %w", err)
	}
	return &res, nil
}
