package repl

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"polyrun/internal/cli/command"
	httpclient "polyrun/internal/cli/http"
	"polyrun/internal/executor/service"
	pkgerrors "polyrun/pkg/errors"

	"github.com/google/shlex"
)

const prompt = "polyrun> "

// Session holds REPL state.
type Session struct {
	client       *httpclient.Client
	commands     map[string]command.Command
	language     string
	prettyJSON   bool
	lines        LineReader
	outputWriter *bufio.Writer
}

func New(client *httpclient.Client, commands map[string]command.Command, language string, prettyJSON bool, lines LineReader, out io.Writer) *Session {
	return &Session{
		client:       client,
		commands:     commands,
		language:     language,
		prettyJSON:   prettyJSON,
		lines:        lines,
		outputWriter: bufio.NewWriter(out),
	}
}

// Run reads commands until exit or end of input.
func (s *Session) Run(ctx context.Context) {
	for {
		line, err := s.lines.ReadLine(prompt)
		if err != nil {
			if err != io.EOF {
				s.printLine("read input failed: %v", err)
			}
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		done, handled := s.handleSystemCommand(line)
		if done {
			return
		}
		if handled {
			continue
		}

		if err := s.handleCommand(ctx, line); err != nil {
			s.printLine("error: %v", err)
		}
		if ctx.Err() != nil {
			return
		}
	}
}

func (s *Session) handleSystemCommand(line string) (done, handled bool) {
	switch line {
	case "exit", "quit":
		s.printLine("bye")
		return true, true
	case "help":
		s.printHelp()
		return false, true
	}
	if line == "set" || strings.HasPrefix(line, "set ") {
		s.handleSet(strings.TrimSpace(strings.TrimPrefix(line, "set")))
		return false, true
	}
	if line == "show" || strings.HasPrefix(line, "show ") {
		s.handleShow(strings.TrimSpace(strings.TrimPrefix(line, "show")))
		return false, true
	}
	return false, false
}

func (s *Session) handleSet(args string) {
	parts := strings.Fields(args)
	if len(parts) == 0 {
		s.printLine("usage: set base|timeout|lang")
		return
	}
	if len(parts) < 2 {
		s.printLine("usage: set %s <value>", parts[0])
		return
	}
	switch parts[0] {
	case "base":
		s.client.SetBaseURL(parts[1])
		s.printLine("base set to %s", parts[1])
	case "timeout":
		dur, err := time.ParseDuration(parts[1])
		if err != nil {
			s.printLine("invalid duration: %v", err)
			return
		}
		s.client.SetTimeout(dur)
		s.printLine("timeout set to %s", dur)
	case "lang", "language":
		s.language = strings.ToLower(parts[1])
		s.printLine("language set to %s", s.language)
	default:
		s.printLine("unknown set command")
	}
}

func (s *Session) handleShow(args string) {
	switch args {
	case "", "config":
		s.printLine("base: %s", s.client.BaseURL())
		s.printLine("language: %s", s.language)
	default:
		s.printLine("usage: show config")
	}
}

func (s *Session) handleCommand(ctx context.Context, line string) error {
	tokens, err := shlex.Split(line)
	if err != nil {
		return fmt.Errorf("parse command failed: %w", err)
	}
	if len(tokens) == 0 {
		return nil
	}
	cmd, ok := s.commands[tokens[0]]
	if !ok {
		return fmt.Errorf("unknown command: %s", tokens[0])
	}
	params := command.Params{}
	for _, token := range tokens[1:] {
		parts := strings.SplitN(token, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid param: %s", token)
		}
		params.Set(parts[0], parts[1])
	}
	params.Canonicalize(cmd.Fields)
	if params.Get("lang") == "" && s.language != "" {
		params.Set("lang", s.language)
	}
	if err := command.ResolveFiles(cmd, params); err != nil {
		return err
	}
	if err := s.promptMissing(cmd, params); err != nil {
		return err
	}

	req, err := command.BuildRequest(cmd, params)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(ctx, req.Method, req.Path, req.Headers, req.Body)
	if err != nil {
		return err
	}
	s.renderResponse(resp)
	if cmd.Name == "execute" {
		s.renderSummary(resp.Body)
	}
	return nil
}

func (s *Session) promptMissing(cmd command.Command, params command.Params) error {
	for _, field := range cmd.Fields {
		if !field.Required || params.Get(field.Name) != "" {
			continue
		}
		value, err := s.lines.ReadLine(field.Prompt + ": ")
		if err != nil {
			return fmt.Errorf("read input failed: %w", err)
		}
		params.Set(field.Name, strings.TrimSpace(value))
	}
	return nil
}

func (s *Session) renderResponse(resp httpclient.ResponseInfo) {
	s.printLine("HTTP %d (%s)", resp.StatusCode, resp.Duration)
	if len(resp.Body) == 0 {
		return
	}
	if s.prettyJSON {
		var raw interface{}
		if err := json.Unmarshal(resp.Body, &raw); err == nil {
			formatted, _ := json.MarshalIndent(raw, "", "  ")
			s.printLine("%s", string(formatted))
			return
		}
	}
	s.printLine("%s", string(resp.Body))
}

// renderSummary prints one line per test case of an execute response.
func (s *Session) renderSummary(body []byte) {
	type respEnvelope struct {
		Code int                     `json:"code"`
		Data service.ExecuteResponse `json:"data"`
	}
	var resp respEnvelope
	if err := json.Unmarshal(body, &resp); err != nil || resp.Code != int(pkgerrors.Success) {
		return
	}
	passed := 0
	for i, r := range resp.Data.Results {
		status := "FAIL"
		switch {
		case r.Fatal:
			status = "FATAL"
		case r.Success:
			status = "ok"
			passed++
		}
		s.printLine("case %d: %s %s", i+1, status, firstLine(r.Output))
	}
	s.printLine("passed %d/%d", passed, len(resp.Data.Results))
}

func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i] + " ..."
	}
	return text
}

func (s *Session) printHelp() {
	s.printLine("usage: <command> key=value ...")
	s.printLine("system: help | exit | set base|timeout|lang | show config")
	s.printLine("commands:")
	for _, name := range command.Names(s.commands) {
		s.printLine("  %s", s.commands[name].Usage)
	}
}

func (s *Session) printLine(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.outputWriter, format+"\n", args...)
	_ = s.outputWriter.Flush()
}
