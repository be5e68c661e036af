package repl

import (
	"bufio"
	"fmt"
	"io"

	"polyrun/internal/cli/command"

	"github.com/chzyer/readline"
)

// LineReader reads one line of input after showing prompt.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// PlainReader reads lines from any reader, for pipes and tests.
type PlainReader struct {
	reader *bufio.Reader
	out    io.Writer
}

func NewPlainReader(in io.Reader, out io.Writer) *PlainReader {
	return &PlainReader{reader: bufio.NewReader(in), out: out}
}

func (p *PlainReader) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		_, _ = io.WriteString(p.out, prompt)
	}
	line, err := p.reader.ReadString('\n')
	if err == io.EOF && line != "" {
		return line, nil
	}
	return line, err
}

// TerminalReader is a readline-backed reader with history and command
// completion.
type TerminalReader struct {
	instance *readline.Instance
}

func NewTerminalReader(historyFile string, commands map[string]command.Command) (*TerminalReader, error) {
	items := make([]readline.PrefixCompleterInterface, 0, len(commands)+5)
	for _, name := range command.Names(commands) {
		items = append(items, readline.PcItem(name))
	}
	items = append(items,
		readline.PcItem("set", readline.PcItem("base"), readline.PcItem("timeout"), readline.PcItem("lang")),
		readline.PcItem("show", readline.PcItem("config")),
		readline.PcItem("help"),
		readline.PcItem("exit"),
	)
	instance, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFile,
		AutoComplete:    readline.NewPrefixCompleter(items...),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("init readline failed: %w", err)
	}
	return &TerminalReader{instance: instance}, nil
}

// ReadLine maps an interrupt on an empty line to end of input.
func (t *TerminalReader) ReadLine(prompt string) (string, error) {
	t.instance.SetPrompt(prompt)
	line, err := t.instance.Readline()
	if err == readline.ErrInterrupt {
		if line == "" {
			return "", io.EOF
		}
		return "", nil
	}
	return line, err
}

func (t *TerminalReader) Close() error {
	return t.instance.Close()
}
