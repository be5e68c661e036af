package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"polyrun/internal/cli/command"
	"polyrun/internal/cli/config"
	httpclient "polyrun/internal/cli/http"
	"polyrun/internal/cli/repl"

	"github.com/chzyer/readline"
)

const defaultConfigPath = "configs/cli.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "Path to config file")
	baseURL := flag.String("base", "", "Override base URL")
	timeout := flag.Duration("timeout", 0, "Override HTTP timeout (e.g. 30s)")
	language := flag.String("lang", "", "Default language for commands")
	history := flag.String("history", "", "Override history file")
	pretty := flag.Bool("pretty", false, "Pretty print JSON response")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		return
	}
	if *baseURL != "" {
		cfg.BaseURL = *baseURL
	}
	if *timeout > 0 {
		cfg.Timeout = *timeout
	}
	if *language != "" {
		cfg.Language = *language
	}
	if *history != "" {
		cfg.HistoryFile = *history
	}
	if *pretty {
		trueValue := true
		cfg.PrettyJSON = &trueValue
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	commands := command.Registry()
	var lines repl.LineReader = repl.NewPlainReader(os.Stdin, os.Stdout)
	if readline.IsTerminal(int(os.Stdin.Fd())) {
		terminal, err := repl.NewTerminalReader(cfg.HistoryFile, commands)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return
		}
		defer func() {
			_ = terminal.Close()
		}()
		lines = terminal
	}

	client := httpclient.New(cfg.BaseURL, cfg.Timeout)
	session := repl.New(client, commands, cfg.Language, cfg.PrettyJSON != nil && *cfg.PrettyJSON, lines, os.Stdout)
	session.Run(ctx)
}
