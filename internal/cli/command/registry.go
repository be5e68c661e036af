package command

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"polyrun/internal/executor/service"
)

// Registry returns all CLI commands keyed by name.
func Registry() map[string]Command {
	commands := []Command{
		{
			Name:         "ping",
			Usage:        "ping",
			Method:       "GET",
			PathTemplate: "/api/v1/ping",
		},
		{
			Name:         "languages",
			Usage:        "languages",
			Method:       "GET",
			PathTemplate: "/api/v1/languages",
		},
		{
			Name:         "version",
			Usage:        "version lang=python",
			Method:       "GET",
			PathTemplate: "/api/v1/languages/:lang/version",
			Fields: []Field{
				{Name: "lang", Aliases: []string{"language"}, Prompt: "language", Type: FieldString, Required: true},
			},
		},
		{
			Name:         "blacklist",
			Usage:        "blacklist lang=go",
			Method:       "GET",
			PathTemplate: "/api/v1/languages/:lang/blacklist",
			Fields: []Field{
				{Name: "lang", Aliases: []string{"language"}, Prompt: "language", Type: FieldString, Required: true},
			},
		},
		{
			Name:         "fragment",
			Usage:        "fragment lang=python functions_file=./functions.json",
			Method:       "POST",
			PathTemplate: "/api/v1/languages/:lang/fragment",
			Fields: []Field{
				{Name: "lang", Aliases: []string{"language"}, Prompt: "language", Type: FieldString, Required: true},
				{Name: "functions", Prompt: "functions (json)", Type: FieldJSON, Required: true},
				{Name: "functions_file", Type: FieldFile},
			},
		},
		{
			Name:         "execute",
			Usage:        "execute lang=go source_file=./sum.go functions_file=./functions.json cases_file=./cases.json",
			Method:       "POST",
			PathTemplate: "/api/v1/execute",
			Fields: []Field{
				{Name: "lang", Aliases: []string{"language"}, Prompt: "language", Type: FieldString, Required: true},
				{Name: "source", Aliases: []string{"fragment"}, Prompt: "source", Type: FieldString, Required: true},
				{Name: "source_file", Aliases: []string{"fragment_file"}, Type: FieldFile},
				{Name: "functions", Prompt: "functions (json)", Type: FieldJSON, Required: true},
				{Name: "functions_file", Type: FieldFile},
				{Name: "cases", Aliases: []string{"test_cases"}, Prompt: "test cases (json)", Type: FieldJSON, Required: true},
				{Name: "cases_file", Type: FieldFile},
			},
		},
	}

	result := make(map[string]Command, len(commands))
	for _, cmd := range commands {
		result[cmd.Name] = cmd
	}
	return result
}

// Names returns the command names in sorted order.
func Names(commands map[string]Command) []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveFiles fills a field from its "<name>_file" companion when the
// field itself was not given inline.
func ResolveFiles(cmd Command, params Params) error {
	params.Canonicalize(cmd.Fields)
	for _, field := range cmd.Fields {
		if field.Type == FieldFile || params.Get(field.Name) != "" {
			continue
		}
		path := params.Get(field.Name + "_file")
		if path == "" {
			continue
		}
		data, err := ReadFile(path)
		if err != nil {
			return err
		}
		params.Set(field.Name, data)
	}
	return nil
}

// BuildRequest creates HTTP request spec based on command.
func BuildRequest(cmd Command, params Params) (RequestSpec, error) {
	if err := ResolveFiles(cmd, params); err != nil {
		return RequestSpec{}, err
	}
	path, err := buildPath(cmd.PathTemplate, params)
	if err != nil {
		return RequestSpec{}, err
	}

	var body []byte
	if cmd.Method != "GET" && cmd.Method != "DELETE" {
		payload, err := buildPayload(cmd, params)
		if err != nil {
			return RequestSpec{}, err
		}
		if payload != nil {
			body, err = json.Marshal(payload)
			if err != nil {
				return RequestSpec{}, fmt.Errorf("marshal request body failed: %w", err)
			}
		}
	}

	return RequestSpec{
		Method:  cmd.Method,
		Path:    path,
		Headers: map[string]string{},
		Body:    body,
	}, nil
}

func buildPath(template string, params Params) (string, error) {
	path := template
	for _, key := range []string{"lang"} {
		placeholder := ":" + key
		if strings.Contains(path, placeholder) {
			value := strings.TrimSpace(params.Get(key))
			if value == "" {
				return "", fmt.Errorf("missing path parameter: %s", key)
			}
			path = strings.ReplaceAll(path, placeholder, value)
		}
	}
	return path, nil
}

func buildPayload(cmd Command, params Params) (interface{}, error) {
	switch cmd.Name {
	case "fragment":
		var functions []service.FunctionDef
		if err := DecodeJSON("functions", params.Get("functions"), &functions); err != nil {
			return nil, err
		}
		return service.FragmentRequest{Language: params.Get("lang"), Functions: functions}, nil
	case "execute":
		req := service.ExecuteRequest{
			Language: params.Get("lang"),
			Fragment: params.Get("source"),
		}
		if req.Fragment == "" {
			return nil, fmt.Errorf("source is required")
		}
		if err := DecodeJSON("functions", params.Get("functions"), &req.Functions); err != nil {
			return nil, err
		}
		if err := DecodeJSON("cases", params.Get("cases"), &req.TestCases); err != nil {
			return nil, err
		}
		return req, nil
	}
	return nil, nil
}
