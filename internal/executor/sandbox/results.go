package sandbox

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"polyrun/internal/executor/model"
	pkgerrors "polyrun/pkg/errors"
)

// ParseResults splits program output into one Result per test case.
//
// Chunks are separated by a blank line. Each chunk is
// "OK:" or "ER:" (any case), an optional float duration followed by ':',
// then the payload. A missing status reads as a failure and a missing
// duration as NaN.
func ParseResults(output string, perf model.PerformanceIndicators) []model.Result {
	output = strings.Trim(output, "\n")
	if output == "" {
		return []model.Result{}
	}

	chunks := strings.Split(output, "\n\n")
	results := make([]model.Result, 0, len(chunks))
	for _, chunk := range chunks {
		chunk = strings.Trim(chunk, "\n")
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		results = append(results, parseChunk(chunk, perf))
	}
	return results
}

func parseChunk(chunk string, perf model.PerformanceIndicators) model.Result {
	success := false
	rest := chunk
	if len(rest) >= 3 && rest[2] == ':' {
		switch strings.ToUpper(rest[:2]) {
		case "OK":
			success = true
			rest = rest[3:]
		case "ER":
			rest = rest[3:]
		}
	}

	duration := math.NaN()
	if idx := strings.IndexByte(rest, ':'); idx >= 0 {
		if d, err := strconv.ParseFloat(strings.TrimSpace(rest[:idx]), 64); err == nil {
			duration = d
			rest = rest[idx+1:]
		}
	}

	p := perf
	p.TestCaseExecutionMillis = duration
	return model.Result{
		Success:     success,
		Fatal:       false,
		Output:      rest,
		Performance: &p,
	}
}

// Describe renders err and every cause beneath it, followed by any captured
// console output, as one diagnostic string.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var (
		lines   []string
		console string
	)
	for e := err; e != nil; e = errors.Unwrap(e) {
		msg := e.Error()
		if len(lines) == 0 || lines[len(lines)-1] != msg {
			lines = append(lines, msg)
		}
		if pe, ok := e.(*pkgerrors.Error); ok && console == "" {
			console = pe.Detail(DetailConsole)
		}
	}

	var b strings.Builder
	b.WriteString(lines[0])
	for _, l := range lines[1:] {
		b.WriteString("\ncaused by: ")
		b.WriteString(l)
	}
	if console != "" {
		b.WriteString("\n--- console output ---\n")
		b.WriteString(strings.TrimRight(console, "\n"))
	}
	return b.String()
}
