package backend

import (
	"strings"
	"time"

	"polyrun/internal/executor/numeric"
	"polyrun/internal/executor/sandbox"
	pkgerrors "polyrun/pkg/errors"

	"github.com/google/shlex"
)

// Toolchain describes how a language's program is built and run.
// Command templates may use {src}, {bin} and {dir}.
type Toolchain struct {
	SourceFile   string   `yaml:"sourceFile"`
	BinaryFile   string   `yaml:"binaryFile"`
	CompileCmd   string   `yaml:"compileCmd"`
	RunCmd       string   `yaml:"runCmd"`
	VersionCmd   string   `yaml:"versionCmd"`
	CompilerName string   `yaml:"compilerName"`
	Env          []string `yaml:"env"`

	CompileIdleTimeout time.Duration `yaml:"compileIdleTimeout"`
	CompileMaxWait     time.Duration `yaml:"compileMaxWait"`
	RunIdleTimeout     time.Duration `yaml:"runIdleTimeout"`
	RunMaxWait         time.Duration `yaml:"runMaxWait"`

	FloatTolerance *numeric.Tolerance `yaml:"floatTolerance"`
	// ExtraDisallowedTokens extend the adapter's built-in blacklist.
	ExtraDisallowedTokens []string `yaml:"extraDisallowedTokens"`
}

// Merge returns t with every non-zero field of override applied.
func (t Toolchain) Merge(override Toolchain) Toolchain {
	setString := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setDuration := func(dst *time.Duration, v time.Duration) {
		if v > 0 {
			*dst = v
		}
	}
	setString(&t.SourceFile, override.SourceFile)
	setString(&t.BinaryFile, override.BinaryFile)
	setString(&t.CompileCmd, override.CompileCmd)
	setString(&t.RunCmd, override.RunCmd)
	setString(&t.VersionCmd, override.VersionCmd)
	setString(&t.CompilerName, override.CompilerName)
	setDuration(&t.CompileIdleTimeout, override.CompileIdleTimeout)
	setDuration(&t.CompileMaxWait, override.CompileMaxWait)
	setDuration(&t.RunIdleTimeout, override.RunIdleTimeout)
	setDuration(&t.RunMaxWait, override.RunMaxWait)
	if len(override.Env) > 0 {
		t.Env = append(append([]string{}, t.Env...), override.Env...)
	}
	if override.FloatTolerance != nil {
		tol := *override.FloatTolerance
		t.FloatTolerance = &tol
	}
	if len(override.ExtraDisallowedTokens) > 0 {
		t.ExtraDisallowedTokens = append(append([]string{}, t.ExtraDisallowedTokens...), override.ExtraDisallowedTokens...)
	}
	return t
}

// Tolerance is the configured float tolerance or the default one.
func (t Toolchain) Tolerance() numeric.Tolerance {
	if t.FloatTolerance == nil {
		return numeric.DefaultTolerance
	}
	return *t.FloatTolerance
}

// Validate checks the fields every runtime needs.
func (t Toolchain) Validate() error {
	if t.SourceFile == "" {
		return pkgerrors.ValidationError("sourceFile", "required")
	}
	if strings.TrimSpace(t.RunCmd) == "" {
		return pkgerrors.ValidationError("runCmd", "required")
	}
	if strings.Contains(t.CompileCmd+t.RunCmd, "{bin}") && t.BinaryFile == "" {
		return pkgerrors.ValidationError("binaryFile", "required when a command uses {bin}")
	}
	return nil
}

// buildCommand expands {src} and {bin} and splits the template with shell
// quoting rules. {dir} is left for the harness, which knows where the
// scratch directory is mounted.
func (t Toolchain) buildCommand(tpl string) ([]string, error) {
	if strings.TrimSpace(tpl) == "" {
		return nil, pkgerrors.New(pkgerrors.InvalidParams).WithMessage("command template is required")
	}
	fields, err := shlex.Split(tpl)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, pkgerrors.InvalidParams, "parse command template failed")
	}
	if len(fields) == 0 {
		return nil, pkgerrors.New(pkgerrors.InvalidParams).WithMessage("command is empty after expansion")
	}
	src := sandbox.DirPlaceholder + "/" + t.SourceFile
	bin := sandbox.DirPlaceholder + "/" + t.BinaryFile
	for i, f := range fields {
		f = strings.ReplaceAll(f, "{src}", src)
		fields[i] = strings.ReplaceAll(f, "{bin}", bin)
	}
	return fields, nil
}
