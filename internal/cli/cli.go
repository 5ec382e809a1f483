package cli

import (
	"math/bits"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/kievzenit/exprc/internal/bytecode"
	"github.com/kievzenit/exprc/internal/compiler_errors"
	"github.com/pkg/errors"
)

const (
	minTargetBits  = 8
	maxTargetBits  = 72
	targetMultiple = 8
)

type Config struct {
	FilePath string
	Target   bytecode.Target
	Dump     bool
	Disasm   bool
}

type argParser struct {
	args []string
	pos  int

	config Config
	logs   []compiler_errors.Log
}

// Parse reads the command line, without the program name, into a Config.
// The target defaults to the host and results are printed unless
// "--print false" is given. Every problem found is logged; the Config is
// only meaningful when no log is an error.
func Parse(args []string) (Config, []compiler_errors.Log) {
	p := &argParser{
		args: args,
		config: Config{
			Target: bytecode.HostTarget(true),
		},
	}

	if len(args) == 0 {
		p.logError(compiler_errors.CLINoArgs{})
		return p.config, p.logs
	}

	for _, arg := range args {
		if !utf8.ValidString(arg) {
			p.logError(compiler_errors.CLICantReadArgs{})
			return p.config, p.logs
		}
	}

	for p.pos < len(p.args) {
		p.parseArg(p.next())
	}

	if p.config.FilePath == "" && !compiler_errors.HasError(p.logs) {
		p.logError(compiler_errors.CLINoFile{})
	}
	return p.config, p.logs
}

func (p *argParser) parseArg(arg string) {
	switch arg {
	case "-t", "--target":
		if value, ok := p.value(arg); ok {
			p.parseTarget(arg, value)
		}
	case "-p", "--print":
		if value, ok := p.value(arg); ok {
			p.config.Target.PrintResult = p.parseBool(arg, value)
		}
	case "-d", "--dump":
		if value, ok := p.value(arg); ok {
			p.config.Dump = p.parseBool(arg, value)
		}
	case "-s", "--disasm":
		if value, ok := p.value(arg); ok {
			p.config.Disasm = p.parseBool(arg, value)
		}
	default:
		if strings.HasPrefix(arg, "-") {
			p.logError(compiler_errors.CLIUnrecognizedArg{Arg: arg})
			return
		}

		if p.config.FilePath != "" {
			p.logError(compiler_errors.CLIMultipleFiles{})
			return
		}
		p.config.FilePath = arg
	}
}

func (p *argParser) next() string {
	arg := p.args[p.pos]
	p.pos++
	return arg
}

func (p *argParser) value(flag string) (string, bool) {
	if p.pos >= len(p.args) {
		p.logError(compiler_errors.CLIRequiresArg{Flag: flag})
		return "", false
	}
	return p.next(), true
}

func (p *argParser) parseTarget(flag string, value string) {
	n, err := strconv.ParseUint(value, 10, 16)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			p.logError(compiler_errors.CLIRequiresNumArgLessThan{Flag: flag, Bound: maxTargetBits})
		} else {
			p.logError(compiler_errors.CLIRequiresNumArg{Flag: flag})
		}
		return
	}

	switch {
	case n < minTargetBits:
		p.logError(compiler_errors.CLIRequiresNumArgAtLeast{Flag: flag, Bound: minTargetBits})
		return
	case n >= maxTargetBits:
		p.logError(compiler_errors.CLIRequiresNumArgLessThan{Flag: flag, Bound: maxTargetBits})
		return
	}

	if n%targetMultiple != 0 {
		p.logWarning(compiler_errors.CLIArgRoundedDown{Arg: flag, Multiple: targetMultiple})
		n -= n % targetMultiple
	}

	if n > bits.UintSize {
		p.logWarning(compiler_errors.CLITargetLargerThanMachine{Bits: int(n)})
	}

	p.config.Target.WordWidth = uint8(n / 8)
}

func (p *argParser) parseBool(flag string, value string) bool {
	switch value {
	case "true":
		return true
	case "false":
		return false
	default:
		p.logError(compiler_errors.CLIRequiresBoolArg{Flag: flag})
		return false
	}
}

func (p *argParser) logError(kind compiler_errors.ErrorKind) {
	p.logs = append(p.logs, compiler_errors.NewError(kind))
}

func (p *argParser) logWarning(kind compiler_errors.WarningKind) {
	p.logs = append(p.logs, compiler_errors.NewWarning(kind))
}

// CheckFileSize reports a source file whose length a target pointer cannot
// hold.
func CheckFileSize(size int64, target bytecode.Target) []compiler_errors.Log {
	targetBits := target.Bits()
	if targetBits >= 63 || size < int64(1)<<targetBits {
		return nil
	}

	return []compiler_errors.Log{
		compiler_errors.NewError(compiler_errors.CLIFileTooBig{Bits: targetBits}),
	}
}

// ReadSource loads the file named by config after checking that the target
// can address it.
func ReadSource(config Config) (string, []compiler_errors.Log) {
	cantOpen := []compiler_errors.Log{
		compiler_errors.NewError(compiler_errors.CLICantOpenFile{Path: config.FilePath}),
	}

	info, err := os.Stat(config.FilePath)
	if err != nil || info.IsDir() {
		return "", cantOpen
	}

	if logs := CheckFileSize(info.Size(), config.Target); len(logs) != 0 {
		return "", logs
	}

	data, err := os.ReadFile(config.FilePath)
	if err != nil {
		return "", cantOpen
	}
	return string(data), nil
}
