package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cottand/effy/effy"
	"github.com/cottand/effy/frontend/ilerr"
	"github.com/cottand/effy/frontend/types"
	"github.com/cottand/effy/internal/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var CheckCmd = &cobra.Command{
	Use:          "check file.yaml",
	Short:        "Infer the type and effects of every declaration of a program",
	RunE:         runCheck,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var (
	logLevel *int
	color    *string
)

func init() {
	logLevel = CheckCmd.Flags().IntP("log-level", "l", int(slog.LevelError), "log level")
	color = CheckCmd.Flags().String("color", "auto", "colour diagnostics: auto, always or never")
}

const (
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiReset = "\x1b[0m"
)

type printer struct {
	out     io.Writer
	colored bool
}

func newPrinter(out io.Writer, mode string) (*printer, error) {
	p := &printer{out: out}
	switch mode {
	case "always":
		p.colored = true
	case "never":
	case "auto":
		if f, ok := out.(*os.File); ok {
			p.colored = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
	default:
		return nil, fmt.Errorf("invalid --color value '%s'", mode)
	}
	return p, nil
}

func (p *printer) paint(color, s string) string {
	if !p.colored {
		return s
	}
	return color + s + ansiReset
}

// loadProgram reads and parses the program at target, and sets up logging for the command
func loadProgram(target string, level slog.Level) (*effy.Program, error) {
	log.SetLevel(level)
	if level <= slog.LevelDebug {
		ilerr.PrintStacks = true
	}

	src, err := os.ReadFile(target)
	if err != nil {
		return nil, fmt.Errorf("could not read program: %w", err)
	}
	program, err := effy.LoadProgram(filepath.Base(target), src)
	if err != nil {
		return nil, fmt.Errorf("could not load program: %w", err)
	}
	return program, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	program, err := loadProgram(args[0], slog.Level(*logLevel))
	if err != nil {
		return err
	}
	p, err := newPrinter(cmd.OutOrStdout(), *color)
	if err != nil {
		return err
	}

	result := program.Check()
	printResult(p, result)
	if result.HasErrors() {
		return fmt.Errorf("errors found in %s", program.Name)
	}
	return nil
}

func printResult(p *printer, result *effy.Result) {
	for _, decl := range result.Decls {
		switch {
		case decl.Fatal != nil:
			_, _ = fmt.Fprintf(p.out, "%s : %s\n", decl.Name, p.paint(ansiRed, "<aborted>"))
		case decl.OK():
			_, _ = fmt.Fprintf(p.out, "%s : %s [%s]\n", decl.Name, p.paint(ansiGreen, types.TypeString(decl.Type)), decl.Purity)
		default:
			_, _ = fmt.Fprintf(p.out, "%s : %s [%s]\n", decl.Name, types.TypeString(decl.Type), decl.Purity)
		}
		for _, e := range decl.Errors.Errors() {
			_, _ = fmt.Fprintf(p.out, "  %s\n", p.paint(ansiRed, ilerr.FormatWithPosition(e, result.Fset)))
		}
		if fatal, ok := decl.FatalError(); ok {
			_, _ = fmt.Fprintf(p.out, "  %s\n", p.paint(ansiRed, ilerr.FormatWithPosition(fatal, result.Fset)))
		} else if decl.Fatal != nil {
			_, _ = fmt.Fprintf(p.out, "  %s\n", p.paint(ansiRed, fmt.Sprintf("internal error (this is a bug and not a type error): %v", decl.Fatal)))
		}
	}
}
