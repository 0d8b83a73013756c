package cmd

import (
	"fmt"
	"log/slog"

	"github.com/cottand/effy/frontend/ir"
	"github.com/spf13/cobra"
)

var DumpCmd = &cobra.Command{
	Use:          "dump file.yaml",
	Short:        "Print the elaborated core tree of every declaration of a program",
	RunE:         runDump,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var dumpLogLevel *int

func init() {
	dumpLogLevel = DumpCmd.Flags().IntP("log-level", "l", int(slog.LevelError), "log level")
}

func runDump(cmd *cobra.Command, args []string) error {
	program, err := loadProgram(args[0], slog.Level(*dumpLogLevel))
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, decl := range program.Check().Decls {
		if decl.Core == nil {
			_, _ = fmt.Fprintf(out, "-- %s: aborted: %v\n\n", decl.Name, decl.Fatal)
			continue
		}
		_, _ = fmt.Fprintf(out, "-- %s\n%s\n\n", decl.Name, ir.ExprString(decl.Core))
	}
	return nil
}
