package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mverleg/tel/depgraph/render"
	"github.com/mverleg/tel/engine"
	"github.com/mverleg/tel/ident"
	"github.com/mverleg/tel/resolve"
	"github.com/mverleg/tel/source"
	"github.com/mverleg/tel/stepctx"
	"github.com/mverleg/tel/stepid"
	"github.com/mverleg/tel/telconfig"
)

const mainFileName = "main.telsb"

var showDeps bool

var runCmd = &cobra.Command{
	Use:   "run [file-or-dir]",
	Short: "Resolve and execute a Tel program",
	Long: `Execute a Tel program.

The argument is either a single .telsb file, or a directory containing
main.telsb. Imports resolve relative to the file that declares them.`,
	Args: cobra.ExactArgs(1),
	RunE: runProgram,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&showDeps, "show-deps", false, "print the dependency tree after running")
}

func runProgram(_ *cobra.Command, args []string) error {
	target := args[0]
	baseDir, relPath, err := resolveEntryPoint(target)
	if err != nil {
		return err
	}

	cfg, err := telconfig.Load(filepath.Join(baseDir, "tel.yaml"))
	if err != nil {
		return err
	}

	logger := newLogger()
	src := source.NewFSResolver(baseDir, cfg.ImportRoots...)
	eng := engine.New(src, cfg.MaxParallelism, logger)
	eng.Resolver = resolve.Resolve

	mainName := strings.TrimSuffix(filepath.Base(relPath), ".telsb")
	mainFQ := ident.NewFQ(ident.NewPath(relPath), ident.NewName(mainName))

	root := stepctx.NewRootContext(eng)
	runErr := root.Execute(stepid.ExecID{Main: mainFQ})

	if showDeps {
		fmt.Println(render.Text(eng.Graph))
	}

	if runErr != nil {
		return fmt.Errorf("tel: %w", runErr)
	}
	return nil
}

// resolveEntryPoint turns the CLI's positional argument into a base
// directory (source.FSResolver's root) and a path relative to it, per
// spec.md §6: a directory argument implies main.telsb inside it.
func resolveEntryPoint(target string) (baseDir, relPath string, err error) {
	info, err := os.Stat(target)
	if err != nil {
		return "", "", fmt.Errorf("tel: %w", err)
	}
	if info.IsDir() {
		return target, mainFileName, nil
	}
	return filepath.Dir(target), filepath.Base(target), nil
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	if envLevel := os.Getenv("TEL_LOG"); envLevel != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(envLevel)); err == nil {
			level = l
		}
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
