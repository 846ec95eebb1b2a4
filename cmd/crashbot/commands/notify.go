// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/similigh/crashbot/internal/core/pipeline"
	"github.com/similigh/crashbot/internal/crash"
	"github.com/similigh/crashbot/internal/notifier"
)

var (
	eventFile      string
	notifyDryRun   bool
	notifyWorkflow string
)

// notifyCmd represents the notify command
var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Forward a single crash event to GitHub",
	Long: `Read one Crashlytics new-issue event and file a GitHub issue for it.

The event is read from --event <file>, or from stdin with --event -.
The command exits non-zero if the issue could not be created.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNotify(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(notifyCmd)

	notifyCmd.Flags().StringVar(&eventFile, "event", "", "Path to crash event JSON file, or - for stdin")
	notifyCmd.Flags().BoolVar(&notifyDryRun, "dry-run", false, "Compose the issue without creating it")
	notifyCmd.Flags().StringVar(&notifyWorkflow, "workflow", "", "Workflow preset to run (overrides config)")
}

func runNotify(ctx context.Context, stdin io.Reader, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	ev, err := readEvent(eventFile, stdin)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(ctx, cfgFile)
	if err != nil {
		return err
	}
	if notifyWorkflow != "" {
		cfg.Workflow = notifyWorkflow
		cfg.Steps = nil
	}

	deps, err := notifier.NewDependencies(cfg, notifyDryRun)
	if err != nil {
		return err
	}

	var result *pipeline.Result
	if interactive() {
		result, err = runWithTUI(ctx, cfg, deps, ev)
	} else {
		fmt.Fprintln(os.Stderr, "[crashbot] Running in CI mode (no TUI)")
		var n *notifier.Notifier
		n, err = notifier.New(cfg, deps)
		if err == nil {
			result, err = n.Handle(ctx, ev)
		}
	}

	if result != nil {
		if encErr := writeResult(stdout, result); encErr != nil && err == nil {
			err = encErr
		}
	}
	return err
}

// readEvent loads the crash event from a file, or from stdin when path is "-".
func readEvent(path string, stdin io.Reader) (*crash.Event, error) {
	var (
		data []byte
		err  error
	)

	switch path {
	case "":
		return nil, fmt.Errorf("please provide --event <file> or --event -")
	case "-":
		data, err = io.ReadAll(stdin)
	default:
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading event: %w", err)
	}

	return crash.Parse(data)
}

func writeResult(w io.Writer, result *pipeline.Result) error {
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// interactive reports whether the progress TUI should be shown.
func interactive() bool {
	if os.Getenv("CI") == "true" || os.Getenv("GITHUB_ACTIONS") == "true" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}
