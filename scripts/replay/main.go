// Replay scripted actions against the demo store.
//
// Usage:
//
//	go run ./scripts/replay run testdata/scenario.yaml
//	go run ./scripts/replay run --format markdown testdata/scenario.yaml
//	go run ./scripts/replay repl
//
// Every flag can also be set through the environment with the FURRY_REPLAY_
// prefix, e.g. FURRY_REPLAY_LOG_LEVEL=debug.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/odvcencio/furry-store/actions"
	"github.com/odvcencio/furry-store/inspect"
	"github.com/odvcencio/furry-store/logging"
	"github.com/odvcencio/furry-store/replay"
)

const envPrefix = "FURRY_REPLAY"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

type app struct {
	v      *viper.Viper
	out    io.Writer
	logger logging.Logger
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{v: viper.New(), out: out}
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root := &cobra.Command{
		Use:          "furry-replay",
		Short:        "Replay actions against the counter and todos store",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			level, err := logging.ParseLevel(a.v.GetString("log-level"))
			if err != nil {
				return err
			}
			a.logger = logging.NewLogger(&logging.LoggerConfig{
				Level:     level,
				Format:    a.v.GetString("log-format"),
				Output:    cmd.ErrOrStderr(),
				Component: "replay",
			})
			return nil
		},
	}
	root.SetOut(out)
	root.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "text", "log format (text or json)")

	root.AddCommand(a.runCmd(), a.actionsCmd(), a.replCmd())
	return root
}

func (a *app) runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Apply a YAML script and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := replay.ParseFile(args[0])
			if err != nil {
				return err
			}
			result, err := replay.Run(cmd.Context(), script, replay.Options{Logger: a.logger})
			if err != nil {
				return err
			}
			return render(a.out, result, a.v.GetString("format"), a.v.GetBool("color"))
		},
	}
	cmd.Flags().String("format", "json", "output format (json, table, markdown, html)")
	cmd.Flags().Bool("color", false, "highlight json output")
	return cmd
}

func render(w io.Writer, result *replay.Result, format string, color bool) error {
	switch format {
	case "json":
		return inspect.JSON(w, result.Final, color)
	case "table":
		return inspect.Table(w, result.Final)
	case "markdown", "md":
		return result.Trace.Markdown(w)
	case "html":
		return result.Trace.HTML(w)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func (a *app) actionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "actions",
		Short: "List the action types the demo reducers handle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, t := range actions.Types() {
				if _, err := fmt.Fprintln(a.out, t); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
