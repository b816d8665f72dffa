package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ergochat/readline"
	"github.com/spf13/cobra"

	"github.com/odvcencio/furry-store/actions"
	"github.com/odvcencio/furry-store/inspect"
	"github.com/odvcencio/furry-store/reducers"
	"github.com/odvcencio/furry-store/replay"
	"github.com/odvcencio/furry-store/selector"
	"github.com/odvcencio/furry-store/state"
	"github.com/odvcencio/furry-store/store"
)

var completer = readline.NewPrefixCompleter(
	readline.PcItem("help"),
	readline.PcItem("inc"),
	readline.PcItem("dec"),
	readline.PcItem("text"),
	readline.PcItem("state"),
	readline.PcItem("trace"),
	readline.PcItem("quit"),
)

const replHelp = `inc          increment the counter
dec          decrement the counter
text <s>     replace the todo text
state        print the whole state
trace        print the dispatch trace
quit         leave
`

type lineReader interface {
	Readline() (string, error)
}

func (a *app) replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Dispatch actions interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rl, err := readline.NewEx(&readline.Config{
				Prompt:          "> ",
				AutoComplete:    completer,
				InterruptPrompt: "^C",
				EOFPrompt:       "quit",
			})
			if err != nil {
				return err
			}
			defer rl.Close()

			s, trace, err := replay.NewStore(reducers.InitialState(), replay.Options{Logger: a.logger})
			if err != nil {
				return err
			}
			return repl(rl, s, trace, a.out)
		},
	}
}

// repl reads commands from rl until quit, EOF or an interrupt on an empty line.
func repl(rl lineReader, s *store.Store, trace *inspect.Trace, out io.Writer) error {
	count := selector.Watch(s, selector.Select(reducers.CounterOf))
	defer count.Stop()
	text := selector.Watch(s, selector.Select(reducers.TodosOf))
	defer text.Stop()

	unsubCount := count.Subscribe(func() {
		fmt.Fprintf(out, "count: %d\n", count.Get().Count)
	})
	defer unsubCount()
	unsubText := text.Subscribe(func() {
		fmt.Fprintf(out, "text: %s\n", text.Get().Text)
	})
	defer unsubText()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		switch cmd {
		case "":
		case "inc":
			s.Dispatch(actions.Increment(count.Get().Count))
		case "dec":
			s.Dispatch(actions.Decrement(count.Get().Count))
		case "text":
			s.Dispatch(actions.ChangeText(strings.TrimSpace(arg)))
		case "state":
			if err := inspect.JSON(out, s.State(), false); err != nil {
				return err
			}
		case "trace":
			if err := trace.Markdown(out); err != nil {
				return err
			}
		case "help":
			io.WriteString(out, replHelp)
		case "quit", "exit":
			return nil
		default:
			s.Dispatch(state.NewAction(cmd, parsePayload(arg)))
		}
	}
}

// parsePayload treats an empty argument as no payload.
func parsePayload(arg string) any {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return nil
	}
	return arg
}
