package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/chatch/forge-fsql/internal/command"
	"github.com/chatch/forge-fsql/internal/complete"
	"github.com/chatch/forge-fsql/internal/format"
	"github.com/chatch/forge-fsql/internal/history"
	"github.com/chatch/forge-fsql/internal/logging"
	"github.com/chatch/forge-fsql/internal/schema"
	"github.com/chatch/forge-fsql/internal/terminal"
)

// Options tunes session startup.
type Options struct {
	// SkipSchemaPreload leaves the schema cache empty until .refresh or a
	// command that needs it.
	SkipSchemaPreload bool
}

// Session is the interactive loop: it reads lines, assembles statements,
// dispatches them to the command registry or the remote client, and prints
// formatted results. Exactly one line is processed at a time; the remote
// call is the only suspension point and is bounded by the client timeout.
type Session struct {
	exec      schema.Executor
	store     *schema.Store
	registry  *command.Registry
	completer *complete.Completer
	history   *history.History
	machine   Machine
	opts      Options
	timing    bool
	out       io.Writer
}

// New wires a session over the given executor, schema store, and history.
func New(exec schema.Executor, store *schema.Store, hist *history.History, opts Options) *Session {
	registry := command.NewRegistry()
	return &Session{
		exec:      exec,
		store:     store,
		registry:  registry,
		completer: complete.New(store, registry),
		history:   hist,
		opts:      opts,
		out:       os.Stdout,
	}
}

// SetOutput redirects session output; used by tests.
func (s *Session) SetOutput(w io.Writer) { s.out = w }

// env builds the command environment with session-bound hooks attached.
func (s *Session) env() *command.Env {
	return &command.Env{
		Client: s.exec,
		Schema: s.store,
		ToggleTiming: func() bool {
			s.timing = !s.timing
			return s.timing
		},
		ClearScreen: terminal.ClearScreen,
	}
}

func (s *Session) primaryPrompt() string {
	return pterm.FgCyan.Sprint("fsql") + pterm.FgGray.Sprint(">") + " "
}

func (s *Session) continuationPrompt() string {
	return pterm.FgGray.Sprint("  ...") + " "
}

// Run starts the interactive loop and blocks until exit.
func (s *Session) Run(ctx context.Context) error {
	s.preloadSchema(ctx)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            s.primaryPrompt(),
		AutoComplete:      s.completer,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
		FuncFilterInputRune: func(r rune) (rune, bool) {
			if r == readline.CharCtrlZ {
				return r, false
			}
			return r, true
		},
	})
	if err != nil {
		return fmt.Errorf("initialize line editor: %w", err)
	}
	defer rl.Close()

	// Seed arrow-recall with the persisted history, oldest first.
	for _, entry := range s.history.Entries() {
		_ = rl.SaveHistory(entry)
	}

	fmt.Fprintln(s.out, "Type .help for commands, exit to quit.")

	for {
		if s.machine.InMultiline() {
			rl.SetPrompt(s.continuationPrompt())
		} else {
			rl.SetPrompt(s.primaryPrompt())
		}

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if s.machine.Interrupt() {
				fmt.Fprintln(s.out, "Query cancelled.")
			} else {
				fmt.Fprintln(s.out, "(Type exit or press Ctrl+D to quit)")
			}
			continue
		}
		if err != nil {
			// io.EOF on Ctrl+D, anything else is a dead terminal.
			break
		}

		action := s.machine.HandleLine(line)
		switch action.Kind {
		case ActionExit:
			s.shutdown()
			return nil
		case ActionDispatch:
			s.record(rl, action.Statement)
			s.dispatch(ctx, action.Statement, terminal.IsInteractive())
		}
	}

	s.shutdown()
	return nil
}

// RunScript drives the same state machine from a non-interactive reader
// (piped stdin). No prompts, no spinner, same dispatch semantics.
func (s *Session) RunScript(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		action := s.machine.HandleLine(scanner.Text())
		switch action.Kind {
		case ActionExit:
			s.shutdown()
			return nil
		case ActionDispatch:
			s.history.Add(action.Statement)
			s.dispatch(ctx, action.Statement, false)
		}
	}
	s.shutdown()
	return scanner.Err()
}

// preloadSchema warms the cache unless disabled; failure is a notice, not
// a fatal error, and leaves the cache empty.
func (s *Session) preloadSchema(ctx context.Context) {
	if s.opts.SkipSchemaPreload {
		return
	}
	var stopSpinner func()
	if terminal.IsInteractive() {
		stopSpinner = terminal.StartSpinner(s.out, "loading schema")
	}
	_, err := s.store.Load(ctx, s.exec)
	if stopSpinner != nil {
		stopSpinner()
	}
	if err != nil {
		fmt.Fprintln(s.out, pterm.FgYellow.Sprint(logging.PresentError("schema preload skipped", err)))
	}
}

// record appends a dispatched unit to both the persistent history and the
// in-memory arrow-recall buffer.
func (s *Session) record(rl *readline.Instance, stmt string) {
	s.history.Add(stmt)
	flat := strings.TrimSpace(strings.ReplaceAll(stmt, "\n", " "))
	if flat != "" {
		_ = rl.SaveHistory(flat)
	}
}

// dispatch classifies and executes one complete unit, printing its output.
func (s *Session) dispatch(ctx context.Context, stmt string, interactive bool) {
	parsed := s.registry.Parse(stmt)

	if parsed.IsSpecial {
		if parsed.Command == nil {
			token := strings.Fields(stmt)[0]
			fmt.Fprintf(s.out, "Unknown command: %s. Type .help for available commands.\n", token)
			return
		}
		if out := parsed.Command.Run(ctx, s.env(), parsed.Args); out != "" {
			fmt.Fprintln(s.out, out)
		}
		return
	}

	var stopSpinner func()
	if interactive {
		stopSpinner = terminal.StartSpinner(s.out, "running query")
	}
	res := s.exec.Execute(ctx, stmt)
	if stopSpinner != nil {
		stopSpinner()
	}

	fmt.Fprintln(s.out, format.FormatResult(res))
	if s.timing && res.Error == "" {
		fmt.Fprintln(s.out, pterm.FgGray.Sprintf("(%s sec)", format.FormatQueryTime(res.Elapsed.Milliseconds())))
	}
}

// shutdown persists the history log.
func (s *Session) shutdown() {
	if err := s.history.Save(); err != nil {
		fmt.Fprintln(s.out, logging.PresentError("failed to save history", err))
	}
	fmt.Fprintln(s.out, "Goodbye!")
}
