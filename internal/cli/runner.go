package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/store/jsonstore"
	"github.com/Makepad-fr/tada/internal/todolist"
	"github.com/Makepad-fr/tada/internal/tui"
	"github.com/Makepad-fr/tada/internal/ui"
)

// Options carry what the root command resolved.
type Options struct {
	Config config.Config
	Logger *log.Logger

	// RunTUI starts the interactive list; tests replace it.
	RunTUI func(context.Context, *store.Store, ...tui.Option) (bool, error)
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	if opt.RunTUI == nil {
		opt.RunTUI = tui.Run
	}
	ui.SetTheme(opt.Config.Theme)
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "ls":
		return doList(opt)

	case "tui":
		return doTUI(ctx, opt)

	case "add":
		if len(a) == 0 {
			ui.Fail("usage: todo add <text...>")
			return 2
		}
		return doAdd(opt, strings.Join(a, " "))

	case "done":
		n, code := indexArg("done", a, 1)
		if code != 0 {
			return code
		}
		return doToggle(opt, n)

	case "rm":
		n, code := indexArg("rm", a, 1)
		if code != 0 {
			return code
		}
		return doRemove(opt, n)

	case "edit":
		n, code := indexArg("edit", a, 2)
		if code != 0 {
			return code
		}
		return doEdit(opt, n, strings.Join(a[1:], " "))
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(ui.Stderr)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Fprint(ui.Stdout, `todo - a tiny todo list

Usage:
  todo [flags] <subcommand> [args]

Subcommands:
  ls                     List items for the current filter
  tui                    Interactive list (a add, space toggle, enter×2 edit, d delete)
  add <text...>          Add a new item (text can be multiple words)
  done <index>           Toggle completion of the item at 1-based index
  rm <index>             Remove the item at 1-based index
  edit <index> <text...> Replace the text of the item at 1-based index

Flags:
  -c, --config <file>    Config file (TOML)
  -f, --file <file>      Data file (default ./todos.json)
      --filter <f>       all, active or completed (default all)
      --theme <name>     classic, neon or mono
  -g, --group            Group ls output by active/completed
      --log-level <lvl>  debug, info, warn, error
      --log-file <file>  Write logs to a file

Indexes count the items shown by ls with the same filter.

Examples:
  todo add "Buy milk"
  todo --filter active ls
  todo done 2
  todo edit 1 Buy oat milk
  todo rm 3
`)
}

func indexArg(name string, a []string, min int) (int, int) {
	if len(a) < min || (min == 1 && len(a) != 1) {
		switch name {
		case "edit":
			ui.Fail("usage: todo edit <index> <text...>")
		default:
			ui.Fail("usage: todo " + name + " <index>")
		}
		return 0, 2
	}
	n, err := strconv.Atoi(a[0])
	if err != nil {
		ui.Fail(name + ": not a number: " + a[0])
		return 0, 2
	}
	return n, 0
}

// -------------- subcommand impls ----------------

func open(opt Options) (*store.Store, int) {
	filter, err := opt.Config.ParsedFilter()
	if err != nil {
		ui.Fail("filter: " + err.Error())
		return nil, 2
	}
	js, err := jsonstore.New(opt.Config.File)
	if err != nil {
		ui.Fail("store: " + err.Error())
		return nil, 1
	}
	todos, err := js.Load()
	if err != nil {
		ui.Fail("load: " + err.Error())
		return nil, 1
	}
	logger := opt.Logger
	if logger != nil {
		logger = logger.With("file", js.Path())
		logger.Debug("loaded", "todos", todos.Len())
	}
	return store.New(todos, filter, store.WithSaver(js), store.WithLogger(logger)), 0
}

func save(st *store.Store, msg string) int {
	if err := st.Flush(); err != nil {
		ui.Fail(err.Error())
		return 1
	}
	ui.OK(msg)
	return 0
}

func doList(opt Options) int {
	st, code := open(opt)
	if code != 0 {
		return code
	}
	t := ui.Current()
	active, completed := model.Count(st.Todos())
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d  %s",
		ui.C(t.Title, "Todos"),
		ui.C(t.Success, t.SymDone), completed,
		ui.C(t.Pending, t.SymPending), active,
		ui.C(t.Accent, "Total"), st.Todos().Len(),
		ui.C(t.Muted, "["+filterLabel(st.Filter())+"]"),
	)

	rows := st.Rows()
	lines := []string{header, ui.C(t.Muted, ui.ProgressBar(completed, active+completed, 28)), ""}
	if opt.Config.Group {
		lines = append(lines, ui.GroupLines(rows)...)
	} else {
		lines = append(lines, ui.TodoLines(rows)...)
	}
	lines = append(lines, "", ui.C(t.Muted, "Tip: add with `todo add \"Buy milk\"`"))
	ui.Panel(lines)
	return 0
}

func filterLabel(f model.Filter) string {
	if f == model.FilterNone {
		return "no filter"
	}
	return string(f)
}

func doTUI(ctx context.Context, opt Options) int {
	st, code := open(opt)
	if code != 0 {
		return code
	}
	var opts []tui.Option
	if opt.Logger != nil {
		opts = append(opts, tui.WithLogger(opt.Logger))
	}
	saved, err := opt.RunTUI(ctx, st, opts...)
	if saved {
		ui.OK("saved")
	}
	if err != nil {
		ui.Fail("tui: " + err.Error())
		return 1
	}
	return 0
}

func doAdd(opt Options, text string) int {
	st, code := open(opt)
	if code != 0 {
		return code
	}
	if _, err := st.Add(text); err != nil {
		ui.Fail("add: " + err.Error())
		return 2
	}
	return save(st, "added")
}

// resolve maps a 1-based index over the visible rows to a todo key.
func resolve(st *store.Store, userIndex int) (todolist.Row, int) {
	rows := st.Rows()
	if userIndex < 1 || userIndex > len(rows) {
		ui.Fail(fmt.Sprintf("index out of range: have %d, got %d", len(rows), userIndex))
		ui.Hint("run `todo ls` with the same filter to see valid indexes")
		return todolist.Row{}, 2
	}
	return rows[userIndex-1], 0
}

func doToggle(opt Options, userIndex int) int {
	st, code := open(opt)
	if code != 0 {
		return code
	}
	r, code := resolve(st, userIndex)
	if code != 0 {
		return code
	}
	if err := st.Toggle(r.Key); err != nil {
		ui.Fail("done: " + err.Error())
		return 1
	}
	return save(st, "toggled")
}

func doRemove(opt Options, userIndex int) int {
	st, code := open(opt)
	if code != 0 {
		return code
	}
	r, code := resolve(st, userIndex)
	if code != 0 {
		return code
	}
	if err := st.Delete(r.Key); err != nil {
		ui.Fail("rm: " + err.Error())
		return 1
	}
	return save(st, "removed")
}

func doEdit(opt Options, userIndex int, text string) int {
	st, code := open(opt)
	if code != 0 {
		return code
	}
	r, code := resolve(st, userIndex)
	if code != 0 {
		return code
	}
	if err := st.Rename(r.Key, text); err != nil {
		ui.Fail("edit: " + err.Error())
		return 2
	}
	return save(st, "edited")
}
