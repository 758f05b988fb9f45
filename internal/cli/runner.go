package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/MohammedAnshabtp/TaskFlow-A-Smart-Task-Productivity-Manager/internal/config"
	"github.com/MohammedAnshabtp/TaskFlow-A-Smart-Task-Productivity-Manager/internal/model"
	"github.com/MohammedAnshabtp/TaskFlow-A-Smart-Task-Productivity-Manager/internal/planner"
	"github.com/MohammedAnshabtp/TaskFlow-A-Smart-Task-Productivity-Manager/internal/store/jsonstore"
	"github.com/MohammedAnshabtp/TaskFlow-A-Smart-Task-Productivity-Manager/internal/store/sqlstore"
	"github.com/MohammedAnshabtp/TaskFlow-A-Smart-Task-Productivity-Manager/internal/tui"
	"github.com/MohammedAnshabtp/TaskFlow-A-Smart-Task-Productivity-Manager/internal/ui"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// Options carry root flags and the collaborators a command needs.
type Options struct {
	Group   bool   // list grouped by status
	Project string // project id or name; empty = first project
	Day     string // YYYY-MM-DD; empty = today

	Config *config.Config
	Logger *slog.Logger

	Stdout, Stderr io.Writer
	Now            func() time.Time

	// OpenSlot and RunBoard replace the configured backend and the
	// interactive board, mostly for tests.
	OpenSlot func() (planner.Slot, error)
	RunBoard func(*planner.Store) error
}

func (o *Options) defaults() {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	opt.defaults()
	if len(args) == 0 {
		PrintHelp(opt.Stderr)
		return exitUsage
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Stdout)
		return exitOK
	case "ls":
		return withStore(opt, func(s *planner.Store) int { return doList(s, a, opt) })
	case "add":
		return withStore(opt, func(s *planner.Store) int { return doAdd(s, a, opt) })
	case "move":
		return withStore(opt, func(s *planner.Store) int { return doMove(s, a, opt) })
	case "done":
		return withStore(opt, func(s *planner.Store) int { return doToggle(s, a, opt) })
	case "edit":
		return withStore(opt, func(s *planner.Store) int { return doEdit(s, a, opt) })
	case "rm":
		return withStore(opt, func(s *planner.Store) int { return doRemove(s, a, opt) })
	case "stats":
		return withStore(opt, func(s *planner.Store) int { return doStats(s, opt) })
	case "days":
		return withStore(opt, func(s *planner.Store) int { return doDays(s, opt) })
	case "report":
		return withStore(opt, func(s *planner.Store) int { return doReport(s, opt) })
	case "projects":
		return withStore(opt, func(s *planner.Store) int { return doProjects(s, opt) })
	case "project":
		return withStore(opt, func(s *planner.Store) int { return doProject(s, a, opt) })
	case "board":
		return withStore(opt, func(s *planner.Store) int { return doBoard(s, opt) })
	}

	ui.Fail(opt.Stderr, "unknown subcommand: "+cmd)
	fmt.Fprintln(opt.Stderr)
	PrintHelp(opt.Stderr)
	return exitUsage
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `taskflow - a multi-project daily planner

Usage:
  taskflow [--config file] [--theme name] [--project id|name] [--day YYYY-MM-DD] <subcommand> [flags] [args]

Subcommands:
  ls [--group]                         Show the day's tasks
  add [flags] <title...>               Add a task to the day (--desc, --when, --category, --due)
  move <task> <status>                 Set status: todo, in-progress, review, testing, done
  done <task>                          Toggle between Done and Todo
  edit <task> [flags]                  Patch fields (--title, --desc, --when|none, --category, --due)
  rm <task>                            Remove a task
  stats                                Count tasks per status
  days                                 List days that have tasks
  report                               Print the daily summary
  projects                             List projects
  project add [--desc d] <name...>     Create a project
  project edit <project> [--name n] [--desc d]
  board                                Open the interactive board

<task> is a 1-based index from ls, or a task id (a unique prefix is enough).
A number is read as an index; write id:<id> for an id prefix made of digits.
Flags go before positional arguments.

Examples:
  taskflow add --when "2024-03-01 14:00" Write report
  taskflow --day 2024-03-01 ls --group
  taskflow move 1 review
  taskflow project add --desc "veg patch" Garden
`)
}

// withStore opens the configured slot, scopes the store to --project and
// --day, runs fn and closes the store.
func withStore(opt Options, fn func(*planner.Store) int) int {
	slot, err := openSlot(opt)
	if err != nil {
		ui.Fail(opt.Stderr, "open: "+err.Error())
		return exitError
	}
	s := planner.Open(slot, planner.WithLogger(opt.Logger), planner.WithClock(opt.Now))
	defer func() {
		if err := s.Close(); err != nil {
			opt.Logger.Error("close store", slog.Any("err", err))
		}
	}()

	if opt.Project != "" {
		p, ok := findProject(s, opt.Project)
		if !ok {
			ui.Fail(opt.Stderr, "no such project: "+opt.Project)
			return exitUsage
		}
		s.SelectProject(p.ID)
	}
	if opt.Day != "" {
		day, err := model.ParseDay(opt.Day, opt.Now().Location())
		if err != nil {
			ui.Fail(opt.Stderr, err.Error())
			return exitUsage
		}
		s.SetActiveDay(day)
	}
	return fn(s)
}

func openSlot(opt Options) (planner.Slot, error) {
	if opt.OpenSlot != nil {
		return opt.OpenSlot()
	}
	cfg := opt.Config
	if cfg == nil {
		return nil, fmt.Errorf("no configuration")
	}
	switch cfg.Backend {
	case config.BackendSQLite:
		return sqlstore.Open(cfg.DBPath(), cfg.SlotKey, slog.NewLogLogger(opt.Logger.Handler(), slog.LevelWarn).Writer())
	default:
		return jsonstore.New(cfg.DataDir, cfg.SlotKey), nil
	}
}

func doBoard(s *planner.Store, opt Options) int {
	run := opt.RunBoard
	if run == nil {
		rollover := "00:00"
		if opt.Config != nil {
			rollover = opt.Config.RolloverAt
		}
		run = func(s *planner.Store) error {
			return tui.Run(s, tui.Options{RolloverAt: rollover, Logger: opt.Logger})
		}
	}
	if err := run(s); err != nil {
		ui.Fail(opt.Stderr, "board: "+err.Error())
		return exitError
	}
	return exitOK
}

// parseFlags parses fs and reports usage errors the CLI way.
func parseFlags(fs *flag.FlagSet, args []string, opt Options) bool {
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		ui.Fail(opt.Stderr, fs.Name()+": "+err.Error())
		return false
	}
	return true
}

// saved reports a failed persist after a mutation.
func saved(s *planner.Store, opt Options) bool {
	if err := s.LastPersistError(); err != nil {
		ui.Fail(opt.Stderr, "save: "+err.Error())
		return false
	}
	return true
}
