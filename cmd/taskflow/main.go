package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/MohammedAnshabtp/TaskFlow-A-Smart-Task-Productivity-Manager/internal/cli"
	"github.com/MohammedAnshabtp/TaskFlow-A-Smart-Task-Productivity-Manager/internal/config"
	"github.com/MohammedAnshabtp/TaskFlow-A-Smart-Task-Productivity-Manager/internal/logging"
	"github.com/MohammedAnshabtp/TaskFlow-A-Smart-Task-Productivity-Manager/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Root flags (apply to every subcommand)
	configPath := flag.String("config", "", "config file (default <data_dir>/config.yaml)")
	theme := flag.String("theme", "", "colour theme: classic, neon or mono")
	project := flag.String("project", "", "project id or name")
	day := flag.String("day", "", "day to work on, YYYY-MM-DD (default today)")
	group := flag.Bool("group", false, "group ls output by status")
	flag.Usage = func() { cli.PrintHelp(os.Stderr) }
	flag.Parse()

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp(os.Stderr)
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return 1
	}
	if *theme != "" {
		cfg.Theme = *theme
	}
	ui.SetTheme(cfg.Theme)

	logger, logFile, err := logging.OpenFile(cfg.LogPath(), cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "log:", err)
		return 1
	}
	defer logFile.Close()
	logger.Debug("taskflow start", slog.String("cmd", args[0]), slog.String("backend", cfg.Backend))

	code := cli.Run(args, cli.Options{
		Group:   *group,
		Project: *project,
		Day:     *day,
		Config:  cfg,
		Logger:  logger,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	return code
}
