package cli

import (
	"flag"
	"fmt"
	"strings"

	"github.com/MohammedAnshabtp/TaskFlow-A-Smart-Task-Productivity-Manager/internal/model"
	"github.com/MohammedAnshabtp/TaskFlow-A-Smart-Task-Productivity-Manager/internal/planner"
	"github.com/MohammedAnshabtp/TaskFlow-A-Smart-Task-Productivity-Manager/internal/ui"
)

func doReport(s *planner.Store, opt Options) int {
	fmt.Fprintln(opt.Stdout, s.DailySummary())
	return exitOK
}

func doProjects(s *planner.Store, opt Options) int {
	th := ui.Current()
	active := s.ActiveProject().ID
	var lines []string
	for _, p := range s.Projects() {
		marker := " "
		name := p.Name
		if p.ID == active {
			marker = "*"
			name = th.Accent.Render(name)
		}
		line := fmt.Sprintf("%s %s %s  %s", marker, th.Muted.Render(shortID(p.ID)), name,
			th.Muted.Render(fmt.Sprintf("%d task(s)", p.TaskCount())))
		if p.Description != "" {
			line += "\n    " + ui.Truncate(p.Description, 60)
		}
		lines = append(lines, line)
	}
	ui.Panel(opt.Stdout, lines)
	return exitOK
}

func doProject(s *planner.Store, args []string, opt Options) int {
	if len(args) == 0 {
		ui.Fail(opt.Stderr, "project: missing action (add, edit)")
		return exitUsage
	}
	switch args[0] {
	case "add":
		return doProjectAdd(s, args[1:], opt)
	case "edit":
		return doProjectEdit(s, args[1:], opt)
	}
	ui.Fail(opt.Stderr, "project: unknown action: "+args[0])
	return exitUsage
}

func doProjectAdd(s *planner.Store, args []string, opt Options) int {
	fs := flag.NewFlagSet("project add", flag.ContinueOnError)
	desc := fs.String("desc", "", "description")
	if !parseFlags(fs, args, opt) {
		return exitUsage
	}
	name := strings.Join(fs.Args(), " ")
	p, ok := s.CreateProject(name, *desc)
	if !ok {
		ui.Fail(opt.Stderr, "project add: missing name")
		return exitUsage
	}
	if !saved(s, opt) {
		return exitError
	}
	ui.OK(opt.Stdout, fmt.Sprintf("Created project %s %q", shortID(p.ID), p.Name))
	return exitOK
}

func doProjectEdit(s *planner.Store, args []string, opt Options) int {
	if len(args) < 1 || strings.HasPrefix(args[0], "-") {
		ui.Fail(opt.Stderr, "project edit: usage: project edit <project> [--name n] [--desc d]")
		return exitUsage
	}
	p, ok := findProject(s, args[0])
	if !ok {
		ui.Fail(opt.Stderr, "project edit: no such project: "+args[0])
		return exitUsage
	}
	fs := flag.NewFlagSet("project edit", flag.ContinueOnError)
	name := fs.String("name", p.Name, "new name")
	desc := fs.String("desc", p.Description, "new description")
	if !parseFlags(fs, args[1:], opt) {
		return exitUsage
	}
	if strings.TrimSpace(*name) == "" {
		ui.Fail(opt.Stderr, "project edit: name is blank")
		return exitUsage
	}
	s.UpdateProjectMeta(p.ID, strings.TrimSpace(*name), strings.TrimSpace(*desc))
	if !saved(s, opt) {
		return exitError
	}
	ui.OK(opt.Stdout, fmt.Sprintf("Updated project %q", strings.TrimSpace(*name)))
	return exitOK
}

// findProject accepts an id, an id prefix or a name.
func findProject(s *planner.Store, ref string) (model.Project, bool) {
	if p, ok := s.FindProject(ref); ok {
		return p, true
	}
	var hits []model.Project
	for _, p := range s.Projects() {
		if strings.HasPrefix(p.ID, ref) {
			hits = append(hits, p)
		}
	}
	if len(hits) != 1 {
		return model.Project{}, false
	}
	return hits[0], true
}
