package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/trailtools/trail/internal/config"
	"github.com/trailtools/trail/internal/errors"
	"github.com/trailtools/trail/internal/gitutil"
	"github.com/trailtools/trail/internal/ops"
	"github.com/trailtools/trail/internal/store"
	"github.com/trailtools/trail/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(st *store.Store, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "trail",
		Usage:   "Terminal history that remembers what fixed things",
		Version: Version,
		Commands: []*cli.Command{
			captureCmd(st, cfg),
			searchCmd(st),
			fixesCmd(st),
			logCmd(st),
			projectsCmd(st),
			statsCmd(st),
			reviewCmd(st, cfg),
			showCmd(st),
			exportCmd(st, cfg),
			importCmd(st, cfg),
			hookCmd(),
			webCmd(st, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// captureCmd creates the capture command.
func captureCmd(st *store.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "capture",
		Usage:     "Record a command execution (stderr may be piped via stdin)",
		ArgsUsage: "-- <command...>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "cwd", Usage: "Working directory (default: current directory)"},
			&cli.IntFlag{Name: "exit", Aliases: []string{"e"}, Usage: "Exit code of the command"},
			&cli.StringFlag{Name: "branch", Aliases: []string{"b"}, Usage: "Git branch (default: detected from cwd)"},
			&cli.StringFlag{Name: "stderr", Usage: "Captured error output (overrides stdin)"},
		},
		Action: func(c *cli.Context) error {
			input := ops.CaptureInput{
				Command:  strings.Join(c.Args().Slice(), " "),
				ExitCode: c.Int("exit"),
			}

			input.CWD = c.String("cwd")
			if input.CWD == "" {
				cwd, err := os.Getwd()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				input.CWD = cwd
			}

			// Branch lookup is best-effort; outside a repository it stays empty.
			if c.IsSet("branch") {
				input.GitBranch = c.String("branch")
			} else if branch, ok := gitutil.CurrentBranch(c.Context, input.CWD); ok {
				input.GitBranch = branch
			}

			if c.IsSet("stderr") {
				input.Stderr = c.String("stderr")
			} else if stdinHasData() {
				text, err := readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				input.Stderr = text
			}

			output, err := ops.Capture(c.Context, st, cfg, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// searchCmd creates the search command.
func searchCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search remembered episodes by substring",
		ArgsUsage: "<query>",
		Action: func(c *cli.Context) error {
			input := ops.SearchInput{
				Query: strings.Join(c.Args().Slice(), " "),
			}

			output, err := ops.Search(c.Context, st, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// fixesCmd creates the fixes command.
func fixesCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "fixes",
		Usage: "Show recent fixes for a project",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "project", Aliases: []string{"p"}, Usage: "Project hash (overrides --cwd)"},
			&cli.StringFlag{Name: "cwd", Usage: "Resolve the project from this directory (default: current directory)"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Maximum fixes to return"},
		},
		Action: func(c *cli.Context) error {
			input := ops.FixesInput{
				Project: c.String("project"),
				CWD:     c.String("cwd"),
				Limit:   c.Int("limit"),
			}

			if input.Project == "" && input.CWD == "" {
				cwd, err := os.Getwd()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				input.CWD = cwd
			}

			output, err := ops.Fixes(c.Context, st, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// logCmd creates the log command.
func logCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "log",
		Usage: "Show recent captured events, newest last",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "project", Aliases: []string{"p"}, Usage: "Filter by project hash"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Maximum events to return"},
		},
		Action: func(c *cli.Context) error {
			input := ops.LogInput{
				Project: c.String("project"),
				Limit:   c.Int("limit"),
			}

			output, err := ops.Log(c.Context, st, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// projectsCmd creates the projects command.
func projectsCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "projects",
		Usage: "List tracked projects with event and episode counts",
		Action: func(c *cli.Context) error {
			output, err := ops.Projects(c.Context, st)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// statsCmd creates the stats command.
func statsCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show aggregate memory counts",
		Action: func(c *cli.Context) error {
			output, err := ops.Stats(c.Context, st)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// reviewCmd creates the review command.
func reviewCmd(st *store.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "review",
		Usage: "Print a markdown digest of recent episodes",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "project", Aliases: []string{"p"}, Usage: "Limit the digest to one project hash"},
		},
		Action: func(c *cli.Context) error {
			input := ops.ReviewInput{
				Project: c.String("project"),
			}

			output, err := ops.Review(c.Context, st, cfg, input)
			if err != nil {
				return outputError(err)
			}

			fmt.Println(output.Markdown)
			return nil
		},
	}
}

// showCmd creates the show command.
func showCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Fetch a single event or episode by id",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			input := ops.ShowInput{
				ID: c.Args().First(),
			}

			output, err := ops.Show(c.Context, st, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// exportCmd creates the export command.
func exportCmd(st *store.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Export the whole memory document to a JSON file",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Export file path (default: ~/.trail/exports/memory-<timestamp>.json)"},
		},
		Action: func(c *cli.Context) error {
			input := ops.ExportInput{
				Path: c.String("path"),
			}
			if input.Path == "" && c.NArg() > 0 {
				input.Path = c.Args().First()
			}

			output, err := ops.Export(c.Context, st, cfg, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// importCmd creates the import command.
func importCmd(st *store.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Replace the memory document from a JSON export",
		ArgsUsage: "<path>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Import file path"},
		},
		Action: func(c *cli.Context) error {
			input := ops.ImportInput{
				Path: c.String("path"),
			}
			if input.Path == "" && c.NArg() > 0 {
				input.Path = c.Args().First()
			}

			output, err := ops.Import(c.Context, st, cfg, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// hookCmd creates the hook command.
func hookCmd() *cli.Command {
	return &cli.Command{
		Name:  "hook",
		Usage: "Print the shell integration snippet",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "shell", Aliases: []string{"s"}, Value: "zsh", Usage: "Shell flavor: zsh|bash"},
		},
		Action: func(c *cli.Context) error {
			snippet, err := hookSnippet(c.String("shell"))
			if err != nil {
				return outputError(err)
			}
			fmt.Println(snippet)
			return nil
		},
	}
}

// hookSnippet returns the shell snippet that captures every command.
func hookSnippet(shell string) (string, error) {
	switch shell {
	case "zsh":
		return `# trail shell hook (zsh). Install with:
#   eval "$(trail hook --shell zsh)"
_trail_capture() {
  local code=$?
  local cmd="$(fc -ln -1 2>/dev/null)"
  [ -n "$cmd" ] || return 0
  (trail capture --exit "$code" -- ${=cmd} >/dev/null 2>&1 &)
}
precmd_functions+=(_trail_capture)`, nil
	case "bash":
		return `# trail shell hook (bash). Install with:
#   eval "$(trail hook --shell bash)"
_trail_capture() {
  local code=$?
  local cmd="$(HISTTIMEFORMAT= history 1 | sed 's/^ *[0-9]* *//')"
  [ -n "$cmd" ] || return 0
  (trail capture --exit "$code" -- $cmd >/dev/null 2>&1 &)
}
PROMPT_COMMAND="_trail_capture${PROMPT_COMMAND:+;$PROMPT_COMMAND}"`, nil
	default:
		return "", errors.NewInvalidRequest(fmt.Sprintf("unsupported shell %q (want zsh or bash)", shell))
	}
}

// webCmd creates the web command.
func webCmd(st *store.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "web",
		Usage: "Serve the local read-only memory viewer",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Aliases: []string{"a"}, Usage: "Listen address (default: from config)"},
		},
		Action: func(c *cli.Context) error {
			addr := c.String("addr")
			if addr == "" {
				addr = cfg.WebAddr
			}

			srv := web.NewServer(st, cfg, Version, addr)
			if err := web.Run(srv); err != nil {
				return outputError(err)
			}
			return nil
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if tErr, ok := err.(*errors.TrailError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", tErr.Code, tErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
