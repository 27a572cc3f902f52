package main

import (
	"context"
	"fmt"
	"io"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"sitec/config"
	"sitec/state"
)

const siteArgHelp = `SITE:
    site document (.json, .yaml or .yml): theme and ordered block instances
`

func commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:         "compile",
			Usage:        "Compiles site into page, stylesheet and script",
			OnUsageError: usageErrorHandler,
			Action:       runCompile,
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"}, Usage: "continue even if destination exists, overwrite files"},
				&cli.BoolFlag{Name: "archive", Aliases: []string{"a"}, Usage: "pack compiled artifacts into a single zip file"},
			},
			ArgsUsage: "SITE [DESTINATION]",
			CustomHelpTemplate: cli.CommandHelpTemplate + "\n" + siteArgHelp + `
DESTINATION:
    directory to put index.html, stylesheet and script into, artifact names
    follow configured stylesheet and script hrefs
    with --archive: zip file name or directory to put <site id>.zip into
    if absent - current working directory
`,
		},
		{
			Name:         "serve",
			Usage:        "Compiles site once and serves it over HTTP",
			OnUsageError: usageErrorHandler,
			Action:       runServe,
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "listen", Aliases: []string{"l"}, Usage: "`ADDRESS` to listen on, overrides configuration"},
				&cli.StringFlag{Name: "static", Usage: "`DIRECTORY` with static files, overrides configuration"},
			},
			ArgsUsage: "SITE",
			CustomHelpTemplate: cli.CommandHelpTemplate + "\n" + siteArgHelp + `
Page is served at "/", stylesheet and script at their configured hrefs.
Everything else is looked up in static directory if one is configured.
`,
		},
		{
			Name:         "icons",
			Usage:        "Lists icon names available to block templates",
			OnUsageError: usageErrorHandler,
			Action:       listIcons,
		},
		{
			Name:  "dumpconfig",
			Usage: "Dumps either default or actual configuration (YAML)",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
			},
			OnUsageError: usageErrorHandler,
			Action:       dumpConfig,
			ArgsUsage:    "DESTINATION",
			CustomHelpTemplate: cli.CommandHelpTemplate + `
DESTINATION:
    file name to write configuration to, if absent - STDOUT

Without --default the output is the effective configuration: embedded
defaults with values from configuration file applied.
`,
		},
	}
}

func dumpConfig(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	var (
		kind = "actual"
		data []byte
		err  error
	)
	if cmd.Bool("default") {
		kind = "default"
		data, err = config.Prepare()
	} else {
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	fname := cmd.Args().Get(0)
	env.Log.Info("Outputting configuration", zap.String("state", kind), zap.String("file", fname))
	return writeConfig(fname, data)
}

// writeConfig writes data to named file or to stdout when name is empty.
func writeConfig(fname string, data []byte) (err error) {
	var out io.Writer = os.Stdout
	if fname != "" {
		f, cerr := os.Create(fname)
		if cerr != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, cerr)
		}
		defer func() {
			if cerr := f.Close(); err == nil && cerr != nil {
				err = cerr
			}
		}()
		out = f
	}
	if _, err = out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
