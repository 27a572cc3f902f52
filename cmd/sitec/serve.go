package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"sitec/server"
	"sitec/state"
)

func runServe(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	if cmd.Args().Len() == 0 {
		return errors.New("no site document has been specified")
	}
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many arguments", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	env.Listen, env.Static = cmd.String("listen"), cmd.String("static")
	listen, static := env.ServeAddr()

	_, out, err := build(ctx, env, cmd.Args().Get(0))
	if err != nil {
		return err
	}

	opts := server.Options{
		StylesheetHref: env.Cfg.Compile.Stylesheet.Href,
		ScriptHref:     env.Cfg.Compile.Script.Href,
	}
	if static != "" {
		fi, err := os.Stat(static)
		if err != nil {
			return fmt.Errorf("unable to access static directory: %w", err)
		}
		if !fi.IsDir() {
			return fmt.Errorf("static %s is not a directory", static)
		}
		opts.Static = os.DirFS(static)
		env.Log.Debug("Static files enabled", zap.String("directory", static))
	}

	return server.New(out, opts, env.Log).ListenAndServe(ctx, listen)
}
