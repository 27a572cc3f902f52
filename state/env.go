// Package state holds per-run program state shared by subcommands.
package state

import (
	"context"
	"time"

	"go.uber.org/zap"

	"sitec/config"
)

type envKey struct{}

// LocalEnv is attached to the application context before any subcommand runs.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// compile
	Overwrite bool
	Archive   bool

	// serve, empty means configured value
	Listen string
	Static string

	start         time.Time
	restoreStdLog func()
}

// ContextWithEnv returns context carrying fresh environment.
func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, &LocalEnv{start: time.Now()})
}

// EnvFromContext panics when ctx was not produced by ContextWithEnv.
func EnvFromContext(ctx context.Context) *LocalEnv {
	env, ok := ctx.Value(envKey{}).(*LocalEnv)
	if !ok {
		panic("sitec environment not found in context")
	}
	return env
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// Reporting tells if debug report is being collected.
func (e *LocalEnv) Reporting() bool {
	return e.Rpt != nil
}

// ServeAddr returns listen address and static directory with command line
// overrides applied.
func (e *LocalEnv) ServeAddr() (listen, static string) {
	listen, static = e.Listen, e.Static
	if e.Cfg != nil {
		if listen == "" {
			listen = e.Cfg.Server.Listen
		}
		if static == "" {
			static = e.Cfg.Server.Static
		}
	}
	return listen, static
}

// RedirectStdLog sends output of standard library logger (used by net/http
// among others) to environment logger.
func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log.Named("stdlog"))
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
		e.restoreStdLog = nil
	}
}
