package state

import (
	"context"
	"log"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"sitec/config"
)

func TestContextWithEnv(t *testing.T) {
	ctx := ContextWithEnv(context.Background())
	env := EnvFromContext(ctx)
	if env == nil {
		t.Fatal("EnvFromContext() returned nil")
	}
	if env.start.IsZero() {
		t.Error("Environment start time not set")
	}
	if env.Overwrite || env.Archive {
		t.Error("compile flags must be off by default")
	}

	// same environment for derived contexts
	sub, cancel := context.WithCancel(ctx)
	defer cancel()
	if EnvFromContext(sub) != env {
		t.Error("derived context lost environment")
	}
}

func TestEnvFromContext_Missing(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic when env not in context")
		}
	}()
	EnvFromContext(context.Background())
}

func TestLocalEnv_Uptime(t *testing.T) {
	env := &LocalEnv{start: time.Now().Add(-time.Second)}
	if up := env.Uptime(); up < time.Second || up > time.Minute {
		t.Errorf("Uptime() = %v", up)
	}
}

func TestLocalEnv_StdLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	env := &LocalEnv{Log: zap.New(core)}

	for i := range 2 {
		env.RedirectStdLog()
		if env.restoreStdLog == nil {
			t.Fatalf("cycle %d: restoreStdLog not set", i)
		}
		log.Print("from standard logger")
		env.RestoreStdLog()
	}
	if n := logs.FilterMessage("from standard logger").Len(); n != 2 {
		t.Errorf("redirected messages = %d, want 2", n)
	}

	// nothing to redirect to
	env = &LocalEnv{}
	env.RedirectStdLog()
	if env.restoreStdLog != nil {
		t.Error("Expected restoreStdLog to remain nil")
	}
	env.RestoreStdLog()
}

func TestLocalEnv_NilReport(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))
	env.Cfg = &config.Config{Version: 1}
	env.Log = zaptest.NewLogger(t)

	// report is optional, stages store into it unconditionally
	env.Rpt.StoreData("plan.txt", []byte("plan"))
	if err := env.Rpt.Close(); err != nil {
		t.Errorf("Close() on absent report: %v", err)
	}
}

func TestLocalEnv_ServeAddr(t *testing.T) {
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	env := &LocalEnv{Cfg: cfg}
	if listen, static := env.ServeAddr(); listen != "localhost:8080" || static != "" {
		t.Errorf("ServeAddr() = %q, %q", listen, static)
	}

	env.Listen, env.Static = ":9000", "public"
	if listen, static := env.ServeAddr(); listen != ":9000" || static != "public" {
		t.Errorf("ServeAddr() with overrides = %q, %q", listen, static)
	}
	if env.Reporting() {
		t.Error("Reporting() without report")
	}
}
