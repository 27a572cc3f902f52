package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"sitec/archive"
	"sitec/compile"
	"sitec/config"
	"sitec/icons"
	"sitec/resolve"
	"sitec/site"
	"sitec/state"
)

// build loads site document and compiles it with configured block library.
// Compile plan and site document go into debug report.
func build(ctx context.Context, env *state.LocalEnv, siteFile string) (*compile.Compiler, *compile.Output, error) {
	log := env.Log.Named("build")

	s, err := site.Load(siteFile)
	if err != nil {
		return nil, nil, err
	}
	env.Rpt.Store("site/"+filepath.Base(siteFile), siteFile)

	cfg := &env.Cfg.Compile
	set, err := loadIcons(cfg)
	if err != nil {
		return nil, nil, err
	}

	r, err := resolve.Open(cfg.Blocks.Path, cfg.Blocks.Layout, env.Log)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if err := r.Close(); err != nil {
			log.Warn("Unable to close block library", zap.Error(err))
		}
	}()

	c, err := compile.New(r, set, cfg.Options(), env.Log)
	if err != nil {
		return nil, nil, err
	}
	out, err := c.Compile(ctx, s)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to compile %s: %w", filepath.Base(siteFile), err)
	}
	env.Rpt.StoreData("plan.txt", []byte(out.Plan.String()))

	log.Info("Site compiled",
		zap.String("site", siteFile),
		zap.Stringer("build", out.BuildID),
		zap.Int("types", len(out.Plan.Types)),
		zap.Int("instances", out.Plan.Rendered),
		zap.Int("failed", len(out.Plan.Failed)))
	if !out.Plan.Shell {
		log.Warn("Page shell not found, page is a placeholder", zap.String("library", cfg.Blocks.Path))
	}
	return c, out, nil
}

func loadIcons(cfg *config.CompileConfig) (*icons.Set, error) {
	if cfg.Icons.Path == "" {
		return icons.Default()
	}
	set, err := icons.New(os.DirFS(cfg.Icons.Path))
	if err != nil {
		return nil, fmt.Errorf("unable to load icons from %s: %w", cfg.Icons.Path, err)
	}
	return set, nil
}

func runCompile(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	if cmd.Args().Len() == 0 {
		return errors.New("no site document has been specified")
	}
	if cmd.Args().Len() > 2 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}
	env.Overwrite = cmd.Bool("overwrite")
	env.Archive = cmd.Bool("archive")

	siteFile := cmd.Args().Get(0)
	dest := cmd.Args().Get(1)
	if dest == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
		dest = wd
	}

	c, out, err := build(ctx, env, siteFile)
	if err != nil {
		return err
	}
	entries := c.Entries(out)

	if env.Archive {
		name := archiveName(dest, siteFile, out.Plan.Site)
		if _, err := os.Stat(name); err == nil && !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", name)
		}
		if err := archive.WriteBundle(name, out.Stamp, entries...); err != nil {
			return err
		}
		if err := env.Rpt.StoreCopy("output/"+filepath.Base(name), name); err != nil {
			env.Log.Debug("Unable to put archive into report", zap.Error(err))
		}
		env.Log.Info("Site archived", zap.String("file", name), zap.Int("files", len(entries)))
		return nil
	}

	if err := writeArtifacts(dest, entries, env.Overwrite); err != nil {
		return err
	}
	for _, e := range entries {
		if err := env.Rpt.StoreCopy("output/"+e.Name, filepath.Join(dest, filepath.FromSlash(e.Name))); err != nil {
			env.Log.Debug("Unable to put artifact into report", zap.String("file", e.Name), zap.Error(err))
		}
	}
	env.Log.Info("Site written", zap.String("destination", dest), zap.Int("files", len(entries)))
	return nil
}

// archiveName returns zip file name for destination: as is when it already
// names a zip file, otherwise site id (or document name) based file inside
// destination directory.
func archiveName(dest, siteFile, id string) string {
	if strings.EqualFold(filepath.Ext(dest), ".zip") {
		return dest
	}
	base := slug.Make(id)
	if base == "" {
		base = slug.Make(strings.TrimSuffix(filepath.Base(siteFile), filepath.Ext(siteFile)))
	}
	if base == "" {
		base = "site"
	}
	return filepath.Join(dest, base+".zip")
}

// writeArtifacts puts compiled files under dir. Existing files are an error
// unless overwrite is requested, nothing is written in that case.
func writeArtifacts(dir string, entries []archive.Entry, overwrite bool) error {
	if !overwrite {
		var errs error
		for _, e := range entries {
			name := filepath.Join(dir, filepath.FromSlash(e.Name))
			if _, err := os.Stat(name); err == nil {
				errs = multierr.Append(errs, fmt.Errorf("output file already exists: %s", name))
			}
		}
		if errs != nil {
			return errs
		}
	}
	for _, e := range entries {
		name := filepath.Join(dir, filepath.FromSlash(e.Name))
		if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
			return fmt.Errorf("unable to create output directory: %w", err)
		}
		if err := os.WriteFile(name, e.Data, 0644); err != nil {
			return fmt.Errorf("unable to write %s: %w", e.Name, err)
		}
	}
	return nil
}

func listIcons(ctx context.Context, _ *cli.Command) error {
	env := state.EnvFromContext(ctx)

	set, err := loadIcons(&env.Cfg.Compile)
	if err != nil {
		return err
	}
	for _, name := range set.Names() {
		if _, err := fmt.Fprintln(os.Stdout, name); err != nil {
			return err
		}
	}
	env.Log.Debug("Icons listed", zap.Int("count", set.Len()))
	return nil
}
