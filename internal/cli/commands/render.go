package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/irkit-labs/irkit/internal/cli/config"
	"github.com/irkit-labs/irkit/internal/starval"
	"github.com/irkit-labs/irkit/internal/yamlval"
)

// RenderOptions holds options for the render command.
type RenderOptions struct {
	Expr  string
	Watch bool
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	opts := &RenderOptions{}
	cmd := &cobra.Command{
		Use:   "render [file...]",
		Short: "Render object graphs from Starlark or YAML sources",
		Long: `Render object graphs to their canonical text form.

Sources are .star files (every exported global becomes a render root) or
.yaml documents. Files render in parallel up to --jobs, but output is
written in argument order.`,
		Example: `  # Render a Starlark file's exported values
  irkit render model.star

  # Render a YAML document across multiple lines
  irkit render --pretty graph.yaml

  # Evaluate a single expression
  irkit render --expr '{"name": "conv2d", "args": [1, (3, 224, 224)]}'

  # Re-render files whenever they change
  irkit render --watch model.star`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Expr, "expr", "e", "", "Render a single Starlark expression instead of files")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Watch files and re-render on change")

	return cmd
}

func runRender(cmd *cobra.Command, files []string, opts *RenderOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg

	if opts.Expr != "" {
		if len(files) > 0 {
			return errors.New("--expr cannot be combined with file arguments")
		}
		out, err := renderExpr(opts.Expr, cfg)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}

	if len(files) == 0 {
		return errors.New("nothing to render: provide files or --expr")
	}

	if err := renderFiles(cmd, files, cfg); err != nil {
		return err
	}

	if opts.Watch {
		return watchAndRender(cmd, files, cfg, cmdCtx.Logger)
	}

	return nil
}

// renderExpr evaluates one Starlark expression and renders the result.
func renderExpr(expr string, cfg *config.Config) (string, error) {
	obj, err := starval.Eval(expr)
	if err != nil {
		return "", err
	}
	return newPrinter(cfg).Sprint(obj)
}

// renderFiles renders the given files, up to cfg.Jobs at a time, and writes
// the results in argument order once all of them finished.
func renderFiles(cmd *cobra.Command, files []string, cfg *config.Config) error {
	eg, ctx := errgroup.WithContext(cmd.Context())
	eg.SetLimit(cfg.Jobs)

	results := make([]string, len(files))
	for i, path := range files {
		i, path := i, path
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := renderFile(path, cfg)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = out
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	for _, out := range results {
		_, _ = fmt.Fprint(cmd.OutOrStdout(), out)
	}
	return nil
}

// renderFile renders a single .star or .yaml file.
func renderFile(path string, cfg *config.Config) (string, error) {
	p := newPrinter(cfg)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".star":
		roots, err := starval.DecodeFile(path)
		if err != nil {
			return "", err
		}
		if len(roots) == 0 {
			return "", errors.New("no exported values to render")
		}
		var b strings.Builder
		for _, root := range roots {
			out, err := p.Sprint(root.Obj)
			if err != nil {
				return "", fmt.Errorf("global %q: %w", root.Name, err)
			}
			_, _ = fmt.Fprintf(&b, "%s = %s\n", root.Name, out)
		}
		return b.String(), nil

	case ".yaml", ".yml":
		obj, err := yamlval.DecodeFile(path)
		if err != nil {
			return "", err
		}
		out, err := p.Sprint(obj)
		if err != nil {
			return "", err
		}
		return out + "\n", nil

	default:
		return "", fmt.Errorf("unsupported file extension %q (supported: .star, .yaml, .yml)", ext)
	}
}

// watchAndRender blocks, re-rendering files as they change, until interrupted.
func watchAndRender(cmd *cobra.Command, files []string, cfg *config.Config, logger *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch parent directories rather than the files: editors often replace
	// files on save, which silently drops watches held on the file itself.
	watched := make(map[string]string, len(files)) // absolute path -> argument as given
	dirs := make(map[string]struct{})
	for _, path := range files {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		watched[abs] = path
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		cancel()
	}()

	logger.Info("watching for changes", "files", len(watched))

	// Editors fire several events per save; collapse bursts per file.
	lastRender := make(map[string]time.Time)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			arg, isWatched := watched[abs]
			if !isWatched {
				continue
			}
			if t, seen := lastRender[abs]; seen && time.Since(t) < 100*time.Millisecond {
				continue
			}
			lastRender[abs] = time.Now()

			logger.Debug("change detected", "file", arg)
			out, err := renderFile(arg, cfg)
			if err != nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s: %v\n", arg, err)
				continue
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), out)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}
