// Command useclient-transform is a standalone diagnostic driver over the
// useclient package: it is not a bundler, it exists to run the transform
// over files from the command line and print what it did.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"
	"strings"
	"syscall"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	useclient "github.com/nullstack-dev/useclient-transform"
	"github.com/nullstack-dev/useclient-transform/internal/policy"
)

// fileConfig mirrors §6's Options surface as loadable TOML, the checked-in
// counterpart to the run command's flags.
type fileConfig struct {
	Filter     string `toml:"filter"`
	Exclude    string `toml:"exclude"`
	Debug      bool   `toml:"debug"`
	Unresolved string `toml:"unresolved"`
	Strict     bool   `toml:"strict"`
}

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := &cobra.Command{
		Use:   "useclient-transform",
		Short: "Hoist inline \"use client\" handlers into synthesized client chunks",
	}

	root.AddCommand(newRunCmd(ctx, log))
	root.AddCommand(newConfigCmd(log))

	if err := root.Execute(); err != nil {
		log.WithError(err).Error("command failed")
		os.Exit(1)
	}
}

func newRunCmd(ctx context.Context, log *logrus.Logger) *cobra.Command {
	var (
		configPath string
		write      bool
		unresolved string
		strict     bool
		debug      bool
	)

	cmd := &cobra.Command{
		Use:   "run [files...]",
		Short: "Transform one or more files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := fileConfig{}
			if configPath != "" {
				if _, err := toml.DecodeFile(configPath, &cfg); err != nil {
					return fmt.Errorf("reading config %s: %w", configPath, err)
				}
			}
			if cmd.Flags().Changed("unresolved") {
				cfg.Unresolved = unresolved
			}
			if cmd.Flags().Changed("strict") {
				cfg.Strict = strict
			}
			if cmd.Flags().Changed("debug") {
				cfg.Debug = debug
			}
			if debug || cfg.Debug {
				log.SetLevel(logrus.DebugLevel)
			}

			// An unset policy defers to the strict/non-strict default:
			// error under --strict, warn otherwise.
			unresolvedPolicy := policy.UnresolvedUnset
			if cfg.Unresolved != "" {
				p, err := parseUnresolved(cfg.Unresolved)
				if err != nil {
					return err
				}
				unresolvedPolicy = p
			}

			filter, err := compileFilter(cfg.Filter, cfg.Exclude)
			if err != nil {
				return err
			}

			totalHandlers := 0
			totalChunks := 0

			for _, path := range args {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}

				absPath, err := filepath.Abs(path)
				if err != nil {
					return err
				}
				source, err := os.ReadFile(absPath)
				if err != nil {
					return err
				}

				if !filter.Match(absPath) {
					log.WithField("file", absPath).Debug("filtered out")
					continue
				}

				host := &fileHost{log: log, refCounter: 0}
				opts := useclient.Options{
					AbsPath:    absPath,
					Filter:     filter,
					Unresolved: unresolvedPolicy,
					Strict:     cfg.Strict,
				}
				if debug || cfg.Debug {
					opts.Debug = func(message string) { log.Debug(message) }
				}

				rewritten, chunks, err := useclient.Transform(host, opts, string(source))
				if err != nil {
					log.WithField("file", absPath).WithError(err).Error("transform failed")
					continue
				}
				if len(chunks) == 0 {
					log.WithField("file", absPath).Debug("no handlers found")
					continue
				}

				totalHandlers += len(chunks)
				totalChunks += len(chunks)

				assetsDir := filepath.Join(filepath.Dir(absPath), "assets")
				if err := os.MkdirAll(assetsDir, 0o755); err != nil {
					return err
				}
				for _, c := range chunks {
					chunkPath := filepath.Join(assetsDir, c.FileName)
					if err := os.WriteFile(chunkPath, []byte(c.Code), 0o644); err != nil {
						return err
					}
					log.WithFields(logrus.Fields{
						"file":    absPath,
						"handler": c.HandlerName,
						"chunk":   c.FileName,
					}).Info("extracted handler")
				}

				if write {
					if err := os.WriteFile(absPath, []byte(rewritten), 0o644); err != nil {
						return err
					}
				} else {
					fmt.Println(rewritten)
				}
			}

			log.WithFields(logrus.Fields{
				"files":    len(args),
				"handlers": totalHandlers,
				"chunks":   totalChunks,
			}).Info("done")
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a useclient.toml config file")
	cmd.Flags().BoolVar(&write, "write", false, "rewrite files in place instead of printing to stdout")
	cmd.Flags().StringVar(&unresolved, "unresolved", "", "error|warn|ignore (default warn, or error with --strict)")
	cmd.Flags().BoolVar(&strict, "strict", false, "treat parse failures and unresolved references as fatal")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
	return cmd
}

func newConfigCmd(log *logrus.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config [path]",
		Short: "Validate a useclient.toml config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg fileConfig
			if _, err := toml.DecodeFile(args[0], &cfg); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			if _, err := parseUnresolved(cfg.Unresolved); err != nil && cfg.Unresolved != "" {
				return err
			}
			if _, err := compileFilter(cfg.Filter, cfg.Exclude); err != nil {
				return err
			}
			log.WithFields(logrus.Fields{
				"filter":     cfg.Filter,
				"exclude":    cfg.Exclude,
				"unresolved": cfg.Unresolved,
				"strict":     cfg.Strict,
			}).Info("config is valid")
			return nil
		},
	}
	return cmd
}

func compileFilter(include string, exclude string) (*useclient.Filter, error) {
	f := &useclient.Filter{}
	if include != "" {
		re, err := regexp.Compile(include)
		if err != nil {
			return nil, fmt.Errorf("invalid filter %q: %w", include, err)
		}
		f.Include = append(f.Include, re)
	}
	if exclude != "" {
		re, err := regexp.Compile(exclude)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude %q: %w", exclude, err)
		}
		f.Exclude = append(f.Exclude, re)
	}
	return f, nil
}

func parseUnresolved(v string) (policy.UnresolvedPolicy, error) {
	switch strings.ToLower(v) {
	case "", "warn":
		return policy.UnresolvedWarn, nil
	case "error":
		return policy.UnresolvedError, nil
	case "ignore":
		return policy.UnresolvedIgnore, nil
	default:
		return policy.UnresolvedUnset, fmt.Errorf("invalid unresolved policy %q (want error|warn|ignore)", v)
	}
}

// fileHost is the simplest possible useclient.Host: chunks are written
// straight to disk by the run command after Transform returns, so EmitChunk
// only needs to mint a stable reference token; the transform's warnings and
// errors arrive through Warn/Error and are logged through logrus.
type fileHost struct {
	log        *logrus.Logger
	refCounter int
}

func (h *fileHost) EmitChunk(id string, fileName string) (string, error) {
	h.refCounter++
	return fmt.Sprintf("USECLIENT_CHUNK_%d", h.refCounter), nil
}

func (h *fileHost) AddWatchFile(absPath string) {
	h.log.WithField("file", absPath).Debug("watching")
}

func (h *fileHost) ResolveExternal(id string, importer string) (string, bool) {
	return id, true
}

func (h *fileHost) Warn(message string) {
	h.log.Warn(message)
}

func (h *fileHost) Error(message string) {
	h.log.Error(message)
}
