package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gavtree/pkg/cache"
	"github.com/matzehuels/gavtree/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the response cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached responses and results",
		Long: `Clear every entry of the configured cache backend. For redis only keys
under the configured prefix are removed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.settings().Cache
			if cfg.Backend == config.BackendNone {
				printInfo(cmd.ErrOrStderr(), "Cache is disabled")
				return nil
			}

			backend, _, err := cfg.OpenCache(ctx)
			if err != nil {
				return err
			}
			defer backend.Close()

			clearer, ok := backend.(cache.Clearer)
			if !ok {
				return fmt.Errorf("%s cache cannot be cleared", cfg.Backend)
			}
			if err := clearer.Clear(ctx); err != nil {
				return fmt.Errorf("clear %s cache: %w", cfg.Backend, err)
			}

			printSuccess(cmd.ErrOrStderr(), "Cleared %s cache", cfg.Backend)
			if fc, ok := backend.(*cache.FileCache); ok {
				printDetail(cmd.ErrOrStderr(), "Directory: %s", fc.Dir())
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the file cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir(c.settings().Cache)
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

// cacheDir returns the file cache directory: the configured one, or the
// per-user default (~/.cache/gavtree on Linux).
func cacheDir(cfg config.CacheConfig) (string, error) {
	if cfg.Dir != "" {
		return cfg.Dir, nil
	}
	return cache.DefaultDir()
}
