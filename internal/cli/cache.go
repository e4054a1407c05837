package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boxlay/boxlay/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local result cache",
	}

	cmd.AddCommand(c.cacheInfoCommand())
	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// localCache opens the file cache at the configured directory.
func (c *CLI) localCache() (*cache.FileCache, string, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, "", err
	}
	dir := cfg.Cache.Dir
	if dir == "" {
		dir, err = cacheDir()
		if err != nil {
			return nil, "", fmt.Errorf("get cache dir: %w", err)
		}
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, "", err
	}
	return fc, dir, nil
}

// cacheInfoCommand creates the "cache info" subcommand.
func (c *CLI) cacheInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cache size and location",
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, dir, err := c.localCache()
			if err != nil {
				return err
			}
			entries, bytes, err := fc.Size()
			if err != nil {
				return fmt.Errorf("scan cache: %w", err)
			}
			printInfo("Cache: %d entries, %.1f KiB", entries, float64(bytes)/1024)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached layouts and artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, dir, err := c.localCache()
			if err != nil {
				return err
			}
			entries, _, err := fc.Size()
			if err != nil {
				return fmt.Errorf("scan cache: %w", err)
			}
			if entries == 0 {
				printInfo("Cache is empty")
				return nil
			}
			if err := fc.Clear(); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			printSuccess("Cleared %d cached entries", entries)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, dir, err := c.localCache()
			if err != nil {
				return err
			}
			fmt.Println(dir)
			return nil
		},
	}
}
