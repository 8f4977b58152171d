package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"badnames/internal/config"
	"badnames/internal/driver"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the result cache",
}

var cacheDirCmd = &cobra.Command{
	Use:   "dir [path]",
	Short: "Print the cache directory used for path",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := openCacheFor(args)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), cache.Dir())
		return nil
	},
}

var cacheCleanCmd = &cobra.Command{
	Use:   "clean [path]",
	Short: "Remove every cached result",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := openCacheFor(args)
		if err != nil {
			return err
		}
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("failed to clean %q: %w", cache.Dir(), err)
		}
		quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", cache.Dir())
		}
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheDirCmd)
	cacheCmd.AddCommand(cacheCleanCmd)
}

// openCacheFor honours [cache].dir of the badnames.toml governing path.
func openCacheFor(args []string) (*driver.DiskCache, error) {
	base := "."
	if len(args) > 0 && args[0] != "" {
		base = args[0]
	}
	manifest, err := config.Discover(base)
	if err != nil {
		return nil, err
	}
	dir := ""
	if manifest != nil {
		dir = manifest.Config.Cache.Dir
	}
	return driver.OpenDiskCache("badnames", dir)
}
