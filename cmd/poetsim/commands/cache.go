// ABOUTME: Cache commands inspect and manage stored author vectors
// ABOUTME: Provides status, clear, and sync for the charm backend
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/poetsim/internal/config"
	"github.com/harper/poetsim/internal/storage"
)

// NewCacheCmd creates the cache command group
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the result cache",
		Long: `Manage cached author vectors.

The backend is chosen by POETSIM_CACHE: sqlite (default), charm or none.`,
	}

	cmd.AddCommand(newCacheStatusCmd())
	cmd.AddCommand(newCacheClearCmd())
	cmd.AddCommand(newCacheSyncCmd())

	return cmd
}

func openCache() (storage.Cache, string, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, "", fmt.Errorf("invalid configuration: %w", err)
	}
	cache, err := storage.Open(cfg.CacheOptions())
	if err != nil {
		return nil, "", fmt.Errorf("failed to open cache: %w", err)
	}
	return cache, cfg.Cache, nil
}

func newCacheStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List cached runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, backend, err := openCache()
			if err != nil {
				return err
			}
			defer cache.Close()

			runs, err := cache.List()
			if err != nil {
				return fmt.Errorf("listing runs: %w", err)
			}

			out := cmd.OutOrStdout()
			if done, err := writeStructured(out, runs); done {
				return err
			}

			if acct, ok := cache.(storage.Account); ok && !quiet {
				if id, err := acct.ID(); err != nil {
					fmt.Fprintln(out, "Charm: not connected")
				} else {
					fmt.Fprintf(out, "Charm user: %s\n", id)
				}
			}

			if len(runs) == 0 {
				if !quiet {
					fmt.Fprintf(out, "No cached runs (%s backend)\n", backend)
				}
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "RUN\tMETHOD\tDIM\tAUTHORS\tCREATED\tFINGERPRINT\n")
			fmt.Fprintf(w, "---\t------\t---\t-------\t-------\t-----------\n")
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\n",
					r.RunID, r.Method, r.Dimension, r.AuthorCount,
					formatTime(r.CreatedAt), truncate(r.Fingerprint, 15))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if !quiet {
				fmt.Fprintf(out, "\nTotal: %d run(s) in %s cache\n", len(runs), backend)
			}
			return nil
		},
	}
}

func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every cached run",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, backend, err := openCache()
			if err != nil {
				return err
			}
			defer cache.Close()

			if err := cache.Clear(); err != nil {
				return fmt.Errorf("clearing cache: %w", err)
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Cleared %s cache\n", backend)
			}
			return nil
		},
	}
}

func newCacheSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Force immediate sync with Charm cloud",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, backend, err := openCache()
			if err != nil {
				return err
			}
			defer cache.Close()

			syncer, ok := cache.(storage.Syncer)
			if !ok {
				return fmt.Errorf("the %s cache backend does not sync (set POETSIM_CACHE=charm)", backend)
			}

			logger.Info("syncing")
			if err := syncer.Sync(); err != nil {
				return fmt.Errorf("sync failed: %w", err)
			}
			if !quiet {
				fmt.Fprintln(cmd.OutOrStdout(), "Sync complete")
			}
			return nil
		},
	}
}
