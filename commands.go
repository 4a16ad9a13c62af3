package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/riadafridishibly/fsprops/cache"
	"github.com/riadafridishibly/fsprops/properties"
	"github.com/riadafridishibly/fsprops/scanner"
	"github.com/spf13/cobra"
)

func newStatCmd() *cobra.Command {
	var flags entryFlags
	var fast, refresh bool

	cmd := &cobra.Command{
		Use:   "stat <path>",
		Short: "Print the properties without opening the dialog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.Close()

			ctx := cmd.Context()
			entry, err := e.resolve(ctx, args[0])
			if err != nil {
				return err
			}
			general := e.general(entry, flags)
			out := cmd.OutOrStdout()

			if !entry.IsDir || flags.shortcut {
				printRows(out, general.Name(), general.Rows())
				return nil
			}

			// Stamped before counting so a change made during the count
			// invalidates the row stored after it.
			var stamp scanner.Stamp
			var stampErr error
			if e.cache != nil {
				stamp, stampErr = scanner.TreeStamp(ctx, entry.Path)
			}
			if e.cache != nil && stampErr == nil && !refresh {
				hit, ok, err := e.cache.Lookup(entry.Path, stamp)
				if err != nil {
					return err
				}
				if ok {
					totals := scanner.Totals{Files: hit.Files, Folders: hit.Folders, Size: hit.Size}
					printRows(out, general.Name(), withTotals(general.Rows(), totals))
					fmt.Fprintf(out, "\nCached %s, may be stale: files edited in place are not detected. Use --refresh to recount.\n",
						humanize.Time(hit.ScannedAt))
					return nil
				}
			}

			start := time.Now()
			var totals scanner.Totals
			var countErr error
			if fast {
				totals, countErr = scanner.FastCount(ctx, entry.Path)
				printRows(out, general.Name(), withTotals(general.Rows(), totals))
			} else {
				totals, countErr = general.Aggregator().Run(ctx)
				printRows(out, general.Name(), general.Rows())
			}
			fmt.Fprintf(out, "\nCounted in %s.\n", time.Since(start).Round(time.Millisecond))

			var incomplete *scanner.IncompleteError
			if errors.As(countErr, &incomplete) {
				fmt.Fprintf(out, "Counts are incomplete, %d entries could not be read.\n", len(incomplete.Failures))
			}
			if countErr == nil && e.cache != nil && stampErr == nil {
				cache.Recorder{Cache: e.cache}.Store(entry.Path, totals, stamp)
			}
			return countErr
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&fast, "fast", false, "count with parallel workers straight from disk")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached counts")
	return cmd
}

func newRenameCmd() *cobra.Command {
	var shortcut bool

	cmd := &cobra.Command{
		Use:   "rename <path> <name>",
		Short: "Rename an entry the way the dialog does",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.Close()

			ctx := cmd.Context()
			entry, err := e.resolve(ctx, args[0])
			if err != nil {
				return err
			}

			refreshed := e.folders.Subscribe()
			defer e.folders.Unsubscribe(refreshed)

			out := cmd.OutOrStdout()
			renamed, err := e.committer().Commit(ctx, entry.Path, shortcut, args[1])
			select {
			case dir := <-refreshed:
				fmt.Fprintf(out, "Refreshed %s\n", dir)
			default:
			}
			if err != nil {
				return err
			}
			if !renamed {
				fmt.Fprintln(out, "Name unchanged.")
				return nil
			}
			req := properties.RenameRequest{OriginalPath: entry.Path, NewBasename: args[1], IsShortcut: shortcut}
			fmt.Fprintf(out, "Renamed %s to %s\n", entry.Path, req.NewPath())
			return nil
		},
	}
	cmd.Flags().BoolVar(&shortcut, "shortcut", false, "keep the entry's extension")
	return cmd
}

// withTotals replaces the size and content rows with totals computed
// outside the General's own aggregator.
func withTotals(rows []properties.Row, totals scanner.Totals) []properties.Row {
	out := make([]properties.Row, len(rows))
	for i, r := range rows {
		switch r.Label {
		case "Size:":
			r.Value = properties.FormatSize(totals.Size)
		case "Contains:":
			r.Value = fmt.Sprintf("%d Files, %d Folders", totals.Files, totals.Folders)
		}
		out[i] = r
	}
	return out
}

func printRows(w io.Writer, name string, rows []properties.Row) {
	fmt.Fprintf(w, "Name:      %s\n", name)
	for _, r := range rows {
		if r.Label == "" {
			fmt.Fprintln(w)
			continue
		}
		fmt.Fprintf(w, "%-10s %s\n", r.Label, r.Value)
	}
}
