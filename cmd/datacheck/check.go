package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"datacheck/internal/diag"
	"datacheck/internal/diagfmt"
	"datacheck/internal/driver"
	"datacheck/internal/fixture"
	"datacheck/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <fixture.toml|directory>",
	Short: "Check data-class fixtures",
	Long:  `Check synthesizes every class's implicit constructor and validates every construction call in a fixture file or all *.toml fixtures within a directory`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("no-context", false, "omit source lines and caret underlines")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().Bool("disk-cache", false, "persist synthesized signatures to the disk cache")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	noContext, err := cmd.Flags().GetBool("no-context")
	if err != nil {
		return fmt.Errorf("failed to get no-context flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	enableDiskCache, err := cmd.Flags().GetBool("disk-cache")
	if err != nil {
		return fmt.Errorf("failed to get disk-cache flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	colorMode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}

	switch format {
	case "pretty", "json", "short":
		// supported
	default:
		return fmt.Errorf("unknown format value: %s", format)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %q: %w", path, err)
	}

	var dcache *driver.DiskCache
	if enableDiskCache {
		dcache, err = driver.OpenDiskCache("datacheck")
		if err != nil {
			return fmt.Errorf("failed to open disk cache: %w", err)
		}
	}

	fileSet, results, err := collectResults(cmd.Context(), path, info.IsDir(), maxDiagnostics, jobs, dcache)
	if err != nil {
		return err
	}

	total := diag.NewBag(maxDiagnostics * (len(results) + 1))
	for _, res := range results {
		if res.Bag != nil {
			total.Merge(res.Bag)
		}
		if dcache != nil && res.Result != nil && res.FileID < source.FileID(fileSet.Len()) {
			if err := dcache.StoreSignatures(res.Result, fileSet.Get(res.FileID)); err != nil {
				return fmt.Errorf("failed to store signatures: %w", err)
			}
		}
	}
	total.Sort()

	out := os.Stdout
	switch format {
	case "json":
		if err := diagfmt.JSON(out, total, fileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     withNotes,
		}); err != nil {
			return fmt.Errorf("failed to encode diagnostics: %w", err)
		}
	case "short":
		if s := diag.FormatGoldenDiagnostics(total.Items(), fileSet, withNotes); s != "" {
			fmt.Fprintln(out, s)
		}
	default:
		diagfmt.Pretty(out, total, fileSet, diagfmt.PrettyOpts{
			Color:     useColor(colorMode, out),
			ShowNotes: withNotes,
			Context:   !noContext,
		})
	}

	if total.HasErrors() {
		os.Exit(1)
	}
	return nil
}

// collectResults runs one fixture file or a whole directory through the
// driver, normalizing both shapes into the directory result form. A non-nil
// dcache is consulted for cached signatures before deriving.
func collectResults(ctx context.Context, path string, isDir bool, maxDiagnostics, jobs int, dcache *driver.DiskCache) (*source.FileSet, []driver.CheckDirResult, error) {
	if isDir {
		fileSet, results, err := driver.CheckDir(ctx, path, maxDiagnostics, jobs, dcache)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to check directory: %w", err)
		}
		return fileSet, results, nil
	}

	fileSet := source.NewFileSet()
	bag := diag.NewBag(maxDiagnostics)
	mod, err := fixture.LoadFile(fileSet, path, diag.BagReporter{Bag: bag})
	if err != nil {
		return nil, nil, err
	}

	fileID, _ := fileSet.GetLatest(path)
	res := driver.AnalyzeWithCache(mod, fileSet.Get(fileID), dcache, maxDiagnostics)
	res.Bag.Merge(bag)
	return fileSet, []driver.CheckDirResult{{
		Path:   path,
		FileID: fileID,
		Result: res,
		Bag:    res.Bag,
	}}, nil
}
