package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"datacheck/internal/diag"
	"datacheck/internal/fixture"
	"datacheck/internal/source"
)

// CheckDirResult holds the analysis outcome for one fixture file.
type CheckDirResult struct {
	Path   string
	FileID source.FileID
	Result *Result
	Bag    *diag.Bag
}

// listFixtureFiles returns the sorted list of *.toml files under dir.
func listFixtureFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".toml") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Sorted for a deterministic result order.
	sort.Strings(files)
	return files, nil
}

// CheckDir analyzes every fixture file under dir, fanning out across files.
// Files are pre-loaded serially into one FileSet; each worker then touches
// only its own module and bag, so the classes of independent files are
// checked concurrently without shared mutable state. Results come back in
// sorted-path order regardless of completion order. A non-nil dc lets
// workers recover signatures of unchanged files from disk instead of
// re-deriving them.
func CheckDir(ctx context.Context, dir string, maxDiagnostics, jobs int, dc *DiskCache) (*source.FileSet, []CheckDirResult, error) {
	files, err := listFixtureFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return source.NewFileSetWithBase(dir), nil, nil
	}

	fileSet := source.NewFileSetWithBase(dir)
	contents := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		contents[path] = fileID
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Indexed slots: each goroutine writes only results[i], no mutex needed.
	results := make([]CheckDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			bag := diag.NewBag(maxDiagnostics)
			if loadErr, hadError := loadErrors[path]; hadError {
				bag.Add(diag.NewError(diag.IOReadFail, source.Span{},
					"failed to load fixture: "+loadErr.Error()))
				results[i] = CheckDirResult{Path: path, Bag: bag}
				return nil
			}

			fileID := contents[path]
			file := fileSet.Get(fileID)
			mod, err := fixture.DecodeLoaded(fileSet, fileID, diag.BagReporter{Bag: bag})
			if err != nil {
				bag.Add(diag.NewError(diag.IOReadFail,
					source.Span{File: fileID}, err.Error()))
				results[i] = CheckDirResult{Path: file.Path, FileID: fileID, Bag: bag}
				return nil
			}

			res := AnalyzeWithCache(mod, file, dc, maxDiagnostics)
			res.Bag.Merge(bag)
			results[i] = CheckDirResult{
				Path:   file.Path,
				FileID: fileID,
				Result: res,
				Bag:    res.Bag,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
