package assets

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/remeh/sizedwaitgroup"
)

const copyWorkers = 8

// CopyWebResources mirrors the archive's web_resources tree into
// {outputDir}/static, streaming file contents so large media never sits in
// memory. Returns the number of files copied; a missing web_resources
// directory is not an error.
func CopyWebResources(extractDir, outputDir string) (int, error) {
	srcRoot := filepath.Join(extractDir, "web_resources")
	if _, err := os.Stat(srcRoot); os.IsNotExist(err) {
		Log.Debug("No web_resources directory found, skipping asset copy")
		return 0, nil
	}
	destRoot := filepath.Join(outputDir, "static")
	if err := os.MkdirAll(destRoot, 0755); err != nil {
		return 0, errors.Wrap(err, "creating static directory")
	}

	var copied int64
	var failed int64
	swg := sizedwaitgroup.New(copyWorkers)
	walkErr := filepath.WalkDir(srcRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		relPath, err := filepath.Rel(srcRoot, path)
		if err != nil {
			return err
		}
		destPath := filepath.Join(destRoot, relPath)
		if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
			return err
		}
		swg.Add()
		go func() {
			defer swg.Done()
			if err := copyFile(path, destPath); err != nil {
				Log.Warnf("Failed to copy asset %s: %v", relPath, err)
				atomic.AddInt64(&failed, 1)
				return
			}
			atomic.AddInt64(&copied, 1)
		}()
		return nil
	})
	swg.Wait()
	if walkErr != nil {
		return int(copied), errors.Wrap(walkErr, "walking web_resources")
	}
	if failed > 0 {
		Log.Warnf("%d assets failed to copy", failed)
	}
	return int(copied), nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	_, err = io.Copy(out, in)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	return err
}
