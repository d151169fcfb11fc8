package optimize

import (
	"context"
	"fmt"
	"os"

	"github.com/mholt/archiver/v4"

	"github.com/greenweb/optimizer/pkg/api/optimizerun"
)

// archiveTree packages the contents of workDir into a single archive at
// destPath. Zip entries are deflate-compressed; tar.gz is available for
// callers that prefer it.
func archiveTree(ctx context.Context, workDir, destPath string, format optimizerun.ArchiveFormat) error {
	files, err := archiver.FilesFromDisk(nil, map[string]string{
		workDir + string(os.PathSeparator): "",
	})
	if err != nil {
		return fmt.Errorf("%w: collecting files: %v", ErrPackaging, err)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %v", ErrPackaging, destPath, err)
	}
	defer out.Close()

	var arch archiver.Archival
	switch format {
	case optimizerun.ArchiveTarGz:
		arch = archiver.CompressedArchive{
			Compression: archiver.Gz{},
			Archival:    archiver.Tar{},
		}
	default:
		arch = archiver.Zip{}
	}

	if err := arch.Archive(ctx, out, files); err != nil {
		os.Remove(destPath)
		return fmt.Errorf("%w: %v", ErrPackaging, err)
	}
	return nil
}

// archiveFileName returns the output path for a working copy's archive.
func archiveFileName(workDir string, format optimizerun.ArchiveFormat) string {
	if format == optimizerun.ArchiveTarGz {
		return workDir + ".tar.gz"
	}
	return workDir + ".zip"
}
