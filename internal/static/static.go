// Package static embeds the bundled debate formats and copies them to the
// filesystem
package static

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ayoisaiah/podium/internal/osutil"
)

const (
	filesDir = "files"
)

//go:embed files/*
var embeddedFiles embed.FS

// Files returns the embedded files rooted at the files directory.
func Files() fs.FS {
	sub, err := fs.Sub(embeddedFiles, filesDir)
	if err != nil {
		panic(err)
	}

	return sub
}

// Install copies the embedded files into dataDir. Files that already exist
// are left alone so that user edits survive upgrades.
func Install(dataDir string) error {
	return fs.WalkDir(
		embeddedFiles,
		filesDir,
		func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				return nil
			}

			stripped := strings.TrimPrefix(p, filesDir+"/")

			destPath := filepath.Join(dataDir, filepath.FromSlash(stripped))

			// Only write if file does not already exist
			if _, err := os.Stat(destPath); !os.IsNotExist(err) {
				return err
			}

			b, err := embeddedFiles.ReadFile(p)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(filepath.Dir(destPath), osutil.DirPermission); err != nil {
				return err
			}

			return os.WriteFile(destPath, b, osutil.SharedFilePermission)
		},
	)
}

// FormatNames lists the bundled format files.
func FormatNames() []string {
	var names []string

	_ = fs.WalkDir(Files(), "formats", func(p string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			names = append(names, path.Base(p))
		}

		return nil
	})

	return names
}
