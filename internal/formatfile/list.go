package formatfile

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/maruel/natural"
)

var extensions = []string{".yml", ".yaml"}

// Entry summarises one format file.
type Entry struct {
	Err       error  `json:"-"`
	Path      string `json:"path"`
	File      string `json:"file"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	Info      Info   `json:"info"`
	Speeches  int    `json:"speeches"`
	HasPrep   bool   `json:"has_prep"`
}

// Valid reports whether the file could be loaded.
func (e *Entry) Valid() bool {
	return e.Err == nil
}

func isFormatFile(name string) bool {
	return slices.Contains(extensions, strings.ToLower(filepath.Ext(name)))
}

// List loads every format file in dir, in natural order of file name. Files
// that fail to load are listed with their error.
func List(dir string, opts ...Option) ([]Entry, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}

		return nil, err
	}

	names := make([]string, 0, len(files))

	for _, f := range files {
		if f.IsDir() || !isFormatFile(f.Name()) {
			continue
		}

		names = append(names, f.Name())
	}

	slices.SortFunc(names, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		}

		return 0
	})

	entries := make([]Entry, 0, len(names))

	for _, name := range names {
		path := filepath.Join(dir, name)
		entry := Entry{
			Path: path,
			File: name,
		}

		d, f, err := Load(path, opts...)
		if f != nil {
			entry.Name = f.Name
			entry.ShortName = f.ShortName
			entry.Info = f.Info
		}

		if err != nil {
			entry.Err = err
		} else {
			entry.ShortName = d.ShortName
			entry.Speeches = len(d.Speeches)
			entry.HasPrep = d.HasPrep()
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// Resolve finds a format file. name may be a path, a file name within dir,
// or a file name without its extension.
func Resolve(dir, name string) (string, error) {
	var candidates []string

	if !filepath.IsAbs(name) && filepath.Base(name) == name {
		candidates = append(candidates, filepath.Join(dir, name))

		if !isFormatFile(name) {
			for _, ext := range extensions {
				candidates = append(candidates, filepath.Join(dir, name+ext))
			}
		}
	}

	candidates = append(candidates, name)

	for _, c := range candidates {
		info, err := os.Stat(c)
		if err == nil && !info.IsDir() {
			return c, nil
		}
	}

	return "", errFormatNotFound.Fmt(name, dir)
}
