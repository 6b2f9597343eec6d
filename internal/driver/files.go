package driver

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// SourceExt is the extension of files picked up in directory mode.
const SourceExt = ".rs"

// listSourceFiles возвращает отсортированный список всех *.rs файлов в директории.
// Каталоги target/ и скрытые каталоги пропускаются.
func listSourceFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDir(dir, path) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// skipDir reports whether the directory path below root is left out of a
// directory run.
func skipDir(root, path string) bool {
	if filepath.Clean(path) == filepath.Clean(root) {
		return false
	}
	name := filepath.Base(path)
	return name == "target" || strings.HasPrefix(name, ".")
}
