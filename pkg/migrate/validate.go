package migrate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"
)

// ValidateDir checks every .sql file in dir: the name must be
// <YYYYMMDDHHMMSS>_<slug>.sql with a unique version, and the body needs both
// goose sections with balanced statement blocks.
func ValidateDir(dir string) error {
	if dir == "" {
		return errors.New("dir is required")
	}
	fsys := os.DirFS(dir)
	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return fmt.Errorf("list %q: %w", dir, err)
	}

	seen := make(map[string]string, len(names))
	for _, name := range names {
		version, err := parseFilename(name)
		if err != nil {
			return err
		}
		if prev, ok := seen[version]; ok {
			return fmt.Errorf("duplicate migration version %s in %q and %q", version, prev, name)
		}
		seen[version] = name

		body, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("read %q: %w", name, err)
		}
		if err := checkAnnotations(name, string(body)); err != nil {
			return err
		}
	}
	return nil
}

func parseFilename(name string) (string, error) {
	version, rest, ok := strings.Cut(strings.TrimSuffix(name, ".sql"), "_")
	if !ok || len(version) != len(versionLayout) || rest == "" || slugify(rest) != rest {
		return "", fmt.Errorf("invalid migration filename %q (expected YYYYMMDDHHMMSS_name.sql)", name)
	}
	if _, err := time.Parse(versionLayout, version); err != nil {
		return "", fmt.Errorf("invalid migration version in %q: %w", name, err)
	}
	return version, nil
}

func checkAnnotations(name, body string) error {
	for _, marker := range []string{"-- +goose Up", "-- +goose Down"} {
		if !strings.Contains(body, marker) {
			return fmt.Errorf("migration %q missing %q", name, marker)
		}
	}
	open := 0
	for _, line := range strings.Split(body, "\n") {
		switch strings.TrimSpace(line) {
		case "-- +goose StatementBegin":
			open++
		case "-- +goose StatementEnd":
			open--
		}
		if open < 0 || open > 1 {
			return fmt.Errorf("migration %q has unbalanced statement blocks", name)
		}
	}
	if open != 0 {
		return fmt.Errorf("migration %q has an unterminated statement block", name)
	}
	return nil
}
