package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// writeArtifact persists a rendered artifact, creating parent directories as
// needed. An empty path sends the content to stdout instead.
func writeArtifact(fs afero.Fs, path, content string) error {
	if path == "" {
		fmt.Fprint(os.Stdout, content)
		return nil
	}
	dir := filepath.Dir(path)
	if dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
