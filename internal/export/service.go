package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
)

// Service writes recipes and rendered patterns to files
type Service struct {
	fs afero.Fs
}

// NewService creates a new export service
func NewService(fs afero.Fs) *Service {
	return &Service{
		fs: fs,
	}
}

// Options contains configuration for export operations
type Options struct {
	Path      string // Destination file
	Overwrite bool   // Whether an existing file may be replaced
	Header    string // Optional comment written at the top of a recipe
}

// SaveRecipe writes the ordered recipe lines to the destination file, one
// operation per line
func (s *Service) SaveRecipe(lines []string, opts Options) error {
	if opts.Path == "" {
		return fmt.Errorf("no destination path given")
	}

	if !opts.Overwrite {
		if exists, err := afero.Exists(s.fs, opts.Path); err != nil {
			return fmt.Errorf("failed to check destination: %w", err)
		} else if exists {
			return fmt.Errorf("destination already exists: %s", opts.Path)
		}
	}

	var b strings.Builder
	if opts.Header != "" {
		fmt.Fprintf(&b, "# %s\n", opts.Header)
	}
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	if err := afero.WriteFile(s.fs, opts.Path, []byte(b.String()), os.FileMode(0644)); err != nil {
		return fmt.Errorf("failed to write recipe: %w", err)
	}
	return nil
}

// SavePattern writes a rendered pattern string to the destination file with
// a trailing newline
func (s *Service) SavePattern(pattern string, opts Options) error {
	if opts.Path == "" {
		return fmt.Errorf("no destination path given")
	}

	if !opts.Overwrite {
		if exists, err := afero.Exists(s.fs, opts.Path); err != nil {
			return fmt.Errorf("failed to check destination: %w", err)
		} else if exists {
			return fmt.Errorf("destination already exists: %s", opts.Path)
		}
	}

	if err := afero.WriteFile(s.fs, opts.Path, []byte(pattern+"\n"), os.FileMode(0644)); err != nil {
		return fmt.Errorf("failed to write pattern: %w", err)
	}
	return nil
}
