package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/mensylisir/pmmlkit/common"
)

// TransientSet tracks the temporary files of one conversion. Paths are
// registered as soon as they are created and released in reverse order.
type TransientSet struct {
	dir   string
	mu    sync.Mutex
	paths []string
}

// NewTransientSet places new files in dir, or in the system temp directory
// when dir is empty.
func NewTransientSet(dir string) *TransientSet {
	if dir == "" {
		dir = common.GetTmpDir()
	}
	return &TransientSet{dir: dir}
}

// Create opens a new, uniquely named file prefix-<uuid>suffix and registers
// it before returning. The caller closes the file.
func (s *TransientSet) Create(prefix, suffix string) (*os.File, error) {
	if err := CreateDir(s.dir); err != nil {
		return nil, err
	}
	name := filepath.Join(s.dir, fmt.Sprintf("%s-%s%s", prefix, uuid.NewString(), suffix))
	f, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, common.FileMode0600)
	if err != nil {
		return nil, fmt.Errorf("failed to create transient file %s: %w", name, err)
	}
	s.Add(name)
	return f, nil
}

// Add registers a path created elsewhere.
func (s *TransientSet) Add(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths = append(s.paths, path)
}

// Dir is where Create places new files.
func (s *TransientSet) Dir() string {
	return s.dir
}

// Release deletes every registered path, newest first, and forgets them.
// With retain set nothing is deleted and the paths are returned instead.
// Paths that are already gone are not an error.
func (s *TransientSet) Release(retain bool) ([]string, error) {
	s.mu.Lock()
	paths := s.paths
	s.paths = nil
	s.mu.Unlock()

	if retain {
		return paths, nil
	}
	var result *multierror.Error
	for i := len(paths) - 1; i >= 0; i-- {
		if err := os.RemoveAll(paths[i]); err != nil {
			result = multierror.Append(result, fmt.Errorf("failed to remove %s: %w", paths[i], err))
		}
	}
	return nil, result.ErrorOrNil()
}
