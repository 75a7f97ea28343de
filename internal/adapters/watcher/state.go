package watcher

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/brew/internal/adapters/fs"
	"go.trai.ch/brew/internal/core/domain"
	"go.trai.ch/brew/internal/core/ports"
)

var _ ports.ChangeTracker = (*State)(nil)

// State records the last seen content signature of every source file of a
// watch session. It lives in memory for the lifetime of the session only.
type State struct {
	mu         sync.Mutex
	walker     *fs.Walker
	scope      domain.SourceScope
	signatures map[string]uint64
}

// NewState creates an empty State.
func NewState(walker *fs.Walker) *State {
	return &State{
		walker:     walker,
		signatures: make(map[string]uint64),
	}
}

// Seed records the current signature of every file in scope without reporting
// changes. Only paths the scope contains are recorded from then on.
func (s *State) Seed(scope domain.SourceScope) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scope = scope
	for _, root := range scope.Roots() {
		for path, err := range s.walker.WalkFilesFunc(root, scope.SkipDir) {
			if err != nil || !scope.Contains(path) {
				continue
			}
			if sig, ok := signature(path); ok {
				s.signatures[path] = sig
			}
		}
	}
}

// Len returns the number of files with a recorded signature.
func (s *State) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.signatures)
}

// Changed updates the signatures of the given paths and returns, sorted, the
// files whose content differs from what was last recorded. A path that is now a
// directory is compared file by file; a path that vanished drops every file
// recorded under it.
func (s *State) Changed(paths []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := make(map[string]struct{})
	for _, path := range paths {
		path = filepath.Clean(path)
		info, err := os.Stat(path)
		switch {
		case err == nil && info.IsDir():
			for file, walkErr := range s.walker.WalkFilesFunc(path, s.scope.SkipDir) {
				if walkErr == nil && s.scope.Contains(file) {
					s.update(file, changed)
				}
			}
			s.dropMissingUnder(path, changed)
		case err == nil:
			if s.scope.Contains(path) {
				s.update(path, changed)
			}
		default:
			s.update(path, changed)
			s.dropMissingUnder(path, changed)
		}
	}

	result := make([]string, 0, len(changed))
	for path := range changed {
		result = append(result, path)
	}
	slices.Sort(result)
	return result
}

// update refreshes the signature of one file. s.mu must be held.
func (s *State) update(path string, changed map[string]struct{}) {
	old, known := s.signatures[path]
	sig, exists := signature(path)

	switch {
	case exists && (!known || old != sig):
		s.signatures[path] = sig
		changed[path] = struct{}{}
	case !exists && known:
		delete(s.signatures, path)
		changed[path] = struct{}{}
	}
}

// dropMissingUnder forgets recorded files below dir that no longer exist. s.mu must be held.
func (s *State) dropMissingUnder(dir string, changed map[string]struct{}) {
	prefix := dir + string(filepath.Separator)
	for path := range s.signatures {
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			delete(s.signatures, path)
			changed[path] = struct{}{}
		}
	}
}

// signature returns the xxhash of a regular file's content.
func signature(path string) (uint64, bool) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return 0, false
	}
	data, err := os.ReadFile(path) //nolint:gosec // Watched source path
	if err != nil {
		return 0, false
	}
	return xxhash.Sum64(data), true
}
