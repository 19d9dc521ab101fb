package generate

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// stagedDir is an output directory whose previous contents were moved aside,
// so a failed run can put them back instead of leaving a half-written mix of
// old and new files.
type stagedDir struct {
	path    string
	backup  string // holds the previous directory, "" if there was none
	created bool
}

// stageOutputDir prepares path as a fresh output directory. Unless keep is
// set, an existing directory is moved into a sibling temp directory first.
func stageOutputDir(path string, keep bool) (*stagedDir, error) {
	s := &stagedDir{path: path}

	info, err := os.Stat(path)
	switch {
	case err == nil && !info.IsDir():
		return nil, fmt.Errorf("%s exists and is not a directory", path)
	case err == nil && !keep:
		backup, err := os.MkdirTemp(filepath.Dir(path), ".galup-prev-*")
		if err != nil {
			return nil, err
		}
		if err := os.Rename(path, filepath.Join(backup, filepath.Base(path))); err != nil {
			os.Remove(backup)
			return nil, err
		}
		s.backup = backup
	case err != nil:
		s.created = true
	}

	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, err
	}
	return s, nil
}

// Rollback discards everything written to the directory and restores its
// previous contents.
func (s *stagedDir) Rollback() {
	if s.backup != "" {
		if err := os.RemoveAll(s.path); err != nil {
			log.Warn().Err(err).Str("path", s.path).Msg("could not remove output directory")
			return
		}
		prev := filepath.Join(s.backup, filepath.Base(s.path))
		if err := os.Rename(prev, s.path); err != nil {
			log.Warn().Err(err).Str("backup", prev).Msg("could not restore output directory")
			return
		}
		os.Remove(s.backup)
		return
	}
	if s.created {
		os.RemoveAll(s.path)
	}
}

// Commit drops the moved-aside previous contents.
func (s *stagedDir) Commit() {
	if s.backup != "" {
		os.RemoveAll(s.backup)
	}
}
