package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// File names the register writes its exports under.
const (
	localFileName    = "local.json"
	syncedFileName   = "synced.json"
	externalFileName = "external.json"
)

// FileSource loads the three raw record feeds from a drop directory
// and normalizes them into transactions. A missing file means that
// feed simply has nothing yet; a file that exists but fails to parse
// is an error, silently ignoring it would underreport sales.
type FileSource struct {
	dir  string
	norm *Normalizer
}

// NewFileSource builds a FileSource over dir.
func NewFileSource(dir string, norm *Normalizer) *FileSource {
	return &FileSource{dir: dir, norm: norm}
}

// Load reads and normalizes every feed present in the directory.
func (s *FileSource) Load(ctx context.Context) (SourceSet, error) {
	var local []LocalRecord
	if err := s.readFeed(localFileName, &local); err != nil {
		return SourceSet{}, err
	}
	var synced []SyncedRecord
	if err := s.readFeed(syncedFileName, &synced); err != nil {
		return SourceSet{}, err
	}
	var external []ExternalRecord
	if err := s.readFeed(externalFileName, &external); err != nil {
		return SourceSet{}, err
	}

	return SourceSet{
		Local:    s.norm.NormalizeLocal(ctx, local),
		Synced:   s.norm.NormalizeSynced(ctx, synced),
		External: s.norm.NormalizeExternal(ctx, external),
	}, nil
}

func (s *FileSource) readFeed(name string, dest any) error {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading feed %s: %w", name, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("parsing feed %s: %w", name, err)
	}
	return nil
}
