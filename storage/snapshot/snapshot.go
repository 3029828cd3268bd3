package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/edupoint/portal/core/attendance"
	"github.com/edupoint/portal/core/student"
	"github.com/edupoint/portal/core/user"
)

// Snapshot is the full persisted state: the four durable entity collections
// plus users. The online-attendance challenge is transient and intentionally
// excluded.
type Snapshot struct {
	Users      []user.User           `json:"users"`
	Students   []student.Student     `json:"students"`
	Marks      []student.MarksRecord `json:"marks"`
	Fees       []student.FeeRecord   `json:"fees"`
	Attendance []attendance.Record   `json:"attendance"`
}

// Backend stores and retrieves whole-store snapshots. Every save overwrites
// the previous snapshot; there is no partial write.
type Backend interface {
	// Load returns (nil, nil) when no prior snapshot exists.
	Load() (*Snapshot, error)
	Save(snap Snapshot) error
}

// FileBackend keeps the snapshot as a single JSON file.
type FileBackend struct {
	path string
}

var _ Backend = (*FileBackend)(nil)

func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (b *FileBackend) Load() (*Snapshot, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading snapshot %s", b.path)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, errors.Wrapf(err, "decoding snapshot %s", b.path)
	}
	return &snap, nil
}

// Save writes the snapshot to a unique temp file in the target directory and
// renames it over the previous one, so readers never observe a torn write.
func (b *FileBackend) Save(snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding snapshot")
	}
	tmp := filepath.Join(filepath.Dir(b.path), "."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing snapshot %s", tmp)
	}
	if err := os.Rename(tmp, b.path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrapf(err, "replacing snapshot %s", b.path)
	}
	return nil
}

// Discard is a Backend that persists nothing; it always reports no prior
// state. Used in tests and ephemeral sessions.
type Discard struct{}

var _ Backend = Discard{}

func (Discard) Load() (*Snapshot, error) { return nil, nil }
func (Discard) Save(Snapshot) error      { return nil }
