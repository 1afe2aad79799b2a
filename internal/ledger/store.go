package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/Masterminds/semver/v3"
)

// ErrStateCorrupted indicates the state file exists but contains invalid data.
// Callers should abort unless the user explicitly forces a reset.
var ErrStateCorrupted = errors.New("state file corrupted")

// SchemaVersion is the state file schema written by this build.
const SchemaVersion = "1.0.0"

// schemaConstraint accepts every state file this build can read.
const schemaConstraint = "^1.0.0"

// Store persists State as a JSON file. The ledger it hands out is the
// authoritative copy of the activities; Save snapshots it back into State.
type Store struct {
	mu       sync.RWMutex
	filePath string
	state    State
	ledger   *Ledger
}

// DefaultStatePath returns ~/.ecotrack/state.json.
func DefaultStatePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determining home directory: %w", err)
	}
	return filepath.Join(homeDir, ".ecotrack", "state.json"), nil
}

// NewStore creates a Store backed by filePath.
// If filePath is empty, it defaults to ~/.ecotrack/state.json.
func NewStore(filePath string) (*Store, error) {
	if filePath == "" {
		p, err := DefaultStatePath()
		if err != nil {
			return nil, err
		}
		filePath = p
	}

	st := NewState()
	return &Store{
		filePath: filePath,
		state:    st,
		ledger:   New(nil),
	}, nil
}

// FilePath returns the backing file path.
func (s *Store) FilePath() string {
	return s.filePath
}

// Ledger returns the activity ledger backed by this store.
func (s *Store) Ledger() *Ledger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger
}

// Snapshot returns a deep copy of the current state with the ledger's
// activities folded in.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := s.state.clone()
	c.Activities = s.ledger.All()
	return c
}

// Update applies fn to the non-ledger parts of the state. Changes made by fn
// to Activities are ignored; use Ledger for those.
func (s *Store) Update(fn func(*State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.state.clone()
	if err := fn(&working); err != nil {
		return err
	}
	working.Activities = nil
	s.state = working
	return nil
}

// Load reads the state from the JSON file.
// If the file does not exist, the store starts empty.
// If the file is corrupted or from an incompatible schema, ErrStateCorrupted is returned.
func (s *Store) Load() error {
	unlock, lockErr := s.acquireFileLock()
	if lockErr != nil {
		return fmt.Errorf("acquiring file lock: %w", lockErr)
	}
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.state = NewState()
			s.ledger = New(nil)
			return nil
		}
		return fmt.Errorf("reading state file: %w", err)
	}

	var st State
	if unmarshalErr := json.Unmarshal(data, &st); unmarshalErr != nil {
		return fmt.Errorf("%w: %w", ErrStateCorrupted, unmarshalErr)
	}

	if st.SchemaVersion == "" {
		st.SchemaVersion = SchemaVersion
	}
	if compatErr := CheckSchema(st.SchemaVersion); compatErr != nil {
		return compatErr
	}
	if st.Theme == "" {
		st.Theme = ThemeLight
	}
	if st.CompletedChallenges == nil {
		st.CompletedChallenges = []CompletedChallenge{}
	}

	s.ledger = New(st.Activities)
	st.Activities = nil
	s.state = st
	return nil
}

// Save writes the state to the JSON file atomically.
func (s *Store) Save() error {
	unlock, lockErr := s.acquireFileLock()
	if lockErr != nil {
		return fmt.Errorf("acquiring file lock: %w", lockErr)
	}
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.state.clone()
	out.SchemaVersion = SchemaVersion
	out.Activities = s.ledger.All()

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling state: %w", err)
	}

	dir := filepath.Dir(s.filePath)
	if mkdirErr := os.MkdirAll(dir, 0o750); mkdirErr != nil {
		return fmt.Errorf("creating state directory: %w", mkdirErr)
	}

	tmpPath := s.filePath + ".tmp"
	if writeErr := os.WriteFile(tmpPath, data, 0o600); writeErr != nil {
		return fmt.Errorf("writing state temp file: %w", writeErr)
	}

	if renameErr := os.Rename(tmpPath, s.filePath); renameErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming state temp file: %w", renameErr)
	}

	return nil
}

// CheckSchema rejects state files and exports whose schema this build
// cannot read. The error wraps ErrStateCorrupted.
func CheckSchema(version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: invalid schema version %q: %w", ErrStateCorrupted, version, err)
	}
	c, err := semver.NewConstraint(schemaConstraint)
	if err != nil {
		return fmt.Errorf("parsing schema constraint: %w", err)
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: unsupported schema version %s (expected %s)",
			ErrStateCorrupted, version, schemaConstraint)
	}
	return nil
}

func (s *Store) lockFilePath() string {
	return s.filePath + ".lock"
}

// acquireFileLock acquires a cross-process advisory lockfile.
// Returns a cleanup function that releases the lock.
func (s *Store) acquireFileLock() (func(), error) {
	lockPath := s.lockFilePath()

	if err := os.MkdirAll(filepath.Dir(lockPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating lock directory: %w", err)
	}

	const maxRetries = 50
	const retryDelay = 10 * time.Millisecond
	const staleLockAge = 30 * time.Second

	for range maxRetries {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err == nil {
			_, _ = fmt.Fprintf(f, "%d", os.Getpid())
			_ = f.Close()
			return func() { _ = os.Remove(lockPath) }, nil
		}

		if removeStaleLock(lockPath, staleLockAge) {
			continue
		}
		time.Sleep(retryDelay)
	}

	return nil, fmt.Errorf("could not acquire lock on %s after retries", lockPath)
}

// removeStaleLock removes lockPath if it is older than staleLockAge and its
// owner is gone. Returns true if the lock was removed.
func removeStaleLock(lockPath string, staleLockAge time.Duration) bool {
	info, statErr := os.Stat(lockPath)
	if statErr != nil || time.Since(info.ModTime()) <= staleLockAge {
		return false
	}
	if isLockHeldByLiveProcess(lockPath) {
		return false
	}
	_ = os.Remove(lockPath)
	return true
}

func isLockHeldByLiveProcess(lockPath string) bool {
	pidData, readErr := os.ReadFile(lockPath)
	if readErr != nil || len(pidData) == 0 {
		return false
	}
	var pid int
	if _, scanErr := fmt.Sscanf(string(pidData), "%d", &pid); scanErr != nil || pid <= 0 {
		return false
	}
	return processExists(pid) == nil
}

// processExists returns nil if a process with pid is alive.
func processExists(pid int) error {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	// Signal 0 tests existence without delivering anything.
	return proc.Signal(syscall.Signal(0))
}
