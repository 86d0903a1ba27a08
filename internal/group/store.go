package group

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/soundcork/soundcork/internal/infrastructure/logging"
	"github.com/soundcork/soundcork/internal/registry"
)

// Group record file naming convention: Group_<7-digit id>.xml, stored in
// the account's devices directory alongside the device directories.
const (
	groupFilePrefix = "Group_"
	groupFileExt    = ".xml"

	// idSpace is the size of the 7-digit id namespace.
	idSpace = 10000000
)

// Store is the filesystem-backed repository of group records, scoped per
// account.
//
// Records are whole-file rewrites with no atomic rename-swap, so a crash
// mid-write can leave a corrupt file. Scans tolerate that by skipping
// unparsable records; only direct reads surface corruption to the caller.
//
// Thread Safety:
//   - All methods are safe for concurrent use. WithAccountLock serialises
//     check-then-write sequences within one account.
type Store struct {
	dataDir string
	logger  *logging.Logger

	mu           sync.Mutex
	accountLocks map[string]*sync.Mutex
}

// NewStore creates a store over the given data directory.
//
// Parameters:
//   - dataDir: Root of the account/device record tree
//   - logger: Structured logger
//
// Returns:
//   - *Store: Store ready for use
func NewStore(dataDir string, logger *logging.Logger) *Store {
	return &Store{
		dataDir:      dataDir,
		logger:       logger.With("component", "groupstore"),
		accountLocks: make(map[string]*sync.Mutex),
	}
}

// WithAccountLock runs fn while holding the account's mutex.
//
// Create's membership check and record write must run as one exclusion
// region; otherwise two concurrent creates naming an overlapping device
// pair can both pass the check before either persists.
func (s *Store) WithAccountLock(account string, fn func() error) error {
	lock := s.accountLock(account)
	lock.Lock()
	defer lock.Unlock()
	return fn()
}

// accountLock returns the mutex for an account, creating it on first use.
func (s *Store) accountLock(account string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.accountLocks[account]
	if !ok {
		lock = &sync.Mutex{}
		s.accountLocks[account] = lock
	}
	return lock
}

// GenerateID draws random 7-digit ids until one is free in the account's
// namespace. The loop is unbounded in principle; at the stated scale (a
// handful of groups against a 10^7 namespace) collisions are vanishingly
// rare and exhaustion is not a practical concern.
func (s *Store) GenerateID(account string) string {
	for {
		id := fmt.Sprintf("%07d", rand.IntN(idSpace))
		if !s.Exists(account, id) {
			return id
		}
	}
}

// List returns the ids of all group records stored for the account.
func (s *Store) List(account string) ([]string, error) {
	entries, err := os.ReadDir(registry.AccountDevicesDir(s.dataDir, account))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing groups for account %s: %w", account, err)
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, groupFilePrefix) || !strings.HasSuffix(name, groupFileExt) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(strings.TrimPrefix(name, groupFilePrefix), groupFileExt))
	}
	return ids, nil
}

// Exists reports whether a group record exists for the id.
func (s *Store) Exists(account, id string) bool {
	_, err := os.Stat(s.groupPath(account, id))
	return err == nil
}

// FindContaining scans the account's records for one naming the device.
//
// Unparsable records are skipped with a warning rather than aborting the
// scan; a half-written file must never take the whole directory down. The
// first match wins. A device appearing in more than one record violates the
// membership invariant; that is surfaced in the log, not to the caller.
//
// Parameters:
//   - account: Account namespace
//   - deviceID: Device identifier to look for
//
// Returns:
//   - string: Containing group id, when found
//   - bool: Whether any record names the device
func (s *Store) FindContaining(account, deviceID string) (string, bool) {
	ids, err := s.List(account)
	if err != nil {
		s.logger.Warn("group scan failed",
			"account", account,
			"device", deviceID,
			"error", err,
		)
		return "", false
	}

	var matches []string
	for _, id := range ids {
		g, err := s.Read(account, id)
		if err != nil {
			s.logger.Warn("skipping unreadable group record during scan",
				"account", account,
				"group", id,
				"error", err,
			)
			continue
		}
		if g.ContainsDevice(deviceID) {
			matches = append(matches, id)
		}
	}

	if len(matches) == 0 {
		return "", false
	}
	if len(matches) > 1 {
		s.logger.Warn("device present in multiple groups, membership invariant violated",
			"account", account,
			"device", deviceID,
			"groups", matches,
		)
	}
	return matches[0], true
}

// Read loads and parses a group record.
//
// Parameters:
//   - account: Account namespace
//   - id: Group identifier
//
// Returns:
//   - *Group: Parsed record
//   - error: ErrGroupNotFound if absent, ErrGroupCorrupt if present but
//     unparsable
func (s *Store) Read(account, id string) (*Group, error) {
	data, err := s.ReadRaw(account, id)
	if err != nil {
		return nil, err
	}

	g, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: group %s: %v", ErrGroupCorrupt, id, err)
	}
	return g, nil
}

// ReadRaw returns a group record's stored bytes verbatim.
//
// Returns:
//   - []byte: Stored document, exactly as persisted
//   - error: ErrGroupNotFound if absent
func (s *Store) ReadRaw(account, id string) ([]byte, error) {
	data, err := os.ReadFile(s.groupPath(account, id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrGroupNotFound, id)
		}
		return nil, fmt.Errorf("reading group %s: %w", id, err)
	}
	return data, nil
}

// Write serialises the record and overwrites its file in place.
//
// The write is deliberately not atomic (no write-to-temp-then-rename); a
// crash mid-write leaves a corrupt file, which scans tolerate by treating
// the record as absent.
//
// Parameters:
//   - account: Account namespace
//   - g: Record to persist; must carry an id
//
// Returns:
//   - []byte: The persisted document bytes
//   - error: nil on success, otherwise the underlying filesystem error
func (s *Store) Write(account string, g *Group) ([]byte, error) {
	if g.ID == "" {
		return nil, fmt.Errorf("writing group: id is required")
	}

	data, err := g.Marshal()
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(s.groupPath(account, g.ID), data, 0644); err != nil { //nolint:gosec // group records are not secret
		return nil, fmt.Errorf("writing group %s: %w", g.ID, err)
	}
	return data, nil
}

// Delete removes a group record.
//
// Returns:
//   - error: ErrGroupNotFound if absent, otherwise the underlying
//     filesystem error
func (s *Store) Delete(account, id string) error {
	if err := os.Remove(s.groupPath(account, id)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrGroupNotFound, id)
		}
		return fmt.Errorf("deleting group %s: %w", id, err)
	}
	return nil
}

// ResolveByName scans the account's records for one whose name matches.
//
// The first match in directory order wins; duplicate names are unresolved
// ambiguity and which record is returned for them is unspecified.
// Unparsable records are skipped, as in FindContaining.
//
// Parameters:
//   - account: Account namespace
//   - name: Exact group name to look for
//
// Returns:
//   - string: Matching group id, when found
//   - bool: Whether any record carries the name
func (s *Store) ResolveByName(account, name string) (string, bool) {
	ids, err := s.List(account)
	if err != nil {
		s.logger.Warn("group scan failed",
			"account", account,
			"error", err,
		)
		return "", false
	}

	for _, id := range ids {
		g, err := s.Read(account, id)
		if err != nil {
			s.logger.Warn("skipping unreadable group record during scan",
				"account", account,
				"group", id,
				"error", err,
			)
			continue
		}
		if strings.TrimSpace(g.Name) == name {
			return id, true
		}
	}
	return "", false
}

// groupPath returns the record file path for a group id.
func (s *Store) groupPath(account, id string) string {
	return filepath.Join(registry.AccountDevicesDir(s.dataDir, account), groupFilePrefix+id+groupFileExt)
}
