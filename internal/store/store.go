package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/mapatag/internal/models"
)

// Persisted keys.
const (
	KeySeniors     = "mapatag_seniors"
	KeyAuditLogs   = "mapatag_audit_logs"
	KeyCurrentUser = "mapatag_current_user"
	KeySequence    = "mapatag_scid_sequence"
)

// Store reads and writes whole collections as JSON on top of a Backend.
// Replacing a collection overwrites everything stored under its key.
type Store struct {
	b Backend
}

// New constructs a Store over b. Closing the Store closes b.
func New(b Backend) *Store {
	return &Store{b: b}
}

// Close releases the underlying backend.
func (s *Store) Close() error {
	return s.b.Close()
}

func (s *Store) LoadSeniors(ctx context.Context) ([]models.SeniorRecord, error) {
	return load[models.SeniorRecord](ctx, s.b, KeySeniors)
}

func (s *Store) ReplaceSeniors(ctx context.Context, seniors []models.SeniorRecord) error {
	return replace(ctx, s.b, KeySeniors, seniors)
}

// ReplaceSeniorsWithSequence stores the roster and the SCID counter together.
func (s *Store) ReplaceSeniorsWithSequence(ctx context.Context, seniors []models.SeniorRecord, seq int) error {
	data, err := marshal(KeySeniors, seniors)
	if err != nil {
		return err
	}
	return s.b.SetMany(ctx, map[string][]byte{
		KeySeniors:  data,
		KeySequence: []byte(strconv.Itoa(seq)),
	})
}

func (s *Store) LoadAuditLogs(ctx context.Context) ([]models.AuditLogEntry, error) {
	return load[models.AuditLogEntry](ctx, s.b, KeyAuditLogs)
}

func (s *Store) ReplaceAuditLogs(ctx context.Context, logs []models.AuditLogEntry) error {
	return replace(ctx, s.b, KeyAuditLogs, logs)
}

// CurrentUser returns the persisted session or nil when nobody is logged in.
func (s *Store) CurrentUser(ctx context.Context) (*models.SessionUser, error) {
	data, err := s.b.Get(ctx, KeyCurrentUser)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	var u models.SessionUser
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", KeyCurrentUser, err)
	}
	return &u, nil
}

func (s *Store) SetCurrentUser(ctx context.Context, u models.SessionUser) error {
	data, err := marshal(KeyCurrentUser, u)
	if err != nil {
		return err
	}
	return s.b.Set(ctx, KeyCurrentUser, data)
}

func (s *Store) ClearCurrentUser(ctx context.Context) error {
	return s.b.Delete(ctx, KeyCurrentUser)
}

// Sequence returns the last SCID sequence handed out, 0 if none.
func (s *Store) Sequence(ctx context.Context) (int, error) {
	data, err := s.b.Get(ctx, KeySequence)
	if err != nil {
		return 0, err
	}
	if len(data) == 0 {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("failed to decode %s: %w", KeySequence, err)
	}
	return n, nil
}

func load[T any](ctx context.Context, b Backend, key string) ([]T, error) {
	data, err := b.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	out := []T{}
	if len(data) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func replace[T any](ctx context.Context, b Backend, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := marshal(key, items)
	if err != nil {
		return err
	}
	return b.Set(ctx, key, data)
}

func marshal(key string, v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return data, nil
}

func sortedKeys(m map[string][]byte) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
