package datastore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aleister1102/slotwatch/internal/common"
	"github.com/aleister1102/slotwatch/internal/config"
	"github.com/aleister1102/slotwatch/internal/models"
	"github.com/rs/zerolog"
)

// StateStore loads and persists the monitor state between cycles.
type StateStore interface {
	Load(ctx context.Context) (*models.MonitorState, error)
	Save(ctx context.Context, state *models.MonitorState) error
}

// FileStateStore keeps the whole MonitorState in one JSON document.
type FileStateStore struct {
	path         string
	logger       zerolog.Logger
	fileManager  *common.FileManager
	readOptions  common.FileReadOptions
	writeOptions common.FileWriteOptions
}

// FileStateStoreOption customizes a FileStateStore.
type FileStateStoreOption func(*FileStateStore)

// WithWriteOptions replaces the options used for atomic saves.
func WithWriteOptions(opts common.FileWriteOptions) FileStateStoreOption {
	return func(s *FileStateStore) {
		s.writeOptions = opts
	}
}

// NewFileStateStore creates a store backed by cfg.StateFile.
func NewFileStateStore(cfg *config.StorageConfig, logger zerolog.Logger, opts ...FileStateStoreOption) (*FileStateStore, error) {
	if cfg == nil || cfg.StateFile == "" {
		return nil, common.NewValidationError("state_file", "", "state file path is not configured")
	}

	storeLogger := logger.With().Str("component", "FileStateStore").Str("path", cfg.StateFile).Logger()
	s := &FileStateStore{
		path:         cfg.StateFile,
		logger:       storeLogger,
		fileManager:  common.NewFileManager(storeLogger),
		readOptions:  common.DefaultFileReadOptions(),
		writeOptions: common.DefaultFileWriteOptions(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Path returns the state file location.
func (s *FileStateStore) Path() string {
	return s.path
}

// Load returns the persisted state. A missing file yields an empty state; an
// unreadable or malformed file yields a *ParseError.
func (s *FileStateStore) Load(ctx context.Context) (*models.MonitorState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !s.fileManager.FileExists(s.path) {
		s.logger.Info().Msg("State file not found, starting with empty state")
		return models.NewMonitorState(), nil
	}

	data, err := s.fileManager.ReadFile(s.path, s.readOptions)
	if err != nil {
		return nil, NewParseError(s.path, err)
	}

	state, err := s.decode(data)
	if err != nil {
		return nil, NewParseError(s.path, err)
	}

	s.logger.Debug().Int("targets", len(state.Targets)).Bool("site_down", state.SiteDown).Msg("Loaded state")
	return state, nil
}

// Save replaces the state file atomically with the full state.
func (s *FileStateStore) Save(ctx context.Context, state *models.MonitorState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if state == nil {
		return common.NewValidationError("state", nil, "cannot save nil state")
	}

	data, err := encodeState(state)
	if err != nil {
		return common.WrapError(err, "failed to encode state")
	}

	if err := s.fileManager.WriteFileAtomic(s.path, data, s.writeOptions); err != nil {
		return common.WrapError(err, fmt.Sprintf("failed to save state to %s", s.path))
	}

	s.logger.Debug().Int("targets", len(state.Targets)).Int("bytes", len(data)).Msg("State saved")
	return nil
}

func encodeState(state *models.MonitorState) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(state); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// legacyState is the single-target document written by earlier versions.
type legacyState struct {
	Items       []string `json:"items"`
	LastChecked string   `json:"last_checked"`
}

// Naive timestamps from the legacy document are taken as UTC.
var legacyTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

func (s *FileStateStore) decode(data []byte) (*models.MonitorState, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, common.NewError("state file is empty")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, common.NewError("state document is not an object")
	}

	_, hasTargets := fields["targets"]
	_, hasItems := fields["items"]
	if hasItems && !hasTargets {
		return s.decodeLegacy(data)
	}

	state := models.NewMonitorState()
	if err := json.Unmarshal(data, state); err != nil {
		return nil, err
	}
	if state.Targets == nil {
		state.Targets = make(map[string]*models.Snapshot)
	}
	for name, snap := range state.Targets {
		if snap == nil {
			delete(state.Targets, name)
			continue
		}
		snap.Items = models.Dedupe(snap.Items)
	}
	if !state.SiteDown {
		state.DownSince = nil
	}
	return state, nil
}

func (s *FileStateStore) decodeLegacy(data []byte) (*models.MonitorState, error) {
	var legacy legacyState
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, err
	}

	checkedAt := parseLegacyTime(legacy.LastChecked)
	if checkedAt.IsZero() && legacy.LastChecked != "" {
		s.logger.Warn().Str("last_checked", legacy.LastChecked).Msg("Unrecognized last_checked timestamp in legacy state")
	}

	state := models.NewMonitorState()
	state.Targets[models.DefaultTargetName] = models.NewSnapshot(legacy.Items, checkedAt)
	s.logger.Info().Int("items", len(legacy.Items)).Msg("Migrated legacy single-target state")
	return state, nil
}

func parseLegacyTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range legacyTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
