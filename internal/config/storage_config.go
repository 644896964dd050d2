package config

// StorageConfig defines where the monitor state is persisted
type StorageConfig struct {
	StateFile string `json:"state_file,omitempty" yaml:"state_file,omitempty" env:"STATE_FILE" validate:"required"`
}

// NewDefaultStorageConfig creates default storage configuration
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		StateFile: DefaultStorageStateFile,
	}
}
