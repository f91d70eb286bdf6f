package storage

import (
	"allurectl/internal/config"
	"allurectl/internal/domain"
)

// Storage persists and loads the summary of the last generated report (e.g. for open).
type Storage interface {
	Save(summary *domain.Summary) error
	Load() (*domain.Summary, error)
}

// JSONStorage stores the summary in a JSON file inside the report directory.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's summary path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
