package config

import (
	"fmt"
	"log"
	"os"

	"montsion-scolarite/internal/adapters/persistence/store"
)

// DataStore is the global snapshot store instance
var DataStore *store.Store

// OpenDataStore opens the YAML snapshot store over the data directory
func OpenDataStore(cfg *Config) (*store.Store, error) {
	st, err := store.Open(cfg.Data.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open datastore: %w", err)
	}

	DataStore = st

	log.Printf("✅ Datastore opened at %s", cfg.Data.Dir)
	return st, nil
}

// HealthCheck verifies the data directory is still reachable and writable
func HealthCheck() error {
	if DataStore == nil {
		return fmt.Errorf("datastore not opened")
	}

	probe, err := os.CreateTemp(DataStore.Dir(), ".health-*")
	if err != nil {
		return fmt.Errorf("data directory not writable: %w", err)
	}
	name := probe.Name()
	probe.Close()
	return os.Remove(name)
}
