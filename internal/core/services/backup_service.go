package services

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"montsion-scolarite/internal/adapters/persistence/repositories"
	"montsion-scolarite/internal/adapters/persistence/store"

	"github.com/robfig/cron/v3"
)

// BackupService copies the store files into a timestamped directory on a
// cron schedule. Each collection is copied under its own lock so a backup
// never captures a half-applied mutation.
type BackupService struct {
	store    *store.Store
	schedule string
	cron     *cron.Cron
}

// NewBackupService creates a new backup service
func NewBackupService(st *store.Store, schedule string) *BackupService {
	return &BackupService{
		store:    st,
		schedule: schedule,
		cron:     cron.New(),
	}
}

// Start registers the schedule and starts the cron runner
func (s *BackupService) Start() {
	if _, err := s.cron.AddFunc(s.schedule, func() {
		if err := s.RunOnce(); err != nil {
			log.Printf("⚠️ Scheduled backup failed: %v", err)
		}
	}); err != nil {
		log.Printf("⚠️ Invalid backup schedule %q: %v", s.schedule, err)
		return
	}
	s.cron.Start()
	log.Printf("✅ Backup schedule registered: %s", s.schedule)
}

// Stop stops the cron runner
func (s *BackupService) Stop() {
	s.cron.Stop()
}

// RunOnce snapshots both collections into <data>/backups/<timestamp>/
func (s *BackupService) RunOnce() error {
	dir := filepath.Join(s.store.Dir(), "backups", time.Now().Format("20060102-150405"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	for _, name := range []string{repositories.UsersCollection, repositories.StudentsCollection} {
		name := name
		err := s.store.Do(name, func() error {
			data, err := s.store.Raw(name)
			if err != nil {
				return err
			}
			return os.WriteFile(filepath.Join(dir, name+".yaml"), data, 0o644)
		})
		if err != nil {
			return err
		}
	}

	log.Printf("✅ Datastore backed up to %s", dir)
	return nil
}
