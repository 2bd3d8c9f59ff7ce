package config

import (
	"log"

	"montsion-scolarite/internal/adapters/persistence/repositories"
	"montsion-scolarite/internal/adapters/persistence/store"
	"montsion-scolarite/internal/core/domain"
)

// Seeder writes the initial store files at first boot
type Seeder struct {
	store *store.Store
}

// NewSeeder creates a new seeder instance
func NewSeeder(st *store.Store) *Seeder {
	return &Seeder{store: st}
}

// Run seeds both collections. Each file is written only if it does not
// already exist, so seeding happens exactly once per installation.
func (s *Seeder) Run() error {
	log.Println("🌱 Running datastore seeders...")

	if err := s.seedUsers(); err != nil {
		return err
	}
	if err := s.seedStudents(); err != nil {
		return err
	}

	log.Println("✅ Datastore seeding completed")
	return nil
}

// seedUsers writes the two default admin accounts.
// Their passwords are install-time defaults: rotate them after first login.
func (s *Seeder) seedUsers() error {
	if s.store.Exists(repositories.UsersCollection) {
		return nil
	}

	doc := repositories.UsersDocument{
		Users: map[string]domain.User{
			"Kouamé":     {Password: "02910291", Role: domain.RoleAdmin},
			"directrice": {Password: "directrice123", Role: domain.RoleAdmin},
		},
	}
	if err := s.store.Save(repositories.UsersCollection, &doc); err != nil {
		return err
	}

	log.Println("✅ Default admin accounts seeded")
	return nil
}

// seedStudents writes an empty ledger
func (s *Seeder) seedStudents() error {
	if s.store.Exists(repositories.StudentsCollection) {
		return nil
	}

	doc := repositories.StudentsDocument{Students: []domain.Student{}}
	return s.store.Save(repositories.StudentsCollection, &doc)
}
