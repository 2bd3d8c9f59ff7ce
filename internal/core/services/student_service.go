package services

import (
	"context"
	"log"
	"strings"
	"time"

	"montsion-scolarite/internal/adapters/persistence/repositories"
	"montsion-scolarite/internal/core/domain"
)

// StudentService handles the student ledger: enrollment, listing and search
type StudentService struct {
	studentRepo repositories.StudentRepository
}

// NewStudentService creates a new student service
func NewStudentService(studentRepo repositories.StudentRepository) *StudentService {
	return &StudentService{studentRepo: studentRepo}
}

// List returns the full ledger. Any authenticated identity may read it.
func (s *StudentService) List(ctx context.Context, identity domain.Identity) ([]domain.Student, error) {
	if identity.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	students, err := s.studentRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if students == nil {
		students = []domain.Student{}
	}
	return students, nil
}

// Create enrolls a new student. The id, inscription date and tuition
// fields are assigned server-side regardless of what the caller sent.
func (s *StudentService) Create(ctx context.Context, identity domain.Identity, fields map[string]any) (*domain.Student, error) {
	if identity.IsZero() {
		return nil, domain.ErrUnauthorized
	}

	student := domain.NewStudent(fields, time.Now())
	if err := s.studentRepo.Append(ctx, &student); err != nil {
		return nil, err
	}

	log.Printf("✅ Student enrolled: %s %s (id: %d)", student.Nom, student.Prenoms, student.ID)
	return &student, nil
}

// Search filters the ledger by a case-insensitive substring match on nom
// or prenoms. An empty query returns the full ledger. A record missing
// both name fields can never match; it is skipped rather than failing the
// whole query.
func (s *StudentService) Search(ctx context.Context, identity domain.Identity, query string) ([]domain.Student, error) {
	students, err := s.List(ctx, identity)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return students, nil
	}

	matches := []domain.Student{}
	for _, st := range students {
		if st.Nom == "" && st.Prenoms == "" {
			continue
		}
		if strings.Contains(strings.ToLower(st.Nom), query) ||
			strings.Contains(strings.ToLower(st.Prenoms), query) {
			matches = append(matches, st)
		}
	}
	return matches, nil
}

// FindByID returns one student by id
func (s *StudentService) FindByID(ctx context.Context, id int64) (*domain.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}
