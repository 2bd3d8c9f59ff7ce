package repositories

import (
	"context"

	"montsion-scolarite/internal/adapters/persistence/store"
	"montsion-scolarite/internal/core/domain"
)

// studentRepository implements StudentRepository over the snapshot store
type studentRepository struct {
	store *store.Store
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(st *store.Store) StudentRepository {
	return &studentRepository{store: st}
}

// List returns every student in the ledger, fresh from disk
func (r *studentRepository) List(_ context.Context) ([]domain.Student, error) {
	var doc StudentsDocument
	if err := r.store.Load(StudentsCollection, &doc); err != nil {
		return nil, err
	}
	return doc.Students, nil
}

// GetByID scans the ledger for a student id
func (r *studentRepository) GetByID(ctx context.Context, id int64) (*domain.Student, error) {
	students, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range students {
		if students[i].ID == id {
			return &students[i], nil
		}
	}
	return nil, domain.ErrStudentNotFound
}

// Append adds a student to the ledger and persists the snapshot
func (r *studentRepository) Append(_ context.Context, student *domain.Student) error {
	return r.store.Do(StudentsCollection, func() error {
		var doc StudentsDocument
		if err := r.store.Load(StudentsCollection, &doc); err != nil {
			return err
		}
		doc.Students = append(doc.Students, *student)
		return r.store.Save(StudentsCollection, &doc)
	})
}

// AddPayment applies a payment to one student inside the ledger lock and
// returns the updated record. The remaining balance is recomputed from the
// tuition fee on every call, never accumulated.
func (r *studentRepository) AddPayment(_ context.Context, id int64, amount int) (*domain.Student, error) {
	var updated *domain.Student
	err := r.store.Do(StudentsCollection, func() error {
		var doc StudentsDocument
		if err := r.store.Load(StudentsCollection, &doc); err != nil {
			return err
		}
		for i := range doc.Students {
			if doc.Students[i].ID == id {
				doc.Students[i].ApplyPayment(amount)
				updated = &doc.Students[i]
				return r.store.Save(StudentsCollection, &doc)
			}
		}
		return domain.ErrStudentNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Count returns the number of enrolled students
func (r *studentRepository) Count(ctx context.Context) (int, error) {
	students, err := r.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(students), nil
}
