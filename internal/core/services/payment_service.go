package services

import (
	"context"
	"log"

	"montsion-scolarite/internal/adapters/persistence/repositories"
	"montsion-scolarite/internal/core/domain"
)

// PaymentService records tuition payments against the ledger.
// Recording a payment requires the admin role, never a specific username.
type PaymentService struct {
	studentRepo repositories.StudentRepository
}

// NewPaymentService creates a new payment service
func NewPaymentService(studentRepo repositories.StudentRepository) *PaymentService {
	return &PaymentService{studentRepo: studentRepo}
}

// AddPayment adds amount to a student's cumulative paid total and
// recomputes the remaining balance. Amounts are not bounds-checked:
// negative amounts and over-payments are recorded as given, which keeps
// corrections possible without a separate adjustment flow.
func (s *PaymentService) AddPayment(ctx context.Context, identity domain.Identity, studentID int64, amount int) (*domain.Student, error) {
	if identity.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	if !identity.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	student, err := s.studentRepo.AddPayment(ctx, studentID, amount)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Payment of %d recorded for student %d by %s (reste: %d)",
		amount, studentID, identity.Username, student.ResteAPayer)
	return student, nil
}
