package services

import (
	"context"
	"fmt"

	"montsion-scolarite/internal/adapters/persistence/repositories"
	"montsion-scolarite/internal/adapters/persistence/store"
	"montsion-scolarite/internal/core/domain"

	"github.com/xuri/excelize/v2"
)

// ReportService aggregates ledger totals and serializes the ledger for
// export. Both are restricted to the admin role.
type ReportService struct {
	studentRepo repositories.StudentRepository
	store       *store.Store
}

// NewReportService creates a new report service
func NewReportService(studentRepo repositories.StudentRepository, st *store.Store) *ReportService {
	return &ReportService{
		studentRepo: studentRepo,
		store:       st,
	}
}

// Stats computes the tuition position of the whole ledger
func (s *ReportService) Stats(ctx context.Context, identity domain.Identity) (*domain.Stats, error) {
	if identity.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	if !identity.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	students, err := s.studentRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &domain.Stats{
		TotalStudents: len(students),
		TotalExpected: len(students) * domain.TuitionFee,
	}
	for _, st := range students {
		stats.TotalCollected += st.MontantPaye
	}
	stats.TotalRemaining = stats.TotalExpected - stats.TotalCollected

	return stats, nil
}

// ExportYAML returns the raw serialized student store for download
func (s *ReportService) ExportYAML(_ context.Context, identity domain.Identity) ([]byte, error) {
	if identity.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	if !identity.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	return s.store.Raw(repositories.StudentsCollection)
}

// excelHeader is the column layout of the exported spreadsheet
var excelHeader = []string{"ID", "Nom", "Prénoms", "Date d'inscription", "Frais de scolarité", "Montant payé", "Reste à payer"}

// ExportExcel renders the ledger as a spreadsheet for download
func (s *ReportService) ExportExcel(ctx context.Context, identity domain.Identity) ([]byte, error) {
	if identity.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	if !identity.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	students, err := s.studentRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	for col, title := range excelHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
	}
	for row, st := range students {
		values := []any{st.ID, st.Nom, st.Prenoms, st.DateInscription, st.FraisScolarite, st.MontantPaye, st.ResteAPayer}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write spreadsheet: %w", err)
	}
	return buf.Bytes(), nil
}
