package services

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"montsion-scolarite/internal/adapters/persistence/repositories"
	"montsion-scolarite/internal/core/domain"
)

func newReportFixture(t *testing.T) (*ReportService, repositories.StudentRepository) {
	t.Helper()
	st := newTestStore(t)
	repo := repositories.NewStudentRepository(st)
	return NewReportService(repo, st), repo
}

func seedLedger(t *testing.T, repo repositories.StudentRepository, payments []int) {
	t.Helper()
	ctx := context.Background()
	for i, p := range payments {
		s := domain.NewStudent(map[string]any{"nom": "Koffi", "prenoms": "Jean"}, time.Now().Add(time.Duration(i)*time.Millisecond))
		if err := repo.Append(ctx, &s); err != nil {
			t.Fatalf("append: %v", err)
		}
		if p != 0 {
			if _, err := repo.AddPayment(ctx, s.ID, p); err != nil {
				t.Fatalf("payment: %v", err)
			}
		}
	}
}

func TestStatsAggregatesLedger(t *testing.T) {
	svc, repo := newReportFixture(t)
	seedLedger(t, repo, []int{10000, 20000, 70000})

	stats, err := svc.Stats(context.Background(), adminIdentity)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if stats.TotalStudents != 3 {
		t.Fatalf("total_students: got %d", stats.TotalStudents)
	}
	if stats.TotalExpected != 210000 {
		t.Fatalf("total_expected: got %d", stats.TotalExpected)
	}
	if stats.TotalCollected != 100000 {
		t.Fatalf("total_collected: got %d", stats.TotalCollected)
	}
	if stats.TotalRemaining != 110000 {
		t.Fatalf("total_remaining: got %d", stats.TotalRemaining)
	}
}

func TestStatsEmptyLedger(t *testing.T) {
	svc, _ := newReportFixture(t)

	stats, err := svc.Stats(context.Background(), adminIdentity)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalStudents != 0 || stats.TotalExpected != 0 || stats.TotalRemaining != 0 {
		t.Fatalf("expected zeroes, got %+v", stats)
	}
}

func TestReportingRequiresAdminRole(t *testing.T) {
	svc, _ := newReportFixture(t)
	ctx := context.Background()

	if _, err := svc.Stats(ctx, anonymous); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("stats anonymous: %v", err)
	}
	if _, err := svc.Stats(ctx, staffIdentity); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("stats staff: %v", err)
	}
	if _, err := svc.ExportYAML(ctx, staffIdentity); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("yaml staff: %v", err)
	}
	if _, err := svc.ExportExcel(ctx, staffIdentity); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("excel staff: %v", err)
	}
}

func TestExportYAMLReturnsRawSnapshot(t *testing.T) {
	svc, repo := newReportFixture(t)
	seedLedger(t, repo, []int{10000})

	data, err := svc.ExportYAML(context.Background(), adminIdentity)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !bytes.Contains(data, []byte("students:")) {
		t.Fatalf("snapshot missing students key: %q", data)
	}
	if !bytes.Contains(data, []byte("montant_paye: 10000")) {
		t.Fatalf("snapshot missing payment: %q", data)
	}
}

func TestExportExcelProducesWorkbook(t *testing.T) {
	svc, repo := newReportFixture(t)
	seedLedger(t, repo, []int{10000, 0})

	data, err := svc.ExportExcel(context.Background(), adminIdentity)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	// xlsx files are zip archives
	if len(data) < 4 || data[0] != 'P' || data[1] != 'K' {
		t.Fatalf("not a workbook: % x", data[:4])
	}
}
