package ports

import (
	"context"

	"github.com/campus/student-registration/internal/core/domain"
)

// StudentRepository persists students keyed by roll number.
type StudentRepository interface {
	// List returns every student in store iteration order.
	List(ctx context.Context) ([]domain.Student, error)
	// Upsert creates the student or, when the roll number exists, overwrites
	// name and email and unions the course list case-insensitively. The
	// read-modify-write is atomic per roll number.
	Upsert(ctx context.Context, in domain.StudentUpsert) (*domain.UpsertResult, error)
}
