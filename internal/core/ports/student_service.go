package ports

import (
	"context"

	"github.com/campus/student-registration/internal/core/domain"
)

// RegisterStudentInput is the raw registration payload. Course may be a
// string, a list, or nil.
type RegisterStudentInput struct {
	Name   string
	RollNo string
	Email  string
	Course any
}

// StudentService defines use-case operations for students.
type StudentService interface {
	ListStudents(ctx context.Context) ([]domain.Student, error)
	RegisterStudent(ctx context.Context, in RegisterStudentInput) (*domain.UpsertResult, error)
}
