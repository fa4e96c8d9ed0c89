package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/campus/student-registration/internal/api/metrics"
	"github.com/campus/student-registration/internal/core/domain"
	"github.com/campus/student-registration/internal/core/ports"
)

type StudentService struct {
	repo   ports.StudentRepository
	logger zerolog.Logger
}

func NewStudentService(repo ports.StudentRepository, logger zerolog.Logger) *StudentService {
	return &StudentService{repo: repo, logger: logger}
}

// ListStudents returns all students; the slice is empty, not nil, when there are none.
func (s *StudentService) ListStudents(ctx context.Context) ([]domain.Student, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list students")
		return nil, err
	}
	if students == nil {
		students = []domain.Student{}
	}
	return students, nil
}

// RegisterStudent upserts a student by roll number, merging courses with any
// existing registration. Incomplete input fails with domain.ErrMissingField
// before the store is touched.
func (s *StudentService) RegisterStudent(ctx context.Context, in ports.RegisterStudentInput) (*domain.UpsertResult, error) {
	name := strings.TrimSpace(in.Name)
	rollNo := strings.TrimSpace(in.RollNo)
	email := strings.TrimSpace(in.Email)
	courses := domain.NormalizeCourses(in.Course)

	if name == "" || rollNo == "" || email == "" || len(courses) == 0 {
		return nil, domain.ErrMissingField
	}

	start := time.Now()
	result, err := s.repo.Upsert(ctx, domain.StudentUpsert{
		Name:    name,
		RollNo:  rollNo,
		Email:   email,
		Courses: courses,
	})
	if err != nil {
		metrics.StudentUpsertDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		s.logger.Error().Err(err).Str("roll_no", rollNo).Msg("failed to upsert student")
		return nil, err
	}

	outcome := "merged"
	if result.Created {
		outcome = "created"
	}
	metrics.StudentUpsertDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	metrics.StudentsUpsertedTotal.WithLabelValues(outcome).Inc()

	s.logger.Info().
		Str("roll_no", rollNo).
		Str("student_id", result.Student.ID).
		Strs("course", result.Student.Course).
		Msg("student " + outcome)

	return result, nil
}
