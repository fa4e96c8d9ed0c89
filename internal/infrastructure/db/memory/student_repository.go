package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/campus/student-registration/internal/core/domain"
	"github.com/campus/student-registration/internal/pkg/keylock"
)

// StudentRepository keeps students in insertion order. Upserts on the same
// roll number are serialized by a striped key lock; mu only guards the maps.
type StudentRepository struct {
	locks *keylock.Striped

	mu     sync.RWMutex
	byRoll map[string]*domain.Student
	order  []string
}

func NewStudentRepository() *StudentRepository {
	return &StudentRepository{
		locks:  keylock.New(0),
		byRoll: make(map[string]*domain.Student),
	}
}

func (r *StudentRepository) List(_ context.Context) ([]domain.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Student, 0, len(r.order))
	for _, roll := range r.order {
		out = append(out, cloneStudent(r.byRoll[roll]))
	}
	return out, nil
}

func (r *StudentRepository) Upsert(_ context.Context, in domain.StudentUpsert) (*domain.UpsertResult, error) {
	var result *domain.UpsertResult
	err := r.locks.Do(in.RollNo, func() error {
		result = r.upsertLocked(in)
		return nil
	})
	return result, err
}

// upsertLocked must run under the roll number's stripe.
func (r *StudentRepository) upsertLocked(in domain.StudentUpsert) *domain.UpsertResult {
	r.mu.RLock()
	existing, ok := r.byRoll[in.RollNo]
	r.mu.RUnlock()

	if ok {
		updated := cloneStudent(existing)
		updated.Name = in.Name
		updated.Email = in.Email
		updated.Course = domain.MergeCourses(existing.Course, in.Courses)

		r.mu.Lock()
		r.byRoll[in.RollNo] = &updated
		r.mu.Unlock()

		return &domain.UpsertResult{Student: cloneStudent(&updated)}
	}

	created := domain.Student{
		ID:     uuid.NewString(),
		Name:   in.Name,
		RollNo: in.RollNo,
		Email:  in.Email,
		Course: domain.NormalizeCourses(in.Courses),
	}

	r.mu.Lock()
	r.byRoll[in.RollNo] = &created
	r.order = append(r.order, in.RollNo)
	r.mu.Unlock()

	return &domain.UpsertResult{Student: cloneStudent(&created), Created: true}
}

func cloneStudent(s *domain.Student) domain.Student {
	out := *s
	out.Course = append([]string(nil), s.Course...)
	if out.Course == nil {
		out.Course = []string{}
	}
	return out
}
