// Package mocks provides testify mocks for the model interfaces.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/mvillagra/gradebook-server/internal/model"
)

type UserStore struct {
	mock.Mock
}

func (m *UserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

type StudentStore struct {
	mock.Mock
}

func (m *StudentStore) List(ctx context.Context) ([]model.Student, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Student), args.Error(1)
}

func (m *StudentStore) GetByID(ctx context.Context, id int64) (model.Student, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Student), args.Error(1)
}

func (m *StudentStore) Create(ctx context.Context, student model.Student) (model.Student, error) {
	args := m.Called(ctx, student)
	return args.Get(0).(model.Student), args.Error(1)
}

func (m *StudentStore) Update(ctx context.Context, student model.Student) (model.Student, error) {
	args := m.Called(ctx, student)
	return args.Get(0).(model.Student), args.Error(1)
}

func (m *StudentStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type SubjectStore struct {
	mock.Mock
}

func (m *SubjectStore) List(ctx context.Context) ([]model.Subject, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Subject), args.Error(1)
}

func (m *SubjectStore) GetByID(ctx context.Context, id int64) (model.Subject, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Subject), args.Error(1)
}

func (m *SubjectStore) Create(ctx context.Context, subject model.Subject) (model.Subject, error) {
	args := m.Called(ctx, subject)
	return args.Get(0).(model.Subject), args.Error(1)
}

func (m *SubjectStore) Update(ctx context.Context, subject model.Subject) (model.Subject, error) {
	args := m.Called(ctx, subject)
	return args.Get(0).(model.Subject), args.Error(1)
}

func (m *SubjectStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type GradeStore struct {
	mock.Mock
}

func (m *GradeStore) List(ctx context.Context) ([]model.Grade, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Grade), args.Error(1)
}

func (m *GradeStore) GetByID(ctx context.Context, id int64) (model.Grade, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Grade), args.Error(1)
}

func (m *GradeStore) Create(ctx context.Context, grade model.Grade) (model.Grade, error) {
	args := m.Called(ctx, grade)
	return args.Get(0).(model.Grade), args.Error(1)
}

func (m *GradeStore) Update(ctx context.Context, grade model.Grade) (model.Grade, error) {
	args := m.Called(ctx, grade)
	return args.Get(0).(model.Grade), args.Error(1)
}

func (m *GradeStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *GradeStore) ListForStudent(ctx context.Context, studentID int64) ([]model.StudentGradeRow, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StudentGradeRow), args.Error(1)
}

func (m *GradeStore) OverallAverage(ctx context.Context, studentID int64) (float64, bool, error) {
	args := m.Called(ctx, studentID)
	return args.Get(0).(float64), args.Bool(1), args.Error(2)
}

func (m *GradeStore) PendingSubjects(ctx context.Context, studentID int64) ([]model.Subject, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Subject), args.Error(1)
}

func (m *GradeStore) ListForSubject(ctx context.Context, subjectID int64) ([]model.SubjectGradeRow, error) {
	args := m.Called(ctx, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SubjectGradeRow), args.Error(1)
}

func (m *GradeStore) PendingStudents(ctx context.Context, subjectID int64) ([]model.Student, error) {
	args := m.Called(ctx, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Student), args.Error(1)
}

func (m *GradeStore) SubjectAverage(ctx context.Context, studentID, subjectID int64) (float64, bool, error) {
	args := m.Called(ctx, studentID, subjectID)
	return args.Get(0).(float64), args.Bool(1), args.Error(2)
}

type TokenManager struct {
	mock.Mock
}

func (m *TokenManager) Issue(userID uuid.UUID, email string) (string, error) {
	args := m.Called(userID, email)
	return args.String(0), args.Error(1)
}

func (m *TokenManager) Parse(token string) (*model.Claims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Claims), args.Error(1)
}

type PasswordHasher struct {
	mock.Mock
}

func (m *PasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *PasswordHasher) Compare(hash, password string) error {
	args := m.Called(hash, password)
	return args.Error(0)
}
