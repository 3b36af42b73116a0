package router

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mvillagra/gradebook-server/internal/hasher"
	"github.com/mvillagra/gradebook-server/internal/model"
	"github.com/mvillagra/gradebook-server/internal/service"
	"github.com/mvillagra/gradebook-server/internal/testutil"
	"github.com/mvillagra/gradebook-server/internal/token"
)

const testSecret = "router-test-secret"

// In-memory stores backing a full request flow without postgres.

type memUserStore struct {
	users map[string]model.User
}

func (m *memUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	u, ok := m.users[email]
	if !ok {
		return model.User{}, model.NewNotFound("user not found")
	}
	return u, nil
}

func (m *memUserStore) Create(_ context.Context, user model.User) (model.User, error) {
	if _, ok := m.users[user.Email]; ok {
		return model.User{}, model.NewConflict("resource already exists")
	}
	m.users[user.Email] = user
	return user, nil
}

type memStudentStore struct {
	nextID   int64
	students map[int64]model.Student
}

func (m *memStudentStore) List(_ context.Context) ([]model.Student, error) {
	out := []model.Student{}
	for _, s := range m.students {
		out = append(out, s)
	}
	return out, nil
}

func (m *memStudentStore) GetByID(_ context.Context, id int64) (model.Student, error) {
	s, ok := m.students[id]
	if !ok {
		return model.Student{}, model.NewNotFound("student not found")
	}
	return s, nil
}

func (m *memStudentStore) Create(_ context.Context, s model.Student) (model.Student, error) {
	m.nextID++
	s.ID = m.nextID
	m.students[s.ID] = s
	return s, nil
}

func (m *memStudentStore) Update(_ context.Context, s model.Student) (model.Student, error) {
	if _, ok := m.students[s.ID]; !ok {
		return model.Student{}, model.NewNotFound("student not found")
	}
	m.students[s.ID] = s
	return s, nil
}

func (m *memStudentStore) Delete(_ context.Context, id int64) error {
	if _, ok := m.students[id]; !ok {
		return model.NewNotFound("student not found")
	}
	delete(m.students, id)
	return nil
}

type memSubjectStore struct {
	nextID   int64
	subjects map[int64]model.Subject
}

func (m *memSubjectStore) List(_ context.Context) ([]model.Subject, error) {
	out := []model.Subject{}
	for _, s := range m.subjects {
		out = append(out, s)
	}
	return out, nil
}

func (m *memSubjectStore) GetByID(_ context.Context, id int64) (model.Subject, error) {
	s, ok := m.subjects[id]
	if !ok {
		return model.Subject{}, model.NewNotFound("subject not found")
	}
	return s, nil
}

func (m *memSubjectStore) Create(_ context.Context, s model.Subject) (model.Subject, error) {
	m.nextID++
	s.ID = m.nextID
	m.subjects[s.ID] = s
	return s, nil
}

func (m *memSubjectStore) Update(_ context.Context, s model.Subject) (model.Subject, error) {
	if _, ok := m.subjects[s.ID]; !ok {
		return model.Subject{}, model.NewNotFound("subject not found")
	}
	m.subjects[s.ID] = s
	return s, nil
}

func (m *memSubjectStore) Delete(_ context.Context, id int64) error {
	if _, ok := m.subjects[id]; !ok {
		return model.NewNotFound("subject not found")
	}
	delete(m.subjects, id)
	return nil
}

type memGradeStore struct {
	nextID   int64
	grades   map[int64]model.Grade
	students *memStudentStore
	subjects *memSubjectStore
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

func (m *memGradeStore) List(_ context.Context) ([]model.Grade, error) {
	out := []model.Grade{}
	for _, g := range m.grades {
		out = append(out, g)
	}
	return out, nil
}

func (m *memGradeStore) GetByID(_ context.Context, id int64) (model.Grade, error) {
	g, ok := m.grades[id]
	if !ok {
		return model.Grade{}, model.NewNotFound("grade not found")
	}
	return g, nil
}

func (m *memGradeStore) Create(_ context.Context, g model.Grade) (model.Grade, error) {
	m.nextID++
	g.ID = m.nextID
	m.grades[g.ID] = g
	return g, nil
}

func (m *memGradeStore) Update(_ context.Context, g model.Grade) (model.Grade, error) {
	if _, ok := m.grades[g.ID]; !ok {
		return model.Grade{}, model.NewNotFound("grade not found")
	}
	m.grades[g.ID] = g
	return g, nil
}

func (m *memGradeStore) Delete(_ context.Context, id int64) error {
	if _, ok := m.grades[id]; !ok {
		return model.NewNotFound("grade not found")
	}
	delete(m.grades, id)
	return nil
}

func (m *memGradeStore) ListForStudent(_ context.Context, studentID int64) ([]model.StudentGradeRow, error) {
	out := []model.StudentGradeRow{}
	for _, g := range m.grades {
		if g.StudentID == studentID {
			st := m.students.students[g.StudentID]
			out = append(out, model.StudentGradeRow{
				Student: st.FirstName + " " + st.LastName,
				Subject: m.subjects.subjects[g.SubjectID].Name,
				Score1:  g.Score1, Score2: g.Score2, Score3: g.Score3,
				Average: round2((g.Score1 + g.Score2 + g.Score3) / 3),
			})
		}
	}
	return out, nil
}

func (m *memGradeStore) OverallAverage(_ context.Context, studentID int64) (float64, bool, error) {
	var sum float64
	var n int
	for _, g := range m.grades {
		if g.StudentID == studentID {
			sum += round2((g.Score1 + g.Score2 + g.Score3) / 3)
			n++
		}
	}
	if n == 0 {
		return 0, false, nil
	}
	return round2(sum / float64(n)), true, nil
}

func (m *memGradeStore) PendingSubjects(_ context.Context, studentID int64) ([]model.Subject, error) {
	out := []model.Subject{}
	for id, s := range m.subjects.subjects {
		graded := false
		for _, g := range m.grades {
			if g.StudentID == studentID && g.SubjectID == id {
				graded = true
				break
			}
		}
		if !graded {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memGradeStore) ListForSubject(_ context.Context, subjectID int64) ([]model.SubjectGradeRow, error) {
	out := []model.SubjectGradeRow{}
	for _, g := range m.grades {
		if g.SubjectID == subjectID {
			st := m.students.students[g.StudentID]
			out = append(out, model.SubjectGradeRow{
				Student: st.FirstName + " " + st.LastName,
				Score1:  g.Score1, Score2: g.Score2, Score3: g.Score3,
				Average: round2((g.Score1 + g.Score2 + g.Score3) / 3),
			})
		}
	}
	return out, nil
}

func (m *memGradeStore) PendingStudents(_ context.Context, subjectID int64) ([]model.Student, error) {
	out := []model.Student{}
	for id, st := range m.students.students {
		graded := false
		for _, g := range m.grades {
			if g.StudentID == id && g.SubjectID == subjectID {
				graded = true
				break
			}
		}
		if !graded {
			out = append(out, st)
		}
	}
	return out, nil
}

func (m *memGradeStore) SubjectAverage(_ context.Context, studentID, subjectID int64) (float64, bool, error) {
	for _, g := range m.grades {
		if g.StudentID == studentID && g.SubjectID == subjectID {
			return round2((g.Score1 + g.Score2 + g.Score3) / 3), true, nil
		}
	}
	return 0, false, nil
}

func newTestRouter() *fiber.App {
	log := testutil.MakeNoopLogger()
	tokenManager := token.NewJWT(testSecret)
	passwordHasher := hasher.NewBcrypt(bcrypt.MinCost)

	studentStore := &memStudentStore{students: map[int64]model.Student{}}
	subjectStore := &memSubjectStore{subjects: map[int64]model.Subject{}}

	authService := service.NewAuth(&memUserStore{users: map[string]model.User{}}, passwordHasher, tokenManager, log)
	studentService := service.NewStudents(studentStore, log)
	subjectService := service.NewSubjects(subjectStore, log)
	gradeService := service.NewGrades(&memGradeStore{
		grades:   map[int64]model.Grade{},
		students: studentStore,
		subjects: subjectStore,
	}, log)

	return New(authService, studentService, subjectService, gradeService, gradeService, tokenManager, log).Register()
}

func doJSON(t *testing.T, app *fiber.App, method, path, body, bearer string) *http.Response {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// expiredToken builds a token signed with the right secret whose
// expiry is already in the past.
func expiredToken(t *testing.T) string {
	t.Helper()
	now := time.Now().Add(-5 * time.Hour)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, model.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(4 * time.Hour)),
		},
		UserID: uuid.New(),
		Email:  "a@x.com",
	})
	signed, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestRouter_Ping_NoAuthRequired(t *testing.T) {
	app := newTestRouter()

	resp := doJSON(t, app, http.MethodGet, "/api/ping", "", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRouter_AuthFlow(t *testing.T) {
	app := newTestRouter()

	// Register.
	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", `{"email":"a@x.com","password":"pw123456"}`, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var registered map[string]string
	decodeBody(t, resp, &registered)
	require.NotEmpty(t, registered["token"])

	// Duplicate registration conflicts.
	resp = doJSON(t, app, http.MethodPost, "/api/auth/register", `{"email":"a@x.com","password":"pw123456"}`, "")
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// Login with the same credentials.
	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", `{"email":"a@x.com","password":"pw123456"}`, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var loggedIn map[string]string
	decodeBody(t, resp, &loggedIn)
	validToken := loggedIn["token"]
	require.NotEmpty(t, validToken)

	// No header: 401 before any handler runs.
	resp = doJSON(t, app, http.MethodGet, "/api/students", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Expired token: 403.
	resp = doJSON(t, app, http.MethodGet, "/api/students", "", expiredToken(t))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Valid token: empty roster.
	resp = doJSON(t, app, http.MethodGet, "/api/students", "", validToken)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var students []model.Student
	decodeBody(t, resp, &students)
	assert.Empty(t, students)
}

func TestRouter_GradebookScenario(t *testing.T) {
	app := newTestRouter()

	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", `{"email":"teacher@x.com","password":"pw123456"}`, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var auth map[string]string
	decodeBody(t, resp, &auth)
	tokenString := auth["token"]

	// Create student.
	resp = doJSON(t, app, http.MethodPost, "/api/students", `{"first_name":"Ana","last_name":"Perez"}`, tokenString)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var student model.Student
	decodeBody(t, resp, &student)

	// Create subject.
	resp = doJSON(t, app, http.MethodPost, "/api/subjects", `{"name":"Math"}`, tokenString)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var subject model.Subject
	decodeBody(t, resp, &subject)

	// Create grade 6,7,8.
	body := fmt.Sprintf(`{"student_id":%d,"subject_id":%d,"score1":6,"score2":7,"score3":8}`, student.ID, subject.ID)
	resp = doJSON(t, app, http.MethodPost, "/api/grades", body, tokenString)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Overall average is 7.00.
	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/students/%d/average", student.ID), "", tokenString)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var avg map[string]float64
	decodeBody(t, resp, &avg)
	assert.Equal(t, 7.00, avg["promedio_general"])

	// Per-subject average matches.
	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/grades/%d/%d/average", student.ID, subject.ID), "", tokenString)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var subjectAvg map[string]float64
	decodeBody(t, resp, &subjectAvg)
	assert.Equal(t, 7.00, subjectAvg["promedio"])

	// The subject roster lists the graded student with the same average.
	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/subjects/%d/students", subject.ID), "", tokenString)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var roster []model.SubjectGradeRow
	decodeBody(t, resp, &roster)
	require.Len(t, roster, 1)
	assert.Equal(t, "Ana Perez", roster[0].Student)
	assert.Equal(t, 7.00, roster[0].Average)

	// A grade body with an omitted score is rejected, not stored as zero.
	body = fmt.Sprintf(`{"student_id":%d,"subject_id":%d,"score1":6,"score3":8}`, student.ID, subject.ID)
	resp = doJSON(t, app, http.MethodPost, "/api/grades", body, tokenString)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// A student with no grades yields 404 on the aggregate.
	resp = doJSON(t, app, http.MethodPost, "/api/students", `{"first_name":"Luis","last_name":"Gomez"}`, tokenString)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var other model.Student
	decodeBody(t, resp, &other)

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/students/%d/grades", other.ID), "", tokenString)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// The ungraded student shows up as pending for the subject.
	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/subjects/%d/pending-students", subject.ID), "", tokenString)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var pending []model.Student
	decodeBody(t, resp, &pending)
	require.Len(t, pending, 1)
	assert.Equal(t, "Luis", pending[0].FirstName)
}
