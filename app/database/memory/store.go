// Package memory is a mutex-guarded in-process implementation of database.Store.
// Data is lost when the process exits.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"class-tracker/app/database"
	"class-tracker/app/models"
)

type Store struct {
	mu sync.RWMutex

	seq         int64
	users       map[int64]*models.User
	sessions    map[string]*models.Session
	classes     map[int64]*models.Class
	attendance  map[int64]*models.Attendance
	evaluations map[int64]*models.Evaluation
	assignments map[int64]*models.Assignment

	now func() time.Time
}

var _ database.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		users:       make(map[int64]*models.User),
		sessions:    make(map[string]*models.Session),
		classes:     make(map[int64]*models.Class),
		attendance:  make(map[int64]*models.Attendance),
		evaluations: make(map[int64]*models.Evaluation),
		assignments: make(map[int64]*models.Assignment),
		now:         time.Now,
	}
}

func (s *Store) Close() error { return nil }

// SetClock replaces the time source used for session expiry and timestamps.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// nextID hands out ids from one shared sequence, so ids increase in insertion order.
func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

func visible(class *models.Class, ownerID int64) bool {
	return ownerID == database.Unscoped || class.OwnerID == ownerID
}

// ownedClass must be called with s.mu held.
func (s *Store) ownedClass(id, ownerID int64) (*models.Class, bool) {
	class, ok := s.classes[id]
	if !ok || !visible(class, ownerID) {
		return nil, false
	}
	return class, true
}

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username {
			return database.ErrUsernameTaken
		}
	}
	user.ID = s.nextID()
	user.CreatedAt = s.now()
	u := *user
	s.users[u.ID] = &u
	return nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			user := *u
			return &user, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *Store) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if u, ok := s.users[id]; ok {
		user := *u
		return &user, nil
	}
	return nil, database.ErrNotFound
}

func (s *Store) CreateSession(_ context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session.CreatedAt = s.now()
	sess := *session
	s.sessions[sess.ID] = &sess
	return nil
}

func (s *Store) GetSessionByID(_ context.Context, id string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok || sess.Expired(s.now()) {
		return nil, database.ErrNotFound
	}
	session := *sess
	return &session, nil
}

func (s *Store) DeleteSession(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

func (s *Store) CreateClass(_ context.Context, class *models.Class) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	class.ID = s.nextID()
	c := *class
	s.classes[c.ID] = &c
	return nil
}

func (s *Store) GetClass(_ context.Context, id, ownerID int64) (*models.Class, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	class, ok := s.ownedClass(id, ownerID)
	if !ok {
		return nil, database.ErrNotFound
	}
	c := *class
	return &c, nil
}

func (s *Store) ListClasses(_ context.Context, ownerID int64) ([]models.Class, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var classes []models.Class
	for _, c := range s.classes {
		if visible(c, ownerID) {
			classes = append(classes, *c)
		}
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].ID < classes[j].ID })
	return classes, nil
}

func (s *Store) UpdateClass(_ context.Context, class *models.Class) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.ownedClass(class.ID, class.OwnerID)
	if !ok {
		return database.ErrNotFound
	}
	existing.Name = class.Name
	existing.Day = class.Day
	existing.Period = class.Period
	existing.Room = class.Room
	return nil
}

// DeleteClass holds the write lock for the whole cascade, so readers never see
// the class gone with its dependents still present.
func (s *Store) DeleteClass(_ context.Context, id, ownerID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ownedClass(id, ownerID); !ok {
		return database.ErrNotFound
	}
	for k, a := range s.attendance {
		if a.ClassID == id {
			delete(s.attendance, k)
		}
	}
	for k, e := range s.evaluations {
		if e.ClassID == id {
			delete(s.evaluations, k)
		}
	}
	for k, a := range s.assignments {
		if a.ClassID == id {
			delete(s.assignments, k)
		}
	}
	delete(s.classes, id)
	return nil
}

func (s *Store) CreateAttendance(_ context.Context, record *models.Attendance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.classes[record.ClassID]; !ok {
		return database.ErrNotFound
	}
	record.ID = s.nextID()
	r := *record
	s.attendance[r.ID] = &r
	return nil
}

func (s *Store) ListAttendance(_ context.Context, classID int64, order models.SortOrder) ([]models.Attendance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []models.Attendance
	for _, a := range s.attendance {
		if a.ClassID == classID {
			records = append(records, *a)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if order == models.Asc {
			if a.Date != b.Date {
				return a.Date < b.Date
			}
			return a.ID < b.ID
		}
		if a.Date != b.Date {
			return a.Date > b.Date
		}
		return a.ID > b.ID
	})
	return records, nil
}

func (s *Store) CreateEvaluation(_ context.Context, eval *models.Evaluation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.classes[eval.ClassID]; !ok {
		return database.ErrNotFound
	}
	eval.ID = s.nextID()
	e := *eval
	s.evaluations[e.ID] = &e
	return nil
}

func (s *Store) ListEvaluations(_ context.Context, classID int64) ([]models.Evaluation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var evals []models.Evaluation
	for _, e := range s.evaluations {
		if e.ClassID == classID {
			evals = append(evals, *e)
		}
	}
	sort.Slice(evals, func(i, j int) bool { return evals[i].ID < evals[j].ID })
	return evals, nil
}

func (s *Store) DeleteEvaluation(_ context.Context, classID, evalID, ownerID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.evaluations[evalID]
	if !ok || e.ClassID != classID {
		return database.ErrNotFound
	}
	if _, ok := s.ownedClass(classID, ownerID); !ok {
		return database.ErrNotFound
	}
	delete(s.evaluations, evalID)
	return nil
}

func (s *Store) CreateAssignment(_ context.Context, a *models.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.classes[a.ClassID]; !ok {
		return database.ErrNotFound
	}
	a.ID = s.nextID()
	a.Submitted = false
	cp := *a
	s.assignments[cp.ID] = &cp
	return nil
}

func (s *Store) ListAssignments(_ context.Context, classID int64, mode models.AssignmentMode) ([]models.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var list []models.Assignment
	for _, a := range s.assignments {
		if a.ClassID != classID {
			continue
		}
		if mode != models.ModeAll && a.Submitted {
			continue
		}
		list = append(list, *a)
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if mode != models.ModeAll && a.Deadline != b.Deadline {
			return a.Deadline < b.Deadline
		}
		return a.ID < b.ID
	})
	return list, nil
}

func (s *Store) ListUnsubmittedAssignments(_ context.Context, ownerID int64) ([]models.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var list []models.Assignment
	for _, a := range s.assignments {
		if a.Submitted {
			continue
		}
		if _, ok := s.ownedClass(a.ClassID, ownerID); !ok {
			continue
		}
		list = append(list, *a)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (s *Store) ToggleAssignment(_ context.Context, classID, assignmentID, ownerID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.assignments[assignmentID]
	if !ok || a.ClassID != classID {
		return false, database.ErrNotFound
	}
	if _, ok := s.ownedClass(classID, ownerID); !ok {
		return false, database.ErrNotFound
	}
	a.Submitted = !a.Submitted
	return a.Submitted, nil
}

func (s *Store) DeleteAssignment(_ context.Context, classID, assignmentID, ownerID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.assignments[assignmentID]
	if !ok || a.ClassID != classID {
		return database.ErrNotFound
	}
	if _, ok := s.ownedClass(classID, ownerID); !ok {
		return database.ErrNotFound
	}
	delete(s.assignments, assignmentID)
	return nil
}

// Counts reports the number of attendance, evaluation and assignment rows
// referencing classID.
func (s *Store) Counts(classID int64) (attendance, evaluations, assignments int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.attendance {
		if a.ClassID == classID {
			attendance++
		}
	}
	for _, e := range s.evaluations {
		if e.ClassID == classID {
			evaluations++
		}
	}
	for _, a := range s.assignments {
		if a.ClassID == classID {
			assignments++
		}
	}
	return attendance, evaluations, assignments
}
