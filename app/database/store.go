package database

import (
	"context"

	"class-tracker/app/models"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned when a row is absent or not visible to the acting owner.
	ErrNotFound = errors.New("not found")
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already exists")
)

// Unscoped is the owner id that disables ownership filtering (single-tenant mode).
const Unscoped int64 = 0

type Users interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

type Sessions interface {
	CreateSession(ctx context.Context, session *models.Session) error
	GetSessionByID(ctx context.Context, id string) (*models.Session, error)
	DeleteSession(ctx context.Context, id string) error
}

// Classes is scoped by owner id on every read and write; Unscoped sees everything.
type Classes interface {
	CreateClass(ctx context.Context, class *models.Class) error
	GetClass(ctx context.Context, id, ownerID int64) (*models.Class, error)
	// ListClasses returns visible classes ordered by id ascending.
	ListClasses(ctx context.Context, ownerID int64) ([]models.Class, error)
	UpdateClass(ctx context.Context, class *models.Class) error
	// DeleteClass removes the class and all attendance, evaluation and
	// assignment rows that reference it, atomically.
	DeleteClass(ctx context.Context, id, ownerID int64) error
}

type AttendanceLog interface {
	CreateAttendance(ctx context.Context, record *models.Attendance) error
	ListAttendance(ctx context.Context, classID int64, order models.SortOrder) ([]models.Attendance, error)
}

// Evaluations and Assignments take the parent class and owner on mutations so that
// a row id alone is never enough to change another user's data.
type Evaluations interface {
	CreateEvaluation(ctx context.Context, eval *models.Evaluation) error
	ListEvaluations(ctx context.Context, classID int64) ([]models.Evaluation, error)
	DeleteEvaluation(ctx context.Context, classID, evalID, ownerID int64) error
}

type Assignments interface {
	CreateAssignment(ctx context.Context, a *models.Assignment) error
	ListAssignments(ctx context.Context, classID int64, mode models.AssignmentMode) ([]models.Assignment, error)
	// ListUnsubmittedAssignments returns unsubmitted assignments of every class visible to ownerID.
	ListUnsubmittedAssignments(ctx context.Context, ownerID int64) ([]models.Assignment, error)
	// ToggleAssignment flips the submitted flag and returns the new value.
	ToggleAssignment(ctx context.Context, classID, assignmentID, ownerID int64) (bool, error)
	DeleteAssignment(ctx context.Context, classID, assignmentID, ownerID int64) error
}

type Store interface {
	Users
	Sessions
	Classes
	AttendanceLog
	Evaluations
	Assignments
	Close() error
}
