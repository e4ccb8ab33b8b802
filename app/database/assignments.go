package database

import (
	"context"
	"database/sql"

	"class-tracker/app/models"

	"github.com/pkg/errors"
)

func (s *PostgresStore) CreateAssignment(ctx context.Context, a *models.Assignment) error {
	query := `INSERT INTO assignments (class_id, title, deadline, note) VALUES ($1, $2, $3, $4) RETURNING id, submitted`
	err := s.db.QueryRowContext(ctx, query, a.ClassID, a.Title, a.Deadline, a.Note).Scan(&a.ID, &a.Submitted)
	return errors.Wrap(err, "create assignment")
}

func (s *PostgresStore) ListAssignments(ctx context.Context, classID int64, mode models.AssignmentMode) ([]models.Assignment, error) {
	query := `SELECT id, class_id, title, deadline, submitted, note FROM assignments
			  WHERE class_id = $1 AND submitted = false ORDER BY deadline COLLATE "C" ASC, id ASC`
	if mode == models.ModeAll {
		query = `SELECT id, class_id, title, deadline, submitted, note FROM assignments
				 WHERE class_id = $1 ORDER BY id ASC`
	}
	return s.queryAssignments(ctx, query, classID)
}

func (s *PostgresStore) ListUnsubmittedAssignments(ctx context.Context, ownerID int64) ([]models.Assignment, error) {
	query := `SELECT a.id, a.class_id, a.title, a.deadline, a.submitted, a.note
			  FROM assignments a
			  JOIN classes c ON c.id = a.class_id
			  WHERE a.submitted = false AND ($1::bigint = 0 OR c.user_id = $1::bigint)
			  ORDER BY a.id ASC`
	return s.queryAssignments(ctx, query, ownerID)
}

func (s *PostgresStore) queryAssignments(ctx context.Context, query string, arg int64) ([]models.Assignment, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, errors.Wrap(err, "list assignments")
	}
	defer rows.Close()

	var list []models.Assignment
	for rows.Next() {
		var a models.Assignment
		var note sql.NullString
		if err := rows.Scan(&a.ID, &a.ClassID, &a.Title, &a.Deadline, &a.Submitted, &note); err != nil {
			return nil, errors.Wrap(err, "scan assignment")
		}
		a.Note = note.String
		list = append(list, a)
	}
	return list, errors.Wrap(rows.Err(), "list assignments")
}

func (s *PostgresStore) ToggleAssignment(ctx context.Context, classID, assignmentID, ownerID int64) (bool, error) {
	query := `UPDATE assignments SET submitted = NOT submitted
			  WHERE id = $1 AND class_id = $2
			  AND EXISTS (SELECT 1 FROM classes c WHERE c.id = $2 AND ($3::bigint = 0 OR c.user_id = $3::bigint))
			  RETURNING submitted`
	var submitted bool
	err := s.db.QueryRowContext(ctx, query, assignmentID, classID, ownerID).Scan(&submitted)
	if err == sql.ErrNoRows {
		return false, ErrNotFound
	}
	if err != nil {
		return false, errors.Wrap(err, "toggle assignment")
	}
	return submitted, nil
}

func (s *PostgresStore) DeleteAssignment(ctx context.Context, classID, assignmentID, ownerID int64) error {
	query := `DELETE FROM assignments
			  WHERE id = $1 AND class_id = $2
			  AND EXISTS (SELECT 1 FROM classes c WHERE c.id = $2 AND ($3::bigint = 0 OR c.user_id = $3::bigint))`
	res, err := s.db.ExecContext(ctx, query, assignmentID, classID, ownerID)
	if err != nil {
		return errors.Wrap(err, "delete assignment")
	}
	return affectedOne(res, "delete assignment")
}
