package database

import (
	"context"
	"database/sql"

	"class-tracker/app/models"

	"github.com/pkg/errors"
)

func (s *PostgresStore) CreateClass(ctx context.Context, class *models.Class) error {
	query := `INSERT INTO classes (name, day, period, room, user_id) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := s.db.QueryRowContext(ctx, query,
		class.Name, class.Day, class.Period, class.Room, nullOwner(class.OwnerID),
	).Scan(&class.ID)
	return errors.Wrap(err, "create class")
}

func (s *PostgresStore) GetClass(ctx context.Context, id, ownerID int64) (*models.Class, error) {
	query := `SELECT id, name, day, period, room, user_id FROM classes
			  WHERE id = $1 AND ($2::bigint = 0 OR user_id = $2::bigint)`

	class, err := scanClass(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get class")
	}
	return class, nil
}

func (s *PostgresStore) ListClasses(ctx context.Context, ownerID int64) ([]models.Class, error) {
	query := `SELECT id, name, day, period, room, user_id FROM classes
			  WHERE ($1::bigint = 0 OR user_id = $1::bigint)
			  ORDER BY id ASC`
	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "list classes")
	}
	defer rows.Close()

	var classes []models.Class
	for rows.Next() {
		class, err := scanClass(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan class")
		}
		classes = append(classes, *class)
	}
	return classes, errors.Wrap(rows.Err(), "list classes")
}

func (s *PostgresStore) UpdateClass(ctx context.Context, class *models.Class) error {
	query := `UPDATE classes SET name = $1, day = $2, period = $3, room = $4
			  WHERE id = $5 AND ($6::bigint = 0 OR user_id = $6::bigint)`
	res, err := s.db.ExecContext(ctx, query,
		class.Name, class.Day, class.Period, class.Room, class.ID, class.OwnerID,
	)
	if err != nil {
		return errors.Wrap(err, "update class")
	}
	return affectedOne(res, "update class")
}

func (s *PostgresStore) DeleteClass(ctx context.Context, id, ownerID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin delete class")
	}
	defer tx.Rollback()

	var found int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM classes WHERE id = $1 AND ($2::bigint = 0 OR user_id = $2::bigint) FOR UPDATE`,
		id, ownerID,
	).Scan(&found)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return errors.Wrap(err, "lock class")
	}

	for _, query := range []string{
		`DELETE FROM attendance WHERE class_id = $1`,
		`DELETE FROM evaluation WHERE class_id = $1`,
		`DELETE FROM assignments WHERE class_id = $1`,
		`DELETE FROM classes WHERE id = $1`,
	} {
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			return errors.Wrapf(err, "delete class %d", id)
		}
	}

	return errors.Wrap(tx.Commit(), "commit delete class")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanClass(row rowScanner) (*models.Class, error) {
	var (
		class models.Class
		owner sql.NullInt64
	)
	if err := row.Scan(&class.ID, &class.Name, &class.Day, &class.Period, &class.Room, &owner); err != nil {
		return nil, err
	}
	class.OwnerID = owner.Int64
	return &class, nil
}
