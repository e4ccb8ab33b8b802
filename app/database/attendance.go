package database

import (
	"context"

	"class-tracker/app/models"

	"github.com/pkg/errors"
)

func (s *PostgresStore) CreateAttendance(ctx context.Context, record *models.Attendance) error {
	query := `INSERT INTO attendance (class_id, date, status) VALUES ($1, $2, $3) RETURNING id`
	err := s.db.QueryRowContext(ctx, query, record.ClassID, record.Date, record.Status).Scan(&record.ID)
	return errors.Wrap(err, "create attendance")
}

func (s *PostgresStore) ListAttendance(ctx context.Context, classID int64, order models.SortOrder) ([]models.Attendance, error) {
	query := `SELECT id, class_id, date, status FROM attendance WHERE class_id = $1 ORDER BY date COLLATE "C" DESC, id DESC`
	if order == models.Asc {
		query = `SELECT id, class_id, date, status FROM attendance WHERE class_id = $1 ORDER BY date COLLATE "C" ASC, id ASC`
	}

	rows, err := s.db.QueryContext(ctx, query, classID)
	if err != nil {
		return nil, errors.Wrap(err, "list attendance")
	}
	defer rows.Close()

	var records []models.Attendance
	for rows.Next() {
		var a models.Attendance
		if err := rows.Scan(&a.ID, &a.ClassID, &a.Date, &a.Status); err != nil {
			return nil, errors.Wrap(err, "scan attendance")
		}
		records = append(records, a)
	}
	return records, errors.Wrap(rows.Err(), "list attendance")
}
