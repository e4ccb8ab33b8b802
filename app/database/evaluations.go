package database

import (
	"context"

	"class-tracker/app/models"

	"github.com/pkg/errors"
)

func (s *PostgresStore) CreateEvaluation(ctx context.Context, eval *models.Evaluation) error {
	query := `INSERT INTO evaluation (class_id, method, percentage) VALUES ($1, $2, $3) RETURNING id`
	err := s.db.QueryRowContext(ctx, query, eval.ClassID, eval.Method, eval.Percentage).Scan(&eval.ID)
	return errors.Wrap(err, "create evaluation")
}

func (s *PostgresStore) ListEvaluations(ctx context.Context, classID int64) ([]models.Evaluation, error) {
	query := `SELECT id, class_id, method, percentage FROM evaluation WHERE class_id = $1 ORDER BY id ASC`
	rows, err := s.db.QueryContext(ctx, query, classID)
	if err != nil {
		return nil, errors.Wrap(err, "list evaluations")
	}
	defer rows.Close()

	var evals []models.Evaluation
	for rows.Next() {
		var e models.Evaluation
		if err := rows.Scan(&e.ID, &e.ClassID, &e.Method, &e.Percentage); err != nil {
			return nil, errors.Wrap(err, "scan evaluation")
		}
		evals = append(evals, e)
	}
	return evals, errors.Wrap(rows.Err(), "list evaluations")
}

func (s *PostgresStore) DeleteEvaluation(ctx context.Context, classID, evalID, ownerID int64) error {
	query := `DELETE FROM evaluation
			  WHERE id = $1 AND class_id = $2
			  AND EXISTS (SELECT 1 FROM classes c WHERE c.id = $2 AND ($3::bigint = 0 OR c.user_id = $3::bigint))`
	res, err := s.db.ExecContext(ctx, query, evalID, classID, ownerID)
	if err != nil {
		return errors.Wrap(err, "delete evaluation")
	}
	return affectedOne(res, "delete evaluation")
}
