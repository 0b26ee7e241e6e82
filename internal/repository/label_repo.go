package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"gotmail/internal/model"
)

type LabelRepository struct {
	db *pgxpool.Pool
}

func NewLabelRepository(db *pgxpool.Pool) *LabelRepository {
	return &LabelRepository{db: db}
}

func (r *LabelRepository) ListByUser(ctx context.Context, userID int64) ([]model.Label, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, user_id, name, color
        FROM labels
        WHERE user_id = $1
        ORDER BY id
    `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	labels := []model.Label{}
	for rows.Next() {
		var l model.Label
		if err := rows.Scan(&l.ID, &l.UserID, &l.Name, &l.Color); err != nil {
			return nil, err
		}
		labels = append(labels, l)
	}
	return labels, rows.Err()
}

// FindOwned returns the subset of ids that are labels belonging to the
// user. Callers compare lengths to detect foreign or unknown labels.
func (r *LabelRepository) FindOwned(ctx context.Context, userID int64, ids []int64) ([]model.Label, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.db.Query(ctx, `
        SELECT id, user_id, name, color
        FROM labels
        WHERE user_id = $1 AND id = ANY($2)
    `, userID, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	labels := []model.Label{}
	for rows.Next() {
		var l model.Label
		if err := rows.Scan(&l.ID, &l.UserID, &l.Name, &l.Color); err != nil {
			return nil, err
		}
		labels = append(labels, l)
	}
	return labels, rows.Err()
}
