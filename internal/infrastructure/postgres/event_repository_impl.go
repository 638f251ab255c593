package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventfeed/eventfeed-api/internal/domain/entity"
	"github.com/eventfeed/eventfeed-api/internal/domain/repository"
)

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func (r *EventRepository) Create(ctx context.Context, e *entity.Event) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO events (id, title, caption, rating, image_url, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`, e.ID, e.Title, e.Caption, e.Rating, e.ImageURL, e.UserID, e.CreatedAt)

	return row.Scan(&e.CreatedAt)
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*entity.Event, error) {
	e := &entity.Event{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, title, caption, rating, image_url, user_id, created_at
		FROM events
		WHERE id = $1
	`, id)

	if err := row.Scan(&e.ID, &e.Title, &e.Caption, &e.Rating, &e.ImageURL, &e.UserID, &e.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return e, nil
}

// List returns a feed page, newest first. Event ids are UUIDv7 so the id
// tie-break keeps same-timestamp rows in insertion order.
func (r *EventRepository) List(ctx context.Context, offset, limit int) ([]entity.FeedEvent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT e.id, e.title, e.caption, e.rating, e.image_url, e.user_id, e.created_at,
		       u.username, u.profile_image
		FROM events e
		JOIN users u ON u.id = e.user_id
		ORDER BY e.created_at DESC, e.id DESC
		OFFSET $1 LIMIT $2
	`, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]entity.FeedEvent, 0, limit)
	for rows.Next() {
		var fe entity.FeedEvent
		if err := rows.Scan(&fe.ID, &fe.Title, &fe.Caption, &fe.Rating, &fe.ImageURL, &fe.UserID, &fe.CreatedAt,
			&fe.Owner.Username, &fe.Owner.ProfileImage); err != nil {
			return nil, err
		}
		items = append(items, fe)
	}
	return items, rows.Err()
}

func (r *EventRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM events`).Scan(&n)
	return n, err
}

func (r *EventRepository) ListByOwner(ctx context.Context, userID string) ([]entity.Event, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, caption, rating, image_url, user_id, created_at
		FROM events
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []entity.Event
	for rows.Next() {
		var e entity.Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Caption, &e.Rating, &e.ImageURL, &e.UserID, &e.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.EventRepository = (*EventRepository)(nil)
