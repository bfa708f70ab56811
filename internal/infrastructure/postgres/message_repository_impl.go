package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-ddd-group-chat/internal/domain/entity"
	"github.com/oksasatya/go-ddd-group-chat/internal/domain/repository"
)

const messageSelect = `
	SELECT m.id, m.group_id, m.content, m.created_at, m.updated_at,
	       s.id, s.name, s.email, s.password_hash, s.session, s.created_at, s.updated_at
	FROM messages m
	JOIN users s ON s.id = m.sender_id`

type MessageRepository struct {
	pool *pgxpool.Pool
}

func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{pool: pool}
}

func (r *MessageRepository) Insert(ctx context.Context, m *entity.Message) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO messages (group_id, sender_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, m.GroupID, m.Sender.ID, m.Content, m.CreatedAt, m.UpdatedAt)
	return row.Scan(&m.ID)
}

func (r *MessageRepository) Update(ctx context.Context, m *entity.Message) error {
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = time.Now().UTC()
	}
	res, err := r.pool.Exec(ctx, `
		UPDATE messages SET content = $1, updated_at = $2 WHERE id = $3
	`, m.Content, m.UpdatedAt, m.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MessageRepository) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return repository.ErrNotFound
	}
	res, err := r.pool.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MessageRepository) FindByID(ctx context.Context, id string) (*entity.Message, error) {
	if !isUUID(id) {
		return nil, repository.ErrNotFound
	}
	return scanMessage(r.pool.QueryRow(ctx, messageSelect+` WHERE m.id = $1`, id))
}

func (r *MessageRepository) FindByGroup(ctx context.Context, groupID string) ([]*entity.Message, error) {
	if !isUUID(groupID) {
		return []*entity.Message{}, nil
	}
	rows, err := r.pool.Query(ctx, messageSelect+` WHERE m.group_id = $1 ORDER BY m.created_at, m.id`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*entity.Message{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanMessage(row pgx.Row) (*entity.Message, error) {
	m := &entity.Message{Sender: &entity.User{}}
	s := m.Sender
	err := row.Scan(&m.ID, &m.GroupID, &m.Content, &m.CreatedAt, &m.UpdatedAt,
		&s.ID, &s.Name, &s.Email, &s.Password, &s.Session, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

var _ repository.MessageRepository = (*MessageRepository)(nil)
