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

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const groupSelect = `
	SELECT g.id, g.name, g.description, g.version, g.created_at, g.updated_at,
	       o.id, o.name, o.email, o.password_hash, o.session, o.created_at, o.updated_at
	FROM groups g
	JOIN users o ON o.id = g.owner_id`

type GroupRepository struct {
	pool *pgxpool.Pool
}

func NewGroupRepository(pool *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{pool: pool}
}

func (r *GroupRepository) Insert(ctx context.Context, g *entity.Group) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			INSERT INTO groups (name, description, owner_id)
			VALUES ($1, $2, $3)
			RETURNING id, version, created_at, updated_at
		`, g.Name, g.Description, g.Owner.ID)
		if err := row.Scan(&g.ID, &g.Version, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return err
		}
		return writeMembers(ctx, tx, g)
	})
}

// Update replaces the member snapshot when g.Version still matches the row.
// On success g.Version is the new version.
func (r *GroupRepository) Update(ctx context.Context, g *entity.Group) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		now := time.Now().UTC()
		var version int64
		err := tx.QueryRow(ctx, `
			UPDATE groups
			SET name = $1, description = $2, version = version + 1, updated_at = $3
			WHERE id = $4 AND version = $5
			RETURNING version
		`, g.Name, g.Description, now, g.ID, g.Version).Scan(&version)
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM groups WHERE id = $1)`, g.ID).Scan(&exists); err != nil {
				return err
			}
			if !exists {
				return repository.ErrNotFound
			}
			return repository.ErrConflict
		}
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM group_members WHERE group_id = $1`, g.ID); err != nil {
			return err
		}
		if err := writeMembers(ctx, tx, g); err != nil {
			return err
		}
		g.Version = version
		g.UpdatedAt = now
		return nil
	})
}

func (r *GroupRepository) FindByID(ctx context.Context, id string) (*entity.Group, error) {
	if !isUUID(id) {
		return nil, repository.ErrNotFound
	}
	g, err := scanGroup(r.pool.QueryRow(ctx, groupSelect+` WHERE g.id = $1`, id))
	if err != nil {
		return nil, err
	}
	if err := loadMembers(ctx, r.pool, []*entity.Group{g}); err != nil {
		return nil, err
	}
	return g, nil
}

func (r *GroupRepository) FindByUser(ctx context.Context, userID string) ([]*entity.Group, error) {
	if !isUUID(userID) {
		return []*entity.Group{}, nil
	}
	rows, err := r.pool.Query(ctx, groupSelect+`
		WHERE g.owner_id = $1
		   OR EXISTS (SELECT 1 FROM group_members gm WHERE gm.group_id = g.id AND gm.user_id = $1)
		ORDER BY g.created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := []*entity.Group{}
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if err := loadMembers(ctx, r.pool, groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func writeMembers(ctx context.Context, tx pgx.Tx, g *entity.Group) error {
	if len(g.Members) == 0 {
		return nil
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO group_members (group_id, user_id, position)
		SELECT $1, m.user_id, m.position
		FROM unnest($2::uuid[]) WITH ORDINALITY AS m(user_id, position)
	`, g.ID, g.MemberIDs())
	return err
}

// loadMembers fills Members for every group with one query.
func loadMembers(ctx context.Context, q querier, groups []*entity.Group) error {
	if len(groups) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Group, len(groups))
	ids := make([]string, 0, len(groups))
	for _, g := range groups {
		g.Members = []*entity.User{}
		byID[g.ID] = g
		ids = append(ids, g.ID)
	}

	rows, err := q.Query(ctx, `
		SELECT gm.group_id, u.id, u.name, u.email, u.password_hash, u.session, u.created_at, u.updated_at
		FROM group_members gm
		JOIN users u ON u.id = gm.user_id
		WHERE gm.group_id = ANY($1::uuid[])
		ORDER BY gm.group_id, gm.position
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var groupID string
		u := &entity.User{}
		if err := rows.Scan(&groupID, &u.ID, &u.Name, &u.Email, &u.Password, &u.Session, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return err
		}
		if g, ok := byID[groupID]; ok {
			g.Members = append(g.Members, u)
		}
	}
	return rows.Err()
}

func scanGroup(row pgx.Row) (*entity.Group, error) {
	g := &entity.Group{Owner: &entity.User{}}
	o := g.Owner
	err := row.Scan(&g.ID, &g.Name, &g.Description, &g.Version, &g.CreatedAt, &g.UpdatedAt,
		&o.ID, &o.Name, &o.Email, &o.Password, &o.Session, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

var _ repository.GroupRepository = (*GroupRepository)(nil)
