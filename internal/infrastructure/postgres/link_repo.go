package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/tinyapp/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LinkRepository struct {
	pool *pgxpool.Pool
}

func NewLinkRepository(pool *pgxpool.Pool) *LinkRepository {
	return &LinkRepository{pool: pool}
}

func (r *LinkRepository) Create(ctx context.Context, l *domain.Link) (*domain.Link, error) {
	query := `
		INSERT INTO links (short_code, long_url, owner_id)
		VALUES ($1, $2, $3)
		RETURNING short_code, long_url, owner_id, created_at`

	created, err := scanLink(r.pool.QueryRow(ctx, query, l.ShortCode, l.LongURL, l.OwnerID))
	if err != nil {
		if isUniqueViolation(err, "links_pkey") {
			return nil, domain.ErrShortCodeTaken
		}
		return nil, err
	}
	return created, nil
}

func (r *LinkRepository) GetByShortCode(ctx context.Context, code string) (*domain.Link, error) {
	query := `SELECT short_code, long_url, owner_id, created_at FROM links WHERE short_code = $1`
	return scanLink(r.pool.QueryRow(ctx, query, code))
}

func (r *LinkRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Link, error) {
	links := []*domain.Link{}
	if ownerID == "" {
		return links, nil
	}

	query := `
		SELECT short_code, long_url, owner_id, created_at
		FROM links
		WHERE owner_id = $1
		ORDER BY seq`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list links rows: %w", err)
	}
	return links, nil
}

// Update changes the target URL. The ownership check and the write share one
// statement; a miss is then classified as not found or forbidden.
func (r *LinkRepository) Update(ctx context.Context, code, longURL, ownerID string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE links SET long_url = $1 WHERE short_code = $2 AND owner_id = $3`,
		longURL, code, ownerID,
	)
	if err != nil {
		return fmt.Errorf("update link: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	if _, err := r.GetByShortCode(ctx, code); err != nil {
		return err
	}
	return domain.ErrForbidden
}

// Delete removes a link owned by ownerID. Unknown codes are a no-op.
func (r *LinkRepository) Delete(ctx context.Context, code, ownerID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM links WHERE short_code = $1 AND owner_id = $2`,
		code, ownerID,
	)
	if err != nil {
		return fmt.Errorf("delete link: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	_, err = r.GetByShortCode(ctx, code)
	switch {
	case errors.Is(err, domain.ErrLinkNotFound):
		return nil
	case err != nil:
		return err
	}
	return domain.ErrForbidden
}

func (r *LinkRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM links`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count links: %w", err)
	}
	return n, nil
}

func scanLink(row pgx.Row) (*domain.Link, error) {
	var l domain.Link
	err := row.Scan(&l.ShortCode, &l.LongURL, &l.OwnerID, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLinkNotFound
		}
		return nil, fmt.Errorf("scan link: %w", err)
	}
	return &l, nil
}
