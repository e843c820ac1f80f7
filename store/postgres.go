package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rushteam/dishrec/core"
)

// PostgresCatalog 是 Postgres 实现的菜品目录。
// 全文相关度与相似菜品查询都下放给 Postgres 的全文检索
// （to_tsvector / plainto_tsquery / ts_rank），core 只消费分数。
type PostgresCatalog struct {
	pool *pgxpool.Pool

	// TextSearchConfig 全文检索配置，默认 "simple"（菜名多为专有词，不做词干化）
	TextSearchConfig string
}

func NewPostgresCatalog(ctx context.Context, dsn string) (*PostgresCatalog, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresCatalog{pool: pool, TextSearchConfig: "simple"}, nil
}

func (p *PostgresCatalog) Name() string { return "postgres" }

const dishColumns = `d.id, d.name, COALESCE(d.description, ''), d.price::float8,
	d.category_id, d.is_best_seller, d.seasonal, d.active`

func (p *PostgresCatalog) AllWithRelevance(ctx context.Context, query string) ([]*core.Dish, error) {
	tsConfig := p.TextSearchConfig
	if tsConfig == "" {
		tsConfig = "simple"
	}

	var sql string
	var args []any
	if query == "" {
		sql = `SELECT ` + dishColumns + `, 0::float8 AS relevance
			FROM dishes d WHERE d.deleted_at IS NULL`
	} else {
		sql = `SELECT ` + dishColumns + `,
			ts_rank(
				to_tsvector($1, d.name || ' ' || COALESCE(d.description, '')),
				plainto_tsquery($1, $2)
			)::float8 AS relevance
			FROM dishes d WHERE d.deleted_at IS NULL`
		args = []any{tsConfig, query}
	}

	rows, err := p.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*core.Dish, 0)
	for rows.Next() {
		d := &core.Dish{}
		if err := rows.Scan(
			&d.ID, &d.Name, &d.Description, &d.Price,
			&d.CategoryID, &d.IsBestSeller, &d.Seasonal, &d.Active,
			&d.Scores.Relevance,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (p *PostgresCatalog) SimilarTo(ctx context.Context, dish *core.Dish, limit int) ([]core.SimilarDish, error) {
	tsConfig := p.TextSearchConfig
	if tsConfig == "" {
		tsConfig = "simple"
	}
	if limit <= 0 {
		limit = 10
	}

	// 以种子菜品自身文本为查询，按相关度取 TopK
	sql := `SELECT d.id,
		ts_rank(
			to_tsvector($1, d.name || ' ' || COALESCE(d.description, '')),
			plainto_tsquery($1, $2)
		)::float8 AS similarity
		FROM dishes d
		WHERE d.deleted_at IS NULL AND d.id <> $3
		ORDER BY similarity DESC
		LIMIT $4`

	rows, err := p.pool.Query(ctx, sql, tsConfig, dish.Name+" "+dish.Description, dish.ID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]core.SimilarDish, 0, limit)
	for rows.Next() {
		var s core.SimilarDish
		if err := rows.Scan(&s.ID, &s.Similarity); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (p *PostgresCatalog) Close() error {
	p.pool.Close()
	return nil
}

var _ core.CatalogStore = (*PostgresCatalog)(nil)
