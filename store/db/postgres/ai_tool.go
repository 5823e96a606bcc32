package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/pgvector/pgvector-go"
	"github.com/pkg/errors"

	"github.com/moaworks/moa-router/store"
)

// CreateAITool inserts a catalog entry.
func (d *DB) CreateAITool(ctx context.Context, create *store.AITool) (*store.AITool, error) {
	features, err := json.Marshal(create.Features)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode features")
	}

	stmt := `
		INSERT INTO ai_tool (name, category, price, has_api, features, description, rating, service_id)
		VALUES (` + placeholders(8) + `)
		RETURNING id
	`
	err = d.db.QueryRowContext(ctx, stmt,
		create.Name,
		create.Category,
		create.Price,
		create.HasAPI,
		features,
		create.Description,
		create.Rating,
		create.ServiceID,
	).Scan(&create.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create ai tool")
	}
	return create, nil
}

// ListAITools lists catalog entries matching the filter.
func (d *DB) ListAITools(ctx context.Context, find *store.FindAITool) ([]*store.AITool, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find != nil {
		if find.ID != nil {
			where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *find.ID)
		}
		if find.Category != nil {
			where, args = append(where, "category = "+placeholder(len(args)+1)), append(args, *find.Category)
		}
		if find.Price != nil {
			where, args = append(where, "price = "+placeholder(len(args)+1)), append(args, *find.Price)
		}
		for _, feature := range find.Features {
			where, args = append(where, "features @> "+placeholder(len(args)+1)), append(args, `["`+feature+`"]`)
		}
		if find.Query != nil {
			where = append(where, "(name ILIKE "+placeholder(len(args)+1)+" OR description ILIKE "+placeholder(len(args)+2)+")")
			pattern := "%" + *find.Query + "%"
			args = append(args, pattern, pattern)
		}
	}

	query := `
		SELECT id, name, category, price, has_api, features, description, rating, service_id
		FROM ai_tool
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY rating DESC, id ASC
	`
	if find != nil && find.Limit != nil {
		query += " LIMIT " + placeholder(len(args)+1)
		args = append(args, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list ai tools")
	}
	defer rows.Close()

	list := []*store.AITool{}
	for rows.Next() {
		tool, err := scanAITool(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, tool)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// GetAIToolByName returns the entry with the given name, or nil when absent.
func (d *DB) GetAIToolByName(ctx context.Context, name string) (*store.AITool, error) {
	stmt := `
		SELECT id, name, category, price, has_api, features, description, rating, service_id
		FROM ai_tool
		WHERE LOWER(name) = LOWER(` + placeholder(1) + `)
		LIMIT 1
	`
	tool, err := scanAITool(d.db.QueryRowContext(ctx, stmt, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return tool, nil
}

// DeleteAITool removes a catalog entry.
func (d *DB) DeleteAITool(ctx context.Context, id int32) error {
	stmt := `DELETE FROM ai_tool WHERE id = ` + placeholder(1)
	if _, err := d.db.ExecContext(ctx, stmt, id); err != nil {
		return errors.Wrap(err, "failed to delete ai tool")
	}
	return nil
}

// UpdateAIToolEmbedding stores the embedding vector for a tool.
func (d *DB) UpdateAIToolEmbedding(ctx context.Context, id int32, embedding []float32) error {
	stmt := `UPDATE ai_tool SET embedding = ` + placeholder(1) + ` WHERE id = ` + placeholder(2)
	result, err := d.db.ExecContext(ctx, stmt, pgvector.NewVector(embedding), id)
	if err != nil {
		return errors.Wrap(err, "failed to update ai tool embedding")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return errors.Errorf("ai tool %d not found", id)
	}
	return nil
}

// FindAIToolsWithoutEmbedding lists tools that have not been embedded yet.
func (d *DB) FindAIToolsWithoutEmbedding(ctx context.Context) ([]*store.AITool, error) {
	query := `
		SELECT id, name, category, price, has_api, features, description, rating, service_id
		FROM ai_tool
		WHERE embedding IS NULL
	`
	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find ai tools without embedding")
	}
	defer rows.Close()

	list := []*store.AITool{}
	for rows.Next() {
		tool, err := scanAITool(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, tool)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// SearchAIToolsByVector performs cosine similarity search using pgvector.
// The <=> operator computes cosine distance (1 - cosine_similarity).
func (d *DB) SearchAIToolsByVector(ctx context.Context, embedding []float32, limit int) ([]*store.AIToolWithScore, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT id, name, category, price, has_api, features, description, rating, service_id,
			1 - (embedding <=> $1) AS score
		FROM ai_tool
		WHERE embedding IS NOT NULL
		ORDER BY embedding <=> $1
		LIMIT $2
	`
	rows, err := d.db.QueryContext(ctx, query, pgvector.NewVector(embedding), limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search ai tools by vector")
	}
	defer rows.Close()

	list := []*store.AIToolWithScore{}
	for rows.Next() {
		var tool store.AITool
		var features []byte
		var score float64
		err := rows.Scan(
			&tool.ID,
			&tool.Name,
			&tool.Category,
			&tool.Price,
			&tool.HasAPI,
			&features,
			&tool.Description,
			&tool.Rating,
			&tool.ServiceID,
			&score,
		)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan ai tool with score")
		}
		if err := json.Unmarshal(features, &tool.Features); err != nil {
			return nil, errors.Wrap(err, "failed to decode features")
		}
		list = append(list, &store.AIToolWithScore{Tool: &tool, Score: score})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAITool(row rowScanner) (*store.AITool, error) {
	var tool store.AITool
	var features []byte
	err := row.Scan(
		&tool.ID,
		&tool.Name,
		&tool.Category,
		&tool.Price,
		&tool.HasAPI,
		&features,
		&tool.Description,
		&tool.Rating,
		&tool.ServiceID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, errors.Wrap(err, "failed to scan ai tool")
	}
	if err := json.Unmarshal(features, &tool.Features); err != nil {
		return nil, errors.Wrap(err, "failed to decode features")
	}
	return &tool, nil
}
