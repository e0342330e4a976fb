package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
)

// DefaultPostgresTable é a tabela usada quando nenhuma é configurada.
const DefaultPostgresTable = "fast_sns_state"

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type postgresStore struct {
	db *sql.DB

	put    string
	get    string
	delete string
	list   string
}

// NewPostgres cria um Store sobre uma tabela (kind, id, data) e garante que
// ela exista. O driver precisa ser registrado pelo chamador
// (ex.: _ "github.com/lib/pq").
func NewPostgres(ctx context.Context, db *sql.DB, table string) (Store, error) {
	if table == "" {
		table = DefaultPostgresTable
	}
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("pgstore: invalid table name %q", table)
	}

	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (kind TEXT NOT NULL, id TEXT NOT NULL, data BYTEA NOT NULL, PRIMARY KEY (kind, id))`, table)
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return nil, fmt.Errorf("pgstore: create table failed: %w", err)
	}

	return &postgresStore{
		db:     db,
		put:    fmt.Sprintf(`INSERT INTO %s (kind, id, data) VALUES ($1, $2, $3) ON CONFLICT (kind, id) DO UPDATE SET data = EXCLUDED.data`, table),
		get:    fmt.Sprintf(`SELECT data FROM %s WHERE kind = $1 AND id = $2`, table),
		delete: fmt.Sprintf(`DELETE FROM %s WHERE kind = $1 AND id = $2`, table),
		list:   fmt.Sprintf(`SELECT id, data FROM %s WHERE kind = $1 ORDER BY id`, table),
	}, nil
}

func (p *postgresStore) Put(ctx context.Context, kind, id string, data []byte) error {
	if data == nil {
		data = []byte{}
	}
	if _, err := p.db.ExecContext(ctx, p.put, kind, id, data); err != nil {
		return fmt.Errorf("pgstore: put failed: %w", err)
	}
	return nil
}

func (p *postgresStore) Get(ctx context.Context, kind, id string) ([]byte, error) {
	var data []byte
	err := p.db.QueryRowContext(ctx, p.get, kind, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("pgstore: get failed: %w", err)
	}
	return data, nil
}

func (p *postgresStore) Delete(ctx context.Context, kind, id string) error {
	if _, err := p.db.ExecContext(ctx, p.delete, kind, id); err != nil {
		return fmt.Errorf("pgstore: delete failed: %w", err)
	}
	return nil
}

func (p *postgresStore) List(ctx context.Context, kind string) ([]Record, error) {
	rows, err := p.db.QueryContext(ctx, p.list, kind)
	if err != nil {
		return nil, fmt.Errorf("pgstore: list failed: %w", err)
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Data); err != nil {
			return nil, fmt.Errorf("pgstore: list failed: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgstore: list failed: %w", err)
	}
	return out, nil
}
