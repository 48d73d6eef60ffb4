package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"loglan_core/internal/models"
)

// TableColumn names one column of one table.
type TableColumn struct {
	Table  string
	Column string
}

// Key is the "table:column" form used in unique column sets.
func (tc TableColumn) Key() string {
	return tc.Table + ":" + tc.Column
}

// SchemaRepository reads table structure from PostgreSQL's information_schema.
type SchemaRepository struct {
	pool   *pgxpool.Pool
	schema string
}

func NewSchemaRepository(pool *pgxpool.Pool, schema string) *SchemaRepository {
	if schema == "" {
		schema = "public"
	}
	return &SchemaRepository{pool: pool, schema: schema}
}

func (r *SchemaRepository) GetTables(ctx context.Context) ([]string, error) {
	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = $1
		AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`
	return r.strings(ctx, query, r.schema)
}

func (r *SchemaRepository) GetColumns(ctx context.Context, table string) ([]models.Column, error) {
	query := `
		SELECT column_name, data_type, is_nullable
		FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2
		ORDER BY ordinal_position
	`

	rows, err := r.pool.Query(ctx, query, r.schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []models.Column
	for rows.Next() {
		var col models.Column
		var nullable string
		if err := rows.Scan(&col.Name, &col.DataType, &nullable); err != nil {
			return nil, err
		}
		col.Nullable = nullable == "YES"
		columns = append(columns, col)
	}
	return columns, rows.Err()
}

func (r *SchemaRepository) GetPrimaryKeys(ctx context.Context, table string) ([]string, error) {
	query := `
		SELECT kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON tc.constraint_name = kcu.constraint_name
			AND tc.table_schema = kcu.table_schema
		WHERE tc.constraint_type = 'PRIMARY KEY'
			AND tc.table_schema = $1
			AND tc.table_name = $2
		ORDER BY kcu.ordinal_position
	`
	return r.strings(ctx, query, r.schema, table)
}

func (r *SchemaRepository) GetForeignKeys(ctx context.Context, table string) ([]models.ForeignKey, error) {
	query := `
		SELECT
			tc.constraint_name,
			kcu.column_name,
			ccu.table_name AS foreign_table_name,
			ccu.column_name AS foreign_column_name
		FROM information_schema.table_constraints AS tc
		JOIN information_schema.key_column_usage AS kcu
			ON tc.constraint_name = kcu.constraint_name
			AND tc.table_schema = kcu.table_schema
		JOIN information_schema.constraint_column_usage AS ccu
			ON ccu.constraint_name = tc.constraint_name
			AND ccu.table_schema = tc.table_schema
		WHERE tc.constraint_type = 'FOREIGN KEY'
			AND tc.table_schema = $1
			AND tc.table_name = $2
		ORDER BY tc.constraint_name
	`

	rows, err := r.pool.Query(ctx, query, r.schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fks []models.ForeignKey
	for rows.Next() {
		var fk models.ForeignKey
		if err := rows.Scan(&fk.ConstraintName, &fk.FromColumn, &fk.ToTable, &fk.ToColumn); err != nil {
			return nil, err
		}
		fks = append(fks, fk)
	}
	return fks, rows.Err()
}

// GetUniqueColumns reports which of the given columns carry a single column
// unique constraint or unique index, keyed by TableColumn.Key.
func (r *SchemaRepository) GetUniqueColumns(ctx context.Context, columns []TableColumn) (map[string]bool, error) {
	unique := make(map[string]bool)
	if len(columns) == 0 {
		return unique, nil
	}

	var conditions []string
	args := []any{r.schema}
	for _, tc := range columns {
		conditions = append(conditions, fmt.Sprintf("(t.relname = $%d AND a.attname = $%d)", len(args)+1, len(args)+2))
		args = append(args, tc.Table, tc.Column)
	}

	// unique indexes cover both UNIQUE constraints and CREATE UNIQUE INDEX
	query := fmt.Sprintf(`
		SELECT DISTINCT t.relname, a.attname
		FROM pg_index i
		JOIN pg_class t ON t.oid = i.indrelid
		JOIN pg_namespace n ON n.oid = t.relnamespace
		JOIN pg_attribute a ON a.attrelid = t.oid AND a.attnum = i.indkey[0]
		WHERE i.indisunique
			AND NOT i.indisprimary
			AND i.indnatts = 1
			AND n.nspname = $1
			AND (%s)
	`, strings.Join(conditions, " OR "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query unique columns: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tc TableColumn
		if err := rows.Scan(&tc.Table, &tc.Column); err != nil {
			return nil, fmt.Errorf("failed to scan unique column: %w", err)
		}
		unique[tc.Key()] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating unique columns: %w", err)
	}
	return unique, nil
}

func (r *SchemaRepository) strings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
