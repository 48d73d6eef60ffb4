package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"loglan_core/internal/models"
)

// SQLiteSchemaRepository reads table structure through sqlite's pragma
// table functions. Only the main database is inspected.
type SQLiteSchemaRepository struct {
	db *gorm.DB
}

func NewSQLiteSchemaRepository(db *gorm.DB) *SQLiteSchemaRepository {
	return &SQLiteSchemaRepository{db: db}
}

type sqliteColumn struct {
	Name    string
	Type    string
	NotNull bool
	PK      int
}

type sqliteForeignKey struct {
	ID    int
	Table string
	From  string
	To    string
}

func (r *SQLiteSchemaRepository) GetTables(ctx context.Context) ([]string, error) {
	var tables []string
	err := r.db.WithContext(ctx).
		Raw(`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`).
		Scan(&tables).Error
	return tables, err
}

func (r *SQLiteSchemaRepository) tableInfo(ctx context.Context, table string) ([]sqliteColumn, error) {
	var cols []sqliteColumn
	err := r.db.WithContext(ctx).
		Raw(`SELECT name, type, "notnull" AS not_null, pk FROM pragma_table_info(?) ORDER BY cid`, table).
		Scan(&cols).Error
	return cols, err
}

func (r *SQLiteSchemaRepository) GetColumns(ctx context.Context, table string) ([]models.Column, error) {
	info, err := r.tableInfo(ctx, table)
	if err != nil {
		return nil, err
	}
	columns := make([]models.Column, 0, len(info))
	for _, c := range info {
		columns = append(columns, models.Column{Name: c.Name, DataType: c.Type, Nullable: !c.NotNull && c.PK == 0})
	}
	return columns, nil
}

func (r *SQLiteSchemaRepository) GetPrimaryKeys(ctx context.Context, table string) ([]string, error) {
	var pks []string
	err := r.db.WithContext(ctx).
		Raw(`SELECT name FROM pragma_table_info(?) WHERE pk > 0 ORDER BY pk`, table).
		Scan(&pks).Error
	return pks, err
}

func (r *SQLiteSchemaRepository) GetForeignKeys(ctx context.Context, table string) ([]models.ForeignKey, error) {
	var rows []sqliteForeignKey
	err := r.db.WithContext(ctx).
		Raw(`SELECT id, "table", "from", "to" FROM pragma_foreign_key_list(?) ORDER BY id, seq`, table).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	fks := make([]models.ForeignKey, 0, len(rows))
	for _, fk := range rows {
		fks = append(fks, models.ForeignKey{
			ConstraintName: fmt.Sprintf("fk_%s_%d", table, fk.ID),
			FromColumn:     fk.From,
			ToTable:        fk.Table,
			ToColumn:       fk.To,
		})
	}
	return fks, nil
}

func (r *SQLiteSchemaRepository) GetUniqueColumns(ctx context.Context, columns []TableColumn) (map[string]bool, error) {
	unique := make(map[string]bool)
	checked := make(map[string]map[string]bool)
	for _, tc := range columns {
		cols, ok := checked[tc.Table]
		if !ok {
			var names []string
			err := r.db.WithContext(ctx).Raw(`
				SELECT MIN(ii.name)
				FROM pragma_index_list(?) AS il, pragma_index_info(il.name) AS ii
				WHERE il."unique" = 1 AND il.origin <> 'pk'
				GROUP BY il.name
				HAVING COUNT(*) = 1`, tc.Table).
				Scan(&names).Error
			if err != nil {
				return nil, fmt.Errorf("failed to query unique columns of %s: %w", tc.Table, err)
			}
			cols = make(map[string]bool, len(names))
			for _, n := range names {
				cols[n] = true
			}
			checked[tc.Table] = cols
		}
		if cols[tc.Column] {
			unique[tc.Key()] = true
		}
	}
	return unique, nil
}
