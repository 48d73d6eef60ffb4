package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"loglan_core/internal/models"
	"loglan_core/internal/repositories"
)

const (
	maxJunctionTableColumns = 6
	minJunctionTableFKs     = 2
	schemaTimeout           = 30 * time.Second
)

// SchemaSource is the introspection SchemaService draws from. Both the
// PostgreSQL and the sqlite schema repositories implement it.
type SchemaSource interface {
	GetTables(ctx context.Context) ([]string, error)
	GetColumns(ctx context.Context, table string) ([]models.Column, error)
	GetPrimaryKeys(ctx context.Context, table string) ([]string, error)
	GetForeignKeys(ctx context.Context, table string) ([]models.ForeignKey, error)
	GetUniqueColumns(ctx context.Context, columns []repositories.TableColumn) (map[string]bool, error)
}

type SchemaService struct {
	source SchemaSource
}

func NewSchemaService(source SchemaSource) *SchemaService {
	return &SchemaService{source: source}
}

// VisualizeSchema renders the dictionary schema as a Mermaid ER diagram.
func (s *SchemaService) VisualizeSchema(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, schemaTimeout)
	defer cancel()

	diagram, err := GenerateSchemaVisualization(ctx, s.source)
	if err != nil {
		return "", fmt.Errorf("failed to generate schema visualization: %w", err)
	}
	return diagram, nil
}

func GenerateSchemaVisualization(ctx context.Context, source SchemaSource) (string, error) {
	tables, err := parseTables(ctx, source)
	if err != nil {
		return "", fmt.Errorf("failed to parse tables: %w", err)
	}

	relationships, err := buildRelationships(ctx, source, tables)
	if err != nil {
		return "", fmt.Errorf("failed to build relationships: %w", err)
	}

	return generateMermaid(tables, relationships), nil
}

func parseTables(ctx context.Context, source SchemaSource) ([]models.Table, error) {
	names, err := source.GetTables(ctx)
	if err != nil {
		return nil, err
	}

	tables := make([]models.Table, 0, len(names))
	for _, name := range names {
		table := models.Table{Name: name}

		if table.Columns, err = source.GetColumns(ctx, name); err != nil {
			return nil, fmt.Errorf("failed to get columns for %s: %w", name, err)
		}
		if table.PrimaryKeys, err = source.GetPrimaryKeys(ctx, name); err != nil {
			return nil, fmt.Errorf("failed to get primary keys for %s: %w", name, err)
		}
		if table.ForeignKeys, err = source.GetForeignKeys(ctx, name); err != nil {
			return nil, fmt.Errorf("failed to get foreign keys for %s: %w", name, err)
		}

		tables = append(tables, table)
	}
	return tables, nil
}

// buildRelationships turns foreign keys into edges. Junction tables such as
// connect_words become many-to-many edges between the tables they join; a
// foreign key over a unique column is one-to-one.
func buildRelationships(ctx context.Context, source SchemaSource, tables []models.Table) ([]models.Relationship, error) {
	junctions := detectJunctionTables(tables)

	var candidates []repositories.TableColumn
	for _, table := range tables {
		if junctions[table.Name] {
			continue
		}
		for _, fk := range table.ForeignKeys {
			candidates = append(candidates, repositories.TableColumn{Table: table.Name, Column: fk.FromColumn})
		}
	}

	unique, err := source.GetUniqueColumns(ctx, candidates)
	if err != nil {
		return nil, fmt.Errorf("failed to get unique constraints: %w", err)
	}

	var relationships []models.Relationship
	for _, table := range tables {
		if junctions[table.Name] {
			fks := table.ForeignKeys
			for i := 0; i < len(fks); i++ {
				for j := i + 1; j < len(fks); j++ {
					relationships = append(relationships, models.Relationship{
						FromTable: fks[i].ToTable,
						ToTable:   fks[j].ToTable,
						Type:      models.ManyToMany,
					})
				}
			}
			continue
		}

		for _, fk := range table.ForeignKeys {
			rel := models.Relationship{FromTable: table.Name, ToTable: fk.ToTable, Type: models.OneToMany}
			if unique[repositories.TableColumn{Table: table.Name, Column: fk.FromColumn}.Key()] {
				rel.Type = models.OneToOne
			}
			relationships = append(relationships, rel)
		}
	}
	return relationships, nil
}

// detectJunctionTables finds tables with at least two foreign keys that
// are all part of the primary key.
func detectJunctionTables(tables []models.Table) map[string]bool {
	junctions := make(map[string]bool)
	for _, table := range tables {
		if len(table.ForeignKeys) < minJunctionTableFKs ||
			len(table.PrimaryKeys) < minJunctionTableFKs ||
			len(table.Columns) > maxJunctionTableColumns {
			continue
		}

		inPK := 0
		for _, fk := range table.ForeignKeys {
			if !slices.Contains(table.PrimaryKeys, fk.FromColumn) {
				inPK = -1
				break
			}
			inPK++
		}
		if inPK >= minJunctionTableFKs {
			junctions[table.Name] = true
		}
	}
	return junctions
}

func generateMermaid(tables []models.Table, relationships []models.Relationship) string {
	var sb strings.Builder

	sb.WriteString("erDiagram\n")

	if len(relationships) > 0 {
		seen := make(map[string]bool)
		for _, rel := range relationships {
			key := rel.FromTable + ":" + rel.Type + ":" + rel.ToTable
			if seen[key] {
				continue
			}
			seen[key] = true

			// mermaid requires a label, an empty one hides it
			fmt.Fprintf(&sb, "    %s %s %s : \"\"\n",
				strings.ToUpper(rel.FromTable),
				rel.Type,
				strings.ToUpper(rel.ToTable))
		}
		sb.WriteString("\n")
	}

	for _, table := range tables {
		fmt.Fprintf(&sb, "    %s {\n", strings.ToUpper(table.Name))

		for _, col := range table.Columns {
			annotations := ""
			if slices.Contains(table.PrimaryKeys, col.Name) {
				annotations = " PK"
			}
			if isForeignKey(table.ForeignKeys, col.Name) {
				annotations += " FK"
			}
			fmt.Fprintf(&sb, "        %s %s%s\n", simplifyDataType(col.DataType), col.Name, annotations)
		}

		sb.WriteString("    }\n\n")
	}

	return sb.String()
}

// simplifyDataType shortens PostgreSQL and sqlite type names to tokens
// mermaid accepts.
func simplifyDataType(dataType string) string {
	dt := strings.ToLower(strings.TrimSpace(dataType))
	if i := strings.IndexByte(dt, '('); i >= 0 {
		dt = strings.TrimSpace(dt[:i])
	}

	switch {
	case dt == "":
		return "any"
	case dt == "integer", dt == "int":
		return "int"
	case strings.HasPrefix(dt, "character varying"), dt == "varchar":
		return "varchar"
	case strings.HasPrefix(dt, "character"):
		return "char"
	case strings.HasPrefix(dt, "timestamp with time zone"):
		return "timestamptz"
	case strings.HasPrefix(dt, "timestamp"):
		return "timestamp"
	case strings.HasPrefix(dt, "time without time zone"):
		return "time"
	case dt == "double precision":
		return "double"
	case strings.HasPrefix(dt, "array"):
		return "array"
	default:
		return strings.ReplaceAll(dt, " ", "_")
	}
}

func isForeignKey(fks []models.ForeignKey, column string) bool {
	return slices.ContainsFunc(fks, func(fk models.ForeignKey) bool {
		return fk.FromColumn == column
	})
}
