// BigQuery-style DDL generation. The output is illustrative deployment
// text, not something executed against a warehouse: bindings are grouped by
// table key and emitted as CREATE TABLE statements.

package modelfile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ha1tch/semgraph/pkg/model"
)

type ddlColumn struct {
	name     string
	dataType string
	comment  string
}

// GenerateDDL renders CREATE TABLE statements for every physical table the
// model's properties bind to. Tables appear in first-seen binding order;
// columns keep their property order. Unbound properties are skipped.
func GenerateDDL(m *model.SemanticModel) string {
	tables := make(map[string][]ddlColumn)
	var order []string

	for _, e := range m.Entities {
		for _, p := range e.Properties {
			key := p.TableKey()
			if key == "" {
				continue
			}
			if _, ok := tables[key]; !ok {
				order = append(order, key)
			}
			tables[key] = append(tables[key], ddlColumn{
				name:     columnName(p),
				dataType: bigQueryType(p.DataType),
				comment:  fmt.Sprintf("%s.%s", e.Name, p.Name),
			})
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("-- Generated from model: %s\n", m.Name))
	for _, key := range order {
		cols := dedupeColumns(tables[key])
		sb.WriteString(fmt.Sprintf("\nCREATE TABLE IF NOT EXISTS `%s` (\n", key))
		for i, col := range cols {
			sb.WriteString(fmt.Sprintf("  %s %s OPTIONS(description=%q)", col.name, col.dataType, col.comment))
			if i < len(cols)-1 {
				sb.WriteString(",")
			}
			sb.WriteString("\n")
		}
		sb.WriteString(");\n")
	}
	return sb.String()
}

// columnName derives the physical column from the binding's last segment,
// falling back to a sanitised property name.
func columnName(p model.Property) string {
	if p.Binding != "" {
		parts := strings.Split(p.Binding, ".")
		return parts[len(parts)-1]
	}
	return strings.ToLower(strings.ReplaceAll(p.Name, " ", "_"))
}

// bigQueryType maps a model data type onto a BigQuery column type.
func bigQueryType(dataType string) string {
	switch strings.ToUpper(dataType) {
	case "STRING", "":
		return "STRING"
	case "INT", "INT64", "INTEGER":
		return "INT64"
	case "FLOAT", "FLOAT64", "DOUBLE":
		return "FLOAT64"
	case "NUMERIC", "DECIMAL":
		return "NUMERIC"
	case "BOOL", "BOOLEAN":
		return "BOOL"
	case "DATE":
		return "DATE"
	case "TIMESTAMP", "DATETIME":
		return "TIMESTAMP"
	}
	return "STRING"
}

// dedupeColumns drops repeated column names while keeping first-seen order.
// Two entities may bind the same physical column.
func dedupeColumns(cols []ddlColumn) []ddlColumn {
	seen := make(map[string]bool, len(cols))
	out := cols[:0]
	for _, c := range cols {
		if seen[c.name] {
			continue
		}
		seen[c.name] = true
		out = append(out, c)
	}
	return out
}

// TableNames returns the distinct physical tables the model binds to,
// sorted alphabetically.
func TableNames(m *model.SemanticModel) []string {
	seen := make(map[string]bool)
	var names []string
	for _, e := range m.Entities {
		for _, key := range e.TableKeys() {
			if !seen[key] {
				seen[key] = true
				names = append(names, key)
			}
		}
	}
	sort.Strings(names)
	return names
}
