// LookML generation: one view per entity, one explore per relationship
// source. Like the DDL generator this produces illustrative deployment text.

package modelfile

import (
	"fmt"
	"strings"

	"github.com/ha1tch/semgraph/pkg/model"
)

// GenerateLookML renders LookML views for every entity and explores with
// joins derived from the model's relationships.
func GenerateLookML(m *model.SemanticModel) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Generated from model: %s\n", m.Name))

	for _, e := range m.Entities {
		sb.WriteString(fmt.Sprintf("\nview: %s {\n", viewName(e)))
		if tables := e.TableKeys(); len(tables) > 0 {
			sb.WriteString(fmt.Sprintf("  sql_table_name: `%s` ;;\n", tables[0]))
		}
		for _, p := range e.Properties {
			sb.WriteString(fmt.Sprintf("\n  %s: %s {\n", lookmlField(e, p), fieldName(p)))
			sb.WriteString(fmt.Sprintf("    type: %s\n", lookmlType(p.DataType)))
			sb.WriteString(fmt.Sprintf("    sql: ${TABLE}.%s ;;\n", columnName(p)))
			sb.WriteString("  }\n")
		}
		sb.WriteString("}\n")
	}

	// Explores: group joins by source entity.
	joins := make(map[string][]model.Relationship)
	var sources []string
	for _, r := range m.Relationships {
		if m.Entity(r.SourceEntityID) == nil || m.Entity(r.TargetEntityID) == nil {
			continue
		}
		if _, ok := joins[r.SourceEntityID]; !ok {
			sources = append(sources, r.SourceEntityID)
		}
		joins[r.SourceEntityID] = append(joins[r.SourceEntityID], r)
	}

	for _, sourceID := range sources {
		source := m.Entity(sourceID)
		sb.WriteString(fmt.Sprintf("\nexplore: %s {\n", viewName(*source)))
		for _, r := range joins[sourceID] {
			target := m.Entity(r.TargetEntityID)
			sb.WriteString(fmt.Sprintf("\n  join: %s {\n", viewName(*target)))
			sb.WriteString(fmt.Sprintf("    relationship: %s\n", lookmlRelationship(r.Type)))
			sb.WriteString(fmt.Sprintf("    sql_on: ${%s.id} = ${%s.id} ;;\n",
				viewName(*source), viewName(*target)))
			sb.WriteString("  }\n")
		}
		sb.WriteString("}\n")
	}

	return sb.String()
}

func viewName(e model.Entity) string {
	return strings.ToLower(strings.ReplaceAll(e.Name, " ", "_"))
}

func fieldName(p model.Property) string {
	return strings.ToLower(strings.ReplaceAll(p.Name, " ", "_"))
}

// lookmlField picks dimension vs measure: numeric properties on fact
// entities become measures.
func lookmlField(e model.Entity, p model.Property) string {
	if e.Type == model.TypeFact {
		switch strings.ToUpper(p.DataType) {
		case "INT", "INT64", "INTEGER", "FLOAT", "FLOAT64", "NUMERIC", "DECIMAL":
			return "measure"
		}
	}
	return "dimension"
}

func lookmlType(dataType string) string {
	switch strings.ToUpper(dataType) {
	case "INT", "INT64", "INTEGER", "FLOAT", "FLOAT64", "NUMERIC", "DECIMAL":
		return "number"
	case "DATE", "TIMESTAMP", "DATETIME":
		return "date"
	case "BOOL", "BOOLEAN":
		return "yesno"
	}
	return "string"
}

func lookmlRelationship(t model.RelationshipType) string {
	switch t {
	case model.OneToOne:
		return "one_to_one"
	case model.OneToMany:
		return "one_to_many"
	case model.ManyToOne:
		return "many_to_one"
	case model.ManyToMany:
		return "many_to_many"
	}
	return "many_to_one"
}
