// Package model provides core semantic-model types and operations.
package model

import (
	"fmt"
	"strings"
)

// EntityType classifies an entity within the semantic model.
type EntityType string

const (
	TypeEntity    EntityType = "ENTITY"
	TypeDimension EntityType = "DIMENSION"
	TypeFact      EntityType = "FACT"
)

// RelationshipType is the cardinality of a relationship.
type RelationshipType string

const (
	OneToOne   RelationshipType = "ONE_TO_ONE"
	OneToMany  RelationshipType = "ONE_TO_MANY"
	ManyToMany RelationshipType = "MANY_TO_MANY"
	// ManyToOne is the derived inverse of OneToMany, used for display only.
	ManyToOne RelationshipType = "MANY_TO_ONE"
)

// Shorthand returns the cardinality badge text shown on relationship curves.
func (t RelationshipType) Shorthand() string {
	switch t {
	case OneToOne:
		return "1:1"
	case OneToMany:
		return "1:N"
	case ManyToOne:
		return "N:1"
	case ManyToMany:
		return "N:N"
	}
	return "?"
}

// Inverse returns the cardinality as seen from the target side.
func (t RelationshipType) Inverse() RelationshipType {
	switch t {
	case OneToMany:
		return ManyToOne
	case ManyToOne:
		return OneToMany
	}
	return t
}

// Property is a named, typed attribute of an entity. Binding is an optional
// dotted physical reference (project.dataset.table.column); the model treats
// it as opaque except for deriving the table grouping key.
type Property struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	DataType string `json:"dataType" yaml:"dataType"`
	Binding  string `json:"binding,omitempty" yaml:"binding,omitempty"`
}

// TableKey returns the physical-table grouping key derived from the binding:
// the segment before the first dot, or the whole binding if it has no dots.
// Returns "" for unbound properties.
func (p Property) TableKey() string {
	if p.Binding == "" {
		return ""
	}
	if i := strings.IndexByte(p.Binding, '.'); i >= 0 {
		return p.Binding[:i]
	}
	return p.Binding
}

// Entity is a modelled business object with named, typed properties.
type Entity struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Type        EntityType `json:"type" yaml:"type"`
	Properties  []Property `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// TableKeys returns the distinct physical tables this entity's properties
// bind to, in first-seen property order.
func (e Entity) TableKeys() []string {
	var keys []string
	seen := make(map[string]bool)
	for _, p := range e.Properties {
		k := p.TableKey()
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}
	return keys
}

// Relationship is a directed, cardinality-typed association between entities.
type Relationship struct {
	ID             string           `json:"id" yaml:"id"`
	SourceEntityID string           `json:"sourceEntityId" yaml:"sourceEntityId"`
	TargetEntityID string           `json:"targetEntityId" yaml:"targetEntityId"`
	Type           RelationshipType `json:"type" yaml:"type"`
	Label          string           `json:"label,omitempty" yaml:"label,omitempty"`
}

// SemanticModel is a read-only snapshot of entities and relationships.
// The diagram core never mutates it; edits come from the modelling UI.
type SemanticModel struct {
	Name          string         `json:"name,omitempty" yaml:"name,omitempty"`
	Description   string         `json:"description,omitempty" yaml:"description,omitempty"`
	Entities      []Entity       `json:"entities" yaml:"entities"`
	Relationships []Relationship `json:"relationships" yaml:"relationships"`
}

// New creates an empty semantic model.
func New(name string) *SemanticModel {
	return &SemanticModel{
		Name:          name,
		Entities:      make([]Entity, 0),
		Relationships: make([]Relationship, 0),
	}
}

// AddEntity appends an entity, ignoring duplicates by id.
func (m *SemanticModel) AddEntity(e Entity) {
	for _, existing := range m.Entities {
		if existing.ID == e.ID {
			return
		}
	}
	m.Entities = append(m.Entities, e)
}

// AddRelationship appends a relationship, ignoring duplicates by id.
func (m *SemanticModel) AddRelationship(r Relationship) {
	for _, existing := range m.Relationships {
		if existing.ID == r.ID {
			return
		}
	}
	m.Relationships = append(m.Relationships, r)
}

// Entity returns the entity with the given id, or nil.
func (m *SemanticModel) Entity(id string) *Entity {
	for i := range m.Entities {
		if m.Entities[i].ID == id {
			return &m.Entities[i]
		}
	}
	return nil
}

// EntityIndex returns the position of an entity, or -1 if not found.
func (m *SemanticModel) EntityIndex(id string) int {
	for i, e := range m.Entities {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Relationship returns the relationship with the given id, or nil.
func (m *SemanticModel) Relationship(id string) *Relationship {
	for i := range m.Relationships {
		if m.Relationships[i].ID == id {
			return &m.Relationships[i]
		}
	}
	return nil
}

// Validate checks that the model is well-formed. Dangling relationship
// endpoints are deliberately NOT an error here: the renderer skips them
// silently. Validate catches the mistakes an author can fix.
func (m *SemanticModel) Validate() error {
	seen := make(map[string]bool, len(m.Entities))
	for i, e := range m.Entities {
		if e.ID == "" {
			return fmt.Errorf("entity %d has no id", i)
		}
		if seen[e.ID] {
			return fmt.Errorf("duplicate entity id %q", e.ID)
		}
		seen[e.ID] = true
		if e.Name == "" {
			return fmt.Errorf("entity %q has no name", e.ID)
		}
		switch e.Type {
		case TypeEntity, TypeDimension, TypeFact:
		default:
			return fmt.Errorf("entity %q: unknown type %q", e.ID, e.Type)
		}
		propSeen := make(map[string]bool, len(e.Properties))
		for j, p := range e.Properties {
			if p.ID == "" {
				return fmt.Errorf("entity %q: property %d has no id", e.ID, j)
			}
			if propSeen[p.ID] {
				return fmt.Errorf("entity %q: duplicate property id %q", e.ID, p.ID)
			}
			propSeen[p.ID] = true
		}
	}

	relSeen := make(map[string]bool, len(m.Relationships))
	for i, r := range m.Relationships {
		if r.ID == "" {
			return fmt.Errorf("relationship %d has no id", i)
		}
		if relSeen[r.ID] {
			return fmt.Errorf("duplicate relationship id %q", r.ID)
		}
		relSeen[r.ID] = true
		switch r.Type {
		case OneToOne, OneToMany, ManyToOne, ManyToMany:
		default:
			return fmt.Errorf("relationship %q: unknown type %q", r.ID, r.Type)
		}
	}

	return nil
}

// String returns a short summary of the model.
func (m *SemanticModel) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Model: %s\n", m.Name))
	sb.WriteString(fmt.Sprintf("  Entities: %d\n", len(m.Entities)))
	sb.WriteString(fmt.Sprintf("  Relationships: %d\n", len(m.Relationships)))
	return sb.String()
}
