package catalog

import "testing"

func TestSearchCaseInsensitive(t *testing.T) {
	c := NewMock()

	lower := c.Search("order")
	upper := c.Search("ORDER")
	if len(lower) == 0 {
		t.Fatal("expected hits for 'order'")
	}
	if len(lower) != len(upper) {
		t.Errorf("case should not matter: %d vs %d hits", len(lower), len(upper))
	}
}

func TestSearchMatchesDescription(t *testing.T) {
	c := NewMock()

	hits := c.Search("stock level")
	if len(hits) != 1 || hits[0].Table != "inventory_snapshots" {
		t.Errorf("description search should find inventory_snapshots, got %v", hits)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	c := NewMock()
	if hits := c.Search("   "); hits != nil {
		t.Errorf("blank query should return nothing, got %d hits", len(hits))
	}
}

func TestSearchNoHits(t *testing.T) {
	c := NewMock()
	if hits := c.Search("zzz-not-there"); len(hits) != 0 {
		t.Errorf("expected no hits, got %v", hits)
	}
}

func TestTablesDistinct(t *testing.T) {
	c := New([]Entry{
		{Table: "orders", Column: "a"},
		{Table: "orders", Column: "b"},
		{Table: "customers", Column: "c"},
	})
	tables := c.Tables()
	if len(tables) != 2 || tables[0] != "orders" || tables[1] != "customers" {
		t.Errorf("expected [orders customers], got %v", tables)
	}
}
