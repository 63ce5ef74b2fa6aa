// Package catalog provides a mock physical-catalog lookup: a static list of
// warehouse tables and columns searchable by substring. It stands in for a
// real metadata service; nothing here talks to a warehouse.
package catalog

import "strings"

// Entry is one searchable catalog row: a column within a physical table.
type Entry struct {
	Table       string
	Column      string
	DataType    string
	Description string
}

// Catalog is a static, in-memory catalog.
type Catalog struct {
	entries []Entry
}

// New creates a catalog over the given entries.
func New(entries []Entry) *Catalog {
	return &Catalog{entries: entries}
}

// NewMock returns the built-in catalog matching the demo model's bindings,
// plus a few unbound tables so searches can miss the model.
func NewMock() *Catalog {
	return New([]Entry{
		{"orders", "order_id", "STRING", "Primary key of the sales order"},
		{"orders", "order_date", "DATE", "Date the order was placed"},
		{"orders", "total_amount", "NUMERIC", "Order total in account currency"},
		{"orders", "channel", "STRING", "Sales channel the order came through"},
		{"order_lines", "line_id", "STRING", "Primary key of the order line"},
		{"order_lines", "quantity", "INT64", "Units ordered on this line"},
		{"order_lines", "unit_price", "NUMERIC", "Price per unit at order time"},
		{"customers", "customer_id", "STRING", "Primary key of the customer"},
		{"customers", "name", "STRING", "Customer display name"},
		{"customers", "segment", "STRING", "Commercial segment"},
		{"shipments", "shipment_id", "STRING", "Primary key of the shipment"},
		{"shipments", "ship_date", "DATE", "Date goods left the warehouse"},
		{"work_orders", "wo_id", "STRING", "Primary key of the work order"},
		{"work_orders", "status", "STRING", "Work order lifecycle status"},
		{"machines", "machine_id", "STRING", "Primary key of the machine"},
		{"machines", "line", "STRING", "Production line the machine sits on"},
		{"materials", "material_id", "STRING", "Primary key of the material"},
		{"materials", "unit", "STRING", "Unit of measure"},
		{"inventory_snapshots", "snapshot_date", "DATE", "Daily stock level snapshot"},
		{"inventory_snapshots", "on_hand_qty", "INT64", "Units on hand at snapshot time"},
	})
}

// Search returns entries whose table, column or description contains the
// query, case-insensitively. An empty query returns nothing rather than
// everything.
func (c *Catalog) Search(query string) []Entry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var hits []Entry
	for _, e := range c.entries {
		if strings.Contains(strings.ToLower(e.Table), query) ||
			strings.Contains(strings.ToLower(e.Column), query) ||
			strings.Contains(strings.ToLower(e.Description), query) {
			hits = append(hits, e)
		}
	}
	return hits
}

// Tables returns the distinct table names in the catalog, in entry order.
func (c *Catalog) Tables() []string {
	seen := make(map[string]bool)
	var tables []string
	for _, e := range c.entries {
		if !seen[e.Table] {
			seen[e.Table] = true
			tables = append(tables, e.Table)
		}
	}
	return tables
}
