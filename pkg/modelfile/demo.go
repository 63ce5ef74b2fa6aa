package modelfile

import "github.com/ha1tch/semgraph/pkg/model"

// DemoModel returns the built-in sample model: an order-to-manufacturing
// slice of a business, small enough to read at a glance but wide enough to
// exercise categories, bindings and every cardinality.
func DemoModel() *model.SemanticModel {
	m := model.New("Demo: Orders & Manufacturing")
	m.Description = "Sample semantic model covering sales orders and the factory floor"

	m.AddEntity(model.Entity{
		ID:          "sales_order",
		Name:        "Sales Order",
		Description: "A customer order placed through any sales channel",
		Type:        model.TypeFact,
		Properties: []model.Property{
			{ID: "so_id", Name: "Order ID", DataType: "STRING", Binding: "orders.order_id"},
			{ID: "so_date", Name: "Order Date", DataType: "DATE", Binding: "orders.order_date"},
			{ID: "so_total", Name: "Order Total", DataType: "NUMERIC", Binding: "orders.total_amount"},
		},
	})
	m.AddEntity(model.Entity{
		ID:          "order_line",
		Name:        "Order Line",
		Description: "A single product line within a sales order",
		Type:        model.TypeEntity,
		Properties: []model.Property{
			{ID: "ol_id", Name: "Line ID", DataType: "STRING", Binding: "order_lines.line_id"},
			{ID: "ol_qty", Name: "Quantity", DataType: "INT64", Binding: "order_lines.quantity"},
			{ID: "ol_price", Name: "Unit Price", DataType: "NUMERIC", Binding: "order_lines.unit_price"},
		},
	})
	m.AddEntity(model.Entity{
		ID:          "customer",
		Name:        "Customer",
		Description: "A party that places orders",
		Type:        model.TypeDimension,
		Properties: []model.Property{
			{ID: "cu_id", Name: "Customer ID", DataType: "STRING", Binding: "customers.customer_id"},
			{ID: "cu_name", Name: "Name", DataType: "STRING", Binding: "customers.name"},
			{ID: "cu_segment", Name: "Segment", DataType: "STRING", Binding: "customers.segment"},
		},
	})
	m.AddEntity(model.Entity{
		ID:          "shipment",
		Name:        "Shipment",
		Description: "Goods dispatched against an order",
		Type:        model.TypeEntity,
		Properties: []model.Property{
			{ID: "sh_id", Name: "Shipment ID", DataType: "STRING", Binding: "shipments.shipment_id"},
			{ID: "sh_date", Name: "Ship Date", DataType: "DATE", Binding: "shipments.ship_date"},
		},
	})
	m.AddEntity(model.Entity{
		ID:          "work_order",
		Name:        "Work Order",
		Description: "An instruction to manufacture product for stock or an order",
		Type:        model.TypeFact,
		Properties: []model.Property{
			{ID: "wo_id", Name: "Work Order ID", DataType: "STRING", Binding: "work_orders.wo_id"},
			{ID: "wo_status", Name: "Status", DataType: "STRING", Binding: "work_orders.status"},
		},
	})
	m.AddEntity(model.Entity{
		ID:          "machine",
		Name:        "Machine",
		Description: "A production machine on the factory floor",
		Type:        model.TypeDimension,
		Properties: []model.Property{
			{ID: "ma_id", Name: "Machine ID", DataType: "STRING", Binding: "machines.machine_id"},
			{ID: "ma_line", Name: "Line", DataType: "STRING", Binding: "machines.line"},
		},
	})
	m.AddEntity(model.Entity{
		ID:          "material",
		Name:        "Material",
		Description: "Raw material consumed by work orders",
		Type:        model.TypeDimension,
		Properties: []model.Property{
			{ID: "mt_id", Name: "Material ID", DataType: "STRING", Binding: "materials.material_id"},
			{ID: "mt_unit", Name: "Unit", DataType: "STRING", Binding: "materials.unit"},
		},
	})

	m.AddRelationship(model.Relationship{
		ID: "so_lines", SourceEntityID: "sales_order", TargetEntityID: "order_line",
		Type: model.OneToMany, Label: "contains",
	})
	m.AddRelationship(model.Relationship{
		ID: "cu_orders", SourceEntityID: "customer", TargetEntityID: "sales_order",
		Type: model.OneToMany, Label: "places",
	})
	m.AddRelationship(model.Relationship{
		ID: "so_shipments", SourceEntityID: "sales_order", TargetEntityID: "shipment",
		Type: model.OneToMany, Label: "fulfilled by",
	})
	m.AddRelationship(model.Relationship{
		ID: "wo_machine", SourceEntityID: "work_order", TargetEntityID: "machine",
		Type: model.ManyToOne, Label: "runs on",
	})
	m.AddRelationship(model.Relationship{
		ID: "wo_materials", SourceEntityID: "work_order", TargetEntityID: "material",
		Type: model.ManyToMany, Label: "consumes",
	})
	m.AddRelationship(model.Relationship{
		ID: "so_wo", SourceEntityID: "sales_order", TargetEntityID: "work_order",
		Type: model.OneToOne, Label: "made to order",
	})

	return m
}

// DemoCategories returns the category assignment for the demo model.
func DemoCategories() model.CategoryMap {
	return model.CategoryMap{
		"sales_order": "Sales & Orders",
		"order_line":  "Sales & Orders",
		"customer":    "Sales & Orders",
		"shipment":    "Sales & Orders",
		"work_order":  "Manufacturing",
		"machine":     "Manufacturing",
		"material":    "Manufacturing",
	}
}
