package domain

// Field names accepted on the wire
const (
	FieldName         = "nome"
	FieldDescription  = "descricao"
	FieldEan13        = "ean13"
	FieldPrice        = "preco"
	FieldQuantity     = "quantidade"
	FieldStockMinimum = "estoqueMin"
	FieldActive       = "lativo"
	FieldHash         = "hash"
	FieldOperation    = "operacao"
	FieldValue        = "valor"
)

// Schema names
const (
	SchemaRequiredCreate = "required-create"
	SchemaUpdatable      = "updatable"
	SchemaStatus         = "status"
	SchemaBatchPrice     = "batch-price"
	SchemaBatchStock     = "batch-stock"
)

// Schema is a named, ordered set of permitted fields with its mandatory subset
type Schema struct {
	Name      string
	Fields    []string
	Mandatory []string
}

// Permits reports whether the field belongs to the schema
func (s Schema) Permits(field string) bool {
	return contains(s.Fields, field)
}

// Requires reports whether the field is mandatory
func (s Schema) Requires(field string) bool {
	return contains(s.Mandatory, field)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func allRequired(name string, fields ...string) Schema {
	return Schema{Name: name, Fields: fields, Mandatory: fields}
}

var (
	// RequiredCreate lists the fields of a new product
	RequiredCreate = allRequired(SchemaRequiredCreate,
		FieldName, FieldDescription, FieldEan13, FieldPrice, FieldQuantity, FieldStockMinimum)

	// Updatable lists the fields a partial update may carry, none of them mandatory
	Updatable = Schema{
		Name:   SchemaUpdatable,
		Fields: []string{FieldDescription, FieldPrice, FieldQuantity, FieldStockMinimum},
	}

	// Status carries the lifecycle flag
	Status = allRequired(SchemaStatus, FieldActive)

	// BatchPrice is one item of a batch price adjustment
	BatchPrice = allRequired(SchemaBatchPrice, FieldHash, FieldOperation, FieldValue)

	// BatchStock is one item of a batch stock adjustment
	BatchStock = allRequired(SchemaBatchStock, FieldHash, FieldValue)
)

var schemas = map[string]Schema{
	SchemaRequiredCreate: RequiredCreate,
	SchemaUpdatable:      Updatable,
	SchemaStatus:         Status,
	SchemaBatchPrice:     BatchPrice,
	SchemaBatchStock:     BatchStock,
}

// SchemaByName looks up a schema by operation name
func SchemaByName(name string) (Schema, bool) {
	s, ok := schemas[name]
	return s, ok
}
