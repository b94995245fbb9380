package entity

// ReferenceKind tipo de entidad de referencia del catálogo.
type ReferenceKind string

const (
	ReferenceCategory ReferenceKind = "category"
	ReferenceBrand    ReferenceKind = "brand"
	ReferenceUnit     ReferenceKind = "unit"
	ReferenceLocation ReferenceKind = "location"
)

// ReferenceKinds en el orden en que se cargan para los formularios.
var ReferenceKinds = []ReferenceKind{ReferenceCategory, ReferenceBrand, ReferenceUnit, ReferenceLocation}

// Reference categoría, marca, unidad o ubicación (id, nombre, slug, descripción).
type Reference struct {
	Kind        ReferenceKind
	ID          string
	Name        string
	Slug        string
	Description string
}
