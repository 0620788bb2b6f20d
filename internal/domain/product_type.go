package domain

// ProductType is the closed set of catalog categories.
type ProductType string

const (
	ProductTypeMedicalSupplies  ProductType = "medical_supplies"
	ProductTypeMedicalEquipment ProductType = "medical_equipment"
)

// ProductTypes returns all product types in display order.
func ProductTypes() []ProductType {
	return []ProductType{ProductTypeMedicalSupplies, ProductTypeMedicalEquipment}
}

// Valid reports whether t is one of the known product types.
func (t ProductType) Valid() bool {
	switch t {
	case ProductTypeMedicalSupplies, ProductTypeMedicalEquipment:
		return true
	}
	return false
}

// DisplayName returns the human readable label for the product type.
func (t ProductType) DisplayName() string {
	switch t {
	case ProductTypeMedicalSupplies:
		return "Medical Supplies"
	case ProductTypeMedicalEquipment:
		return "Medical Equipment"
	default:
		return string(t)
	}
}
