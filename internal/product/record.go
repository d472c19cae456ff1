package product

// Record is the validated primary product. It is built once by Parse or Load
// and shared read-only by every later stage.
type Record struct {
	Name           string   `json:"name"`
	Concentration  string   `json:"concentration"`
	SkinType       []string `json:"skin_type"`
	KeyIngredients []string `json:"key_ingredients"`
	Benefits       []string `json:"benefits"`
	HowToUse       string   `json:"how_to_use"`
	SideEffects    string   `json:"side_effects"`
	Price          int      `json:"price"`
}

// Comparison is the secondary product shown next to the Record on the
// comparison page. SkinType and Concentration are optional.
type Comparison struct {
	Name           string   `json:"name"`
	Concentration  string   `json:"concentration,omitempty"`
	SkinType       []string `json:"skin_type,omitempty"`
	KeyIngredients []string `json:"key_ingredients"`
	Benefits       []string `json:"benefits"`
	Price          int      `json:"price"`
}

// DefaultComparison is the fictional comparison product used when no
// comparison file is configured.
func DefaultComparison() Comparison {
	return Comparison{
		Name:           "RadiancePlus Brightening Serum",
		KeyIngredients: []string{"Vitamin C", "Niacinamide"},
		Benefits:       []string{"Brightening", "Evens skin tone"},
		Price:          749,
	}
}

// AsComparison projects the primary record onto the comparison shape.
func (r Record) AsComparison() Comparison {
	return Comparison{
		Name:           r.Name,
		Concentration:  r.Concentration,
		SkinType:       append([]string(nil), r.SkinType...),
		KeyIngredients: append([]string(nil), r.KeyIngredients...),
		Benefits:       append([]string(nil), r.Benefits...),
		Price:          r.Price,
	}
}
