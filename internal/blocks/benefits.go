package blocks

import (
	"strings"

	"pagegen/internal/product"
)

type Benefits struct {
	BenefitsList []string `json:"benefits_list"`
	Summary      string   `json:"summary"`
}

func BuildBenefits(rec product.Record) Benefits {
	return Benefits{
		BenefitsList: nonNil(rec.Benefits),
		Summary:      "This serum focuses on " + strings.Join(rec.Benefits, ", ") + ".",
	}
}
