package blocks

import "pagegen/internal/product"

type Usage struct {
	HowToUse      string `json:"how_to_use"`
	FrequencyHint string `json:"frequency_hint"`
}

func BuildUsage(rec product.Record) Usage {
	return Usage{
		HowToUse:      rec.HowToUse,
		FrequencyHint: FrequencyHint,
	}
}
