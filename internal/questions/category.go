package questions

import "fmt"

// Category is one of the five fixed question classes.
type Category string

const (
	Informational Category = "informational"
	Usage         Category = "usage"
	Safety        Category = "safety"
	Purchase      Category = "purchase"
	Comparison    Category = "comparison"
)

var categoryOrder = []Category{Informational, Usage, Safety, Purchase, Comparison}

// Categories returns the closed category set in page order.
func Categories() []Category {
	return append([]Category(nil), categoryOrder...)
}

func ParseCategory(s string) (Category, error) {
	for _, c := range categoryOrder {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown question category %q", s)
}
