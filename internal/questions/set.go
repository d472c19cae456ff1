package questions

// Question is a single categorized shopper question.
type Question struct {
	Category Category `json:"category"`
	Text     string   `json:"question"`
}

// Set groups questions by category. Order inside a category is insertion
// order; iteration across categories follows Categories().
type Set struct {
	byCategory map[Category][]string
}

func NewSet() *Set {
	return &Set{byCategory: make(map[Category][]string)}
}

func (s *Set) Add(cat Category, text string) {
	if s.byCategory == nil {
		s.byCategory = make(map[Category][]string)
	}
	s.byCategory[cat] = append(s.byCategory[cat], text)
}

func (s *Set) Count(cat Category) int {
	if s == nil {
		return 0
	}
	return len(s.byCategory[cat])
}

// Questions returns a copy of the texts filed under cat.
func (s *Set) Questions(cat Category) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.byCategory[cat]...)
}

func (s *Set) Total() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, qs := range s.byCategory {
		n += len(qs)
	}
	return n
}

// Flat lists every question in category order.
func (s *Set) Flat() []Question {
	out := make([]Question, 0, s.Total())
	for _, c := range categoryOrder {
		for _, text := range s.Questions(c) {
			out = append(out, Question{Category: c, Text: text})
		}
	}
	return out
}

// Missing returns the categories with no questions, in category order.
func (s *Set) Missing() []Category {
	var missing []Category
	for _, c := range categoryOrder {
		if s.Count(c) == 0 {
			missing = append(missing, c)
		}
	}
	return missing
}
