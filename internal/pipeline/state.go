package pipeline

import (
	"errors"
	"fmt"
)

// StateKey names one stage output held in State.
type StateKey string

const (
	KeyRecord         StateKey = "product_record"
	KeyComparison     StateKey = "comparison_product"
	KeyQuestions      StateKey = "questions"
	KeyFAQPage        StateKey = "faq_page"
	KeyProductPage    StateKey = "product_page"
	KeyComparisonPage StateKey = "comparison_page"
	KeyOutputFiles    StateKey = "output_files"
)

var (
	ErrStateKeyWritten = errors.New("state key already written")
	ErrStateKeyMissing = errors.New("state key not written")
)

// State is the per-run, write-once store passed between stages.
type State struct {
	values map[StateKey]any
	order  []StateKey
}

func NewState() *State {
	return &State{values: make(map[StateKey]any)}
}

func (s *State) Put(key StateKey, value any) error {
	if _, ok := s.values[key]; ok {
		return fmt.Errorf("%w: %s", ErrStateKeyWritten, key)
	}
	s.values[key] = value
	s.order = append(s.order, key)
	return nil
}

func (s *State) Get(key StateKey) (any, error) {
	v, ok := s.values[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrStateKeyMissing, key)
	}
	return v, nil
}

func (s *State) Has(key StateKey) bool {
	_, ok := s.values[key]
	return ok
}

// Keys lists written keys in write order.
func (s *State) Keys() []StateKey {
	return append([]StateKey(nil), s.order...)
}

func getAs[T any](s *State, key StateKey) (T, error) {
	var zero T
	v, err := s.Get(key)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("state key %s holds %T, want %T", key, v, zero)
	}
	return typed, nil
}
