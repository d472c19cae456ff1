package pages

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"pagegen/internal/blocks"
)

// Kind names a page contract.
type Kind string

const (
	KindFAQ        Kind = "faq"
	KindProduct    Kind = "product_page"
	KindComparison Kind = "comparison_page"
)

// ErrContract is matched by every *ContractError.
var ErrContract = errors.New("page contract violated")

// ContractError reports an assembled page that breaks its contract. It means
// an assembler is broken; input problems are caught earlier by the loader.
type ContractError struct {
	Kind   Kind
	Reason string
	Err    error
}

func (e *ContractError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s contract violated: %s: %v", e.Kind, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s contract violated: %s", e.Kind, e.Reason)
}

func (e *ContractError) Unwrap() error { return e.Err }

func (e *ContractError) Is(target error) bool { return target == ErrContract }

//go:embed schemas/*.schema.json
var schemaFS embed.FS

var (
	schemasOnce sync.Once
	compiled    map[Kind]*jsonschema.Schema
	compileErr  error
)

func loadSchemas() (map[Kind]*jsonschema.Schema, error) {
	schemasOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		out := make(map[Kind]*jsonschema.Schema)
		for _, kind := range []Kind{KindFAQ, KindProduct, KindComparison} {
			name := "schemas/" + string(kind) + ".schema.json"
			data, err := schemaFS.ReadFile(name)
			if err != nil {
				compileErr = err
				return
			}
			url := "mem://pagegen/" + name
			if err := compiler.AddResource(url, bytes.NewReader(data)); err != nil {
				compileErr = fmt.Errorf("add schema %s: %w", name, err)
				return
			}
			schema, err := compiler.Compile(url)
			if err != nil {
				compileErr = fmt.Errorf("compile schema %s: %w", name, err)
				return
			}
			out[kind] = schema
		}
		compiled = out
	})
	return compiled, compileErr
}

var extraRules = map[Kind]func(doc map[string]any) error{
	KindFAQ:        checkFAQTotals,
	KindComparison: checkComparisonAspects,
}

// Validate checks page against the schema registered for kind plus any
// structural rules JSON schema cannot express.
func Validate(kind Kind, page any) error {
	schemas, err := loadSchemas()
	if err != nil {
		return &ContractError{Kind: kind, Reason: "schema unavailable", Err: err}
	}
	schema, ok := schemas[kind]
	if !ok {
		return &ContractError{Kind: kind, Reason: "unknown page kind"}
	}

	raw, err := json.Marshal(page)
	if err != nil {
		return &ContractError{Kind: kind, Reason: "marshal page", Err: err}
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return &ContractError{Kind: kind, Reason: "decode page", Err: err}
	}
	if err := schema.Validate(doc); err != nil {
		return &ContractError{Kind: kind, Reason: "schema validation failed", Err: err}
	}

	if rule, ok := extraRules[kind]; ok {
		obj, _ := doc.(map[string]any)
		if err := rule(obj); err != nil {
			return &ContractError{Kind: kind, Reason: err.Error()}
		}
	}
	return nil
}

func checkFAQTotals(doc map[string]any) error {
	sections, _ := doc["sections"].([]any)
	count := 0
	for _, s := range sections {
		sec, _ := s.(map[string]any)
		items, _ := sec["items"].([]any)
		count += len(items)
	}
	total, _ := doc["total_questions"].(float64)
	if int(total) != count {
		return fmt.Errorf("total_questions is %d but sections hold %d items", int(total), count)
	}
	return nil
}

func checkComparisonAspects(doc map[string]any) error {
	rows, _ := doc["comparison_table"].([]any)
	if len(rows) < len(blocks.RequiredAspects) {
		return fmt.Errorf("comparison_table has %d rows, need at least %d", len(rows), len(blocks.RequiredAspects))
	}
	present := make(map[string]bool, len(rows))
	for _, r := range rows {
		row, _ := r.(map[string]any)
		if aspect, ok := row["aspect"].(string); ok {
			present[aspect] = true
		}
	}
	var missing []string
	for _, aspect := range blocks.RequiredAspects {
		if !present[aspect] {
			missing = append(missing, aspect)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("comparison_table is missing aspects: %s", strings.Join(missing, ", "))
	}
	return nil
}
