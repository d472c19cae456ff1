package questions

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/question_batch.schema.json
var questionBatchSchema []byte

const questionBatchSchemaURL = "mem://pagegen/question_batch.schema.json"

var (
	batchSchemaOnce sync.Once
	batchSchema     *jsonschema.Schema
	batchSchemaErr  error
)

func compiledBatchSchema() (*jsonschema.Schema, error) {
	batchSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(questionBatchSchemaURL, bytes.NewReader(questionBatchSchema)); err != nil {
			batchSchemaErr = err
			return
		}
		batchSchema, batchSchemaErr = compiler.Compile(questionBatchSchemaURL)
	})
	return batchSchema, batchSchemaErr
}

// decodeBatch checks a generic decoded value against the batch schema and
// converts it into a Set.
func decodeBatch(v any) (*Set, error) {
	schema, err := compiledBatchSchema()
	if err != nil {
		return nil, fmt.Errorf("compile question batch schema: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return nil, fmt.Errorf("question batch schema: %w", err)
	}

	set := NewSet()
	for _, item := range v.([]any) {
		obj := item.(map[string]any)
		cat, err := ParseCategory(obj["category"].(string))
		if err != nil {
			return nil, err
		}
		set.Add(cat, strings.TrimSpace(obj["question"].(string)))
	}
	return set, nil
}
