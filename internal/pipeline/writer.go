package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Output file names, written whole on every run.
const (
	FAQFile            = "faq.json"
	ProductPageFile    = "product_page.json"
	ComparisonPageFile = "comparison_page.json"
	ReportFile         = "pipeline_report.json"
)

// encodeJSON renders v as two-space indented JSON with a trailing newline.
// HTML escaping is off so ₹ and – survive unescaped.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type outputWriter struct {
	dir string
}

func (w outputWriter) write(name string, v any) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir %s: %w", w.dir, err)
	}
	data, err := encodeJSON(v)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", name, err)
	}
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
