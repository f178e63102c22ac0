package board

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed board.schema.json
var schemaJSON []byte

const schemaURL = "https://github.com/nibzard/kanban-go/board.schema.json"

var (
	embeddedOnce   sync.Once
	embeddedSchema *jsonschema.Schema
	embeddedErr    error
)

// SchemaJSON returns the embedded board schema.
func SchemaJSON() []byte {
	return append([]byte(nil), schemaJSON...)
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // location in the board, e.g. "[2].status"
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationOptions controls validation behavior.
type ValidationOptions struct {
	// SchemaPath replaces the embedded schema when set.
	SchemaPath string
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid    bool
	Errors   []error
	Warnings []string
	// SchemaSource is "embedded" or the schema file that was used.
	SchemaSource string
}

// Encode serializes tasks as a compact JSON array. A nil list encodes as [].
func Encode(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("marshal board: %w", err)
	}
	return data, nil
}

// Decode parses and schema-checks a persisted board.
func Decode(data []byte, opts ValidationOptions) ([]Task, error) {
	result := validate(data, opts, false)
	if !result.Valid {
		return nil, fmt.Errorf("invalid board: %w", errors.Join(result.Errors...))
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("parse board: %w", err)
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}

// Validate checks a persisted board against the schema and reports
// duplicate ids.
func Validate(data []byte, opts ValidationOptions) *ValidationResult {
	return validate(data, opts, true)
}

func validate(data []byte, opts ValidationOptions, checkDuplicates bool) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Err: fmt.Errorf("parse board: %w", err),
		})
		return result
	}

	schema, source, warning := loadSchema(opts.SchemaPath)
	if warning != "" {
		result.Warnings = append(result.Warnings, warning)
	}
	if schema == nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Err: fmt.Errorf("no usable schema"),
		})
		return result
	}
	result.SchemaSource = source

	if err := schema.Validate(doc); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
		return result
	}

	if checkDuplicates {
		items, _ := doc.([]interface{})
		seen := make(map[string]int, len(items))
		for i, item := range items {
			obj, _ := item.(map[string]interface{})
			id, _ := obj["id"].(string)
			if first, ok := seen[id]; ok {
				result.Valid = false
				result.Errors = append(result.Errors, &ValidationError{
					Path: fmt.Sprintf("[%d].id", i),
					Err:  fmt.Errorf("duplicate id %q (first at [%d])", id, first),
				})
				continue
			}
			seen[id] = i
		}
	}

	return result
}

// loadSchema returns the compiled schema, where it came from, and a warning
// when a configured schema file could not be used.
func loadSchema(path string) (*jsonschema.Schema, string, string) {
	var warning string
	if path != "" {
		schema, err := compileSchemaFile(path)
		if err == nil {
			return schema, path, ""
		}
		warning = fmt.Sprintf("%v, using embedded schema", err)
	}

	embeddedOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(schemaURL, strings.NewReader(string(schemaJSON))); err != nil {
			embeddedErr = err
			return
		}
		embeddedSchema, embeddedErr = compiler.Compile(schemaURL)
	})
	if embeddedErr != nil {
		return nil, "", fmt.Sprintf("invalid embedded schema: %v", embeddedErr)
	}
	return embeddedSchema, "embedded", warning
}

func compileSchemaFile(path string) (*jsonschema.Schema, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid schema path: %v", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("schema file not found: %s", absPath)
		}
		return nil, fmt.Errorf("failed to read schema file: %v", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true
	schema, err := compiler.Compile(absPath)
	if err != nil {
		return nil, fmt.Errorf("invalid schema file: %v", err)
	}
	return schema, nil
}

func appendSchemaErrors(result *ValidationResult, err error) {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		result.Errors = append(result.Errors, err)
		return
	}
	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  errors.New(err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

// jsonPointerToPath renders "/2/status" as "[2].status".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
