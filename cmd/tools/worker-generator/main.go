// cmd/tools/worker-generator/main.go
//
// Scaffolds a worker package from an activity registry entry, laid out the
// way the existing workers are: handler.go with Handle/Execute, models.go
// from the registered schemas, a draft-07 input schema in validation.go,
// and a table-driven handler test.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"enhancement-workers/pkg/registry"
)

// WorkerData feeds the scaffold templates.
type WorkerData struct {
	Name            string
	PackageName     string
	TaskType        string
	InputSchema     map[string]interface{}
	OutputSchema    map[string]interface{}
	InputSchemaJSON string
	ErrorCodes      []string
	PrimaryError    string
	Description     string
	Category        string
	Timeout         string
	Retries         int
}

// parseSchema extracts the properties object from a JSON schema.
func parseSchema(schemaObj interface{}) map[string]interface{} {
	if schemaMap, ok := schemaObj.(map[string]interface{}); ok {
		if props, exists := schemaMap["properties"]; exists {
			if properties, ok := props.(map[string]interface{}); ok {
				return properties
			}
		}
	}
	return map[string]interface{}{}
}

func goTypeFromJSONType(jsonType interface{}) string {
	if jt, ok := jsonType.(string); ok {
		switch jt {
		case "string":
			return "string"
		case "number", "integer":
			return "float64"
		case "boolean":
			return "bool"
		case "object":
			return "map[string]interface{}"
		case "array":
			return "[]interface{}"
		}
	}
	return "interface{}"
}

// generateStructFields renders struct fields for the registered properties.
func generateStructFields(properties map[string]interface{}) string {
	var fields []string
	for prop, details := range properties {
		propDetails, ok := details.(map[string]interface{})
		if !ok {
			continue
		}
		goType := goTypeFromJSONType(propDetails["type"])
		fields = append(fields, fmt.Sprintf("\t%s %s `json:%q`", upperFirst(prop), goType, prop))
	}
	return strings.Join(fields, "\n")
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

const handlerTemplate = `package {{ .PackageName }}

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"enhancement-workers/internal/common/logger"
)

const (
	TaskType = "{{ .TaskType }}"
)

var (
	Err{{ upperFirst .PackageName }}Failed = errors.New("{{ .PrimaryError }}")
	ErrInvalidInput = errors.New("VALIDATION_FAILED")
)

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	result, err := ValidateInput([]byte(job.Variables))
	if err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("validate input: %v", err), 0)
		return
	}
	if !result.Valid {
		h.failJob(client, job, "VALIDATION_FAILED", strings.Join(result.GetErrorMessages(), "; "), 0)
		return
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err), 0)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		errorCode := "{{ .PrimaryError }}"
		retries := int32(0)
		if errors.Is(err, ErrInvalidInput) {
			errorCode = "VALIDATION_FAILED"
		}
		h.failJob(client, job, errorCode, err.Error(), retries)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrInvalidInput)
	}

	// TODO: implement '{{ .Name }}'.
	return &Output{}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string, retries int32) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
		"retries":      retries,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
`

const configTemplate = `package {{ .PackageName }}

import (
	"time"

	appconfig "enhancement-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}

// FromAppConfig maps the application config onto the worker config.
func FromAppConfig(cfg *appconfig.Config) *Config {
	out := DefaultConfig()
	// TODO: map '{{ .TaskType }}' settings from cfg.
	return out
}
`

const modelsTemplate = `package {{ .PackageName }}

type Input struct {
{{- $inputProps := parseSchema .InputSchema }}
{{- if $inputProps }}
{{ generateStructFields $inputProps }}
{{- else }}
	// TODO: add input fields for '{{ .TaskType }}'.
{{- end }}
}

type Output struct {
{{- $outputProps := parseSchema .OutputSchema }}
{{- if $outputProps }}
{{ generateStructFields $outputProps }}
{{- else }}
	// TODO: add output fields for '{{ .TaskType }}'.
{{- end }}
}
`

const validationTemplate = `package {{ .PackageName }}

import "enhancement-workers/internal/common/validation"

// inputSchema guards the job payload before it is decoded.
const inputSchema = ` + "`{{ .InputSchemaJSON }}`" + `

func ValidateInput(payload []byte) (*validation.ValidationResult, error) {
	return validation.ValidateJSON(payload, inputSchema)
}
`

const testTemplate = `package {{ .PackageName }}

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"enhancement-workers/internal/common/logger"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	log := logger.NewZapAdapter(zaptest.NewLogger(t))
	return NewHandler(DefaultConfig(), log)
}

func TestExecute(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)
	assert.NotNil(t, output)
}

func TestExecute_NilInput(t *testing.T) {
	h := newTestHandler(t)

	_, err := h.Execute(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
`

const readmeTemplate = `# {{ .Name }}

{{ .Description }}

- **Category**: {{ .Category }}
- **Task type**: ` + "`{{ .TaskType }}`" + `
- **Timeout**: {{ .Timeout }}
- **Retries**: {{ .Retries }}

## Error codes
{{- if .ErrorCodes }}
{{ range .ErrorCodes }}
- {{ . }}
{{ end }}
{{- else }}
None registered.
{{- end }}

## Registration

Register the handler in ` + "`cmd/worker-manager/main.go`" + `:

` + "```go" + `
import {{ .PackageName }} "enhancement-workers/internal/workers/{{ .Category }}/{{ .TaskType }}"

if config.IsWorkerEnabled(cfg, {{ .PackageName }}.TaskType) {
	handler := {{ .PackageName }}.NewHandler({{ .PackageName }}.FromAppConfig(cfg), log)
	register({{ .PackageName }}.TaskType, handler)
}
` + "```" + `

Then enable it in ` + "`configs/config.yaml`" + ` under ` + "`workers.{{ .TaskType }}`" + `.
`

func main() {
	activity := flag.String("activity", "", "Activity ID from registry (e.g., chat.prompt.enhance)")
	outputDir := flag.String("output", "./internal/workers/", "Output directory for the generated worker")
	registryPath := flag.String("registry", "configs/activity-registry.json", "Path to the activity registry JSON file")
	flag.Parse()

	if *activity == "" {
		fmt.Println("Usage: worker-generator --activity <id> --output <dir> [--registry <path>]")
		fmt.Println("\nExample:")
		fmt.Println("  go run cmd/tools/worker-generator/main.go --activity chat.prompt.enhance")
		os.Exit(1)
	}

	reg, err := registry.LoadRegistry(*registryPath)
	if err != nil {
		fmt.Printf("Error loading registry from %s: %v\n", *registryPath, err)
		os.Exit(1)
	}

	foundActivity, ok := reg.FindByID(*activity)
	if !ok {
		fmt.Printf("Activity '%s' not found in registry %s\n", *activity, *registryPath)
		os.Exit(1)
	}

	data := WorkerData{
		Name:            foundActivity.DisplayName,
		PackageName:     strings.ReplaceAll(foundActivity.TaskType, "-", ""),
		TaskType:        foundActivity.TaskType,
		InputSchema:     foundActivity.InputSchema,
		OutputSchema:    foundActivity.OutputSchema,
		InputSchemaJSON: schemaJSON(foundActivity.InputSchema),
		ErrorCodes:      foundActivity.ErrorCodes,
		PrimaryError:    primaryError(foundActivity.ErrorCodes, foundActivity.TaskType),
		Description:     foundActivity.Description,
		Category:        foundActivity.Category,
		Timeout:         foundActivity.Timeout,
		Retries:         foundActivity.Retries,
	}

	workerDir := filepath.Join(*outputDir, foundActivity.Category, foundActivity.TaskType)
	if err := os.MkdirAll(workerDir, 0755); err != nil {
		fmt.Printf("Error creating directory: %v\n", err)
		os.Exit(1)
	}

	funcMap := template.FuncMap{
		"parseSchema":          parseSchema,
		"generateStructFields": generateStructFields,
		"upperFirst":           upperFirst,
	}

	templates := map[string]string{
		"handler.go":      handlerTemplate,
		"config.go":       configTemplate,
		"models.go":       modelsTemplate,
		"validation.go":   validationTemplate,
		"handler_test.go": testTemplate,
		"README.md":       readmeTemplate,
	}

	for filename, tmplStr := range templates {
		tmpl, err := template.New(filename).Funcs(funcMap).Parse(tmplStr)
		if err != nil {
			fmt.Printf("Error parsing template %s: %v\n", filename, err)
			continue
		}

		filePath := filepath.Join(workerDir, filename)
		file, err := os.Create(filePath)
		if err != nil {
			fmt.Printf("Error creating file %s: %v\n", filePath, err)
			continue
		}

		if err := tmpl.Execute(file, data); err != nil {
			fmt.Printf("Error executing template for %s: %v\n", filename, err)
		}
		file.Close()

		fmt.Printf("✓ Generated %s\n", filePath)
	}

	fmt.Printf("\n✅ Worker scaffold generated at: %s\n", workerDir)
	fmt.Printf("\nNext steps:\n")
	fmt.Printf("  1. Implement execute() in handler.go\n")
	fmt.Printf("  2. Fill in FromAppConfig in config.go\n")
	fmt.Printf("  3. Extend the tests in handler_test.go\n")
	fmt.Printf("  4. Register the worker in cmd/worker-manager/main.go\n")
}

// schemaJSON renders the registered input schema as a draft-07 document for
// the validation.go scaffold. A missing schema degrades to an object check.
func schemaJSON(schema map[string]interface{}) string {
	if len(schema) == 0 {
		return `{"$schema":"http://json-schema.org/draft-07/schema#","type":"object"}`
	}
	if _, ok := schema["$schema"]; !ok {
		schema["$schema"] = "http://json-schema.org/draft-07/schema#"
	}
	out, err := json.Marshal(schema)
	if err != nil {
		return `{"$schema":"http://json-schema.org/draft-07/schema#","type":"object"}`
	}
	return string(out)
}

// primaryError picks the code the scaffold throws for execution failures.
// The first registered code wins; VALIDATION_FAILED is handled separately.
func primaryError(codes []string, taskType string) string {
	for _, code := range codes {
		if code != "VALIDATION_FAILED" {
			return code
		}
	}
	return strings.ToUpper(strings.ReplaceAll(taskType, "-", "_")) + "_FAILED"
}
