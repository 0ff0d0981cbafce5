package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// weightsSchema constrains the trainer's payload: a version plus a flat
// feature-name -> signed weight mapping. Anything else is rejected before it
// can reach the cache.
var weightsSchema = map[string]any{
	"type":                 "object",
	"additionalProperties": false,
	"required":             []any{"weights"},
	"properties": map[string]any{
		"version": map[string]any{"type": "integer", "minimum": 0},
		"weights": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{"type": "number"},
		},
	},
}

type weightsPayload struct {
	Version int                `json:"version"`
	Weights map[string]float64 `json:"weights"`
}

// TrainerClient reads the flat feature-weight mapping the external trainer
// publishes. The core decides when to call it purely from the cache-expiry
// timer; there is no obligation to request a particular training cadence.
type TrainerClient struct {
	url    string
	client *http.Client
	logger *slog.Logger
	schema *jsonschema.Schema
}

func NewTrainerClient(url string, timeout time.Duration, logger *slog.Logger) (*TrainerClient, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	schema, err := compileSchema(weightsSchema)
	if err != nil {
		return nil, fmt.Errorf("compile weights schema: %w", err)
	}
	return &TrainerClient{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger,
		schema: schema,
	}, nil
}

// FetchWeights is the FetchFunc wired into the weight cache.
func (t *TrainerClient) FetchWeights(ctx context.Context) (map[string]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			t.logger.Warn("trainer.response_body_close_error", "error", cerr)
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	t.logger.Debug("trainer.fetch",
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("non-2xx status: %d", resp.StatusCode)
	}

	if err := t.validate(raw); err != nil {
		return nil, err
	}
	var payload weightsPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode weights: %w", err)
	}
	return payload.Weights, nil
}

func (t *TrainerClient) validate(raw []byte) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	if err := t.schema.Validate(v); err != nil {
		return fmt.Errorf("payload does not match schema: %w", err)
	}
	return nil
}

func compileSchema(schemaMap map[string]any) (*jsonschema.Schema, error) {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("weights.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	return compiler.Compile("weights.json")
}
