package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"georeview/internal/models"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

type Config struct {
	Model          string        `env:"MODEL" envDefault:"gemini-3-flash-preview"`
	Endpoint       string        `env:"ENDPOINT"`
	Temperature    float32       `env:"TEMPERATURE" envDefault:"1.0"`
	AttemptTimeout time.Duration `env:"ATTEMPT_TIMEOUT" envDefault:"3m"`
}

// GeminiClient sends one request per call with the given API key. It does
// not retry; rotation across keys is the caller's job.
type GeminiClient struct {
	cfg Config
}

func NewGeminiClient(cfg Config) *GeminiClient {
	if cfg.Model == "" {
		cfg.Model = geminiModel
	}
	return &GeminiClient{cfg: cfg}
}

// Generate returns the model's raw answer text. Throttling is reported as
// models.ErrRateLimited, every other failure as models.ErrTransport or
// models.ErrResponseValidation.
func (g *GeminiClient) Generate(ctx context.Context, credential string, payload models.PromptPayload) (string, error) {
	if g.cfg.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.AttemptTimeout)
		defer cancel()
	}

	opts := []option.ClientOption{option.WithAPIKey(credential)}
	if g.cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(g.cfg.Endpoint))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("%w: create client: %v", models.ErrTransport, err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.cfg.Model)
	model.SetTemperature(g.cfg.Temperature)
	model.ResponseMIMEType = responseMIMEType

	resp, err := model.GenerateContent(ctx, toParts(payload)...)
	if err != nil {
		return "", classifyError(err)
	}

	return responseText(resp)
}

func classifyError(err error) error {
	if isRateLimited(err) {
		return fmt.Errorf("%w: %v", models.ErrRateLimited, err)
	}
	return fmt.Errorf("%w: %v", models.ErrTransport, err)
}

func isRateLimited(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusTooManyRequests {
		return true
	}
	var aerr *apierror.APIError
	if errors.As(err, &aerr) && aerr.HTTPCode() == http.StatusTooManyRequests {
		return true
	}
	return false
}
