package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"printshop-crm/models"
	"printshop-crm/pricing"
)

const assistantSystemPrompt = `You are a quoting assistant for a print shop.
Answer operator questions about prices. When the question names a product and
quantity, call calculate_price instead of guessing, then summarize the result
in one or two sentences. Prices are in EUR.`

// maxToolRounds bounds the tool-calling loop so a model that keeps requesting
// calculations cannot spin forever.
const maxToolRounds = 4

// AssistantService answers free-form quote questions with Gemini, grounded on
// real engine calculations via function calling.
type AssistantService struct {
	client *genai.Client
	model  string
	engine *pricing.Engine
	logger *zap.Logger
}

// NewAssistantService creates a new AssistantService.
func NewAssistantService(apiKey, model string, engine *pricing.Engine, logger *zap.Logger) (*AssistantService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &AssistantService{
		client: client,
		model:  model,
		engine: engine,
		logger: logger,
	}, nil
}

func calculatePriceTool() *genai.Tool {
	return &genai.Tool{
		FunctionDeclarations: []*genai.FunctionDeclaration{
			{
				Name:        "calculate_price",
				Description: "Calculate the price of a print job using the shop's pricing rules.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"productId": {
							Type:        genai.TypeInteger,
							Description: "ID of the product to price",
						},
						"quantity": {
							Type:        genai.TypeInteger,
							Description: "Number of units",
						},
						"materialId": {
							Type:        genai.TypeInteger,
							Description: "Optional material ID",
						},
						"widthMm": {
							Type:        genai.TypeNumber,
							Description: "Optional width in millimeters",
						},
						"heightMm": {
							Type:        genai.TypeNumber,
							Description: "Optional height in millimeters",
						},
						"lamination": {
							Type:        genai.TypeString,
							Description: "Optional lamination finish, e.g. matt or glossy",
						},
					},
					Required: []string{"quantity"},
				},
			},
		},
	}
}

// Quote answers one operator question. The model may call calculate_price any
// number of times (bounded) before producing its text answer.
func (s *AssistantService) Quote(ctx context.Context, question string) (string, error) {
	if question == "" {
		return "", fmt.Errorf("question is required")
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(assistantSystemPrompt, genai.RoleUser),
		Tools:             []*genai.Tool{calculatePriceTool()},
	}

	contents := []*genai.Content{
		genai.NewContentFromText(question, genai.RoleUser),
	}

	for round := 0; round < maxToolRounds; round++ {
		resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, config)
		if err != nil {
			return "", fmt.Errorf("genai request failed: %w", err)
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			return "", fmt.Errorf("genai returned no candidates")
		}

		calls := resp.FunctionCalls()
		if len(calls) == 0 {
			return resp.Text(), nil
		}

		contents = append(contents, resp.Candidates[0].Content)

		var parts []*genai.Part
		for _, call := range calls {
			s.logger.Debug("assistant tool call",
				zap.String("function", call.Name),
				zap.Any("args", call.Args))

			result := s.runTool(ctx, call)
			parts = append(parts, genai.NewPartFromFunctionResponse(call.Name, result))
		}
		contents = append(contents, genai.NewContentFromParts(parts, genai.RoleUser))
	}

	return "", fmt.Errorf("assistant exceeded %d tool rounds without answering", maxToolRounds)
}

// runTool executes one function call. Errors are reported back to the model
// as tool output so it can rephrase or tell the operator what went wrong.
func (s *AssistantService) runTool(ctx context.Context, call *genai.FunctionCall) map[string]any {
	if call.Name != "calculate_price" {
		return map[string]any{"error": fmt.Sprintf("unknown function %q", call.Name)}
	}

	req := pricingRequestFromArgs(call.Args)
	result, err := s.engine.CalculatePrice(ctx, req)
	if err != nil && result == nil {
		return map[string]any{"error": err.Error()}
	}

	out, merr := resultToMap(result)
	if merr != nil {
		return map[string]any{"error": merr.Error()}
	}
	if err != nil {
		// Cost-side failure: prices are valid, flag the gap for the model.
		out["warning"] = err.Error()
	}
	return out
}

func pricingRequestFromArgs(args map[string]any) *models.PricingRequest {
	req := &models.PricingRequest{}

	if v, ok := args["productId"].(float64); ok {
		req.ProductID = int64(v)
	}
	if v, ok := args["quantity"].(float64); ok {
		req.Quantity = int(v)
	}
	if v, ok := args["materialId"].(float64); ok {
		id := int64(v)
		req.MaterialID = &id
	}
	if v, ok := args["widthMm"].(float64); ok {
		req.WidthMM = &v
	}
	if v, ok := args["heightMm"].(float64); ok {
		req.HeightMM = &v
	}
	if v, ok := args["lamination"].(string); ok && v != "" {
		req.Lamination = &v
	}

	return req
}

func resultToMap(result *models.PricingResult) (map[string]any, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal pricing result: %w", err)
	}

	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to convert pricing result: %w", err)
	}
	return out, nil
}
