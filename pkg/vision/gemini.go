package vision

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/config"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ClothingAnalysis is the structured description extracted from a
// clothing photo.
type ClothingAnalysis struct {
	Category    string   `json:"category"`
	Colors      []string `json:"colors"`
	Material    string   `json:"material"`
	Style       string   `json:"style"`
	Season      string   `json:"season"`
	Gender      string   `json:"gender"`
	Description string   `json:"description"`
	SearchTerms []string `json:"search_terms"`
}

// Analyzer describes clothing images.
type Analyzer interface {
	AnalyzeImage(ctx context.Context, imageData []byte, mimeType string) (*ClothingAnalysis, error)
	Close() error
}

const analysisPrompt = `Analyze this clothing item photo and respond with a single JSON object,
no markdown fences, with these keys:
  category (e.g. "t-shirt", "jacket", "dress"),
  colors (array of dominant color names),
  material (best guess),
  style (e.g. "casual", "formal", "streetwear"),
  season (e.g. "summer", "winter", "all-season"),
  gender ("men", "women", or "unisex"),
  description (one sentence),
  search_terms (array of 3-5 short shopping search phrases).`

// FallbackAnalysis stands in when the AI provider is unavailable or
// fails. The payload is fixed so downstream searches stay predictable.
func FallbackAnalysis() *ClothingAnalysis {
	return &ClothingAnalysis{
		Category:    "shirt",
		Colors:      []string{"black"},
		Material:    "cotton",
		Style:       "casual",
		Season:      "all-season",
		Gender:      "unisex",
		Description: "Stylish clothing item, automatic analysis unavailable.",
		SearchTerms: []string{"casual shirt", "cotton shirt", "everyday clothing"},
	}
}

type geminiAnalyzer struct {
	client *genai.Client
	model  string
}

// NewGeminiAnalyzer builds an Analyzer backed by the Gemini API.
func NewGeminiAnalyzer(ctx context.Context, cfg *config.AIConfig) (Analyzer, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("gemini api key is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiAnalyzer{
		client: client,
		model:  cfg.Model,
	}, nil
}

func (a *geminiAnalyzer) AnalyzeImage(ctx context.Context, imageData []byte, mimeType string) (*ClothingAnalysis, error) {
	format := strings.TrimPrefix(mimeType, "image/")
	if format == "" || format == mimeType {
		format = "jpeg"
	}

	model := a.client.GenerativeModel(a.model)
	resp, err := model.GenerateContent(ctx,
		genai.ImageData(format, imageData),
		genai.Text(analysisPrompt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze image: %w", err)
	}

	text := collectText(resp)
	if text == "" {
		return nil, fmt.Errorf("empty response from image analysis")
	}

	analysis, err := parseAnalysis(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse image analysis: %w", err)
	}
	return analysis, nil
}

func (a *geminiAnalyzer) Close() error {
	return a.client.Close()
}

func collectText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	return sb.String()
}

// parseAnalysis tolerates markdown fences and stray prose around the
// JSON object the model returns.
func parseAnalysis(text string) (*ClothingAnalysis, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var analysis ClothingAnalysis
	if err := json.Unmarshal([]byte(text[start:end+1]), &analysis); err != nil {
		return nil, err
	}
	if analysis.Category == "" {
		return nil, fmt.Errorf("analysis missing category")
	}
	return &analysis, nil
}
