package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const systemPrompt = `Z podanego opisu zastępstwa procesowego wyodrębnij następujące informacje:

- location: Typ instytucji – wybierz jedną z: "sąd", "policja", "prokuratura". Ustaw null, jeśli nie można określić.
- location_full_name: Pełna nazwa instytucji, np. "Sąd Rejonowy dla Warszawy-Mokotowa", lub null.
- date: Lista dat zastępstwa w formacie RRRR-MM-DD (np. 2025-07-30). Jeśli podana jest tylko jedna, zwróć listę z jednym elementem. Jeśli brak – null.
- time: Lista godzin zastępstwa w formacie HH:MM (24-godzinny format, np. 13:45). Jeśli brak – null.
- description: Krótkie streszczenie charakteru sprawy lub kontekstu. Usuń email jeżeli występuje.
- legal_roles: Lista grup docelowych – wybierz spośród: "adwokat", "radca prawny", "aplikant adwokacki", "aplikant radcowski". Jeśli brak informacji – null.
- email: Adres e-mail, jeśli występuje w opisie. Jeśli nie ma – null.

Zwróć dane w formacie JSON zgodnym ze schematem.`

// offerSchema is the function-call parameter schema the model fills in.
var offerSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"location":           map[string]interface{}{"type": []string{"string", "null"}},
		"location_full_name": map[string]interface{}{"type": []string{"string", "null"}},
		"date":               map[string]interface{}{"type": []string{"array", "null"}, "items": map[string]interface{}{"type": "string"}},
		"time":               map[string]interface{}{"type": []string{"array", "null"}, "items": map[string]interface{}{"type": "string"}},
		"description":        map[string]interface{}{"type": []string{"string", "null"}},
		"legal_roles":        map[string]interface{}{"type": []string{"array", "null"}, "items": map[string]interface{}{"type": "string"}},
		"email":              map[string]interface{}{"type": []string{"string", "null"}},
	},
}

type openAIClient struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewOpenAI returns the OpenAI-backed parse collaborator.
func NewOpenAI(apiKey, model string) Client {
	if model == "" {
		model = "gpt-4.1-nano"
	}
	return &openAIClient{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

func (c *openAIClient) ParseOffer(ctx context.Context, rawData string) ParseResult {
	start := time.Now()

	reqBody := map[string]interface{}{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": rawData},
		},
		"functions": []map[string]interface{}{
			{
				"name":        "generate_response",
				"description": "Wygeneruj dane na podstawie opisu w języku polskim",
				"parameters":  offerSchema,
			},
		},
		"function_call": map[string]string{"name": "generate_response"},
		"temperature":   1,
	}

	b, _ := json.Marshal(reqBody)
	req, err := http.NewRequestWithContext(ctx, "POST", "https://api.openai.com/v1/chat/completions", bytes.NewBuffer(b))
	if err != nil {
		return failure(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return failure(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return failure(err)
	}
	if resp.StatusCode != http.StatusOK {
		return failure(fmt.Errorf("openAI API error: %s", string(body)))
	}

	var result struct {
		Choices []struct {
			Message struct {
				FunctionCall struct {
					Arguments string `json:"arguments"`
				} `json:"function_call"`
			} `json:"message"`
		} `json:"choices"`
		Usage struct {
			PromptTokens     int `json:"prompt_tokens"`
			CompletionTokens int `json:"completion_tokens"`
			TotalTokens      int `json:"total_tokens"`
		} `json:"usage"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return failure(err)
	}
	if len(result.Choices) == 0 {
		return failure(fmt.Errorf("no response from OpenAI"))
	}

	var extracted ExtractedOffer
	if err := json.Unmarshal([]byte(result.Choices[0].Message.FunctionCall.Arguments), &extracted); err != nil {
		return failure(fmt.Errorf("malformed function call arguments: %w", err))
	}

	usage := &UsageDetails{
		PromptTokens:     result.Usage.PromptTokens,
		CompletionTokens: result.Usage.CompletionTokens,
		TotalTokens:      result.Usage.TotalTokens,
		ElapsedSeconds:   time.Since(start).Seconds(),
	}
	log.Printf("openAI parsing - tokens: prompt=%d, completion=%d, total=%d, time=%.3fs",
		usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens, usage.ElapsedSeconds)

	return ParseResult{Success: true, Data: &extracted, Usage: usage}
}

func failure(err error) ParseResult {
	log.Printf("error in openAI parsing: %v", err)
	return ParseResult{Success: false, Error: err.Error()}
}
