package gemini

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Muhi2007/eshopping-ai/internal/infrastructure/config"
	"github.com/Muhi2007/eshopping-ai/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Part 內容片段
type Part struct {
	Text string `json:"text"`
}

// Content 對話內容
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// Schema 宣告模型輸出的結構（generateContent 的 responseSchema）
type Schema struct {
	Type             string             `json:"type"`
	Items            *Schema            `json:"items,omitempty"`
	Properties       map[string]*Schema `json:"properties,omitempty"`
	PropertyOrdering []string           `json:"propertyOrdering,omitempty"`
}

// GenerationConfig 生成參數
type GenerationConfig struct {
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
	ResponseSchema   *Schema `json:"responseSchema,omitempty"`
}

// Request generateContent 請求結構
type Request struct {
	Contents         []Content         `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

// Candidate 候選回應
type Candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
}

// Response generateContent 響應結構
type Response struct {
	Candidates []Candidate `json:"candidates"`
}

// apiError Gemini API 錯誤結構
type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Client Gemini API 客戶端
type Client struct {
	config *config.Config
	client *resty.Client
}

// NewClient 創建 Gemini 客戶端
// 單次同步呼叫，不設重試與逾時
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(cfg.Gemini.BaseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-goog-api-key", cfg.Gemini.APIKey)

	return &Client{
		config: cfg,
		client: client,
	}
}

// GenerateContent 發送一次 generateContent 請求並取出第一個候選的文字內容
func (c *Client) GenerateContent(ctx context.Context, instruction string, schema *Schema) (string, error) {
	req := &Request{
		Contents: []Content{
			{
				Role:  "user",
				Parts: []Part{{Text: instruction}},
			},
		},
		GenerationConfig: &GenerationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		},
	}

	common.LogInfo("Sending request to Gemini",
		zap.String("model", c.config.Gemini.Model),
		zap.Int("instruction_length", len(instruction)),
	)

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", c.config.Gemini.Model))

	if err != nil {
		common.LogError("Failed to send request to Gemini",
			zap.Error(err),
			zap.String("model", c.config.Gemini.Model),
		)
		return "", common.NewError(common.ErrCodeAIService,
			fmt.Sprintf("Failed to fetch recommendations: %v", err),
			http.StatusBadGateway, err)
	}

	if resp.StatusCode() != http.StatusOK {
		msg := providerErrorMessage(resp)
		common.LogError("Gemini returned error status",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("model", c.config.Gemini.Model),
			zap.String("message", msg),
		)
		return "", common.NewProviderError(msg, nil)
	}

	// 解析回應
	var result Response
	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		common.LogError("Failed to parse Gemini response envelope",
			zap.Error(err),
			zap.String("model", c.config.Gemini.Model),
		)
		return "", common.NewEmptyResponseError("No recommendations received from AI. Please try again.")
	}

	// 取 candidates[0].content.parts[0].text
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		common.LogError("Empty candidates in Gemini response",
			zap.String("model", c.config.Gemini.Model),
		)
		return "", common.NewEmptyResponseError("No recommendations received from AI. Please try again.")
	}

	text := result.Candidates[0].Content.Parts[0].Text
	if text == "" {
		common.LogError("Empty content in Gemini response",
			zap.String("model", c.config.Gemini.Model),
		)
		return "", common.NewEmptyResponseError("No recommendations received from AI. Please try again.")
	}

	common.LogInfo("Successfully generated response from Gemini",
		zap.String("model", c.config.Gemini.Model),
		zap.Int("content_length", len(text)),
	)

	return text, nil
}

// providerErrorMessage 從錯誤響應取出訊息，取不到時回傳狀態文字
func providerErrorMessage(resp *resty.Response) string {
	var apiErr apiError
	if err := common.ParseJSONBytes(resp.Body(), &apiErr); err == nil && apiErr.Error.Message != "" {
		return apiErr.Error.Message
	}
	return resp.Status()
}

// Close 關閉客戶端
func (c *Client) Close() error {
	c.client.GetClient().CloseIdleConnections()
	return nil
}
