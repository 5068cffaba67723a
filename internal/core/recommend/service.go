package recommend

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/Muhi2007/eshopping-ai/internal/core/ai/gemini"
	"github.com/Muhi2007/eshopping-ai/internal/pkg/common"

	"go.uber.org/zap"
)

// Service 推薦服務
// 狀態機：Idle → Submitting → {Success | Failure} → Idle
// busy 是唯一的互斥裝置：提交前設起，所有離開路徑無條件清除
type Service struct {
	client *gemini.Client
	busy   atomic.Bool
}

// NewService 創建推薦服務
func NewService(client *gemini.Client) *Service {
	return &Service{
		client: client,
	}
}

// Busy 回報是否有尚未完成的提交
func (s *Service) Busy() bool {
	return s.busy.Load()
}

// Recommend 執行一次完整的推薦流程：驗證 → 單次呼叫 → 正規化
// 進行中時拒絕新的提交；結果每次整批取代，不做合併
func (s *Service) Recommend(ctx context.Context, sourceLink string, count int) ([]RecommendationItem, error) {
	// 驗證在設置 busy 之前：驗證失敗不算一次提交
	req, err := NewRequest(sourceLink, count)
	if err != nil {
		return nil, err
	}

	if !s.busy.CompareAndSwap(false, true) {
		common.LogWarn("拒絕重疊的提交",
			zap.String("source_link", sourceLink),
		)
		return nil, common.ErrBusy
	}
	defer s.busy.Store(false)

	common.LogInfo("開始推薦請求",
		zap.String("category", string(req.InferredCategory)),
		zap.String("complementary", req.ComplementaryCategory),
		zap.Int("count", req.Count),
	)
	instruction := req.Instruction()
	common.LogDebug("組裝的指令", zap.String("instruction", instruction))

	start := time.Now()
	text, err := s.client.GenerateContent(ctx, instruction, ResponseSchema())
	common.LogAICall(time.Since(start), err)
	if err != nil {
		return nil, err
	}

	items, err := parseItems(text)
	if err != nil {
		return nil, err
	}

	common.LogInfo("推薦成功",
		zap.Int("item_count", len(items)),
	)

	return items, nil
}

// parseItems 將模型回傳的文字解析為推薦清單
// 解析後不對個別欄位做驗證，缺漏欄位原樣通過
func parseItems(text string) ([]RecommendationItem, error) {
	content := common.StripCodeFence(text)

	var items []RecommendationItem
	if err := common.ParseJSON(content, &items); err != nil {
		// 原始解析錯誤只記錄，不回傳給使用者
		common.LogError("AI 回應解析失敗",
			zap.Error(err),
			zap.Int("content_length", len(content)),
		)
		return nil, common.NewMalformedResponseError("Failed to parse recommendations from AI. Please try again.", err)
	}

	return items, nil
}
