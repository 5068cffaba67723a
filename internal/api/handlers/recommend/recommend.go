package recommend

import (
	"errors"
	"net/http"

	recommendService "github.com/Muhi2007/eshopping-ai/internal/core/recommend"
	"github.com/Muhi2007/eshopping-ai/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RecommendationsRequest 使用商品連結與期望數量請求搭配推薦
type RecommendationsRequest struct {
	ProductLink string `json:"product_link"` // 使用者貼上的商品連結
	Count       int    `json:"count"`        // 期望的推薦數量，1~10
}

// RecommendationsResponse 推薦結果清單
type RecommendationsResponse struct {
	Recommendations []recommendService.RecommendationItem `json:"recommendations"`
}

// Handler 推薦處理程序
type Handler struct {
	service *recommendService.Service
}

// NewHandler 創建新的推薦處理程序
func NewHandler(service *recommendService.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// clampCount 將數量限制在 1~10（原本由表單元件限制）
func clampCount(count int) int {
	if count < 1 {
		return 1
	}
	if count > 10 {
		return 10
	}
	return count
}

// HandleRecommendations 處理推薦請求
// 成功與失敗互斥：回應只會是清單或錯誤訊息其中之一
func (h *Handler) HandleRecommendations(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	common.LogInfo("開始處理推薦請求",
		zap.String("request_id", requestID),
		zap.String("client_ip", c.ClientIP()),
	)

	var req RecommendationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": common.ErrInvalidRequest.Message,
			"code":  common.ErrInvalidRequest.Code,
		})
		return
	}

	items, err := h.service.Recommend(c.Request.Context(), req.ProductLink, clampCount(req.Count))
	if err != nil {
		var ce *common.CustomError
		if errors.As(err, &ce) {
			common.LogWarn("推薦請求失敗",
				zap.String("request_id", requestID),
				zap.String("code", ce.Code),
				zap.String("message", ce.Message),
			)
			c.JSON(ce.Status, gin.H{
				"error": ce.Message,
				"code":  ce.Code,
			})
			return
		}

		common.LogError("推薦請求發生未預期錯誤",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": common.ErrInternalError.Message,
			"code":  common.ErrInternalError.Code,
		})
		return
	}

	common.LogInfo("推薦請求成功",
		zap.String("request_id", requestID),
		zap.Int("item_count", len(items)),
	)

	c.JSON(http.StatusOK, RecommendationsResponse{
		Recommendations: items,
	})
}
