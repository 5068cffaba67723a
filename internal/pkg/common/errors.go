package common

import (
	"net/http"
)

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

func (e *CustomError) Error() string {
	return e.Message
}

// Unwrap 回傳原始錯誤
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// 預定義錯誤代碼
const (
	// 客戶端錯誤 (4xx)
	ErrCodeValidation        = "VALIDATION_ERROR"    // 400
	ErrCodeInvalidRequest    = "INVALID_REQUEST"     // 400
	ErrCodeRequestInProgress = "REQUEST_IN_PROGRESS" // 409

	// 上游錯誤
	ErrCodeProvider          = "PROVIDER_ERROR"     // 502
	ErrCodeEmptyResponse     = "EMPTY_RESPONSE"     // 502
	ErrCodeMalformedResponse = "MALFORMED_RESPONSE" // 502
	ErrCodeAIService         = "AI_SERVICE_ERROR"   // 502

	// 服務器錯誤 (5xx)
	ErrCodeInternalError = "INTERNAL_ERROR" // 500
)

// NewValidationError 創建驗證錯誤：輸入不合法，請求不會送出
func NewValidationError(message string) *CustomError {
	return NewError(ErrCodeValidation, message, http.StatusBadRequest, nil)
}

// NewProviderError 創建提供者錯誤：AI 服務回傳非 2xx 狀態
func NewProviderError(message string, err error) *CustomError {
	return NewError(ErrCodeProvider, message, http.StatusBadGateway, err)
}

// NewEmptyResponseError 創建空回應錯誤：傳輸成功但缺少預期內容
func NewEmptyResponseError(message string) *CustomError {
	return NewError(ErrCodeEmptyResponse, message, http.StatusBadGateway, nil)
}

// NewMalformedResponseError 創建格式錯誤：回應內容無法解析
func NewMalformedResponseError(message string, err error) *CustomError {
	return NewError(ErrCodeMalformedResponse, message, http.StatusBadGateway, err)
}

// IsValidationError 檢查是否為驗證錯誤
func IsValidationError(err error) bool {
	ce, ok := err.(*CustomError)
	return ok && ce.Code == ErrCodeValidation
}

// 預定義錯誤
var (
	ErrInvalidRequest = NewError(ErrCodeInvalidRequest, "Invalid request format", http.StatusBadRequest, nil)
	ErrBusy           = NewError(ErrCodeRequestInProgress, "A recommendation request is already in progress", http.StatusConflict, nil)
	ErrInternalError  = NewError(ErrCodeInternalError, "Internal server error", http.StatusInternalServerError, nil)
)
