package recommend

import (
	"fmt"
	"strings"

	"github.com/Muhi2007/eshopping-ai/internal/core/ai/gemini"
	"github.com/Muhi2007/eshopping-ai/internal/pkg/common"
)

// categoryKeyword 類別關鍵字，依序比對，先中先贏
type categoryKeyword struct {
	keyword  string
	category Category
}

// 比對順序固定：shirt → dress → shoe，確保結果可重現
var categoryKeywords = []categoryKeyword{
	{"shirt", CategoryShirt},
	{"dress", CategoryDress},
	{"shoe", CategoryShoe},
}

// complementaryByCategory 各類別對應的搭配品項
var complementaryByCategory = map[Category]string{
	CategoryShirt:        "trousers or skirts",
	CategoryDress:        "jackets or accessories",
	CategoryShoe:         "socks or shoe care products",
	CategoryClothingItem: "matching outfits or accessories",
}

// InferCategory 從連結文字推斷商品類別（不分大小寫的子字串比對）
func InferCategory(sourceLink string) Category {
	link := strings.ToLower(sourceLink)
	for _, kw := range categoryKeywords {
		if strings.Contains(link, kw.keyword) {
			return kw.category
		}
	}
	return CategoryClothingItem
}

// NewRequest 建立推薦請求
// 連結為空或僅空白時回傳驗證錯誤，不會發出任何網路請求
func NewRequest(sourceLink string, count int) (*RecommendationRequest, error) {
	if strings.TrimSpace(sourceLink) == "" {
		return nil, common.NewValidationError("Please enter a product link.")
	}

	category := InferCategory(sourceLink)
	return &RecommendationRequest{
		SourceLink:            sourceLink,
		Count:                 count,
		InferredCategory:      category,
		ComplementaryCategory: complementaryByCategory[category],
	}, nil
}

// Instruction 組出送往模型的自然語言指令
// count 原樣帶入，不在此重新驗證
func (r *RecommendationRequest) Instruction() string {
	return fmt.Sprintf(`A customer is shopping for this product: %s
The product appears to be a %s. Recommend exactly %d complementary products that pair well with it, such as %s.
For each recommendation provide the product name, an approximate price, a short customer review quote, and a link to the product.
Return ONLY a JSON array. Each element must be an object with exactly these fields, in this order: "name", "price", "review", "link". All field values must be strings. Do not include any other text.`,
		r.SourceLink, r.InferredCategory, r.Count, r.ComplementaryCategory)
}

// ResponseSchema 宣告模型必須遵守的輸出結構
// 陣列元素為物件，欄位固定為 name、price、review、link，且維持此順序
func ResponseSchema() *gemini.Schema {
	return &gemini.Schema{
		Type: "ARRAY",
		Items: &gemini.Schema{
			Type: "OBJECT",
			Properties: map[string]*gemini.Schema{
				"name":   {Type: "STRING"},
				"price":  {Type: "STRING"},
				"review": {Type: "STRING"},
				"link":   {Type: "STRING"},
			},
			PropertyOrdering: []string{"name", "price", "review", "link"},
		},
	}
}
