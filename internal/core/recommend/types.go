package recommend

// Category 從商品連結推斷出的商品類別
type Category string

const (
	CategoryShirt        Category = "shirt"
	CategoryDress        Category = "dress"
	CategoryShoe         Category = "shoe"
	CategoryClothingItem Category = "clothing-item"
)

// RecommendationRequest 一次推薦請求
// 每次提交建立一份，建立後不再修改，呼叫結束即丟棄
type RecommendationRequest struct {
	SourceLink            string
	Count                 int
	InferredCategory      Category
	ComplementaryCategory string
}

// RecommendationItem 單筆推薦結果
// 欄位順序即輸出順序：name、price、review、link
type RecommendationItem struct {
	Name   string `json:"name"`
	Price  string `json:"price"`
	Review string `json:"review"`
	Link   string `json:"link"`
}
