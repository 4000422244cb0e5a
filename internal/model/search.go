package model

// SearchResults 跨實體搜尋結果；events 與 images 已套過可見性條件
type SearchResults struct {
	Events []*Event      `json:"events"`
	Images []*Image      `json:"images"`
	Users  []*UserPublic `json:"users"`
	Total  int           `json:"total"`
}

// GalleryStats 公開牆的全站統計，只數匿名也看得到的內容
type GalleryStats struct {
	TotalEvents   int `json:"total_events"`
	TotalImages   int `json:"total_images"`
	TotalUsers    int `json:"total_users"`
	TotalLikes    int `json:"total_likes"`
	TotalComments int `json:"total_comments"`
}
