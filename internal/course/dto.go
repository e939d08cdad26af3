package course

type ListQuery struct {
	Search     string
	Sort       string
	CategoryID uint
	Page       int
	Limit      int
}

type ListResponse struct {
	Data      []Course `json:"data"`
	Page      int      `json:"page"`
	TotalData int64    `json:"totalData"`
	MaxPage   int      `json:"maxPage"`
}
