package pagination

import (
	"errors"
	"strconv"
)

const (
	// DefaultPage 默认页码
	DefaultPage = 1
	// DefaultLimit 默认每页数量
	DefaultLimit = 10
)

// ErrInvalidLimit 每页数量必须为正数
var ErrInvalidLimit = errors.New("每页数量必须为正数")

// ErrInvalidPage 页码必须为正数
var ErrInvalidPage = errors.New("页码必须为正数")

// Params 分页参数
type Params struct {
	Page  int
	Limit int
}

// Parse 从查询字符串解析分页参数，缺失或非数字时回退到默认值
func Parse(pageStr, limitStr string) Params {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = DefaultPage
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = DefaultLimit
	}

	return Params{Page: page, Limit: limit}
}

// Validate 校验显式传入的分页参数
func (p Params) Validate() error {
	if p.Page < 1 {
		return ErrInvalidPage
	}
	if p.Limit < 1 {
		return ErrInvalidLimit
	}
	return nil
}

// Offset 计算跳过的记录数
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Meta 分页元数据，基于窗口前的总数计算
type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int64 `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// NewMeta 根据总数和分页参数构建元数据
// 超出末页的请求得到空结果和准确的元数据，而不是错误
func NewMeta(total int64, p Params) Meta {
	totalPages := (total + int64(p.Limit) - 1) / int64(p.Limit)

	return Meta{
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: totalPages,
		HasNext:    int64(p.Page) < totalPages,
		HasPrev:    p.Page > 1 && total > 0,
	}
}
