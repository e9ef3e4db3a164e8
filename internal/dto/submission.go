package dto

import "io"

// ── 提交模块 DTO ──

// SubmitRequest 公开提交请求（multipart/form-data）
// 必填校验在 Service 层完成，以便缺字段统一返回同一条提示
type SubmitRequest struct {
	Name  string `form:"name"`
	Phone string `form:"phone"`
}

// SubmissionResponse 提交记录响应
type SubmissionResponse struct {
	ID                 uint   `json:"id"`
	Name               string `json:"name"`
	Phone              string `json:"phone"`
	Screenshot         string `json:"screenshot"`
	ScreenshotPublicID string `json:"screenshot_public_id"`
	Status             string `json:"status"`
	CreatedAt          string `json:"created_at"`
	UpdatedAt          string `json:"updated_at"`
}

// SubmissionStatsResponse 各状态计数
type SubmissionStatsResponse struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Verified  int `json:"verified"`
	CheckedIn int `json:"checked_in"`
}

// SubmissionFilter 控制台视图筛选条件
type SubmissionFilter struct {
	Search string `form:"search"`
	Status string `form:"status"` // 空或 "all" 表示不限
}

// Screenshot 付款截图文件
type Screenshot struct {
	Filename string
	Content  io.Reader
}
