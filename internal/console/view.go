// Package console 实现管理控制台的视图推导与 Admin API 客户端。
// 全量记录是唯一数据源，筛选与排序每次都从全量重新推导，不修改原切片。
package console

import (
	"fmt"
	"sort"
	"strings"

	"fyb-checkin/internal/dto"
	"fyb-checkin/internal/model"
)

// StatusAll 状态筛选的"不限"取值
const StatusAll = "all"

// ValidateStatus 校验状态筛选取值：空、"all" 或合法状态（区分大小写）
func ValidateStatus(status string) error {
	status = strings.TrimSpace(status)
	if status == "" || status == StatusAll || model.SubmissionStatus(status).Valid() {
		return nil
	}
	return fmt.Errorf("unknown status %q (want all|pending|verified|checked_in)", status)
}

// View 按筛选条件推导展示列表
//   - Search: 姓名或手机号包含（不区分大小写）
//   - Status: 精确匹配，空或 "all" 表示不限
//
// 两个条件取交集；结果按姓名不区分大小写升序，同名按 ID 升序
func View(records []dto.SubmissionResponse, f dto.SubmissionFilter) []dto.SubmissionResponse {
	term := strings.ToLower(strings.TrimSpace(f.Search))
	status := strings.TrimSpace(f.Status)

	out := make([]dto.SubmissionResponse, 0, len(records))
	for _, r := range records {
		if term != "" &&
			!strings.Contains(strings.ToLower(r.Name), term) &&
			!strings.Contains(strings.ToLower(r.Phone), term) {
			continue
		}
		if status != "" && status != StatusAll && r.Status != status {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if a != b {
			return a < b
		}
		return out[i].ID < out[j].ID
	})

	return out
}

// Summarize 统计各状态数量
func Summarize(records []dto.SubmissionResponse) dto.SubmissionStatsResponse {
	stats := dto.SubmissionStatsResponse{Total: len(records)}
	for _, r := range records {
		switch model.SubmissionStatus(r.Status) {
		case model.StatusPending:
			stats.Pending++
		case model.StatusVerified:
			stats.Verified++
		case model.StatusCheckedIn:
			stats.CheckedIn++
		}
	}
	return stats
}

// StatusLabel 状态展示文案
func StatusLabel(status string) string {
	switch model.SubmissionStatus(status) {
	case model.StatusVerified:
		return "Verified"
	case model.StatusCheckedIn:
		return "Checked In"
	default:
		return "Pending"
	}
}

// NextAction 当前状态下控制台提供的操作
func NextAction(status string) string {
	switch model.SubmissionStatus(status) {
	case model.StatusVerified:
		return "checkin"
	case model.StatusCheckedIn:
		return "uncheck"
	default:
		return "verify"
	}
}
