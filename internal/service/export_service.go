package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"fyb-checkin/internal/console"
	"fyb-checkin/internal/dto"
	"fyb-checkin/internal/model"
	apperrors "fyb-checkin/pkg/errors"
)

// ── 导出模块业务错误 ──

var (
	ErrInvalidStatusFilter = apperrors.New(apperrors.KindValidation, "Unknown status filter")
	ErrExportGenerateFail  = apperrors.New(apperrors.KindInternal, "Failed to generate export")
)

const (
	submissionsSheet = "Submissions"
	summarySheet     = "Summary"
)

// ExportService 导出业务接口
type ExportService interface {
	// ExportSubmissions 按控制台视图（筛选 + 姓名排序）导出 Excel
	ExportSubmissions(ctx context.Context, filter *dto.SubmissionFilter) (*bytes.Buffer, string, error)
}

type exportService struct {
	submissions SubmissionService
	logger      *zap.Logger
	now         func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(submissions SubmissionService, logger *zap.Logger) ExportService {
	return &exportService{submissions: submissions, logger: logger, now: time.Now}
}

func (s *exportService) ExportSubmissions(ctx context.Context, filter *dto.SubmissionFilter) (*bytes.Buffer, string, error) {
	if filter.Status != "" && filter.Status != console.StatusAll && !model.SubmissionStatus(filter.Status).Valid() {
		return nil, "", ErrInvalidStatusFilter
	}

	// 1. 取全量记录，统计始终基于全量
	all, err := s.submissions.List(ctx)
	if err != nil {
		return nil, "", err
	}
	rows := console.View(all, *filter)
	stats := console.Summarize(all)

	// 2. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	idx, _ := f.NewSheet(submissionsSheet)
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	f.DeleteSheet("Sheet1")

	f.SetColWidth(submissionsSheet, "A", "A", 8)
	f.SetColWidth(submissionsSheet, "B", "B", 28)
	f.SetColWidth(submissionsSheet, "C", "C", 18)
	f.SetColWidth(submissionsSheet, "D", "D", 14)
	f.SetColWidth(submissionsSheet, "E", "E", 60)
	f.SetColWidth(submissionsSheet, "F", "F", 22)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	headers := []string{"ID", "Name", "Phone", "Status", "Screenshot", "Submitted At"}
	for i, h := range headers {
		f.SetCellValue(submissionsSheet, cell(colName(i), 1), h)
	}
	f.SetCellStyle(submissionsSheet, "A1", cell(colName(len(headers)-1), 1), headerStyle)

	row := 2
	for _, sub := range rows {
		f.SetCellValue(submissionsSheet, cell("A", row), sub.ID)
		f.SetCellValue(submissionsSheet, cell("B", row), sub.Name)
		f.SetCellValue(submissionsSheet, cell("C", row), sub.Phone)
		f.SetCellValue(submissionsSheet, cell("D", row), console.StatusLabel(sub.Status))
		f.SetCellValue(submissionsSheet, cell("E", row), sub.Screenshot)
		f.SetCellHyperLink(submissionsSheet, cell("E", row), sub.Screenshot, "External")
		f.SetCellValue(submissionsSheet, cell("F", row), sub.CreatedAt)
		row++
	}

	// 3. 汇总页
	f.NewSheet(summarySheet)
	f.SetColWidth(summarySheet, "A", "A", 16)
	summary := [][2]interface{}{
		{"Total", stats.Total},
		{"Pending", stats.Pending},
		{"Verified", stats.Verified},
		{"Checked In", stats.CheckedIn},
	}
	for i, kv := range summary {
		f.SetCellValue(summarySheet, cell("A", i+1), kv[0])
		f.SetCellValue(summarySheet, cell("B", i+1), kv[1])
	}

	// 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("fyb-submissions_%s.xlsx", s.now().Format("2006-01-02"))
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
