package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"fyb-checkin/internal/dto"
	"fyb-checkin/internal/model"
)

// ── 测试辅助 ──

func setupTestExportService() (ExportService, *mockSubmissionRepo) {
	subs := newMockSubmissionRepo()
	submissionSvc := NewSubmissionService(newTestRepository(subs), newMockUploader(), false, zap.NewNop())
	svc := NewExportService(submissionSvc, zap.NewNop()).(*exportService)
	svc.now = func() time.Time { return time.Date(2025, 7, 19, 18, 0, 0, 0, time.UTC) }
	return svc, subs
}

func seedExportData(subs *mockSubmissionRepo) {
	subs.seed("Bob", "+2348031111111", model.StatusPending)
	subs.seed("alice", "+2348032222222", model.StatusCheckedIn)
	subs.seed("Chidi", "+2348033333333", model.StatusVerified)
}

// ── ExportSubmissions 测试 ──

func TestExportService_ExportSubmissions(t *testing.T) {
	svc, subs := setupTestExportService()
	seedExportData(subs)

	buf, filename, err := svc.ExportSubmissions(context.Background(), &dto.SubmissionFilter{})
	if err != nil {
		t.Fatalf("导出失败: %v", err)
	}
	if filename != "fyb-submissions_2025-07-19.xlsx" {
		t.Errorf("文件名不符: %s", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("无法解析导出的 Excel: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(submissionsSheet)
	if err != nil {
		t.Fatalf("读取 %s 失败: %v", submissionsSheet, err)
	}
	if len(rows) != 4 {
		t.Fatalf("期望表头 + 3 行，实际=%d", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][3] != "Status" {
		t.Errorf("表头不符: %v", rows[0])
	}
	// 按姓名不区分大小写排序
	if rows[1][1] != "alice" || rows[2][1] != "Bob" || rows[3][1] != "Chidi" {
		t.Errorf("行顺序不符: %v", rows[1:])
	}
	if rows[1][3] != "Checked In" {
		t.Errorf("状态应为展示文案，实际=%s", rows[1][3])
	}

	total, _ := f.GetCellValue(summarySheet, "B1")
	if total != "3" {
		t.Errorf("汇总 Total 期望 3，实际=%s", total)
	}
}

func TestExportService_ExportSubmissions_Filtered(t *testing.T) {
	svc, subs := setupTestExportService()
	seedExportData(subs)

	buf, _, err := svc.ExportSubmissions(context.Background(), &dto.SubmissionFilter{Status: "pending"})
	if err != nil {
		t.Fatalf("导出失败: %v", err)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("无法解析导出的 Excel: %v", err)
	}
	defer f.Close()

	rows, _ := f.GetRows(submissionsSheet)
	if len(rows) != 2 || rows[1][1] != "Bob" {
		t.Errorf("期望仅导出 Bob，实际=%v", rows)
	}

	// 汇总始终基于全量
	total, _ := f.GetCellValue(summarySheet, "B1")
	if total != "3" {
		t.Errorf("汇总 Total 期望 3，实际=%s", total)
	}
}

func TestExportService_ExportSubmissions_InvalidStatus(t *testing.T) {
	svc, _ := setupTestExportService()

	_, _, err := svc.ExportSubmissions(context.Background(), &dto.SubmissionFilter{Status: "archived"})
	if !errors.Is(err, ErrInvalidStatusFilter) {
		t.Errorf("期望 ErrInvalidStatusFilter，实际: %v", err)
	}
}

func TestExportService_ExportSubmissions_StoreError(t *testing.T) {
	svc, subs := setupTestExportService()
	subs.listErr = errStoreDown

	if _, _, err := svc.ExportSubmissions(context.Background(), &dto.SubmissionFilter{}); err == nil {
		t.Error("存储失败时应返回错误")
	}
}
