package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"fyb-checkin/internal/dto"
	"fyb-checkin/internal/service"
	"fyb-checkin/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportSubmissions 导出提交记录 Excel
// GET /submissions/export?search=&status=
func (h *ExportHandler) ExportSubmissions(c *gin.Context) {
	var filter dto.SubmissionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid export filter")
		return
	}

	buf, filename, err := h.exportSvc.ExportSubmissions(c.Request.Context(), &filter)
	if err != nil {
		response.FromError(c, err)
		return
	}

	// 设置下载响应头
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
