package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fyb-checkin/internal/dto"
	"fyb-checkin/internal/service"
	"fyb-checkin/pkg/response"
)

// screenshotField 截图在 multipart 表单中的字段名
const screenshotField = "screenshot"

// SubmissionHandler 付款凭证 HTTP 处理器
type SubmissionHandler struct {
	submissionSvc service.SubmissionService
}

// NewSubmissionHandler 创建 SubmissionHandler
func NewSubmissionHandler(submissionSvc service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionSvc: submissionSvc}
}

// Submit 公开提交付款凭证（multipart: name, phone, screenshot）
// POST /submit
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var req dto.SubmitRequest
	if err := c.ShouldBind(&req); err != nil {
		if tooLarge(err) {
			// 由 BodyLimit 中间件统一写出 413
			_ = c.Error(err)
			return
		}
		response.BadRequest(c, service.ErrMissingFields.Message)
		return
	}

	var shot *dto.Screenshot
	fh, err := c.FormFile(screenshotField)
	switch {
	case err == nil:
		f, err := fh.Open()
		if err != nil {
			_ = c.Error(err)
			response.InternalError(c)
			return
		}
		defer f.Close()
		shot = &dto.Screenshot{Filename: fh.Filename, Content: f}
	case tooLarge(err):
		_ = c.Error(err)
		return
	}
	// 缺少截图时 shot 为 nil，由 Service 返回统一的缺字段提示

	sub, err := h.submissionSvc.Submit(c.Request.Context(), &req, shot)
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}

	response.Created(c, "Payment submitted successfully.", sub)
}

// ListSubmissions 获取全部提交记录
// GET /submissions
func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	list, err := h.submissionSvc.List(c.Request.Context())
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}

	response.OK(c, "All submissions retrieved successfully.", list)
}

// GetStats 各状态计数
// GET /submissions/stats
func (h *SubmissionHandler) GetStats(c *gin.Context) {
	stats, err := h.submissionSvc.Stats(c.Request.Context())
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}

	response.OK(c, "Submission stats retrieved successfully.", stats)
}

// Verify 标记为已核验
// POST /verify/:id
func (h *SubmissionHandler) Verify(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	sub, err := h.submissionSvc.Verify(c.Request.Context(), id)
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}

	response.OK(c, "Submission marked as verified.", sub)
}

// CheckIn 签到
// POST /checkin/:id
func (h *SubmissionHandler) CheckIn(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	sub, err := h.submissionSvc.CheckIn(c.Request.Context(), id)
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}

	response.OK(c, fmt.Sprintf("%s checked in successfully.", sub.Name), sub)
}

// Uncheck 取消签到，回到已核验
// POST /uncheckin/:id
func (h *SubmissionHandler) Uncheck(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	sub, err := h.submissionSvc.Uncheck(c.Request.Context(), id)
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}

	response.OK(c, fmt.Sprintf("%s unchecked successfully.", sub.Name), sub)
}

// DeleteSubmission 删除记录（需开启 feature.allow_delete）
// DELETE /submissions/:id
func (h *SubmissionHandler) DeleteSubmission(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	sub, err := h.submissionSvc.Delete(c.Request.Context(), id)
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}

	response.OK(c, "Submission deleted.", sub)
}

// handleSubmissionError 统一处理提交模块业务错误
func (h *SubmissionHandler) handleSubmissionError(c *gin.Context, err error) {
	response.FromError(c, err)
}

// ── 辅助函数 ──

// parseID 解析路径中的记录 ID，非法时写出 400
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		response.BadRequest(c, "Invalid submission id")
		return 0, false
	}
	return uint(id), true
}

func tooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
