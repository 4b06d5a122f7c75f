package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"author-union/backend/internal/dto"
	"author-union/backend/internal/service"
	apperrors "author-union/backend/pkg/errors"
	"author-union/backend/pkg/response"
)

// AuthorshipHandler 合作作者模块 HTTP 处理器
type AuthorshipHandler struct {
	authorshipSvc service.AuthorshipService
}

// NewAuthorshipHandler 创建 AuthorshipHandler
func NewAuthorshipHandler(authorshipSvc service.AuthorshipService) *AuthorshipHandler {
	return &AuthorshipHandler{authorshipSvc: authorshipSvc}
}

// GetFormState 获取合作作者设置表单状态
// GET /api/v1/assignments/:id/authorship/form-state?submission_id=xxx
func (h *AuthorshipHandler) GetFormState(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	assignmentID := c.Param("id")
	submissionID := c.Query("submission_id")

	result, err := h.authorshipSvc.GetFormState(c.Request.Context(), assignmentID, submissionID, userID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.OK(c, result)
}

// Save 保存合作作者选择
// POST /api/v1/assignments/:id/authorship
func (h *AuthorshipHandler) Save(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SaveAuthorshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authorshipSvc.Save(c.Request.Context(), c.Param("id"), userID, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.OK(c, result)
}

// Summary 获取提交的作者与合作作者概要
// GET /api/v1/assignments/:id/authorship/summary?submission_id=xxx
func (h *AuthorshipHandler) Summary(c *gin.Context) {
	submissionID := c.Query("submission_id")
	if submissionID == "" {
		response.BadRequest(c, 10001, "缺少 submission_id 参数")
		return
	}

	result, err := h.authorshipSvc.Summary(c.Request.Context(), c.Param("id"), submissionID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.OK(c, result)
}

// GetConfig 获取作业级配置
// GET /api/v1/assignments/:id/author-config
func (h *AuthorshipHandler) GetConfig(c *gin.Context) {
	result, err := h.authorshipSvc.GetConfig(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.OK(c, result)
}

// SaveConfig 保存作业级配置
// PUT /api/v1/assignments/:id/author-config
func (h *AuthorshipHandler) SaveConfig(c *gin.Context) {
	var req dto.UpdateAuthorConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authorshipSvc.SaveConfig(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.OK(c, result)
}

// DeleteInstance 删除作业下全部合作作者数据
// DELETE /api/v1/assignments/:id/authorship
func (h *AuthorshipHandler) DeleteInstance(c *gin.Context) {
	if err := h.authorshipSvc.DeleteInstance(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}

	response.OK(c, nil)
}

// writeError 业务错误到 HTTP 响应的统一映射
func (h *AuthorshipHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAssignmentNotFound):
		response.NotFound(c, 12001, "作业不存在")
	case errors.Is(err, service.ErrSubmissionNotFound):
		response.NotFound(c, 12002, "提交记录不存在")
	case errors.Is(err, service.ErrNoAuthorRecord):
		response.NotFound(c, 12003, "暂无合作作者记录")
	case errors.Is(err, service.ErrSubmissionNotOwned):
		response.Forbidden(c, 12004, "只能操作自己的提交记录")
	case errors.Is(err, service.ErrTeamSubmission):
		response.Conflict(c, 12005, "作业处于小组提交模式，无法设置合作作者")
	case errors.Is(err, service.ErrOneAuthorOnly):
		response.Conflict(c, 12006, "该作业仅允许单人提交")
	case errors.Is(err, service.ErrTooManyCoauthors):
		response.BadRequest(c, 12007, "合作作者数量超过上限")
	case errors.Is(err, service.ErrCoauthorNotEligible):
		response.BadRequest(c, 12008, "所选用户不在可选合作作者范围内")
	case errors.Is(err, apperrors.ErrRosterConflict):
		response.Conflict(c, 12009, "合作作者名册已被其他操作修改，请刷新后重试")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/authorship_handler.go
