package httptransport

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ewebb/backend/internal/domain"
	"ewebb/backend/internal/service"
	"ewebb/backend/internal/storage"
)

type contactRequest struct {
	Name    string  `json:"name" binding:"required"`
	Email   string  `json:"email" binding:"required,email"`
	Phone   *string `json:"phone"`
	Subject string  `json:"subject" binding:"required"`
	Message string  `json:"message" binding:"required"`
}

// submitContact 接收联系表单提交。
func (h *Handler) submitContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, MsgInvalidRequest)
		return
	}

	result, err := h.contacts.Submit(c.Request.Context(), service.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		InternalError(c, MsgContactSubmitFailed)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordContactSubmitted()
		if !result.Notified {
			h.metrics.RecordNotificationFailed()
		}
	}

	OK(c, MsgContactSubmitted, nil)
}

type contactListResponse struct {
	Contacts []domain.ContactMessage `json:"contacts"`
}

// listContacts 返回全部联系消息（管理员）。
func (h *Handler) listContacts(c *gin.Context) {
	contacts, err := h.contacts.List(c.Request.Context())
	if err != nil {
		InternalError(c, MsgContactListFailed)
		return
	}

	c.JSON(http.StatusOK, contactListResponse{Contacts: contacts})
}

// updateContactStatus 更新联系消息状态（管理员）。
//
// status 优先从查询参数读取，其次从表单字段读取。
func (h *Handler) updateContactStatus(c *gin.Context) {
	status := c.Query("status")
	if status == "" {
		status = c.PostForm("status")
	}
	if status == "" {
		BadRequest(c, MsgMissingStatus)
		return
	}

	err := h.contacts.UpdateStatus(c.Request.Context(), c.Param("id"), domain.ContactStatus(status))
	if err != nil {
		if errors.Is(err, storage.ErrContactNotFound) {
			NotFound(c, MsgContactNotFound)
			return
		}
		InternalError(c, MsgInternalError)
		return
	}

	OK(c, MsgStatusUpdated, nil)
}
