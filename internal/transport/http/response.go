package httptransport

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 对外提示信息定义
const (
	MsgInvalidRequest      = "invalid request payload"
	MsgInvalidCredentials  = "Invalid credentials"
	MsgInvalidCategory     = "Invalid category"
	MsgMissingStatus       = "status is required"
	MsgMissingFile         = "file is required"
	MsgContactNotFound     = "Contact not found"
	MsgDocumentNotFound    = "Document not found"
	MsgContactSubmitted    = "Contact form submitted successfully"
	MsgStatusUpdated       = "Status updated successfully"
	MsgFileUploaded        = "File uploaded successfully"
	MsgDocumentDeleted     = "Document deleted successfully"
	MsgInternalError       = "internal server error"
	MsgContactSubmitFailed = "failed to submit contact message"
	MsgContactListFailed   = "failed to list contacts"
	MsgUploadFailed        = "failed to upload document"
	MsgDocumentListFailed  = "failed to list documents"
	MsgDeleteFailed        = "failed to delete document"
)

// OK 成功响应（200），附带操作结果消息。
func OK(c *gin.Context, msg string, extra gin.H) {
	body := gin.H{
		"success": true,
		"message": msg,
	}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// BadRequest 请求参数错误（400）
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// Unauthorized 未认证错误（401）
func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
}

// NotFound 资源不存在错误（404）
func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"error": msg})
}

// InternalError 服务器内部错误（500）
func InternalError(c *gin.Context, msg string) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
