package httptransport

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ewebb/backend/internal/domain"
	"ewebb/backend/internal/middleware"
	"ewebb/backend/internal/service"
	"ewebb/backend/internal/storage"
)

// uploadDocument 上传文档到指定分类（管理员）。
func (h *Handler) uploadDocument(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, MsgMissingFile)
		return
	}

	category := domain.Category(c.PostForm("category"))
	if !domain.ValidCategory(category) {
		BadRequest(c, MsgInvalidCategory)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		InternalError(c, MsgUploadFailed)
		return
	}
	defer file.Close()

	uploadedBy := c.GetString(middleware.ContextKeyAdminUser)

	record, err := h.documents.Upload(c.Request.Context(), category, fileHeader.Filename, uploadedBy, file)
	if err != nil {
		h.log.Error("document upload failed",
			zap.String("original_name", fileHeader.Filename),
			zap.Error(err),
		)
		InternalError(c, MsgUploadFailed)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordDocumentUploaded(string(category))
	}

	OK(c, MsgFileUploaded, gin.H{"filename": record.Filename})
}

type documentListResponse struct {
	Documents []domain.DocumentRecord `json:"documents"`
}

// listDocuments 返回文档列表（公开），支持 category 查询参数过滤。
func (h *Handler) listDocuments(c *gin.Context) {
	category := domain.Category(c.Query("category"))

	documents, err := h.documents.List(c.Request.Context(), category)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCategory) {
			BadRequest(c, MsgInvalidCategory)
			return
		}
		InternalError(c, MsgDocumentListFailed)
		return
	}

	c.JSON(http.StatusOK, documentListResponse{Documents: documents})
}

// listAdminDocuments 返回文档列表（管理员）。
func (h *Handler) listAdminDocuments(c *gin.Context) {
	h.listDocuments(c)
}

// deleteDocument 删除文档记录及其磁盘文件（管理员）。
func (h *Handler) deleteDocument(c *gin.Context) {
	err := h.documents.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrDocumentNotFound) {
			NotFound(c, MsgDocumentNotFound)
			return
		}
		InternalError(c, MsgDeleteFailed)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordDocumentDeleted()
	}

	OK(c, MsgDocumentDeleted, nil)
}
