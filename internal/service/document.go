package service

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ewebb/backend/internal/domain"
	"ewebb/backend/internal/storage"
	"ewebb/backend/internal/storage/filesystem"
)

// ErrInvalidCategory 非法文档分类错误
var ErrInvalidCategory = errors.New("invalid document category")

// DocumentService 处理文档的上传、查询与删除。
//
// 元数据记录是权威来源，磁盘文件随记录生命周期同步。
type DocumentService struct {
	store  storage.DocumentRepository
	files  *filesystem.Store
	logger *zap.Logger
}

// NewDocumentService 创建文档服务。
func NewDocumentService(store storage.DocumentRepository, files *filesystem.Store, logger *zap.Logger) *DocumentService {
	return &DocumentService{
		store:  store,
		files:  files,
		logger: logger,
	}
}

// Upload 将文件保存到分类目录并登记元数据。
//
// 磁盘文件名为随机 UUID 加原始扩展名，避免路径注入与重名覆盖。
func (s *DocumentService) Upload(ctx context.Context, category domain.Category, originalName, uploadedBy string, content io.Reader) (*domain.DocumentRecord, error) {
	if !domain.ValidCategory(category) {
		return nil, ErrInvalidCategory
	}

	filename := uuid.New().String()
	if ext := filepath.Ext(originalName); ext != "" {
		filename += ext
	}

	relPath, err := s.files.Save(category, filename, content)
	if err != nil {
		return nil, err
	}

	record := &domain.DocumentRecord{
		ID:           uuid.New().String(),
		OriginalName: originalName,
		Filename:     filename,
		Category:     category,
		FilePath:     relPath,
		UploadedAt:   time.Now().UTC(),
		UploadedBy:   uploadedBy,
	}

	if err := s.store.SaveDocument(ctx, record); err != nil {
		// 登记失败时回收已写入的文件
		if rmErr := s.files.Remove(category, filename); rmErr != nil {
			s.logger.Warn("failed to clean up orphan upload",
				zap.String("filename", filename),
				zap.Error(rmErr),
			)
		}
		return nil, err
	}

	s.logger.Info("document uploaded",
		zap.String("document_id", record.ID),
		zap.String("category", string(category)),
		zap.String("original_name", originalName),
	)

	return record, nil
}

// List 返回文档记录；category 为空时返回全部分类。
func (s *DocumentService) List(ctx context.Context, category domain.Category) ([]domain.DocumentRecord, error) {
	if category != "" && !domain.ValidCategory(category) {
		return nil, ErrInvalidCategory
	}
	return s.store.ListDocuments(ctx, category)
}

// Delete 删除文档记录并尽力移除磁盘文件。
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	record, err := s.store.GetDocument(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.DeleteDocument(ctx, id); err != nil {
		return err
	}

	// 记录已删除，文件移除失败仅记日志
	if err := s.files.Remove(record.Category, record.Filename); err != nil {
		s.logger.Warn("failed to remove document file",
			zap.String("document_id", id),
			zap.String("filename", record.Filename),
			zap.Error(err),
		)
	}

	s.logger.Info("document deleted",
		zap.String("document_id", id),
		zap.String("category", string(record.Category)),
	)
	return nil
}
