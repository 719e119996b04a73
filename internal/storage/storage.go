package storage

import (
	"context"
	"errors"

	"ewebb/backend/internal/domain"
)

var (
	// ErrContactNotFound 联系消息未找到错误
	ErrContactNotFound = errors.New("contact not found")
	// ErrDocumentNotFound 文档记录未找到错误
	ErrDocumentNotFound = errors.New("document not found")
)

// ContactRepository 定义联系消息数据存取操作。
type ContactRepository interface {
	SaveContact(ctx context.Context, message *domain.ContactMessage) error
	// ListContacts 返回全部联系消息，按 created_at 降序排列。
	ListContacts(ctx context.Context) ([]domain.ContactMessage, error)
	// UpdateContactStatus 更新状态并写入 updated_at；id 不存在时返回 ErrContactNotFound。
	UpdateContactStatus(ctx context.Context, id string, status domain.ContactStatus) error
}

// DocumentRepository 定义文档元数据存取操作。
type DocumentRepository interface {
	SaveDocument(ctx context.Context, record *domain.DocumentRecord) error
	// ListDocuments 返回文档记录，按 uploaded_at 降序排列；category 为空时返回全部分类。
	ListDocuments(ctx context.Context, category domain.Category) ([]domain.DocumentRecord, error)
	GetDocument(ctx context.Context, id string) (*domain.DocumentRecord, error)
	// DeleteDocument 删除记录；id 不存在时返回 ErrDocumentNotFound。
	DeleteDocument(ctx context.Context, id string) error
}

// Store 定义完整的存储接口。
type Store interface {
	ContactRepository
	DocumentRepository

	Close(ctx context.Context) error
	Health(ctx context.Context) error
}
