package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"ewebb/backend/internal/domain"
	"ewebb/backend/internal/storage"
)

// Store 使用内存保存联系消息与文档记录，用于开发验证与测试。
type Store struct {
	mu        sync.RWMutex
	contacts  map[string]*domain.ContactMessage
	documents map[string]*domain.DocumentRecord
}

// NewStore 创建一个内存存储实例。
func NewStore() *Store {
	return &Store{
		contacts:  make(map[string]*domain.ContactMessage),
		documents: make(map[string]*domain.DocumentRecord),
	}
}

// SaveContact 保存联系消息。
func (s *Store) SaveContact(_ context.Context, message *domain.ContactMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *message
	s.contacts[message.ID] = &clone
	return nil
}

// ListContacts 返回全部联系消息，按创建时间降序。
func (s *Store) ListContacts(_ context.Context) ([]domain.ContactMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.ContactMessage, 0, len(s.contacts))
	for _, c := range s.contacts {
		out = append(out, *c)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

// UpdateContactStatus 更新联系消息状态。
func (s *Store) UpdateContactStatus(_ context.Context, id string, status domain.ContactStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	contact, ok := s.contacts[id]
	if !ok {
		return storage.ErrContactNotFound
	}

	now := time.Now().UTC()
	contact.Status = status
	contact.UpdatedAt = &now
	return nil
}

// SaveDocument 保存文档元数据记录。
func (s *Store) SaveDocument(_ context.Context, record *domain.DocumentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *record
	s.documents[record.ID] = &clone
	return nil
}

// ListDocuments 返回文档记录，按上传时间降序；category 为空时不过滤。
func (s *Store) ListDocuments(_ context.Context, category domain.Category) ([]domain.DocumentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.DocumentRecord, 0, len(s.documents))
	for _, d := range s.documents {
		if category != "" && d.Category != category {
			continue
		}
		out = append(out, *d)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].UploadedAt.After(out[j].UploadedAt)
	})

	return out, nil
}

// GetDocument 根据 ID 获取文档记录。
func (s *Store) GetDocument(_ context.Context, id string) (*domain.DocumentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.documents[id]
	if !ok {
		return nil, storage.ErrDocumentNotFound
	}

	clone := *record
	return &clone, nil
}

// DeleteDocument 删除文档记录。
func (s *Store) DeleteDocument(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.documents[id]; !ok {
		return storage.ErrDocumentNotFound
	}

	delete(s.documents, id)
	return nil
}

// Close 关闭存储（内存实现为空操作）。
func (s *Store) Close(_ context.Context) error {
	return nil
}

// Health 健康检查（内存实现恒为健康）。
func (s *Store) Health(_ context.Context) error {
	return nil
}
