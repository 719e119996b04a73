package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ewebb/backend/internal/domain"
	"ewebb/backend/internal/storage"
)

// Notifier 发送联系消息通知。
type Notifier interface {
	Notify(contact *domain.ContactMessage) error
}

// ContactInput 联系表单提交内容
type ContactInput struct {
	Name    string
	Email   string
	Phone   *string
	Subject string
	Message string
}

// SubmitResult 提交结果，包含通知是否送达。
type SubmitResult struct {
	Contact  *domain.ContactMessage
	Notified bool
}

// ContactService 处理联系消息的提交、查询与状态管理。
type ContactService struct {
	store    storage.ContactRepository
	notifier Notifier
	logger   *zap.Logger
}

// NewContactService 创建联系消息服务。
func NewContactService(store storage.ContactRepository, notifier Notifier, logger *zap.Logger) *ContactService {
	return &ContactService{
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// Submit 持久化联系消息并尽力发送管理员通知。
//
// 通知失败不影响提交成功，结果中的 Notified 反映实际送达情况。
func (s *ContactService) Submit(ctx context.Context, input ContactInput) (*SubmitResult, error) {
	contact := &domain.ContactMessage{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Subject:   input.Subject,
		Message:   input.Message,
		CreatedAt: time.Now().UTC(),
		Status:    domain.StatusNew,
	}

	if err := s.store.SaveContact(ctx, contact); err != nil {
		return nil, err
	}

	notified := true
	if err := s.notifier.Notify(contact); err != nil {
		notified = false
		s.logger.Warn("failed to send contact notification",
			zap.String("contact_id", contact.ID),
			zap.Error(err),
		)
	}

	s.logger.Info("contact message submitted",
		zap.String("contact_id", contact.ID),
		zap.String("subject", contact.Subject),
		zap.Bool("notified", notified),
	)

	return &SubmitResult{Contact: contact, Notified: notified}, nil
}

// List 返回全部联系消息，最新的在前。
func (s *ContactService) List(ctx context.Context) ([]domain.ContactMessage, error) {
	return s.store.ListContacts(ctx)
}

// UpdateStatus 更新联系消息状态。
func (s *ContactService) UpdateStatus(ctx context.Context, id string, status domain.ContactStatus) error {
	if err := s.store.UpdateContactStatus(ctx, id, status); err != nil {
		return err
	}

	s.logger.Info("contact status updated",
		zap.String("contact_id", id),
		zap.String("status", string(status)),
	)
	return nil
}
