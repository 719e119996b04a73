package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ewebb/backend/internal/domain"
	"ewebb/backend/internal/storage"
)

// Store MongoDB 存储实现
//
// 集合：contacts、documents。实体以自带的 UUID 字段 "id" 为身份，
// MongoDB 的 _id 仅为内部标识，查询时通过投影剥离，绝不出现在输出中。
type Store struct {
	client    *mongo.Client
	contacts  *mongo.Collection
	documents *mongo.Collection
}

// NewStore 基于已建立的连接创建 MongoDB 存储实例。
func NewStore(client *mongo.Client, database string) *Store {
	db := client.Database(database)
	return &Store{
		client:    client,
		contacts:  db.Collection("contacts"),
		documents: db.Collection("documents"),
	}
}

// 剥离 _id 的查询投影
var stripID = bson.D{{Key: "_id", Value: 0}}

// SaveContact 保存联系消息。
func (s *Store) SaveContact(ctx context.Context, message *domain.ContactMessage) error {
	if _, err := s.contacts.InsertOne(ctx, message); err != nil {
		return fmt.Errorf("failed to insert contact: %w", err)
	}
	return nil
}

// ListContacts 返回全部联系消息，按创建时间降序。
func (s *Store) ListContacts(ctx context.Context) ([]domain.ContactMessage, error) {
	opts := options.Find().
		SetProjection(stripID).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := s.contacts.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer cursor.Close(ctx)

	contacts := make([]domain.ContactMessage, 0)
	if err := cursor.All(ctx, &contacts); err != nil {
		return nil, fmt.Errorf("failed to decode contacts: %w", err)
	}

	return contacts, nil
}

// UpdateContactStatus 更新联系消息状态与更新时间。
func (s *Store) UpdateContactStatus(ctx context.Context, id string, status domain.ContactStatus) error {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "status", Value: status},
		{Key: "updated_at", Value: time.Now().UTC()},
	}}}

	result, err := s.contacts.UpdateOne(ctx, bson.D{{Key: "id", Value: id}}, update)
	if err != nil {
		return fmt.Errorf("failed to update contact status: %w", err)
	}
	if result.MatchedCount == 0 {
		return storage.ErrContactNotFound
	}

	return nil
}

// SaveDocument 保存文档元数据记录。
func (s *Store) SaveDocument(ctx context.Context, record *domain.DocumentRecord) error {
	if _, err := s.documents.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}

// ListDocuments 返回文档记录，按上传时间降序；category 为空时不过滤。
func (s *Store) ListDocuments(ctx context.Context, category domain.Category) ([]domain.DocumentRecord, error) {
	filter := bson.D{}
	if category != "" {
		filter = bson.D{{Key: "category", Value: category}}
	}

	opts := options.Find().
		SetProjection(stripID).
		SetSort(bson.D{{Key: "uploaded_at", Value: -1}})

	cursor, err := s.documents.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer cursor.Close(ctx)

	documents := make([]domain.DocumentRecord, 0)
	if err := cursor.All(ctx, &documents); err != nil {
		return nil, fmt.Errorf("failed to decode documents: %w", err)
	}

	return documents, nil
}

// GetDocument 根据 ID 获取文档记录。
func (s *Store) GetDocument(ctx context.Context, id string) (*domain.DocumentRecord, error) {
	opts := options.FindOne().SetProjection(stripID)

	var record domain.DocumentRecord
	err := s.documents.FindOne(ctx, bson.D{{Key: "id", Value: id}}, opts).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, storage.ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return &record, nil
}

// DeleteDocument 删除文档记录。
func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	result, err := s.documents.DeleteOne(ctx, bson.D{{Key: "id", Value: id}})
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if result.DeletedCount == 0 {
		return storage.ErrDocumentNotFound
	}

	return nil
}

// Close 断开 MongoDB 连接。
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Health 检查数据库可达性。
func (s *Store) Health(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.client.Ping(pingCtx, nil)
}
