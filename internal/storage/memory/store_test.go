package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ewebb/backend/internal/domain"
	"ewebb/backend/internal/storage"
)

func newContact(id string, createdAt time.Time) *domain.ContactMessage {
	return &domain.ContactMessage{
		ID:        id,
		Name:      "Test User",
		Email:     "test@example.com",
		Subject:   "Hello",
		Message:   "Test message",
		CreatedAt: createdAt,
		Status:    domain.StatusNew,
	}
}

func TestStore_Contacts(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	base := time.Now().UTC()
	require.NoError(t, store.SaveContact(ctx, newContact("c1", base.Add(-2*time.Hour))))
	require.NoError(t, store.SaveContact(ctx, newContact("c2", base)))
	require.NoError(t, store.SaveContact(ctx, newContact("c3", base.Add(-1*time.Hour))))

	contacts, err := store.ListContacts(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 3)

	// 按创建时间降序
	assert.Equal(t, "c2", contacts[0].ID)
	assert.Equal(t, "c3", contacts[1].ID)
	assert.Equal(t, "c1", contacts[2].ID)
}

func TestStore_UpdateContactStatus(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	original := newContact("c1", time.Now().UTC())
	require.NoError(t, store.SaveContact(ctx, original))

	require.NoError(t, store.UpdateContactStatus(ctx, "c1", "read"))

	contacts, err := store.ListContacts(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 1)

	updated := contacts[0]
	assert.Equal(t, "read", updated.Status)
	require.NotNil(t, updated.UpdatedAt)

	// 其余字段保持不变
	assert.Equal(t, original.Name, updated.Name)
	assert.Equal(t, original.Email, updated.Email)
	assert.Equal(t, original.Subject, updated.Subject)
	assert.Equal(t, original.Message, updated.Message)
	assert.Equal(t, original.CreatedAt, updated.CreatedAt)
}

func TestStore_UpdateContactStatus_NotFound(t *testing.T) {
	store := NewStore()

	err := store.UpdateContactStatus(context.Background(), "missing", "read")
	assert.ErrorIs(t, err, storage.ErrContactNotFound)
}

func TestStore_SaveContact_Isolation(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	contact := newContact("c1", time.Now().UTC())
	require.NoError(t, store.SaveContact(ctx, contact))

	// 外部修改不应影响已保存的数据
	contact.Status = "mutated"

	contacts, err := store.ListContacts(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNew, contacts[0].Status)
}

func TestStore_Documents(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	base := time.Now().UTC()
	docs := []*domain.DocumentRecord{
		{ID: "d1", Filename: "a.pdf", Category: domain.CategoryPublic, UploadedAt: base.Add(-1 * time.Hour)},
		{ID: "d2", Filename: "b.pdf", Category: domain.CategoryEulogy, UploadedAt: base},
		{ID: "d3", Filename: "c.pdf", Category: domain.CategoryPublic, UploadedAt: base.Add(-2 * time.Hour)},
	}
	for _, d := range docs {
		require.NoError(t, store.SaveDocument(ctx, d))
	}

	t.Run("全部分类降序", func(t *testing.T) {
		all, err := store.ListDocuments(ctx, "")
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "d2", all[0].ID)
		assert.Equal(t, "d1", all[1].ID)
		assert.Equal(t, "d3", all[2].ID)
	})

	t.Run("按分类过滤", func(t *testing.T) {
		public, err := store.ListDocuments(ctx, domain.CategoryPublic)
		require.NoError(t, err)
		require.Len(t, public, 2)
		assert.Equal(t, "d1", public[0].ID)
		assert.Equal(t, "d3", public[1].ID)
	})

	t.Run("按ID获取", func(t *testing.T) {
		doc, err := store.GetDocument(ctx, "d2")
		require.NoError(t, err)
		assert.Equal(t, "b.pdf", doc.Filename)

		_, err = store.GetDocument(ctx, "missing")
		assert.ErrorIs(t, err, storage.ErrDocumentNotFound)
	})

	t.Run("删除", func(t *testing.T) {
		require.NoError(t, store.DeleteDocument(ctx, "d2"))

		_, err := store.GetDocument(ctx, "d2")
		assert.ErrorIs(t, err, storage.ErrDocumentNotFound)

		err = store.DeleteDocument(ctx, "d2")
		assert.ErrorIs(t, err, storage.ErrDocumentNotFound)
	})
}
