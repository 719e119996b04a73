package filesystem

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"ewebb/backend/internal/domain"
)

// Store 管理上传文件在磁盘上的保存与删除。
//
// 目录布局为 <root>/<category>/<filename>，每个文档分类一个子目录。
type Store struct {
	root string
}

// NewStore 创建文件存储并确保各分类子目录存在。
func NewStore(root string) (*Store, error) {
	for _, category := range domain.Categories() {
		dir := filepath.Join(root, string(category))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
		}
	}

	return &Store{root: root}, nil
}

// Root 返回上传根目录。
func (s *Store) Root() string {
	return s.root
}

// Save 将内容写入分类目录下的文件，返回相对于根目录的路径。
func (s *Store) Save(category domain.Category, filename string, content io.Reader) (string, error) {
	relPath := filepath.Join(string(category), filename)
	fullPath := filepath.Join(s.root, relPath)

	f, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}

	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to close upload file: %w", err)
	}

	return relPath, nil
}

// Remove 删除分类目录下的文件；文件不存在视为已删除。
func (s *Store) Remove(category domain.Category, filename string) error {
	fullPath := filepath.Join(s.root, string(category), filename)

	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove upload file: %w", err)
	}

	return nil
}
