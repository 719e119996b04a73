package domain

import "time"

// Category 上传文档的分类标签
//
// 分类同时决定文件在磁盘上的存放目录（uploads/public、uploads/eulogy）。
type Category string

const (
	// CategoryPublic 公开下载区文档
	CategoryPublic Category = "public"
	// CategoryEulogy 悼词类文档
	CategoryEulogy Category = "eulogy"
)

// ValidCategory 校验分类是否为允许的两个值之一
func ValidCategory(c Category) bool {
	return c == CategoryPublic || c == CategoryEulogy
}

// Categories 返回所有允许的分类
func Categories() []Category {
	return []Category{CategoryPublic, CategoryEulogy}
}

// DocumentRecord 上传文档的元数据记录
//
// Filename 是服务端生成的唯一文件名（UUID + 原始扩展名），与磁盘文件一一对应；
// 删除操作以记录删除为准，磁盘文件的清理是尽力而为的。
type DocumentRecord struct {
	ID           string    `json:"id" bson:"id"`
	OriginalName string    `json:"original_name" bson:"original_name"`
	Filename     string    `json:"filename" bson:"filename"`
	Category     Category  `json:"category" bson:"category"`
	FilePath     string    `json:"file_path" bson:"file_path"`
	UploadedAt   time.Time `json:"uploaded_at" bson:"uploaded_at"`
	UploadedBy   string    `json:"uploaded_by" bson:"uploaded_by"`
}
