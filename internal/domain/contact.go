package domain

import "time"

// ContactStatus 联系消息的处理状态
//
// "new" 是创建时的初始状态；后续状态由管理员自由设置（如 "read"、"replied"），
// 不做枚举约束。
type ContactStatus = string

// StatusNew 新提交的联系消息的初始状态
const StatusNew ContactStatus = "new"

// ContactMessage 联系表单提交的消息实体
//
// ID 在创建时生成（UUID），与存储层内部标识无关；消息只会被创建和更新状态，
// 不会被任何对外接口删除。
type ContactMessage struct {
	ID        string        `json:"id" bson:"id"`
	Name      string        `json:"name" bson:"name"`
	Email     string        `json:"email" bson:"email"`
	Phone     *string       `json:"phone" bson:"phone"`
	Subject   string        `json:"subject" bson:"subject"`
	Message   string        `json:"message" bson:"message"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
	Status    ContactStatus `json:"status" bson:"status"`
	UpdatedAt *time.Time    `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}
