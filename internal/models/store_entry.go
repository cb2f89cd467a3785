package models

import "time"

// StoreEntry 本地持久化存储条目（按会话命名空间隔离的 KV 记录）
type StoreEntry struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                       // 主键
	Namespace string    `gorm:"type:varchar(64);uniqueIndex:idx_store_ns_key;not null" json:"namespace"` // 命名空间（会话 ID）
	Key       string    `gorm:"type:varchar(191);uniqueIndex:idx_store_ns_key;not null" json:"key"`      // 条目键
	Value     string    `gorm:"type:text" json:"value"`                                     // JSON 序列化后的值
	CreatedAt time.Time `json:"created_at"`                                                 // 创建时间
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`                                    // 更新时间
}

// TableName 指定表名
func (StoreEntry) TableName() string {
	return "store_entries"
}
