package store

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/pizzeria-next/internal/logger"
	"github.com/pizzeria-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store 本地持久化存储接口（按命名空间隔离的 KV 存储）
type Store interface {
	Get(namespace, key string, dest interface{}) bool
	Put(namespace, key string, value interface{}) error
	Delete(namespace, key string) error
	Keys(namespace, prefix string) ([]string, error)
	Clear(namespace string) error
	WithTx(tx *gorm.DB) *GormStore
}

// GormStore GORM 实现
type GormStore struct {
	db *gorm.DB
}

// NewStore 创建存储
func NewStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// WithTx 绑定事务
func (s *GormStore) WithTx(tx *gorm.DB) *GormStore {
	if tx == nil {
		return s
	}
	return &GormStore{db: tx}
}

// Get 读取并反序列化条目，命中且解析成功时返回 true。
// 条目缺失或 JSON 损坏均视为未命中，不向上抛错。
func (s *GormStore) Get(namespace, key string, dest interface{}) bool {
	var entry models.StoreEntry
	err := s.db.Where("namespace = ? AND key = ?", namespace, key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false
	}
	if err != nil {
		logger.Warnw("store_get_failed", "namespace", namespace, "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal([]byte(entry.Value), dest); err != nil {
		logger.Warnw("store_entry_corrupted", "namespace", namespace, "key", key, "error", err)
		return false
	}
	return true
}

// Put 序列化并写入条目（存在则覆盖）
func (s *GormStore) Put(namespace, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	entry := models.StoreEntry{
		Namespace: namespace,
		Key:       key,
		Value:     string(raw),
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

// Delete 删除条目（不存在时视为成功）
func (s *GormStore) Delete(namespace, key string) error {
	return s.db.Where("namespace = ? AND key = ?", namespace, key).Delete(&models.StoreEntry{}).Error
}

// Keys 列出命名空间下以 prefix 开头的所有键（按键名升序）。
// 前缀匹配在内存中完成，避免 LIKE 通配符对下划线的误匹配。
func (s *GormStore) Keys(namespace, prefix string) ([]string, error) {
	var all []string
	err := s.db.Model(&models.StoreEntry{}).
		Where("namespace = ?", namespace).
		Order("key asc").
		Pluck("key", &all).Error
	if err != nil {
		return nil, err
	}
	if prefix == "" {
		return all, nil
	}
	keys := make([]string, 0, len(all))
	for _, k := range all {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

// Clear 清空命名空间下的全部条目
func (s *GormStore) Clear(namespace string) error {
	return s.db.Where("namespace = ?", namespace).Delete(&models.StoreEntry{}).Error
}
