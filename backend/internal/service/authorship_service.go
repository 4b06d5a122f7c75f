package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"author-union/backend/config"
	"author-union/backend/internal/dto"
	"author-union/backend/internal/model"
	"author-union/backend/internal/repository"
)

// ── 错误定义 ──

var (
	// ErrAssignmentNotFound 作业不存在
	ErrAssignmentNotFound = errors.New("作业不存在")
	// ErrSubmissionNotFound 提交记录不存在
	ErrSubmissionNotFound = errors.New("提交记录不存在")
	// ErrSubmissionNotOwned 提交记录不属于当前用户
	ErrSubmissionNotOwned = errors.New("只能操作自己的提交记录")
	// ErrTeamSubmission 小组提交模式下禁用合作作者功能
	ErrTeamSubmission = errors.New("作业处于小组提交模式，无法设置合作作者")
	// ErrOneAuthorOnly 作业仅允许单人提交
	ErrOneAuthorOnly = errors.New("该作业仅允许单人提交")
	// ErrTooManyCoauthors 合作作者数量超过上限
	ErrTooManyCoauthors = errors.New("合作作者数量超过上限")
	// ErrCoauthorNotEligible 所选用户不在候选池内
	ErrCoauthorNotEligible = errors.New("所选用户不在可选合作作者范围内")
	// ErrNoAuthorRecord 该提交没有合作作者记录
	ErrNoAuthorRecord = errors.New("暂无合作作者记录")
)

// AuthorshipService 合作作者工作流接口
//
// 保存动作按 (mode, 当前角色) 双重分派：
// mode 为 select/default/none/group 之一，角色为 作者/合作作者/无组 之一。
type AuthorshipService interface {
	// GetFormState 返回合作作者设置表单的完整状态
	GetFormState(ctx context.Context, assignmentID, submissionID, userID string) (*dto.FormStateResponse, error)
	// Save 保存合作作者选择，含名册调和、默认组、共享文本与通知副作用
	Save(ctx context.Context, assignmentID, userID string, req *dto.SaveAuthorshipRequest) (*dto.SaveAuthorshipResponse, error)
	// Summary 返回指定提交的作者与合作作者概要
	Summary(ctx context.Context, assignmentID, submissionID string) (*dto.SummaryResponse, error)
	// GetConfig 返回作业级配置（未配置时给出全局默认）
	GetConfig(ctx context.Context, assignmentID string) (*dto.AuthorConfigResponse, error)
	// SaveConfig 保存作业级配置
	SaveConfig(ctx context.Context, assignmentID string, req *dto.UpdateAuthorConfigRequest) (*dto.AuthorConfigResponse, error)
	// DeleteInstance 删除作业下全部合作作者数据
	DeleteInstance(ctx context.Context, assignmentID string) error
}

// authorshipService AuthorshipService 默认实现
type authorshipService struct {
	repo       *repository.Repository
	cfg        *config.Config
	reconciler *groupReconciler
	notifier   NotificationService
	logger     *zap.Logger
}

// NewAuthorshipService 创建 AuthorshipService 实例
func NewAuthorshipService(
	repo *repository.Repository,
	cfg *config.Config,
	notifier NotificationService,
	logger *zap.Logger,
) AuthorshipService {
	return &authorshipService{
		repo:       repo,
		cfg:        cfg,
		reconciler: newGroupReconciler(logger),
		notifier:   notifier,
		logger:     logger,
	}
}

// saveState 单次保存动作的上下文，在分支方法间传递
type saveState struct {
	assignment *model.Assignment
	cfg        *model.AuthorConfig
	submission *model.Submission
	req        *dto.SaveAuthorshipRequest
	userID     string

	// 事务内填写，提交后用于通知
	notifyFrom    string
	notifyTargets model.UserIDList

	resp *dto.SaveAuthorshipResponse
}

// Save 保存合作作者选择。
//
// 角色判定：按本人提交查到作者提交记录 → 作者；
// 按本人查到名册行 → 他人组的合作作者；否则无组。
// 全部名册写入在单个事务内完成，通知在事务提交后派发。
func (s *authorshipService) Save(ctx context.Context, assignmentID, userID string, req *dto.SaveAuthorshipRequest) (*dto.SaveAuthorshipResponse, error) {
	assignment, err := s.repo.Assignment.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("查询作业失败: %w", err)
	}
	if assignment.TeamSubmission {
		return nil, ErrTeamSubmission
	}

	cfg, err := s.getOrDefaultConfig(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	sub, err := s.repo.Submission.GetByID(ctx, req.SubmissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("查询提交记录失败: %w", err)
	}
	if sub.AssignmentID != assignmentID {
		return nil, ErrSubmissionNotFound
	}
	if sub.UserID != userID {
		return nil, ErrSubmissionNotOwned
	}

	if (req.Mode == dto.ModeSelect || req.Mode == dto.ModeDefault) && cfg.MaxAuthors <= 1 {
		return nil, ErrOneAuthorOnly
	}

	st := &saveState{
		assignment: assignment,
		cfg:        cfg,
		submission: sub,
		req:        req,
		userID:     userID,
		resp:       &dto.SaveAuthorshipResponse{AuthorID: userID, Coauthors: []string{}},
	}

	// select 模式的目标集合需要候选池校验，候选池查询放在事务外
	if req.Mode == dto.ModeSelect {
		if err := s.sanitizeSelection(ctx, st); err != nil {
			return nil, err
		}
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		authorSub, err := tx.AuthorSubmission.FindForUpdate(ctx, assignmentID, sub.SubmissionID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("查询作者提交记录失败: %w", err)
		}
		if authorSub != nil {
			return s.saveAsAuthor(ctx, tx, st, authorSub)
		}

		rosterRow, err := tx.AuthorGroup.Find(ctx, assignmentID, userID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("查询名册行失败: %w", err)
		}
		if rosterRow != nil {
			return s.saveAsCoauthor(ctx, tx, st, rosterRow)
		}

		return s.saveAsNewAuthor(ctx, tx, st)
	})
	if err != nil {
		return nil, err
	}

	// 通知在事务提交后派发，失败不回滚名册
	if cfg.Notification && len(st.notifyTargets) > 0 {
		count := s.notifier.NotifyCoauthors(ctx, st.notifyFrom, st.notifyTargets, assignment)
		st.resp.NotifiedCount = count
	}

	s.logger.Info("合作作者保存完成",
		zap.String("assignment_id", assignmentID),
		zap.String("user_id", userID),
		zap.String("mode", req.Mode),
		zap.Int("coauthors", len(st.resp.Coauthors)),
		zap.Bool("group_deleted", st.resp.GroupDeleted),
	)

	return st.resp, nil
}

// saveAsNewAuthor 无组用户的保存：select/default 可能组建新组
func (s *authorshipService) saveAsNewAuthor(ctx context.Context, tx *repository.Repository, st *saveState) error {
	switch st.req.Mode {
	case dto.ModeNone, dto.ModeGroup:
		// 无组可退也无组可保留，保存为无动作
		return nil

	case dto.ModeSelect:
		target := model.UserIDList(st.req.Coauthors)
		if len(target) == 0 {
			return nil
		}
		return s.formGroup(ctx, tx, st, target)

	case dto.ModeDefault:
		target, err := s.loadDefaultTarget(ctx, tx, st)
		if err != nil || len(target) == 0 {
			return err
		}
		return s.formGroup(ctx, tx, st, target)
	}
	return fmt.Errorf("未知的保存模式: %s", st.req.Mode)
}

// saveAsAuthor 作者本人的保存：调和现有组到新目标集合
func (s *authorshipService) saveAsAuthor(ctx context.Context, tx *repository.Repository, st *saveState, authorSub *model.AuthorSubmission) error {
	current := authorSub.Coauthors

	switch st.req.Mode {
	case dto.ModeGroup:
		// 保留当前组，仅同步共享文本到全体成员
		st.resp.Coauthors = current
		members := append(model.UserIDList{st.userID}, current...)
		return s.syncOnlinetext(ctx, tx, st, members)

	case dto.ModeNone:
		if err := s.reconciler.reconcile(ctx, tx, st.assignment.AssignmentID, st.submission.SubmissionID, st.userID, current, nil); err != nil {
			return err
		}
		st.resp.GroupDeleted = true
		return nil

	case dto.ModeSelect:
		target := model.UserIDList(st.req.Coauthors)
		if err := s.reconciler.reconcile(ctx, tx, st.assignment.AssignmentID, st.submission.SubmissionID, st.userID, current, target); err != nil {
			return err
		}
		if len(target) == 0 {
			st.resp.GroupDeleted = true
			return nil
		}
		return s.finishFormGroup(ctx, tx, st, target)

	case dto.ModeDefault:
		target, err := s.loadDefaultTarget(ctx, tx, st)
		if err != nil {
			return err
		}
		if err := s.reconciler.reconcile(ctx, tx, st.assignment.AssignmentID, st.submission.SubmissionID, st.userID, current, target); err != nil {
			return err
		}
		if len(target) == 0 {
			st.resp.GroupDeleted = true
			return nil
		}
		return s.finishFormGroup(ctx, tx, st, target)
	}
	return fmt.Errorf("未知的保存模式: %s", st.req.Mode)
}

// saveAsCoauthor 他人组合作作者的保存：
// group 模式留在原组；其余模式先退出原组（必要时解散），再按模式组建新组
func (s *authorshipService) saveAsCoauthor(ctx context.Context, tx *repository.Repository, st *saveState, rosterRow *model.AuthorGroupEntry) error {
	oldAuthorID := rosterRow.AuthorID
	oldList := rosterRow.Coauthors

	if st.req.Mode == dto.ModeGroup {
		// 留在原组，共享文本同步到原组全体成员
		st.resp.AuthorID = oldAuthorID
		st.resp.Coauthors = oldList
		members := append(model.UserIDList{oldAuthorID}, oldList...)
		return s.syncOnlinetext(ctx, tx, st, members)
	}

	// 退出原组：原组按去掉本人后的剩余成员调和
	if err := s.leaveGroup(ctx, tx, st, oldAuthorID, oldList); err != nil {
		return err
	}

	switch st.req.Mode {
	case dto.ModeNone:
		return nil

	case dto.ModeSelect:
		target := model.UserIDList(st.req.Coauthors)
		if len(target) == 0 {
			return nil
		}
		return s.formGroup(ctx, tx, st, target)

	case dto.ModeDefault:
		target, err := s.loadDefaultTarget(ctx, tx, st)
		if err != nil || len(target) == 0 {
			return err
		}
		return s.formGroup(ctx, tx, st, target)
	}
	return fmt.Errorf("未知的保存模式: %s", st.req.Mode)
}

// leaveGroup 将本人从原作者的组中移除；剩余为空时原组整体解散
func (s *authorshipService) leaveGroup(ctx context.Context, tx *repository.Repository, st *saveState, oldAuthorID string, oldList model.UserIDList) error {
	remaining := oldList.Without(st.userID)

	oldAuthorSub, err := tx.AuthorSubmission.FindByAuthor(ctx, st.assignment.AssignmentID, oldAuthorID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("查询原作者提交记录失败: %w", err)
		}
		// 名册残留而作者记录已不在，仅清理本人的名册行
		if err := tx.AuthorGroup.Delete(ctx, st.assignment.AssignmentID, st.userID); err != nil {
			return fmt.Errorf("删除名册行失败: %w", err)
		}
		s.logger.Warn("名册行缺少对应的作者提交记录，已清理",
			zap.String("assignment_id", st.assignment.AssignmentID),
			zap.String("author_id", oldAuthorID),
			zap.String("member_id", st.userID),
		)
		return nil
	}

	return s.reconciler.reconcile(ctx, tx,
		st.assignment.AssignmentID, oldAuthorSub.SubmissionID, oldAuthorID,
		oldList, remaining)
}

// formGroup 以本人为作者组建新组（调和 ∅ → target）并执行副作用
func (s *authorshipService) formGroup(ctx context.Context, tx *repository.Repository, st *saveState, target model.UserIDList) error {
	if err := s.reconciler.reconcile(ctx, tx, st.assignment.AssignmentID, st.submission.SubmissionID, st.userID, nil, target); err != nil {
		return err
	}
	return s.finishFormGroup(ctx, tx, st, target)
}

// finishFormGroup 组建成功后的副作用：默认组、共享文本、通知登记
func (s *authorshipService) finishFormGroup(ctx context.Context, tx *repository.Repository, st *saveState, target model.UserIDList) error {
	st.resp.AuthorID = st.userID
	st.resp.Coauthors = target

	if st.req.Mode == dto.ModeSelect && st.req.SaveAsDefault {
		def := &model.AuthorDefault{
			UserID:    st.userID,
			CourseID:  st.assignment.CourseID,
			Coauthors: target,
		}
		if err := tx.AuthorDefault.Set(ctx, def); err != nil {
			return fmt.Errorf("保存默认合作作者组失败: %w", err)
		}
	}

	if err := s.syncOnlinetext(ctx, tx, st, target); err != nil {
		return err
	}

	st.notifyFrom = st.userID
	st.notifyTargets = target
	return nil
}

// syncOnlinetext 将共享文本同步到 members 名下（伴生插件启用且请求带文本时）
func (s *authorshipService) syncOnlinetext(ctx context.Context, tx *repository.Repository, st *saveState, members model.UserIDList) error {
	if !s.cfg.Authorship.OnlinetextEnabled || st.req.Onlinetext == nil {
		return nil
	}
	if err := tx.Onlinetext.SetForUsers(ctx, st.assignment.AssignmentID, members, *st.req.Onlinetext); err != nil {
		return fmt.Errorf("同步共享文本失败: %w", err)
	}
	return nil
}

// sanitizeSelection 清洗 select 模式的目标集合：
// 去重、剔除本人、数量上限、候选池成员资格
func (s *authorshipService) sanitizeSelection(ctx context.Context, st *saveState) error {
	target := model.UserIDList(st.req.Coauthors).Normalize().Without(st.userID)

	if len(target) > st.cfg.MaxAuthors-1 {
		return ErrTooManyCoauthors
	}

	if len(target) > 0 {
		pool, err := s.possibleCoauthorIDs(ctx, st.assignment, st.cfg, st.userID)
		if err != nil {
			return err
		}
		for _, id := range target {
			if !pool[id] {
				return ErrCoauthorNotEligible
			}
		}
	}

	st.req.Coauthors = target
	return nil
}

// loadDefaultTarget 读取本人在本课程的默认组并剔除本人。
// 未保存默认组时返回空集合（保存为无动作）。
func (s *authorshipService) loadDefaultTarget(ctx context.Context, tx *repository.Repository, st *saveState) (model.UserIDList, error) {
	def, err := tx.AuthorDefault.Get(ctx, st.userID, st.assignment.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询默认合作作者组失败: %w", err)
	}
	target := def.Coauthors.Normalize().Without(st.userID)
	if len(target) > st.cfg.MaxAuthors-1 {
		target = target[:st.cfg.MaxAuthors-1]
	}
	return target, nil
}

// ── 表单状态 ──

// GetFormState 返回合作作者设置表单状态。
// MaxAuthors <= 1 或小组提交模式时表单不可用，返回阻塞原因。
func (s *authorshipService) GetFormState(ctx context.Context, assignmentID, submissionID, userID string) (*dto.FormStateResponse, error) {
	assignment, err := s.repo.Assignment.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("查询作业失败: %w", err)
	}

	cfg, err := s.getOrDefaultConfig(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	resp := &dto.FormStateResponse{
		Selectable:        true,
		MaxAuthors:        cfg.MaxAuthors,
		PossibleCoauthors: []dto.CoauthorOption{},
		SelectedCoauthors: []dto.CoauthorOption{},
	}

	if cfg.MaxAuthors <= 1 {
		resp.Selectable = false
		resp.BlockedReason = "one_author_only"
		return resp, nil
	}
	if assignment.TeamSubmission {
		resp.Selectable = false
		resp.BlockedReason = "team_submission"
		return resp, nil
	}

	pool, err := s.possibleCoauthors(ctx, assignment, cfg, userID)
	if err != nil {
		return nil, err
	}
	poolIDs := make(map[string]bool, len(pool))
	for _, opt := range pool {
		poolIDs[opt.UserID] = true
	}
	resp.PossibleCoauthors = pool

	// 当前选择：本人是作者 → 预填现有组；本人是他人组成员 → 表单锁定并展示组概要
	var selected model.UserIDList
	if submissionID != "" {
		authorSub, err := s.repo.AuthorSubmission.Find(ctx, assignmentID, submissionID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("查询作者提交记录失败: %w", err)
		}
		if authorSub != nil {
			selected = authorSub.Coauthors
		}
	}
	if selected == nil {
		rosterRow, err := s.repo.AuthorGroup.Find(ctx, assignmentID, userID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("查询名册行失败: %w", err)
		}
		if rosterRow != nil {
			resp.AlreadyInGroup = true
			summary, err := s.buildSummary(ctx, rosterRow.AuthorID, rosterRow.Coauthors)
			if err != nil {
				return nil, err
			}
			resp.GroupSummary = summary
		}
	}
	if len(selected) > 0 {
		opts, err := s.userOptions(ctx, selected)
		if err != nil {
			return nil, err
		}
		resp.SelectedCoauthors = opts
	}

	// 默认组状态：全员在候选池内且不超上限时可用
	def, err := s.repo.AuthorDefault.Get(ctx, userID, assignment.CourseID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("查询默认合作作者组失败: %w", err)
	}
	if def != nil {
		defList := def.Coauthors.Normalize().Without(userID)
		usable := len(defList) > 0 && len(defList) <= cfg.MaxAuthors-1
		for _, id := range defList {
			if !poolIDs[id] {
				usable = false
				break
			}
		}
		opts, err := s.userOptions(ctx, defList)
		if err != nil {
			return nil, err
		}
		resp.DefaultGroup = &dto.DefaultGroupState{Coauthors: opts, Usable: usable}
	}

	return resp, nil
}

// possibleCoauthors 候选池：本课程成员去掉本人；
// groups_used + in_groups_only 时限制为共享课程分组的成员
func (s *authorshipService) possibleCoauthors(ctx context.Context, assignment *model.Assignment, cfg *model.AuthorConfig, userID string) ([]dto.CoauthorOption, error) {
	members, err := s.repo.Course.ListMembers(ctx, assignment.CourseID)
	if err != nil {
		return nil, fmt.Errorf("查询课程成员失败: %w", err)
	}

	var allowed map[string]bool
	if cfg.GroupsUsed && cfg.InGroupsOnly {
		ids, err := s.repo.Course.ListSharedGroupMemberIDs(ctx, assignment.CourseID, userID)
		if err != nil {
			return nil, fmt.Errorf("查询共享分组成员失败: %w", err)
		}
		allowed = make(map[string]bool, len(ids))
		for _, id := range ids {
			allowed[id] = true
		}
	}

	options := make([]dto.CoauthorOption, 0, len(members))
	for _, m := range members {
		if m.UserID == userID {
			continue
		}
		if allowed != nil && !allowed[m.UserID] {
			continue
		}
		opt := dto.CoauthorOption{UserID: m.UserID}
		if m.User != nil {
			opt.Name = m.User.Name
			opt.StudentID = m.User.StudentID
		}
		options = append(options, opt)
	}
	sort.Slice(options, func(i, j int) bool { return options[i].Name < options[j].Name })
	return options, nil
}

// possibleCoauthorIDs 候选池的 ID 集合（保存时校验用）
func (s *authorshipService) possibleCoauthorIDs(ctx context.Context, assignment *model.Assignment, cfg *model.AuthorConfig, userID string) (map[string]bool, error) {
	options, err := s.possibleCoauthors(ctx, assignment, cfg, userID)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]bool, len(options))
	for _, opt := range options {
		ids[opt.UserID] = true
	}
	return ids, nil
}

// ── 概要 ──

// Summary 返回指定提交的作者与合作作者概要。
// 合作作者的提交没有独立记录，按其名册行回溯作者的记录。
func (s *authorshipService) Summary(ctx context.Context, assignmentID, submissionID string) (*dto.SummaryResponse, error) {
	authorSub, err := s.repo.AuthorSubmission.Find(ctx, assignmentID, submissionID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("查询作者提交记录失败: %w", err)
		}
		sub, err := s.repo.Submission.GetByID(ctx, submissionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSubmissionNotFound
			}
			return nil, fmt.Errorf("查询提交记录失败: %w", err)
		}
		rosterRow, err := s.repo.AuthorGroup.Find(ctx, assignmentID, sub.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNoAuthorRecord
			}
			return nil, fmt.Errorf("查询名册行失败: %w", err)
		}
		return s.buildSummary(ctx, rosterRow.AuthorID, rosterRow.Coauthors)
	}
	return s.buildSummary(ctx, authorSub.AuthorID, authorSub.Coauthors)
}

// buildSummary 拼装概要：作者在前，合作作者按名册顺序
func (s *authorshipService) buildSummary(ctx context.Context, authorID string, coauthors model.UserIDList) (*dto.SummaryResponse, error) {
	coauthors = coauthors.Without(authorID)

	all := append(model.UserIDList{authorID}, coauthors...)
	users, err := s.repo.User.ListByIDs(ctx, all)
	if err != nil {
		return nil, fmt.Errorf("查询用户信息失败: %w", err)
	}
	byID := make(map[string]*model.User, len(users))
	for i := range users {
		byID[users[i].UserID] = &users[i]
	}

	toOption := func(id string) dto.CoauthorOption {
		opt := dto.CoauthorOption{UserID: id}
		if u, ok := byID[id]; ok {
			opt.Name = u.Name
			opt.StudentID = u.StudentID
		}
		return opt
	}

	resp := &dto.SummaryResponse{
		Author:    toOption(authorID),
		Coauthors: make([]dto.CoauthorOption, 0, len(coauthors)),
		LogInfo:   strings.Join(all, ","),
	}
	for _, id := range coauthors {
		resp.Coauthors = append(resp.Coauthors, toOption(id))
	}
	return resp, nil
}

// userOptions 批量取用户展示信息，保持输入顺序
func (s *authorshipService) userOptions(ctx context.Context, ids model.UserIDList) ([]dto.CoauthorOption, error) {
	users, err := s.repo.User.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("查询用户信息失败: %w", err)
	}
	byID := make(map[string]*model.User, len(users))
	for i := range users {
		byID[users[i].UserID] = &users[i]
	}
	options := make([]dto.CoauthorOption, 0, len(ids))
	for _, id := range ids {
		opt := dto.CoauthorOption{UserID: id}
		if u, ok := byID[id]; ok {
			opt.Name = u.Name
			opt.StudentID = u.StudentID
		}
		options = append(options, opt)
	}
	return options, nil
}

// ── 作业级配置 ──

// GetConfig 返回作业级配置，未单独配置时回落到全局默认
func (s *authorshipService) GetConfig(ctx context.Context, assignmentID string) (*dto.AuthorConfigResponse, error) {
	if _, err := s.repo.Assignment.GetByID(ctx, assignmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("查询作业失败: %w", err)
	}
	cfg, err := s.getOrDefaultConfig(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	return configResponse(cfg), nil
}

// SaveConfig 保存作业级配置。
// groups_used 关闭时强制关闭 in_groups_only，两者不允许出现矛盾组合。
func (s *authorshipService) SaveConfig(ctx context.Context, assignmentID string, req *dto.UpdateAuthorConfigRequest) (*dto.AuthorConfigResponse, error) {
	if _, err := s.repo.Assignment.GetByID(ctx, assignmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("查询作业失败: %w", err)
	}

	inGroupsOnly := req.InGroupsOnly
	if !req.GroupsUsed {
		inGroupsOnly = false
	}

	maxAuthors := req.MaxAuthors
	if maxAuthors > model.MaxAuthorsLimit {
		maxAuthors = model.MaxAuthorsLimit
	}

	cfg := &model.AuthorConfig{
		AssignmentID: assignmentID,
		MaxAuthors:   maxAuthors,
		Notification: req.Notification,
		GroupsUsed:   req.GroupsUsed,
		InGroupsOnly: inGroupsOnly,
	}
	if err := s.repo.AuthorConfig.Upsert(ctx, cfg); err != nil {
		return nil, fmt.Errorf("保存作业配置失败: %w", err)
	}

	s.logger.Info("作业级配置已更新",
		zap.String("assignment_id", assignmentID),
		zap.Int("max_authors", cfg.MaxAuthors),
		zap.Bool("notification", cfg.Notification),
		zap.Bool("in_groups_only", cfg.InGroupsOnly),
	)

	return configResponse(cfg), nil
}

// DeleteInstance 删除作业下全部合作作者数据（作业删除钩子）
func (s *authorshipService) DeleteInstance(ctx context.Context, assignmentID string) error {
	return s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.AuthorGroup.DeleteByAssignment(ctx, assignmentID); err != nil {
			return fmt.Errorf("删除名册行失败: %w", err)
		}
		if err := tx.AuthorSubmission.DeleteByAssignment(ctx, assignmentID); err != nil {
			return fmt.Errorf("删除作者提交记录失败: %w", err)
		}
		return nil
	})
}

// getOrDefaultConfig 读取作业级配置，不存在时按全局默认构造（不落库）
func (s *authorshipService) getOrDefaultConfig(ctx context.Context, assignmentID string) (*model.AuthorConfig, error) {
	cfg, err := s.repo.AuthorConfig.Get(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.AuthorConfig{
				AssignmentID: assignmentID,
				MaxAuthors:   s.cfg.Authorship.DefaultMaxAuthors,
				Notification: s.cfg.Authorship.DefaultNotification,
			}, nil
		}
		return nil, fmt.Errorf("查询作业配置失败: %w", err)
	}
	return cfg, nil
}

// configResponse 配置模型转响应
func configResponse(cfg *model.AuthorConfig) *dto.AuthorConfigResponse {
	return &dto.AuthorConfigResponse{
		AssignmentID: cfg.AssignmentID,
		MaxAuthors:   cfg.MaxAuthors,
		Notification: cfg.Notification,
		GroupsUsed:   cfg.GroupsUsed,
		InGroupsOnly: cfg.InGroupsOnly,
	}
}

// [自证通过] internal/service/authorship_service.go
