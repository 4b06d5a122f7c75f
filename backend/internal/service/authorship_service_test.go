package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"author-union/backend/config"
	"author-union/backend/internal/dto"
	"author-union/backend/internal/model"
	"author-union/backend/internal/repository"
)

// ── 测试辅助 ──

type authorshipFixture struct {
	svc AuthorshipService

	users         *mockUserRepo
	course        *mockCourseRepo
	assignments   *mockAssignmentRepo
	authorConfigs *mockAuthorConfigRepo
	submissions   *mockSubmissionRepo
	authorSubs    *mockAuthorSubmissionRepo
	roster        *mockAuthorGroupRepo
	defaults      *mockAuthorDefaultRepo
	onlinetext    *mockOnlinetextRepo
	notifications *mockNotificationRepo
}

// setupTestAuthorshipService 构造固定场景：
// 课程 course-1 有 4 名学生（alice/bob/carol/dave），
// 作业 assign-1 上限 5 人、通知开启，每人各有一份提交 sub-<name>
func setupTestAuthorshipService() *authorshipFixture {
	f := &authorshipFixture{
		users:         newMockUserRepo(),
		course:        newMockCourseRepo(),
		assignments:   newMockAssignmentRepo(),
		authorConfigs: newMockAuthorConfigRepo(),
		submissions:   newMockSubmissionRepo(),
		authorSubs:    newMockAuthorSubmissionRepo(),
		roster:        newMockAuthorGroupRepo(),
		defaults:      newMockAuthorDefaultRepo(),
		onlinetext:    newMockOnlinetextRepo(),
		notifications: newMockNotificationRepo(),
	}

	course := &model.Course{CourseID: "course-1", Name: "软件工程"}
	f.course.courses["course-1"] = course

	for _, u := range []struct{ id, name, studentID string }{
		{"u-alice", "爱丽丝", "2021001"},
		{"u-bob", "鲍勃", "2021002"},
		{"u-carol", "卡罗尔", "2021003"},
		{"u-dave", "戴夫", "2021004"},
	} {
		f.users.add(u.id, u.name, u.studentID)
		f.course.addMember("course-1", f.users.users[u.id])
	}

	f.assignments.assignments["assign-1"] = &model.Assignment{
		AssignmentID: "assign-1",
		CourseID:     "course-1",
		Name:         "需求分析报告",
		Course:       course,
	}

	f.authorConfigs.configs["assign-1"] = &model.AuthorConfig{
		AssignmentID: "assign-1",
		MaxAuthors:   5,
		Notification: true,
	}

	for _, uid := range []string{"u-alice", "u-bob", "u-carol", "u-dave"} {
		subID := "sub-" + uid[2:]
		f.submissions.submissions[subID] = &model.Submission{
			SubmissionID: subID,
			AssignmentID: "assign-1",
			UserID:       uid,
			Status:       "draft",
		}
	}

	repo := &repository.Repository{
		User:             f.users,
		Course:           f.course,
		Assignment:       f.assignments,
		AuthorConfig:     f.authorConfigs,
		Submission:       f.submissions,
		AuthorSubmission: f.authorSubs,
		AuthorGroup:      f.roster,
		AuthorDefault:    f.defaults,
		Onlinetext:       f.onlinetext,
		Notification:     f.notifications,
	}

	cfg := &config.Config{
		Authorship: config.AuthorshipConfig{
			DefaultMaxAuthors:   5,
			DefaultNotification: true,
			OnlinetextEnabled:   true,
		},
	}

	logger := zap.NewNop()
	notifier := NewNotificationService(repo, logger)
	f.svc = NewAuthorshipService(repo, cfg, notifier, logger)
	return f
}

func saveReq(submissionID, mode string, coauthors ...string) *dto.SaveAuthorshipRequest {
	return &dto.SaveAuthorshipRequest{
		SubmissionID: submissionID,
		Mode:         mode,
		Coauthors:    coauthors,
	}
}

// ── select 模式：组建与更新 ──

func TestAuthorshipService_Save_SelectCreatesGroup(t *testing.T) {
	f := setupTestAuthorshipService()

	resp, err := f.svc.Save(context.Background(), "assign-1", "u-alice",
		saveReq("sub-alice", dto.ModeSelect, "u-bob", "u-carol"))
	if err != nil {
		t.Fatalf("Save 应成功: %v", err)
	}

	if resp.AuthorID != "u-alice" {
		t.Errorf("期望AuthorID=u-alice，实际=%s", resp.AuthorID)
	}
	if len(resp.Coauthors) != 2 {
		t.Fatalf("期望2名合作作者，实际=%d", len(resp.Coauthors))
	}
	if resp.NotifiedCount != 2 {
		t.Errorf("期望通知2人，实际=%d", resp.NotifiedCount)
	}

	sub, err := f.authorSubs.Find(context.Background(), "assign-1", "sub-alice")
	if err != nil {
		t.Fatalf("作者提交记录应存在: %v", err)
	}
	if sub.AuthorID != "u-alice" {
		t.Errorf("期望作者=u-alice，实际=%s", sub.AuthorID)
	}

	for _, memberID := range []string{"u-bob", "u-carol"} {
		entry, err := f.roster.Find(context.Background(), "assign-1", memberID)
		if err != nil {
			t.Fatalf("成员 %s 应有名册行: %v", memberID, err)
		}
		if entry.AuthorID != "u-alice" {
			t.Errorf("成员 %s 名册应指向 u-alice，实际=%s", memberID, entry.AuthorID)
		}
		if len(entry.Coauthors) != 2 {
			t.Errorf("成员 %s 名册应含完整成员列表，实际=%v", memberID, entry.Coauthors)
		}
	}

	if len(f.notifications.notifications) != 2 {
		t.Errorf("期望写入2条通知，实际=%d", len(f.notifications.notifications))
	}
}

func TestAuthorshipService_Save_SelectIsIdempotent(t *testing.T) {
	f := setupTestAuthorshipService()
	ctx := context.Background()

	req := saveReq("sub-alice", dto.ModeSelect, "u-bob", "u-carol")
	if _, err := f.svc.Save(ctx, "assign-1", "u-alice", req); err != nil {
		t.Fatalf("首次 Save 应成功: %v", err)
	}
	resp, err := f.svc.Save(ctx, "assign-1", "u-alice",
		saveReq("sub-alice", dto.ModeSelect, "u-bob", "u-carol"))
	if err != nil {
		t.Fatalf("重复 Save 应成功: %v", err)
	}

	if len(resp.Coauthors) != 2 {
		t.Errorf("期望合作作者不变，实际=%v", resp.Coauthors)
	}
	if len(f.roster.entries) != 2 {
		t.Errorf("期望名册仍为2行，实际=%d", len(f.roster.entries))
	}
	if len(f.authorSubs.subs) != 1 {
		t.Errorf("期望作者提交记录仍为1条，实际=%d", len(f.authorSubs.subs))
	}
}

func TestAuthorshipService_Save_SelectShrinksGroup(t *testing.T) {
	f := setupTestAuthorshipService()
	ctx := context.Background()

	if _, err := f.svc.Save(ctx, "assign-1", "u-alice",
		saveReq("sub-alice", dto.ModeSelect, "u-bob", "u-carol")); err != nil {
		t.Fatalf("组建失败: %v", err)
	}
	if _, err := f.svc.Save(ctx, "assign-1", "u-alice",
		saveReq("sub-alice", dto.ModeSelect, "u-bob")); err != nil {
		t.Fatalf("缩减失败: %v", err)
	}

	if _, err := f.roster.Find(ctx, "assign-1", "u-carol"); err == nil {
		t.Error("被移除成员的名册行应已删除")
	}
	entry, err := f.roster.Find(ctx, "assign-1", "u-bob")
	if err != nil {
		t.Fatalf("保留成员应有名册行: %v", err)
	}
	if len(entry.Coauthors) != 1 || entry.Coauthors[0] != "u-bob" {
		t.Errorf("保留成员名册应刷新为新成员列表，实际=%v", entry.Coauthors)
	}

	sub, _ := f.authorSubs.Find(ctx, "assign-1", "sub-alice")
	if len(sub.Coauthors) != 1 || sub.Coauthors[0] != "u-bob" {
		t.Errorf("作者提交记录应只剩 u-bob，实际=%v", sub.Coauthors)
	}
}

func TestAuthorshipService_Save_GrowNotifiesWholeSet(t *testing.T) {
	f := setupTestAuthorshipService()
	ctx := context.Background()

	if _, err := f.svc.Save(ctx, "assign-1", "u-alice",
		saveReq("sub-alice", dto.ModeSelect, "u-bob")); err != nil {
		t.Fatalf("组建失败: %v", err)
	}
	before := len(f.notifications.notifications)

	resp, err := f.svc.Save(ctx, "assign-1", "u-alice",
		saveReq("sub-alice", dto.ModeSelect, "u-bob", "u-carol"))
	if err != nil {
		t.Fatalf("扩组失败: %v", err)
	}

	// 成员变更后向当前全量名单重发，而非只通知新增成员
	if resp.NotifiedCount != 2 {
		t.Errorf("期望通知2人，实际=%d", resp.NotifiedCount)
	}
	added := f.notifications.notifications[before:]
	if len(added) != 2 {
		t.Fatalf("期望新增2条通知，实际=%d", len(added))
	}
	recipients := make(map[string]bool)
	for _, n := range added {
		recipients[n.UserID] = true
	}
	if !recipients["u-bob"] || !recipients["u-carol"] {
		t.Errorf("期望 u-bob 与 u-carol 各收到通知，实际收件人=%v", recipients)
	}
}

// ── 解散 ──

func TestAuthorshipService_Save_NoneDissolvesGroup(t *testing.T) {
	f := setupTestAuthorshipService()
	ctx := context.Background()

	if _, err := f.svc.Save(ctx, "assign-1", "u-alice",
		saveReq("sub-alice", dto.ModeSelect, "u-bob", "u-carol")); err != nil {
		t.Fatalf("组建失败: %v", err)
	}
	before := len(f.notifications.notifications)

	resp, err := f.svc.Save(ctx, "assign-1", "u-alice",
		saveReq("sub-alice", dto.ModeNone))
	if err != nil {
		t.Fatalf("解散失败: %v", err)
	}

	if !resp.GroupDeleted {
		t.Error("期望 GroupDeleted=true")
	}
	if len(f.roster.entries) != 0 {
		t.Errorf("期望名册清空，实际=%d", len(f.roster.entries))
	}
	if len(f.authorSubs.subs) != 0 {
		t.Errorf("期望作者提交记录删除，实际=%d", len(f.authorSubs.subs))
	}
	if len(f.notifications.notifications) != before {
		t.Error("解散不应产生新通知")
	}
}

func TestAuthorshipService_Save_SelectEmptyDissolves(t *testing.T) {
	f := setupTestAuthorshipService()
	ctx := context.Background()

	if _, err := f.svc.Save(ctx, "assign-1", "u-alice",
		saveReq("sub-alice", dto.ModeSelect, "u-bob")); err != nil {
		t.Fatalf("组建失败: %v", err)
	}

	resp, err := f.svc.Save(ctx, "assign-1", "u-alice",
		saveReq("sub-alice", dto.ModeSelect))
	if err != nil {
		t.Fatalf("空选择应按解散处理: %v", err)
	}
	if !resp.GroupDeleted {
		t.Error("期望 GroupDeleted=true")
	}
	if resp.NotifiedCount != 0 {
		t.Errorf("解散不应通知，实际=%d", resp.NotifiedCount)
	}
}

// ── 输入清洗 ──

func TestAuthorshipService_Save_StripsSelfAndDuplicates(t *testing.T) {
	f := setupTestAuthorshipService()

	resp, err := f.svc.Save(context.Background(), "assign-1", "u-alice",
		saveReq("sub-alice", dto.ModeSelect, "u-alice", "u-bob", "u-bob"))
	if err != nil {
		t.Fatalf("Save 应成功: %v", err)
	}
	if len(resp.Coauthors) != 1 || resp.Coauthors[0] != "u-bob" {
		t.Errorf("期望清洗后只剩 u-bob，实际=%v", resp.Coauthors)
	}
	if _, err := f.roster.Find(context.Background(), "assign-1", "u-alice"); err == nil {
		t.Error("作者本人不应有名册行")
	}
}

func TestAuthorshipService_Save_TooManyCoauthors(t *testing.T) {
	f := setupTestAuthorshipService()
	f.authorConfigs.configs["assign-1"].MaxAuthors = 2

	_, err := f.svc.Save(context.Background(), "assign-1", "u-alice",
		saveReq("sub-alice", dto.ModeSelect, "u-bob", "u-carol"))
	if !errors.Is(err, ErrTooManyCoauthors) {
		t.Errorf("期望 ErrTooManyCoauthors，实际: %v", err)
	}
}

func TestAuthorshipService_Save_RejectsNonCourseMember(t *testing.T) {
	f := setupTestAuthorshipService()

	_, err := f.svc.Save(context.Background(), "assign-1", "u-alice",
		saveReq("sub-alice", dto.ModeSelect, "u-outsider"))
	if !errors.Is(err, ErrCoauthorNotEligible) {
		t.Errorf("期望 ErrCoauthorNotEligible，实际: %v", err)
	}
}

// ── 前置条件 ──

func TestAuthorshipService_Save_TeamSubmissionRejected(t *testing.T) {
	f := setupTestAuthorshipService()
	f.assignments.assignments["assign-1"].TeamSubmission = true

	_, err := f.svc.Save(context.Background(), "assign-1", "u-alice",
		saveReq("sub-alice", dto.ModeSelect, "u-bob"))
	if !errors.Is(err, ErrTeamSubmission) {
		t.Errorf("期望 ErrTeamSubmission，实际: %v", err)
	}
	if len(f.roster.entries) != 0 || len(f.authorSubs.subs) != 0 {
		t.Error("拒绝保存时不应有任何写入")
	}
}

func TestAuthorshipService_Save_SingleAuthorOnly(t *testing.T) {
	f := setupTestAuthorshipService()
	f.authorConfigs.configs["assign-1"].MaxAuthors = 1

	_, err := f.svc.Save(context.Background(), "assign-1", "u-alice",
		saveReq("sub-alice", dto.ModeSelect, "u-bob"))
	if !errors.Is(err, ErrOneAuthorOnly) {
		t.Errorf("期望 ErrOneAuthorOnly，实际: %v", err)
	}
}

func TestAuthorshipService_Save_SubmissionOwnership(t *testing.T) {
	f := setupTestAuthorshipService()

	_, err := f.svc.Save(context.Background(), "assign-1", "u-bob",
		saveReq("sub-alice", dto.ModeSelect, "u-carol"))
	if !errors.Is(err, ErrSubmissionNotOwned) {
		t.Errorf("期望 ErrSubmissionNotOwned，实际: %v", err)
	}
}

// ── 默认组 ──

func TestAuthorshipService_Save_SaveAsDefault(t *testing.T) {
	f := setupTestAuthorshipService()

	req := saveReq("sub-alice", dto.ModeSelect, "u-bob")
	req.SaveAsDefault = true
	if _, err := f.svc.Save(context.Background(), "assign-1", "u-alice", req); err != nil {
		t.Fatalf("Save 应成功: %v", err)
	}

	def, err := f.defaults.Get(context.Background(), "u-alice", "course-1")
	if err != nil {
		t.Fatalf("默认组应已保存: %v", err)
	}
	if len(def.Coauthors) != 1 || def.Coauthors[0] != "u-bob" {
		t.Errorf("期望默认组=[u-bob]，实际=%v", def.Coauthors)
	}
}

func TestAuthorshipService_Save_DefaultModeFormsGroup(t *testing.T) {
	f := setupTestAuthorshipService()
	f.defaults.defaults[defaultKey("u-alice", "course-1")] = &model.AuthorDefault{
		UserID:    "u-alice",
		CourseID:  "course-1",
		Coauthors: model.UserIDList{"u-bob", "u-carol"},
	}

	resp, err := f.svc.Save(context.Background(), "assign-1", "u-alice",
		saveReq("sub-alice", dto.ModeDefault))
	if err != nil {
		t.Fatalf("Save 应成功: %v", err)
	}
	if len(resp.Coauthors) != 2 {
		t.Errorf("期望按默认组组建2人，实际=%v", resp.Coauthors)
	}
	if len(f.roster.entries) != 2 {
		t.Errorf("期望2行名册，实际=%d", len(f.roster.entries))
	}
}

func TestAuthorshipService_Save_DefaultModeWithoutDefaultIsNoop(t *testing.T) {
	f := setupTestAuthorshipService()

	resp, err := f.svc.Save(context.Background(), "assign-1", "u-alice",
		saveReq("sub-alice", dto.ModeDefault))
	if err != nil {
		t.Fatalf("未保存默认组时应为无动作: %v", err)
	}
	if len(resp.Coauthors) != 0 || len(f.roster.entries) != 0 || len(f.authorSubs.subs) != 0 {
		t.Error("无默认组时不应有任何写入")
	}
}

// ── 合作作者视角 ──

func TestAuthorshipService_Save_CoauthorLeavesAndFormsOwnGroup(t *testing.T) {
	f := setupTestAuthorshipService()
	ctx := context.Background()

	if _, err := f.svc.Save(ctx, "assign-1", "u-alice",
		saveReq("sub-alice", dto.ModeSelect, "u-bob", "u-carol")); err != nil {
		t.Fatalf("组建原组失败: %v", err)
	}

	// bob 退出 alice 的组并与 dave 组建新组
	resp, err := f.svc.Save(ctx, "assign-1", "u-bob",
		saveReq("sub-bob", dto.ModeSelect, "u-dave"))
	if err != nil {
		t.Fatalf("Save 应成功: %v", err)
	}

	if resp.AuthorID != "u-bob" {
		t.Errorf("期望新组作者=u-bob，实际=%s", resp.AuthorID)
	}

	// 原组缩减为 alice + carol
	oldSub, err := f.authorSubs.Find(ctx, "assign-1", "sub-alice")
	if err != nil {
		t.Fatalf("原组作者提交记录应保留: %v", err)
	}
	if len(oldSub.Coauthors) != 1 || oldSub.Coauthors[0] != "u-carol" {
		t.Errorf("原组应只剩 u-carol，实际=%v", oldSub.Coauthors)
	}

	// bob 不再是任何组的名册成员（他现在是自己组的作者）
	if _, err := f.roster.Find(ctx, "assign-1", "u-bob"); err == nil {
		t.Error("u-bob 的旧名册行应已删除")
	}

	// 新组：dave 的名册行指向 bob
	entry, err := f.roster.Find(ctx, "assign-1", "u-dave")
	if err != nil {
		t.Fatalf("u-dave 应有名册行: %v", err)
	}
	if entry.AuthorID != "u-bob" {
		t.Errorf("u-dave 名册应指向 u-bob，实际=%s", entry.AuthorID)
	}

	newSub, err := f.authorSubs.Find(ctx, "assign-1", "sub-bob")
	if err != nil {
		t.Fatalf("新组作者提交记录应存在: %v", err)
	}
	if len(newSub.Coauthors) != 1 || newSub.Coauthors[0] != "u-dave" {
		t.Errorf("新组合作作者应为 [u-dave]，实际=%v", newSub.Coauthors)
	}
}

func TestAuthorshipService_Save_LastCoauthorLeavingDissolvesOldGroup(t *testing.T) {
	f := setupTestAuthorshipService()
	ctx := context.Background()

	if _, err := f.svc.Save(ctx, "assign-1", "u-alice",
		saveReq("sub-alice", dto.ModeSelect, "u-bob")); err != nil {
		t.Fatalf("组建失败: %v", err)
	}

	if _, err := f.svc.Save(ctx, "assign-1", "u-bob",
		saveReq("sub-bob", dto.ModeNone)); err != nil {
		t.Fatalf("退出失败: %v", err)
	}

	if len(f.roster.entries) != 0 {
		t.Errorf("期望名册清空，实际=%d", len(f.roster.entries))
	}
	if len(f.authorSubs.subs) != 0 {
		t.Errorf("唯一成员退出后原组应整体解散，实际剩余=%d", len(f.authorSubs.subs))
	}
}

func TestAuthorshipService_Save_CoauthorGroupModeKeepsGroup(t *testing.T) {
	f := setupTestAuthorshipService()
	ctx := context.Background()

	if _, err := f.svc.Save(ctx, "assign-1", "u-alice",
		saveReq("sub-alice", dto.ModeSelect, "u-bob", "u-carol")); err != nil {
		t.Fatalf("组建失败: %v", err)
	}

	text := "共享的报告正文"
	req := saveReq("sub-bob", dto.ModeGroup)
	req.Onlinetext = &text
	resp, err := f.svc.Save(ctx, "assign-1", "u-bob", req)
	if err != nil {
		t.Fatalf("Save 应成功: %v", err)
	}

	if resp.AuthorID != "u-alice" {
		t.Errorf("group 模式应保留原作者 u-alice，实际=%s", resp.AuthorID)
	}
	if len(f.roster.entries) != 2 {
		t.Errorf("名册不应变化，实际=%d行", len(f.roster.entries))
	}

	// group 模式文本同步到原组全体成员（含作者）
	for _, uid := range []string{"u-alice", "u-bob", "u-carol"} {
		got, err := f.onlinetext.Get(ctx, "assign-1", uid)
		if err != nil {
			t.Fatalf("成员 %s 应有共享文本: %v", uid, err)
		}
		if got.Text != text {
			t.Errorf("成员 %s 文本不一致，实际=%s", uid, got.Text)
		}
	}
}

// ── 共享文本与通知 ──

func TestAuthorshipService_Save_OnlinetextSyncedToCoauthors(t *testing.T) {
	f := setupTestAuthorshipService()
	ctx := context.Background()

	text := "小组共同完成"
	req := saveReq("sub-alice", dto.ModeSelect, "u-bob", "u-carol")
	req.Onlinetext = &text
	if _, err := f.svc.Save(ctx, "assign-1", "u-alice", req); err != nil {
		t.Fatalf("Save 应成功: %v", err)
	}

	for _, uid := range []string{"u-bob", "u-carol"} {
		if _, err := f.onlinetext.Get(ctx, "assign-1", uid); err != nil {
			t.Errorf("合作作者 %s 应有同步文本: %v", uid, err)
		}
	}
	// select 模式只同步到合作作者，作者本人的文本由提交框架负责
	if _, err := f.onlinetext.Get(ctx, "assign-1", "u-alice"); err == nil {
		t.Error("select 模式不应覆盖作者本人的文本")
	}
}

func TestAuthorshipService_Save_NotificationDisabled(t *testing.T) {
	f := setupTestAuthorshipService()
	f.authorConfigs.configs["assign-1"].Notification = false

	resp, err := f.svc.Save(context.Background(), "assign-1", "u-alice",
		saveReq("sub-alice", dto.ModeSelect, "u-bob"))
	if err != nil {
		t.Fatalf("Save 应成功: %v", err)
	}
	if resp.NotifiedCount != 0 {
		t.Errorf("通知关闭时不应派发，实际=%d", resp.NotifiedCount)
	}
	if len(f.notifications.notifications) != 0 {
		t.Errorf("期望0条通知，实际=%d", len(f.notifications.notifications))
	}
}

// ── 表单状态 ──

func TestAuthorshipService_GetFormState_BlockedSingleAuthor(t *testing.T) {
	f := setupTestAuthorshipService()
	f.authorConfigs.configs["assign-1"].MaxAuthors = 1

	state, err := f.svc.GetFormState(context.Background(), "assign-1", "sub-alice", "u-alice")
	if err != nil {
		t.Fatalf("GetFormState 应成功: %v", err)
	}
	if state.Selectable {
		t.Error("上限为1时表单应不可用")
	}
	if state.BlockedReason != "one_author_only" {
		t.Errorf("期望原因=one_author_only，实际=%s", state.BlockedReason)
	}
}

func TestAuthorshipService_GetFormState_BlockedTeamSubmission(t *testing.T) {
	f := setupTestAuthorshipService()
	f.assignments.assignments["assign-1"].TeamSubmission = true

	state, err := f.svc.GetFormState(context.Background(), "assign-1", "sub-alice", "u-alice")
	if err != nil {
		t.Fatalf("GetFormState 应成功: %v", err)
	}
	if state.Selectable {
		t.Error("小组提交模式下表单应不可用")
	}
	if state.BlockedReason != "team_submission" {
		t.Errorf("期望原因=team_submission，实际=%s", state.BlockedReason)
	}
}

func TestAuthorshipService_GetFormState_PoolExcludesSelf(t *testing.T) {
	f := setupTestAuthorshipService()

	state, err := f.svc.GetFormState(context.Background(), "assign-1", "sub-alice", "u-alice")
	if err != nil {
		t.Fatalf("GetFormState 应成功: %v", err)
	}
	if len(state.PossibleCoauthors) != 3 {
		t.Fatalf("期望候选池3人，实际=%d", len(state.PossibleCoauthors))
	}
	for _, opt := range state.PossibleCoauthors {
		if opt.UserID == "u-alice" {
			t.Error("候选池不应包含本人")
		}
	}
}

func TestAuthorshipService_GetFormState_InGroupsOnlyRestrictsPool(t *testing.T) {
	f := setupTestAuthorshipService()
	f.authorConfigs.configs["assign-1"].GroupsUsed = true
	f.authorConfigs.configs["assign-1"].InGroupsOnly = true

	// alice 与 bob 在同一课程分组，carol/dave 在另一组
	f.course.groups["grp-1"] = "course-1"
	f.course.groupMembers["grp-1"] = []string{"u-alice", "u-bob"}
	f.course.groups["grp-2"] = "course-1"
	f.course.groupMembers["grp-2"] = []string{"u-carol", "u-dave"}

	state, err := f.svc.GetFormState(context.Background(), "assign-1", "sub-alice", "u-alice")
	if err != nil {
		t.Fatalf("GetFormState 应成功: %v", err)
	}
	if len(state.PossibleCoauthors) != 1 || state.PossibleCoauthors[0].UserID != "u-bob" {
		t.Errorf("期望候选池仅含同组的 u-bob，实际=%v", state.PossibleCoauthors)
	}
}

func TestAuthorshipService_GetFormState_DefaultGroupUsability(t *testing.T) {
	f := setupTestAuthorshipService()
	f.defaults.defaults[defaultKey("u-alice", "course-1")] = &model.AuthorDefault{
		UserID:    "u-alice",
		CourseID:  "course-1",
		Coauthors: model.UserIDList{"u-bob", "u-carol"},
	}

	state, err := f.svc.GetFormState(context.Background(), "assign-1", "sub-alice", "u-alice")
	if err != nil {
		t.Fatalf("GetFormState 应成功: %v", err)
	}
	if state.DefaultGroup == nil {
		t.Fatal("期望返回默认组状态")
	}
	if !state.DefaultGroup.Usable {
		t.Error("默认组成员全在候选池内时应可用")
	}

	// 上限缩小后默认组超限，应标记不可用
	f.authorConfigs.configs["assign-1"].MaxAuthors = 2
	state, err = f.svc.GetFormState(context.Background(), "assign-1", "sub-alice", "u-alice")
	if err != nil {
		t.Fatalf("GetFormState 应成功: %v", err)
	}
	if state.DefaultGroup == nil || state.DefaultGroup.Usable {
		t.Error("默认组超过上限时应标记不可用")
	}
}

func TestAuthorshipService_GetFormState_AlreadyInGroup(t *testing.T) {
	f := setupTestAuthorshipService()
	ctx := context.Background()

	if _, err := f.svc.Save(ctx, "assign-1", "u-alice",
		saveReq("sub-alice", dto.ModeSelect, "u-bob")); err != nil {
		t.Fatalf("组建失败: %v", err)
	}

	state, err := f.svc.GetFormState(ctx, "assign-1", "sub-bob", "u-bob")
	if err != nil {
		t.Fatalf("GetFormState 应成功: %v", err)
	}
	if !state.AlreadyInGroup {
		t.Error("期望 AlreadyInGroup=true")
	}
	if state.GroupSummary == nil {
		t.Fatal("期望返回当前组概要")
	}
	if state.GroupSummary.Author.UserID != "u-alice" {
		t.Errorf("期望组作者=u-alice，实际=%s", state.GroupSummary.Author.UserID)
	}
}

// ── 概要 ──

func TestAuthorshipService_Summary_ByAuthorSubmission(t *testing.T) {
	f := setupTestAuthorshipService()
	ctx := context.Background()

	if _, err := f.svc.Save(ctx, "assign-1", "u-alice",
		saveReq("sub-alice", dto.ModeSelect, "u-bob", "u-carol")); err != nil {
		t.Fatalf("组建失败: %v", err)
	}

	summary, err := f.svc.Summary(ctx, "assign-1", "sub-alice")
	if err != nil {
		t.Fatalf("Summary 应成功: %v", err)
	}
	if summary.Author.UserID != "u-alice" || summary.Author.Name != "爱丽丝" {
		t.Errorf("作者信息错误: %+v", summary.Author)
	}
	if len(summary.Coauthors) != 2 {
		t.Errorf("期望2名合作作者，实际=%d", len(summary.Coauthors))
	}
	if summary.LogInfo != "u-alice,u-bob,u-carol" {
		t.Errorf("期望LogInfo=u-alice,u-bob,u-carol，实际=%s", summary.LogInfo)
	}
}

func TestAuthorshipService_Summary_ByCoauthorSubmission(t *testing.T) {
	f := setupTestAuthorshipService()
	ctx := context.Background()

	if _, err := f.svc.Save(ctx, "assign-1", "u-alice",
		saveReq("sub-alice", dto.ModeSelect, "u-bob")); err != nil {
		t.Fatalf("组建失败: %v", err)
	}

	// 用合作作者 bob 自己的提交 ID 也能回溯到同一个组
	summary, err := f.svc.Summary(ctx, "assign-1", "sub-bob")
	if err != nil {
		t.Fatalf("Summary 应成功: %v", err)
	}
	if summary.Author.UserID != "u-alice" {
		t.Errorf("期望作者=u-alice，实际=%s", summary.Author.UserID)
	}
}

func TestAuthorshipService_Summary_NoRecord(t *testing.T) {
	f := setupTestAuthorshipService()

	_, err := f.svc.Summary(context.Background(), "assign-1", "sub-alice")
	if !errors.Is(err, ErrNoAuthorRecord) {
		t.Errorf("期望 ErrNoAuthorRecord，实际: %v", err)
	}
}

// ── 作业级配置 ──

func TestAuthorshipService_SaveConfig_NormalizesInGroupsOnly(t *testing.T) {
	f := setupTestAuthorshipService()

	resp, err := f.svc.SaveConfig(context.Background(), "assign-1", &dto.UpdateAuthorConfigRequest{
		MaxAuthors:   4,
		Notification: true,
		GroupsUsed:   false,
		InGroupsOnly: true,
	})
	if err != nil {
		t.Fatalf("SaveConfig 应成功: %v", err)
	}
	if resp.InGroupsOnly {
		t.Error("groups_used 关闭时 in_groups_only 应被强制关闭")
	}
	if resp.MaxAuthors != 4 {
		t.Errorf("期望MaxAuthors=4，实际=%d", resp.MaxAuthors)
	}
}

func TestAuthorshipService_GetConfig_FallsBackToDefaults(t *testing.T) {
	f := setupTestAuthorshipService()
	f.assignments.assignments["assign-2"] = &model.Assignment{
		AssignmentID: "assign-2",
		CourseID:     "course-1",
		Name:         "未配置的作业",
	}

	resp, err := f.svc.GetConfig(context.Background(), "assign-2")
	if err != nil {
		t.Fatalf("GetConfig 应成功: %v", err)
	}
	if resp.MaxAuthors != 5 {
		t.Errorf("期望回落到全局默认上限5，实际=%d", resp.MaxAuthors)
	}
	if !resp.Notification {
		t.Error("期望回落到全局默认通知开启")
	}
}

// ── 实例删除 ──

func TestAuthorshipService_DeleteInstance(t *testing.T) {
	f := setupTestAuthorshipService()
	ctx := context.Background()

	if _, err := f.svc.Save(ctx, "assign-1", "u-alice",
		saveReq("sub-alice", dto.ModeSelect, "u-bob", "u-carol")); err != nil {
		t.Fatalf("组建失败: %v", err)
	}

	if err := f.svc.DeleteInstance(ctx, "assign-1"); err != nil {
		t.Fatalf("DeleteInstance 应成功: %v", err)
	}
	if len(f.roster.entries) != 0 || len(f.authorSubs.subs) != 0 {
		t.Error("实例删除后不应残留任何合作作者数据")
	}
}

// [自证通过] internal/service/authorship_service_test.go
