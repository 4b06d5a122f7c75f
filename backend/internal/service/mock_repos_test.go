package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"author-union/backend/internal/model"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) add(id, name, studentID string) {
	m.users[id] = &model.User{
		UserID:    id,
		Name:      name,
		StudentID: studentID,
		Email:     id + "@test.local",
		Role:      "student",
	}
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListByIDs(_ context.Context, ids []string) ([]model.User, error) {
	var result []model.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			result = append(result, *u)
		}
	}
	return result, nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses      map[string]*model.Course
	members      map[string][]model.CourseMember // courseID → 成员
	groups       map[string]string               // groupID → courseID
	groupMembers map[string][]string             // groupID → userIDs
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{
		courses:      make(map[string]*model.Course),
		members:      make(map[string][]model.CourseMember),
		groups:       make(map[string]string),
		groupMembers: make(map[string][]string),
	}
}

func (m *mockCourseRepo) addMember(courseID string, user *model.User) {
	m.members[courseID] = append(m.members[courseID], model.CourseMember{
		CourseID: courseID,
		UserID:   user.UserID,
		Role:     "student",
		User:     user,
	})
}

func (m *mockCourseRepo) GetByID(_ context.Context, id string) (*model.Course, error) {
	if c, ok := m.courses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) ListMembers(_ context.Context, courseID string) ([]model.CourseMember, error) {
	return m.members[courseID], nil
}

func (m *mockCourseRepo) ListSharedGroupMemberIDs(_ context.Context, courseID, userID string) ([]string, error) {
	seen := make(map[string]bool)
	var result []string
	for groupID, gCourseID := range m.groups {
		if gCourseID != courseID {
			continue
		}
		members := m.groupMembers[groupID]
		inGroup := false
		for _, id := range members {
			if id == userID {
				inGroup = true
				break
			}
		}
		if !inGroup {
			continue
		}
		for _, id := range members {
			if !seen[id] {
				seen[id] = true
				result = append(result, id)
			}
		}
	}
	return result, nil
}

// ── Mock AssignmentRepository ──

type mockAssignmentRepo struct {
	assignments map[string]*model.Assignment
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{assignments: make(map[string]*model.Assignment)}
}

func (m *mockAssignmentRepo) GetByID(_ context.Context, id string) (*model.Assignment, error) {
	if a, ok := m.assignments[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) ListByCourse(_ context.Context, courseID string) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		if a.CourseID == courseID {
			result = append(result, *a)
		}
	}
	return result, nil
}

// ── Mock AuthorConfigRepository ──

type mockAuthorConfigRepo struct {
	configs map[string]*model.AuthorConfig
}

func newMockAuthorConfigRepo() *mockAuthorConfigRepo {
	return &mockAuthorConfigRepo{configs: make(map[string]*model.AuthorConfig)}
}

func (m *mockAuthorConfigRepo) Get(_ context.Context, assignmentID string) (*model.AuthorConfig, error) {
	if c, ok := m.configs[assignmentID]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAuthorConfigRepo) Upsert(_ context.Context, cfg *model.AuthorConfig) error {
	m.configs[cfg.AssignmentID] = cfg
	return nil
}

// ── Mock SubmissionRepository ──

type mockSubmissionRepo struct {
	submissions map[string]*model.Submission
}

func newMockSubmissionRepo() *mockSubmissionRepo {
	return &mockSubmissionRepo{submissions: make(map[string]*model.Submission)}
}

func (m *mockSubmissionRepo) GetByID(_ context.Context, id string) (*model.Submission, error) {
	if s, ok := m.submissions[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubmissionRepo) GetByAssignmentAndUser(_ context.Context, assignmentID, userID string) (*model.Submission, error) {
	for _, s := range m.submissions {
		if s.AssignmentID == assignmentID && s.UserID == userID {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock AuthorSubmissionRepository ──

type mockAuthorSubmissionRepo struct {
	subs map[string]*model.AuthorSubmission // assignmentID|submissionID
}

func newMockAuthorSubmissionRepo() *mockAuthorSubmissionRepo {
	return &mockAuthorSubmissionRepo{subs: make(map[string]*model.AuthorSubmission)}
}

func authorSubKey(assignmentID, submissionID string) string {
	return fmt.Sprintf("%s|%s", assignmentID, submissionID)
}

func (m *mockAuthorSubmissionRepo) Find(_ context.Context, assignmentID, submissionID string) (*model.AuthorSubmission, error) {
	if s, ok := m.subs[authorSubKey(assignmentID, submissionID)]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAuthorSubmissionRepo) FindForUpdate(ctx context.Context, assignmentID, submissionID string) (*model.AuthorSubmission, error) {
	return m.Find(ctx, assignmentID, submissionID)
}

func (m *mockAuthorSubmissionRepo) FindByAuthor(_ context.Context, assignmentID, authorID string) (*model.AuthorSubmission, error) {
	for _, s := range m.subs {
		if s.AssignmentID == assignmentID && s.AuthorID == authorID {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAuthorSubmissionRepo) ListByAssignment(_ context.Context, assignmentID string) ([]model.AuthorSubmission, error) {
	var result []model.AuthorSubmission
	for _, s := range m.subs {
		if s.AssignmentID == assignmentID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockAuthorSubmissionRepo) Create(_ context.Context, sub *model.AuthorSubmission) error {
	key := authorSubKey(sub.AssignmentID, sub.SubmissionID)
	if _, exists := m.subs[key]; exists {
		return gorm.ErrDuplicatedKey
	}
	m.subs[key] = sub
	return nil
}

func (m *mockAuthorSubmissionRepo) Update(_ context.Context, sub *model.AuthorSubmission) error {
	m.subs[authorSubKey(sub.AssignmentID, sub.SubmissionID)] = sub
	return nil
}

func (m *mockAuthorSubmissionRepo) Delete(_ context.Context, authorID, assignmentID string) error {
	for key, s := range m.subs {
		if s.AssignmentID == assignmentID && s.AuthorID == authorID {
			delete(m.subs, key)
		}
	}
	return nil
}

func (m *mockAuthorSubmissionRepo) DeleteByAssignment(_ context.Context, assignmentID string) error {
	for key, s := range m.subs {
		if s.AssignmentID == assignmentID {
			delete(m.subs, key)
		}
	}
	return nil
}

// ── Mock AuthorGroupRepository ──

type mockAuthorGroupRepo struct {
	entries map[string]*model.AuthorGroupEntry // assignmentID|memberID
}

func newMockAuthorGroupRepo() *mockAuthorGroupRepo {
	return &mockAuthorGroupRepo{entries: make(map[string]*model.AuthorGroupEntry)}
}

func groupEntryKey(assignmentID, memberID string) string {
	return fmt.Sprintf("%s|%s", assignmentID, memberID)
}

func (m *mockAuthorGroupRepo) Find(_ context.Context, assignmentID, memberID string) (*model.AuthorGroupEntry, error) {
	if e, ok := m.entries[groupEntryKey(assignmentID, memberID)]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAuthorGroupRepo) Upsert(_ context.Context, entry *model.AuthorGroupEntry) error {
	m.entries[groupEntryKey(entry.AssignmentID, entry.MemberID)] = entry
	return nil
}

func (m *mockAuthorGroupRepo) Delete(_ context.Context, assignmentID, memberID string) error {
	delete(m.entries, groupEntryKey(assignmentID, memberID))
	return nil
}

func (m *mockAuthorGroupRepo) ListMembers(_ context.Context, assignmentID, authorID string) ([]string, error) {
	var result []string
	for _, e := range m.entries {
		if e.AssignmentID == assignmentID && e.AuthorID == authorID {
			result = append(result, e.MemberID)
		}
	}
	return result, nil
}

func (m *mockAuthorGroupRepo) DeleteByAssignment(_ context.Context, assignmentID string) error {
	for key, e := range m.entries {
		if e.AssignmentID == assignmentID {
			delete(m.entries, key)
		}
	}
	return nil
}

// ── Mock AuthorDefaultRepository ──

type mockAuthorDefaultRepo struct {
	defaults map[string]*model.AuthorDefault // userID|courseID
}

func newMockAuthorDefaultRepo() *mockAuthorDefaultRepo {
	return &mockAuthorDefaultRepo{defaults: make(map[string]*model.AuthorDefault)}
}

func defaultKey(userID, courseID string) string {
	return fmt.Sprintf("%s|%s", userID, courseID)
}

func (m *mockAuthorDefaultRepo) Get(_ context.Context, userID, courseID string) (*model.AuthorDefault, error) {
	if d, ok := m.defaults[defaultKey(userID, courseID)]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAuthorDefaultRepo) Set(_ context.Context, def *model.AuthorDefault) error {
	m.defaults[defaultKey(def.UserID, def.CourseID)] = def
	return nil
}

// ── Mock OnlinetextRepository ──

type mockOnlinetextRepo struct {
	texts map[string]string // assignmentID|userID → text
}

func newMockOnlinetextRepo() *mockOnlinetextRepo {
	return &mockOnlinetextRepo{texts: make(map[string]string)}
}

func (m *mockOnlinetextRepo) Get(_ context.Context, assignmentID, userID string) (*model.OnlinetextSubmission, error) {
	key := fmt.Sprintf("%s|%s", assignmentID, userID)
	if text, ok := m.texts[key]; ok {
		return &model.OnlinetextSubmission{
			AssignmentID: assignmentID,
			UserID:       userID,
			Text:         text,
		}, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOnlinetextRepo) SetForUsers(_ context.Context, assignmentID string, userIDs []string, text string) error {
	for _, uid := range userIDs {
		m.texts[fmt.Sprintf("%s|%s", assignmentID, uid)] = text
	}
	return nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	notifications []*model.Notification
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{}
}

func (m *mockNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	if n.NotificationID == "" {
		n.NotificationID = fmt.Sprintf("notif-%d", len(m.notifications)+1)
	}
	m.notifications = append(m.notifications, n)
	return nil
}

func (m *mockNotificationRepo) ListByUser(_ context.Context, userID string, offset, limit int) ([]model.Notification, int64, error) {
	var all []model.Notification
	for _, n := range m.notifications {
		if n.UserID == userID {
			all = append(all, *n)
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, notificationID, userID string) error {
	for _, n := range m.notifications {
		if n.NotificationID == notificationID && n.UserID == userID {
			n.IsRead = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// [自证通过] internal/service/mock_repos_test.go
