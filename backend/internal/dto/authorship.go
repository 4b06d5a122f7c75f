package dto

// ── 保存请求分类 ──
// 四种互斥的保存动作，在 DTO 边界校验一次，服务层穷举匹配

const (
	// ModeSelect 作者显式选择合作作者集合
	ModeSelect = "select"
	// ModeDefault 使用保存的默认合作作者组
	ModeDefault = "default"
	// ModeNone 独立完成，无合作作者
	ModeNone = "none"
	// ModeGroup 合作作者视角：保留当前组，仅更新共享内容
	ModeGroup = "group"
)

// SaveAuthorshipRequest 保存合作作者选择请求
// POST /api/v1/assignments/:id/authorship
type SaveAuthorshipRequest struct {
	SubmissionID  string   `json:"submission_id"   binding:"required,uuid"`
	Mode          string   `json:"mode"            binding:"required,oneof=select default none group"`
	Coauthors     []string `json:"coauthors"       binding:"omitempty,max=20,dive,uuid"` // 仅 mode=select 使用
	SaveAsDefault bool     `json:"save_as_default"`                                      // 仅 mode=select 使用
	Onlinetext    *string  `json:"onlinetext"      binding:"omitempty,max=100000"`       // 共享在线文本（伴生插件启用时）
}

// SaveAuthorshipResponse 保存结果响应
type SaveAuthorshipResponse struct {
	AuthorID      string   `json:"author_id"`
	Coauthors     []string `json:"coauthors"`
	GroupDeleted  bool     `json:"group_deleted"`
	NotifiedCount int      `json:"notified_count"`
}

// ── 表单状态 ──

// CoauthorOption 候选合作作者条目
type CoauthorOption struct {
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	StudentID string `json:"student_id"`
}

// DefaultGroupState 默认合作作者组状态
type DefaultGroupState struct {
	Coauthors []CoauthorOption `json:"coauthors"`
	Usable    bool             `json:"usable"` // 默认组全部在候选池内且不超上限
}

// FormStateResponse 合作作者设置表单状态
// GET /api/v1/assignments/:id/authorship/form-state
type FormStateResponse struct {
	Selectable       bool               `json:"selectable"`                   // false 时 blocked_reason 说明原因
	BlockedReason    string             `json:"blocked_reason,omitempty"`     // "one_author_only" | "team_submission"
	MaxAuthors       int                `json:"max_authors"`
	AlreadyInGroup   bool               `json:"already_in_group"`             // 当前用户是他人组的合作作者
	GroupSummary     *SummaryResponse   `json:"group_summary,omitempty"`      // already_in_group 时的当前组概要
	PossibleCoauthors []CoauthorOption  `json:"possible_coauthors"`
	SelectedCoauthors []CoauthorOption  `json:"selected_coauthors"`           // 当前已选（预填）
	DefaultGroup     *DefaultGroupState `json:"default_group,omitempty"`
}

// ── 概要 ──

// SummaryResponse 作者与合作作者展示概要
// GET /api/v1/assignments/:id/authorship/summary
type SummaryResponse struct {
	Author    CoauthorOption   `json:"author"`
	Coauthors []CoauthorOption `json:"coauthors"`
	LogInfo   string           `json:"log_info"` // "authorID,coauthorID,..." 审计用
}

// ── 作业级配置 ──

// AuthorConfigResponse 合作作者模块配置响应
type AuthorConfigResponse struct {
	AssignmentID string `json:"assignment_id"`
	MaxAuthors   int    `json:"max_authors"`
	Notification bool   `json:"notification"`
	GroupsUsed   bool   `json:"groups_used"`
	InGroupsOnly bool   `json:"in_groups_only"`
}

// UpdateAuthorConfigRequest 更新合作作者模块配置请求
// PUT /api/v1/assignments/:id/author-config
type UpdateAuthorConfigRequest struct {
	MaxAuthors   int  `json:"max_authors"    binding:"required,min=1,max=20"`
	Notification bool `json:"notification"`
	GroupsUsed   bool `json:"groups_used"`
	InGroupsOnly bool `json:"in_groups_only"`
}

// [自证通过] internal/dto/authorship.go
