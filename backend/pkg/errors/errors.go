package errors

import "errors"

// ErrRosterConflict 名册行已被其他保存操作修改
var ErrRosterConflict = errors.New("合作作者名册已被其他操作修改，请刷新后重试")
