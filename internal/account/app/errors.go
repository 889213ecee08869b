package app

import "TreeKingdom/modules/kit/errx"

// Code 表示应用层错误码（更贴近对外协议）。
type Code = errx.Code

const (
	CodeInvalidCredentials Code = "AUTH_INVALID_CREDENTIAL"
	CodeUserExist          Code = "AUTH_USER_EXIST"
	CodeDisplayNameTaken   Code = "AUTH_DISPLAY_NAME_TAKEN"
	// CodeInternalServer 复用 kit 的统一系统码（跨服务一致，便于告警/排障）。
	CodeInternalServer Code = errx.CodeInternal
	CodeUnavailable    Code = errx.CodeUnavailable
)

type Error = errx.Error

// 常用哨兵错误：禁止直接修改其 data/cause（通过 WithData/WithCause 派生新对象）。
var (
	ErrInvalidCredentials = errx.NewBiz(CodeInvalidCredentials, "用户名或密码错误")
	ErrUserExist          = errx.NewBiz(CodeUserExist, "用户已存在")
	ErrDisplayNameTaken   = errx.NewBiz(CodeDisplayNameTaken, "展示名已被占用")
	ErrInternalServer     = errx.ErrInternal
	ErrUnavailable        = errx.ErrUnavailable
	ErrReqParamERR        = errx.ErrReqParamERR
)
