package handler

import (
	"errors"

	"TreeKingdom/internal/shared/transport"
	"TreeKingdom/modules/kit/errx"
)

// mapError 错误 → (客户端业务码, 提示体)。
// 业务拒绝带字符串 code 给前端做细分提示；系统错误不泄露内部细节。
func mapError(err error) (int, any) {
	var e *errx.Error
	if !errors.As(err, &e) {
		return transport.SystemError, "internal error"
	}
	switch e.Code() {
	case errx.CodeUnavailable, errx.CodeInternal, errx.CodeTimeout:
		return transport.SystemError, "internal error"
	case errx.CodeReqParamError:
		return transport.InvalidParam, map[string]any{"code": e.CodeText(), "msg": e.Msg()}
	default:
		return transport.InvalidParam, map[string]any{"code": e.CodeText(), "msg": e.Msg()}
	}
}
