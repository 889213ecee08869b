package actors

import (
	"errors"

	"TreeKingdom/internal/shared/actor/messages"
	"TreeKingdom/modules/kit/errx"
)

func ok(payload any) *messages.Reply {
	return &messages.Reply{Ok: true, Payload: payload}
}

func fail(reason string) *messages.Reply {
	return &messages.Reply{Ok: false, Message: reason}
}

// failErr 业务错误透出错误码给客户端，系统错误只给笼统提示。
func failErr(err error) *messages.Reply {
	var e *errx.Error
	if errors.As(err, &e) {
		return &messages.Reply{Ok: false, Code: e.CodeText(), Message: e.Msg()}
	}
	return &messages.Reply{Ok: false, Message: "internal error"}
}
