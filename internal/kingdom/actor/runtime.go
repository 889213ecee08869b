package actor

import (
	"context"
	"time"

	protoactor "github.com/asynkron/protoactor-go/actor"

	"TreeKingdom/internal/kingdom/actors"
	"TreeKingdom/internal/shared/actor/messages"
	"TreeKingdom/modules/kit/errx"
)

const defaultAskTimeout = 3 * time.Second

// Runtime 是接口层进入 actor 世界的唯一入口：
// 同步 ask 语义包在 RequestFuture 上，超时从请求 context 推导。
type Runtime struct {
	system  *protoactor.ActorSystem
	root    *protoactor.RootContext
	manager *protoactor.PID
	timeout time.Duration
}

func NewRuntime(deps actors.Deps, askTimeout time.Duration) *Runtime {
	if askTimeout <= 0 {
		askTimeout = defaultAskTimeout
	}

	system := protoactor.NewActorSystem()
	root := system.Root
	managerProps := protoactor.PropsFromProducer(func() protoactor.Actor {
		return actors.NewManagerActor(deps)
	})
	manager := root.Spawn(managerProps)

	return &Runtime{
		system:  system,
		root:    root,
		manager: manager,
		timeout: askTimeout,
	}
}

func (r *Runtime) Shutdown() {
	if r == nil {
		return
	}
	if r.root != nil && r.manager != nil {
		r.root.StopFuture(r.manager).Wait()
	}
	if r.system != nil {
		r.system.Shutdown()
	}
}

// Ask 发送一条王国消息并等应答。应答里的业务失败转成 errx 错误。
func (r *Runtime) Ask(ctx context.Context, msg messages.KingdomMessage) (any, error) {
	if r == nil || r.root == nil {
		return nil, errx.ErrUnavailable.WithData("reason", "actor runtime 未初始化")
	}

	future := r.root.RequestFuture(r.manager, msg, r.timeoutFromContext(ctx))
	res, err := future.Result()
	if err != nil {
		return nil, errx.ErrTimeout.WithCause(err)
	}

	reply, ok := res.(*messages.Reply)
	if !ok {
		return nil, errx.ErrInternal.WithData("reason", "unexpected reply type")
	}
	if !reply.Ok {
		code := errx.Code(reply.Code)
		if code == "" {
			code = errx.CodeInternal
		}
		return nil, errx.NewBiz(code, reply.Message)
	}
	return reply.Payload, nil
}

func (r *Runtime) timeoutFromContext(ctx context.Context) time.Duration {
	if r == nil || r.timeout <= 0 {
		return defaultAskTimeout
	}
	if ctx == nil {
		return r.timeout
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return r.timeout
	}
	remain := time.Until(deadline)
	if remain <= 0 {
		return time.Millisecond
	}
	if remain < r.timeout {
		return remain
	}
	return r.timeout
}
