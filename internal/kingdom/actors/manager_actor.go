package actors

import (
	"github.com/asynkron/protoactor-go/actor"

	"TreeKingdom/internal/shared/actor/messages"
)

// ManagerActor 按玩家 id 孵化/复用 kingdom actor 并转发请求。
type ManagerActor struct {
	deps          Deps
	kingdomActors map[int64]*actor.PID // uid -> actor.pid
}

func NewManagerActor(deps Deps) *ManagerActor {
	return &ManagerActor{
		deps:          deps,
		kingdomActors: make(map[int64]*actor.PID),
	}
}

func (m *ManagerActor) Receive(ctx actor.Context) {
	req, isKingdomMsg := ctx.Message().(messages.KingdomMessage)
	if !isKingdomMsg {
		return
	}
	if req == nil {
		ctx.Respond(fail("nil request"))
		return
	}
	playerID := req.PlayerID()
	if playerID <= 0 {
		ctx.Respond(fail("invalid player_id"))
		return
	}

	if _, isLeave := req.(messages.HKLeave); isLeave {
		// 下线消息转发后移除索引，actor 自行 Stop。
		pid, exists := m.kingdomActors[playerID]
		if !exists || pid == nil {
			ctx.Respond(ok(nil))
			return
		}
		delete(m.kingdomActors, playerID)
		ctx.Forward(pid)
		return
	}

	ctx.Forward(m.getOrSpawn(ctx, playerID))
}

func (m *ManagerActor) getOrSpawn(ctx actor.Context, playerID int64) *actor.PID {
	if pid, ok := m.kingdomActors[playerID]; ok && pid != nil {
		return pid
	}

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewKingdomActor(playerID, m.deps)
	})
	// manager 创建子 actor
	pid := ctx.Spawn(props)
	m.kingdomActors[playerID] = pid
	return pid
}
