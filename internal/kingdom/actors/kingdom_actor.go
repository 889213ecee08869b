package actors

import (
	"context"
	"math/rand"
	"time"

	"github.com/asynkron/protoactor-go/actor"

	"TreeKingdom/internal/kingdom/app/port"
	"TreeKingdom/internal/kingdom/dc"
	"TreeKingdom/internal/kingdom/entity"
	"TreeKingdom/internal/kingdom/sim"
	"TreeKingdom/internal/shared/actor/messages"
	"TreeKingdom/modules/kit/logx"
)

type State int

const (
	None State = iota
	Init
	Online
	Offline
	Stopping
)

// KingdomActor 承载单个玩家的王国：引擎推进、命令执行、
// 防抖落库、积分上报，全部发生在 actor 的 goroutine 上。
// tick/flush 定时器只往邮箱投消息，不直接碰状态。
type KingdomActor struct {
	state      State
	playerID   int64
	deps       Deps
	dc         *dc.KingdomDC
	kingdom    *entity.Kingdom
	dispatcher *Dispatcher
	log        logx.Logger

	tickStop  chan struct{}
	flushStop chan struct{}
}

type simTick struct{}
type flushTick struct{}

func (simTick) NotInfluenceReceiveTimeout()   {}
func (flushTick) NotInfluenceReceiveTimeout() {}

// Deps 是 actor 层的全部外部依赖。
type Deps struct {
	Repo       port.KingdomRepository
	Board      port.RankBoard
	Tuning     sim.Tuning
	TickEvery  time.Duration
	FlushEvery time.Duration
	Log        logx.Logger
}

func NewKingdomActor(playerID int64, deps Deps) *KingdomActor {
	log := deps.Log
	if log == nil {
		log = logx.Nop()
	}
	return &KingdomActor{
		state:      None,
		playerID:   playerID,
		deps:       deps,
		dc:         dc.NewKingdomDC(deps.Repo, deps.FlushEvery),
		dispatcher: NewDispatcher(),
		log:        log,
	}
}

func (p *KingdomActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		p.state = Init
		return
	case *actor.Stopping:
		p.stopLoops()
		closeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := p.dc.Close(closeCtx); err != nil {
			ctx.Logger().Error("kingdom dc close failed", "player_id", p.playerID, "err", err)
		}
		p.state = Stopping
		return
	case *actor.Stopped:
		p.stopLoops()
		p.state = Offline
		return
	case *actor.Restarting:
		p.stopLoops()
		p.state = Init
		return
	case simTick:
		if p.state != Online {
			return
		}
		p.kingdom.Engine().Advance()
		return
	case flushTick:
		if p.state != Online {
			return
		}
		p.flush(ctx)
		return
	case messages.KingdomMessage:
		p.dispatcher.Dispatch(ctx, p, msg)
		return
	default:
		return
	}
}

// enter 首次进入时加载或新建王国，并启动 tick/flush 循环。
// 重复 enter 幂等（刷新页面重连）。
func (p *KingdomActor) enter(ctx actor.Context, displayName string) error {
	if p.state == Online {
		return nil
	}

	loadCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	state, err := p.deps.Repo.LoadKingdom(loadCtx, p.playerID)
	if err != nil {
		return err
	}

	engine := sim.New(p.playerID, displayName, p.deps.Tuning,
		sim.WithLogger(p.log),
		sim.WithRand(rand.New(rand.NewSource(p.playerID^time.Now().UnixNano()))),
	)
	if state != nil {
		engine.RestoreState(state)
	} else {
		engine.InitFresh()
	}

	p.kingdom = entity.NewKingdom(p.playerID, engine)
	p.dc.Attach(p.kingdom)
	p.state = Online
	p.startLoops(ctx)
	return nil
}

// flush 先落库再上报积分。积分提交是幂等覆盖，丢一次无所谓，
// 网络调用放到独立 goroutine，别堵住邮箱。
func (p *KingdomActor) flush(ctx actor.Context) {
	p.dc.Flush(context.TODO())

	if p.deps.Board == nil {
		return
	}
	engine := p.kingdom.Engine()
	score := engine.ComputeScore()
	name := engine.Profile().DisplayName
	playerID := p.playerID
	board := p.deps.Board
	log := p.log
	go func() {
		subCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := board.SubmitScore(subCtx, playerID, name, score); err != nil {
			log.Warn("rank submit failed")
		}
	}()
}

func (p *KingdomActor) startLoops(ctx actor.Context) {
	self := ctx.Self()
	root := ctx.ActorSystem().Root

	if p.tickStop == nil && p.deps.TickEvery > 0 {
		p.tickStop = startLoop(root, self, simTick{}, p.deps.TickEvery)
	}
	if p.flushStop == nil && p.dc.FlushEvery() > 0 {
		p.flushStop = startLoop(root, self, flushTick{}, p.dc.FlushEvery())
	}
}

func startLoop(root *actor.RootContext, self *actor.PID, msg any, every time.Duration) chan struct{} {
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				root.Send(self, msg)
			case <-stop:
				return
			}
		}
	}()
	return stop
}

func (p *KingdomActor) stopLoops() {
	if p.tickStop != nil {
		close(p.tickStop)
		p.tickStop = nil
	}
	if p.flushStop != nil {
		close(p.flushStop)
		p.flushStop = nil
	}
}

func (p *KingdomActor) Kingdom() *entity.Kingdom {
	return p.kingdom
}

func (p *KingdomActor) DC() *dc.KingdomDC {
	return p.dc
}
