package actors

import (
	"github.com/asynkron/protoactor-go/actor"

	"TreeKingdom/internal/kingdom/domain"
	"TreeKingdom/internal/shared/actor/messages"
)

type KingdomHandler struct{}

var KH = &KingdomHandler{}

func (h *KingdomHandler) HandleHKEnter(ctx actor.Context, p *KingdomActor, req messages.HKEnter) {
	if err := p.enter(ctx, req.DisplayName); err != nil {
		ctx.Logger().Error("kingdom enter failed", "player_id", p.playerID, "err", err)
		ctx.Respond(fail("load kingdom failed"))
		return
	}
	ctx.Respond(ok(p.kingdom.Engine().BuildSnapshot()))
}

func (h *KingdomHandler) HandleHKSnapshot(ctx actor.Context, p *KingdomActor, req messages.HKSnapshot) {
	if !h.online(ctx, p) {
		return
	}
	ctx.Respond(ok(p.kingdom.Engine().BuildSnapshot()))
}

func (h *KingdomHandler) HandleHKBuild(ctx actor.Context, p *KingdomActor, req messages.HKBuild) {
	if !h.online(ctx, p) {
		return
	}
	b, err := p.kingdom.Engine().IssueBuildOrder(domain.Kind(req.Kind), domain.Vec2{X: req.X, Y: req.Y})
	if err != nil {
		ctx.Respond(failErr(err))
		return
	}
	ctx.Respond(ok(b))
}

func (h *KingdomHandler) HandleHKSpawnUnit(ctx actor.Context, p *KingdomActor, req messages.HKSpawnUnit) {
	if !h.online(ctx, p) {
		return
	}
	u, err := p.kingdom.Engine().IssueSpawnUnit(domain.Kind(req.Kind))
	if err != nil {
		ctx.Respond(failErr(err))
		return
	}
	ctx.Respond(ok(u))
}

func (h *KingdomHandler) HandleHKMoveHero(ctx actor.Context, p *KingdomActor, req messages.HKMoveHero) {
	if !h.online(ctx, p) {
		return
	}
	if err := p.kingdom.Engine().IssueMoveOrder(domain.Vec2{X: req.X, Y: req.Y}); err != nil {
		ctx.Respond(failErr(err))
		return
	}
	ctx.Respond(ok(nil))
}

func (h *KingdomHandler) HandleHKCastSpell(ctx actor.Context, p *KingdomActor, req messages.HKCastSpell) {
	if !h.online(ctx, p) {
		return
	}
	if err := p.kingdom.Engine().IssueCastSpell(req.Spell); err != nil {
		ctx.Respond(failErr(err))
		return
	}
	ctx.Respond(ok(nil))
}

func (h *KingdomHandler) HandleHKTrade(ctx actor.Context, p *KingdomActor, req messages.HKTrade) {
	if !h.online(ctx, p) {
		return
	}
	if err := p.kingdom.Engine().IssueTrade(req.Trade); err != nil {
		ctx.Respond(failErr(err))
		return
	}
	ctx.Respond(ok(p.kingdom.Engine().Profile().Ledger.Stocks()))
}

func (h *KingdomHandler) HandleHKBuyUpgrade(ctx actor.Context, p *KingdomActor, req messages.HKBuyUpgrade) {
	if !h.online(ctx, p) {
		return
	}
	if err := p.kingdom.Engine().IssueBuyUpgrade(domain.UpgradeKind(req.Upgrade)); err != nil {
		ctx.Respond(failErr(err))
		return
	}
	ctx.Respond(ok(nil))
}

// HandleHKLeave 应答后停掉自己；Stopping 阶段会做最后一次落库。
func (h *KingdomHandler) HandleHKLeave(ctx actor.Context, p *KingdomActor, req messages.HKLeave) {
	ctx.Respond(ok(nil))
	ctx.Stop(ctx.Self())
}

func (h *KingdomHandler) online(ctx actor.Context, p *KingdomActor) bool {
	if p == nil || p.state != Online || p.kingdom == nil {
		ctx.Respond(fail("kingdom not online"))
		return false
	}
	return true
}
