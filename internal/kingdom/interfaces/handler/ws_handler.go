package handler

import (
	"context"

	"TreeKingdom/internal/account/app"
	kactor "TreeKingdom/internal/kingdom/actor"
	"TreeKingdom/internal/shared/actor/messages"
	"TreeKingdom/internal/shared/security"
	"TreeKingdom/internal/shared/transport"
	"TreeKingdom/internal/shared/transport/ws"
	"TreeKingdom/modules/kit/logx"
)

// KingdomWsHandler 把 ws 路由翻译成王国 actor 消息。
// enter 校验 token 并把 uid 挂到连接上，之后的路由都从连接取 uid。
type KingdomWsHandler struct {
	rt    *kactor.Runtime
	users *app.UserService
	log   logx.Logger
}

func NewKingdomWsHandler(rt *kactor.Runtime, users *app.UserService, log logx.Logger) *KingdomWsHandler {
	return &KingdomWsHandler{rt: rt, users: users, log: log}
}

func (h *KingdomWsHandler) RegisterRoutes(r *ws.Router) {
	g := r.Group("kingdom")
	g.Handle("enter", h.Enter)
	g.Handle("snapshot", h.Snapshot)
	g.Handle("build", h.Build)
	g.Handle("spawnUnit", h.SpawnUnit)
	g.Handle("moveHero", h.MoveHero)
	g.Handle("castSpell", h.CastSpell)
	g.Handle("trade", h.Trade)
	g.Handle("buyUpgrade", h.BuyUpgrade)
	g.Handle("leave", h.Leave)
}

func (h *KingdomWsHandler) Enter(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	var req EnterReq
	if err := ws.BindJSON(wsReq, &req); err != nil || req.Token == "" {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	_, claims, err := security.ParseToken(req.Token)
	if err != nil {
		h.fail(wsResp, transport.SessionInvalid, "session 无效")
		return
	}
	uid := claims.Uid

	displayName, err := h.users.FindDisplayName(ctx, uid)
	if err != nil {
		h.error(wsResp, err)
		return
	}

	payload, err := h.rt.Ask(ctx, messages.HKEnter{
		KingdomBaseMessage: messages.KingdomBaseMessage{PlayerId: uid},
		DisplayName:        displayName,
	})
	if err != nil {
		h.error(wsResp, err)
		return
	}

	wsReq.Conn.SetProperty(ws.ConnKeyUID, uid)
	h.ok(wsResp, payload)
}

func (h *KingdomWsHandler) Snapshot(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	uid, ok := h.uid(wsReq, wsResp)
	if !ok {
		return
	}
	h.ask(ctx, wsResp, messages.HKSnapshot{KingdomBaseMessage: messages.KingdomBaseMessage{PlayerId: uid}})
}

func (h *KingdomWsHandler) Build(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	uid, ok := h.uid(wsReq, wsResp)
	if !ok {
		return
	}
	var req BuildReq
	if err := ws.BindJSON(wsReq, &req); err != nil {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	h.ask(ctx, wsResp, messages.HKBuild{
		KingdomBaseMessage: messages.KingdomBaseMessage{PlayerId: uid},
		Kind:               req.Kind,
		X:                  req.X,
		Y:                  req.Y,
	})
}

func (h *KingdomWsHandler) SpawnUnit(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	uid, ok := h.uid(wsReq, wsResp)
	if !ok {
		return
	}
	var req SpawnUnitReq
	if err := ws.BindJSON(wsReq, &req); err != nil {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	h.ask(ctx, wsResp, messages.HKSpawnUnit{
		KingdomBaseMessage: messages.KingdomBaseMessage{PlayerId: uid},
		Kind:               req.Kind,
	})
}

func (h *KingdomWsHandler) MoveHero(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	uid, ok := h.uid(wsReq, wsResp)
	if !ok {
		return
	}
	var req MoveHeroReq
	if err := ws.BindJSON(wsReq, &req); err != nil {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	h.ask(ctx, wsResp, messages.HKMoveHero{
		KingdomBaseMessage: messages.KingdomBaseMessage{PlayerId: uid},
		X:                  req.X,
		Y:                  req.Y,
	})
}

func (h *KingdomWsHandler) CastSpell(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	uid, ok := h.uid(wsReq, wsResp)
	if !ok {
		return
	}
	var req CastSpellReq
	if err := ws.BindJSON(wsReq, &req); err != nil {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	h.ask(ctx, wsResp, messages.HKCastSpell{
		KingdomBaseMessage: messages.KingdomBaseMessage{PlayerId: uid},
		Spell:              req.Spell,
	})
}

func (h *KingdomWsHandler) Trade(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	uid, ok := h.uid(wsReq, wsResp)
	if !ok {
		return
	}
	var req TradeReq
	if err := ws.BindJSON(wsReq, &req); err != nil {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	h.ask(ctx, wsResp, messages.HKTrade{
		KingdomBaseMessage: messages.KingdomBaseMessage{PlayerId: uid},
		Trade:              req.Trade,
	})
}

func (h *KingdomWsHandler) BuyUpgrade(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	uid, ok := h.uid(wsReq, wsResp)
	if !ok {
		return
	}
	var req BuyUpgradeReq
	if err := ws.BindJSON(wsReq, &req); err != nil {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	h.ask(ctx, wsResp, messages.HKBuyUpgrade{
		KingdomBaseMessage: messages.KingdomBaseMessage{PlayerId: uid},
		Upgrade:            req.Upgrade,
	})
}

func (h *KingdomWsHandler) Leave(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	uid, ok := h.uid(wsReq, wsResp)
	if !ok {
		return
	}
	wsReq.Conn.RemoveProperty(ws.ConnKeyUID)
	h.ask(ctx, wsResp, messages.HKLeave{KingdomBaseMessage: messages.KingdomBaseMessage{PlayerId: uid}})
}

func (h *KingdomWsHandler) ask(ctx context.Context, wsResp *ws.WsMsgResp, msg messages.KingdomMessage) {
	payload, err := h.rt.Ask(ctx, msg)
	if err != nil {
		h.error(wsResp, err)
		return
	}
	h.ok(wsResp, payload)
}

func (h *KingdomWsHandler) uid(wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) (int64, bool) {
	v := wsReq.Conn.GetProperty(ws.ConnKeyUID)
	uid, ok := v.(int64)
	if !ok || uid <= 0 {
		h.fail(wsResp, transport.SessionInvalid, "session 无效")
		return 0, false
	}
	return uid, true
}

func (h *KingdomWsHandler) ok(resp *ws.WsMsgResp, data any) {
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = transport.OK
	resp.Body.Msg = data
}

func (h *KingdomWsHandler) fail(resp *ws.WsMsgResp, code int, msg any) {
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = code
	resp.Body.Msg = msg
}

func (h *KingdomWsHandler) error(resp *ws.WsMsgResp, err error) {
	code, payload := mapError(err)
	h.fail(resp, code, payload)
}
