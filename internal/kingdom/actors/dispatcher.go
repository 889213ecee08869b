package actors

import (
	"reflect"

	"github.com/asynkron/protoactor-go/actor"

	"TreeKingdom/internal/shared/actor/messages"
)

type Dispatcher struct {
	handlers map[reflect.Type]Handler
}

type Handler struct {
	fn      reflect.Value
	reqType reflect.Type
}

func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[reflect.Type]Handler),
	}
	d.registerAll()
	return d
}

func (d *Dispatcher) registerAll() {
	register(d, KH.HandleHKEnter)
	register(d, KH.HandleHKSnapshot)
	register(d, KH.HandleHKBuild)
	register(d, KH.HandleHKSpawnUnit)
	register(d, KH.HandleHKMoveHero)
	register(d, KH.HandleHKCastSpell)
	register(d, KH.HandleHKTrade)
	register(d, KH.HandleHKBuyUpgrade)
	register(d, KH.HandleHKLeave)
}

func register[Req any](
	d *Dispatcher,
	fn func(ctx actor.Context, p *KingdomActor, req Req),
) {
	reqType := reflect.TypeOf((*Req)(nil)).Elem()
	if reqType == nil {
		panic("dispatcher req type cannot be nil")
	}

	d.handlers[reqType] = Handler{
		fn:      reflect.ValueOf(fn),
		reqType: reqType,
	}
}

func (d *Dispatcher) Dispatch(ctx actor.Context, p *KingdomActor, req messages.KingdomMessage) {
	if req == nil {
		ctx.Respond(fail("nil req"))
		return
	}

	bodyType := reflect.TypeOf(req)
	handler, ok := d.handlers[bodyType]
	if !ok {
		ctx.Respond(fail("no handler for request body"))
		return
	}

	if bodyType != handler.reqType {
		ctx.Respond(fail("request body type mismatch"))
		return
	}

	handler.fn.Call([]reflect.Value{
		reflect.ValueOf(ctx),
		reflect.ValueOf(p),
		reflect.ValueOf(req),
	})
}
