package handler

import (
	"context"
	"errors"
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	"TreeKingdom/internal/account/app"
	"TreeKingdom/internal/account/dto"
	"TreeKingdom/internal/shared/transport"
	"TreeKingdom/internal/shared/transport/ws"
	"TreeKingdom/modules/kit/errx"
	"TreeKingdom/modules/kit/logx"
)

// Account 同时暴露 HTTP（注册/登录）和 WS（account.login）两种入口，
// 浏览器客户端先 HTTP 登录拿 token，再走 ws kingdom.enter。
type Account struct {
	userService *app.UserService
	log         logx.Logger
}

func NewAccount(userService *app.UserService, log logx.Logger) *Account {
	return &Account{
		userService: userService,
		log:         log,
	}
}

func (a *Account) RegisterHTTPRoutes(group *gin.RouterGroup) {
	accountGroup := group.Group("/account")
	accountGroup.POST("/register", a.Register)
	accountGroup.POST("/login", a.Login)
	accountGroup.GET("/findPlayer", a.FindPlayer)
}

func (a *Account) RegisterWsRoutes(r *ws.Router) {
	accountGroup := r.Group("account")
	accountGroup.Handle("login", a.WsLogin)
}

func (a *Account) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(nethttp.StatusOK, gin.H{"code": transport.InvalidParam, "msg": "参数有误"})
		return
	}

	if err := a.userService.Register(c.Request.Context(), req); err != nil {
		a.reply(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, gin.H{"code": transport.OK, "msg": "ok"})
}

func (a *Account) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(nethttp.StatusOK, gin.H{"code": transport.InvalidParam, "msg": "参数有误"})
		return
	}
	req.Ip = c.ClientIP()

	resp, err := a.userService.Login(c.Request.Context(), req)
	if err != nil {
		a.reply(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, gin.H{"code": transport.OK, "msg": resp})
}

// FindPlayer 按展示名反查 uid。查无此人 uid 为 0，客户端据此提示。
func (a *Account) FindPlayer(c *gin.Context) {
	displayName := c.Query("displayName")
	if displayName == "" {
		c.JSON(nethttp.StatusOK, gin.H{"code": transport.InvalidParam, "msg": "参数有误"})
		return
	}

	uid, err := a.userService.FindPlayerByDisplayName(c.Request.Context(), displayName)
	if err != nil {
		a.reply(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, gin.H{"code": transport.OK, "msg": gin.H{"uid": uid}})
}

func (a *Account) WsLogin(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	if wsReq == nil || wsReq.Body == nil || wsReq.Conn == nil || wsResp == nil || wsResp.Body == nil {
		a.wsFail(wsResp, transport.InvalidParam, "参数有误")
		return
	}

	var req dto.LoginReq
	if err := ws.BindJSON(wsReq, &req); err != nil {
		a.wsFail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	req.Ip = wsReq.Conn.Addr()

	resp, err := a.userService.Login(ctx, req)
	if err != nil {
		code, payload := a.mapError(err)
		a.wsFail(wsResp, code, payload)
		return
	}

	wsReq.Conn.SetProperty(ws.ConnKeyUID, resp.UId)
	wsResp.Body.Code = transport.OK
	wsResp.Body.Msg = resp
}

func (a *Account) reply(c *gin.Context, err error) {
	code, payload := a.mapError(err)
	c.JSON(nethttp.StatusOK, gin.H{"code": code, "msg": payload})
}

// mapError 业务拒绝透出字符串 code，系统错误打日志并给笼统提示。
func (a *Account) mapError(err error) (int, any) {
	var e *errx.Error
	if !errors.As(err, &e) {
		a.log.Error("account unexpected error")
		return transport.SystemError, "internal error"
	}
	switch e.Code() {
	case errx.CodeUnavailable, errx.CodeInternal, errx.CodeTimeout:
		a.log.Error("account tech error")
		return transport.SystemError, "internal error"
	default:
		return transport.InvalidParam, map[string]any{"code": e.CodeText(), "msg": e.Msg()}
	}
}

func (a *Account) wsFail(resp *ws.WsMsgResp, code int, msg any) {
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = code
	resp.Body.Msg = msg
}
