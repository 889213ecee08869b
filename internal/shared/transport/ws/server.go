package ws

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"TreeKingdom/modules/kit/logx"
)

type Server struct {
	router *Router
	log    logx.Logger
	secure bool
}

// NewServer secure 为 true 时启用密钥握手 + AES + zlib 帧；
// 浏览器直连场景一般走明文 JSON（外层有 TLS）。
func NewServer(r *Router, l logx.Logger, secure bool) *Server {
	return &Server{
		router: r,
		log:    l,
		secure: secure,
	}
}

func (s *Server) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	upgrader := websocket.Upgrader{
		// 允许所有CORS跨域请求
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	wsConn, err := upgrader.Upgrade(resp, req, nil)
	if err != nil {
		s.log.Error("websocket upgrade error", zap.Error(err))
		return
	}

	wsServer := NewWsServer(wsConn, s.log, s.secure)
	wsServer.Router(s.router)
	wsServer.Run()
	if s.secure {
		wsServer.handshake()
	}
}
