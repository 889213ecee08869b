package ws

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-think/openssl"
	"github.com/go-viper/mapstructure/v2"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"TreeKingdom/internal/shared/security"
	"TreeKingdom/internal/shared/utils"
	"TreeKingdom/modules/kit/logx"
)

// WsServer 是单条 websocket 连接的收发循环。
// secure 模式下帧格式为 zlib(AES(json))，握手下发密钥；
// 明文模式直接收发 JSON 文本帧。
type WsServer struct {
	conn     *websocket.Conn
	router   *Router
	outChan  chan *WsMsgResp
	Seq      int64
	property map[string]any
	secure   bool
	sync.RWMutex
	done      chan struct{}
	closeOnce sync.Once
	log       logx.Logger
}

func NewWsServer(wsConn *websocket.Conn, l logx.Logger, secure bool) *WsServer {
	return &WsServer{
		conn:     wsConn,
		outChan:  make(chan *WsMsgResp, 1000),
		property: make(map[string]any),
		secure:   secure,
		Seq:      0,
		done:     make(chan struct{}),
		log:      l,
	}
}

func (s *WsServer) Router(router *Router) {
	s.router = router
}

func (s *WsServer) SetProperty(key string, value any) {
	s.Lock()
	defer s.Unlock()
	s.property[key] = value
}

func (s *WsServer) GetProperty(key string) any {
	s.RLock()
	defer s.RUnlock()
	return s.property[key]
}

func (s *WsServer) RemoveProperty(key string) {
	s.Lock()
	defer s.Unlock()
	delete(s.property, key)
}

func (s *WsServer) Addr() string {
	return s.conn.RemoteAddr().String()
}

func (s *WsServer) Push(name string, data any) {
	rsp := WsMsgResp{
		Body: &RespBody{
			Seq:  0,
			Name: name,
			Msg:  data,
		},
	}
	select {
	case s.outChan <- &rsp:
	case <-s.done:
	}
}

func (s *WsServer) Run() {
	go s.readMsgLoop()
	go s.writeMsgLoop()
}

func (s *WsServer) readMsgLoop() {
	defer func() {
		if err := recover(); err != nil {
			e := fmt.Sprintf("%v", err)
			s.log.Error("ws readMsgLoop error", zap.String("err", e))
		}
		s.Close()
	}()
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			return
		}

		plain, ok := s.decode(data)
		if !ok {
			continue
		}

		reqBody := ReqBody{}
		if err := json.Unmarshal(plain, &reqBody); err != nil {
			s.log.Error("ws_server readMsgLoop unmarshal json error", zap.Error(err))
			continue
		}

		req := WsMsgReq{Body: &reqBody, Conn: s}
		// req 和 resp 的 Seq 必须一致
		resp := WsMsgResp{Body: &RespBody{Seq: req.Body.Seq, Name: reqBody.Name, Msg: reqBody.Msg}}
		if reqBody.Name == HeartbeatMsg {
			h := &Heartbeat{}
			mapstructure.Decode(reqBody.Msg, h)
			h.STime = time.Now().UnixNano() / 1e6
			resp.Body.Code = 0
			resp.Body.Msg = h
		} else {
			s.router.Dispatch(&req, &resp)
		}

		s.send(&resp)
	}
}

// decode 还原一帧明文 json。secure 模式：解压 + 解密；解密失败重新握手。
func (s *WsServer) decode(data []byte) ([]byte, bool) {
	if !s.secure {
		return data, true
	}

	secretData, err := security.UnZip(data)
	if err != nil {
		s.log.Error("ws_server readMsgLoop unzip", zap.Error(err))
		return nil, false
	}

	secretKey := s.GetProperty(SecretKey)
	if secretKey == nil {
		s.log.Error("ws_server readMsgLoop not found secretKey")
		return nil, false
	}

	key := secretKey.(string)
	plain, err := security.AesCBCDecrypt(secretData, []byte(key), []byte(key), openssl.ZEROS_PADDING)
	if err != nil {
		s.log.Error("ws_server readMsgLoop decrypt error", zap.Error(err))
		// 出错后，发起握手
		s.handshake()
		return nil, false
	}
	return plain, true
}

func (s *WsServer) send(resp *WsMsgResp) {
	select {
	case s.outChan <- resp:
	case <-s.done:
	}
}

func (s *WsServer) writeMsgLoop() {
	for {
		select {
		case msg, ok := <-s.outChan:
			if ok {
				s.write(msg)
			}
		case <-s.done:
			return
		}
	}
}

func (s *WsServer) Close() {
	s.closeOnce.Do(func() {
		_ = s.conn.Close()
		close(s.done)
	})
}

func (s *WsServer) Done() <-chan struct{} {
	return s.done
}

func (s *WsServer) write(msg *WsMsgResp) {
	marshal, err := json.Marshal(msg.Body)
	if err != nil {
		s.log.Error("ws_server write marshal json error", zap.Error(err))
		return
	}

	if !s.secure {
		if err := s.conn.WriteMessage(websocket.TextMessage, marshal); err != nil {
			s.log.Error("ws_server write error", zap.Error(err))
		}
		return
	}

	secretKey := s.GetProperty(SecretKey)
	if secretKey == nil {
		s.log.Error("ws_server write not found secretKey")
		return
	}

	key := secretKey.(string)
	encryptedData, err := security.AesCBCEncrypt(marshal, []byte(key), []byte(key), openssl.ZEROS_PADDING)
	if err != nil {
		s.log.Error("ws_server write encrypt error", zap.Error(err))
		return
	}

	zip, err := security.Zip(encryptedData)
	if err != nil {
		s.log.Error("ws_server write zip error", zap.Error(err))
		return
	}

	// 压缩后的密文是二进制字节流，必须走 BinaryMessage，不能走 TextMessage
	if err := s.conn.WriteMessage(websocket.BinaryMessage, zip); err != nil {
		s.log.Error("ws_server write error", zap.Error(err))
	}
}

func (s *WsServer) handshake() {
	secretKey := ""
	key := s.GetProperty(SecretKey)
	if key == nil {
		secretKey = utils.RandSeq(16)
	} else {
		secretKey = key.(string)
	}

	handshake := &Handshake{Key: secretKey}
	body := &RespBody{Name: HandshakeMsg, Msg: handshake}

	data, err := json.Marshal(body)
	if err != nil {
		s.log.Error("ws_server handshake marshal json error", zap.Error(err))
		return
	}

	s.SetProperty(SecretKey, secretKey)

	zipData, err := security.Zip(data)
	if err != nil {
		s.log.Error("ws_server handshake zip error", zap.Error(err))
		return
	}

	if err := s.conn.WriteMessage(websocket.BinaryMessage, zipData); err != nil {
		s.log.Error("ws_server handshake write error", zap.Error(err))
	}
}
