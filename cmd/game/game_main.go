package main

import (
	"context"
	"fmt"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	accountapp "TreeKingdom/internal/account/app"
	"TreeKingdom/internal/account/infra/repo"
	accounthandler "TreeKingdom/internal/account/interfaces/handler"
	kactor "TreeKingdom/internal/kingdom/actor"
	"TreeKingdom/internal/kingdom/actors"
	"TreeKingdom/internal/kingdom/infra/persistence/mongodb"
	"TreeKingdom/internal/kingdom/infra/rank"
	kingdomhandler "TreeKingdom/internal/kingdom/interfaces/handler"
	"TreeKingdom/internal/kingdom/sim"
	"TreeKingdom/internal/shared/infrastructure/db"
	"TreeKingdom/internal/shared/infrastructure/mongo"
	infraredis "TreeKingdom/internal/shared/infrastructure/redis"
	"TreeKingdom/internal/shared/logs"
	"TreeKingdom/internal/shared/security"
	"TreeKingdom/internal/shared/serverconfig"
	transporthttp "TreeKingdom/internal/shared/transport/http"
	"TreeKingdom/internal/shared/transport/ws"
	"TreeKingdom/internal/shared/utils"
	"TreeKingdom/modules/kit/logx"
)

func main() {
	serverconfig.Load()
	if err := logs.Init("game", serverconfig.Conf.Log); err != nil {
		panic(err)
	}
	logs.Info("conf", zap.Any("conf", serverconfig.Conf))
	log := logx.NewZapLogger(logs.Logger())

	// 基础设施
	gormDB, err := db.Open(serverconfig.Conf.MySQL)
	if err != nil {
		logs.Fatal("open db failed", zap.Error(err))
	}
	mongoClient, err := mongo.Open(serverconfig.Conf.MongoDB, logs.Logger())
	if err != nil {
		logs.Fatal("open mongo failed", zap.Error(err))
	}
	mongoDB := mongoClient.Database(serverconfig.Conf.MongoDB.Database)
	rdb, err := infraredis.Open(serverconfig.Conf.Redis, logs.Logger())
	if err != nil {
		logs.Fatal("open redis failed", zap.Error(err))
	}

	// 王国 actor 运行时
	tun, tickEvery, flushEvery := tuningFromConfig(serverconfig.Conf.Game)
	kingdomRepo := mongodb.NewKingdomRepository(mongoDB)
	board := rank.NewRedisBoard(rdb)
	runtime := kactor.NewRuntime(actors.Deps{
		Repo:       kingdomRepo,
		Board:      board,
		Tuning:     tun,
		TickEvery:  tickEvery,
		FlushEvery: flushEvery,
		Log:        log,
	}, 3*time.Second)

	// 账号服务
	userService := accountapp.NewUserService(
		repo.NewUserRepo(gormDB),
		repo.NewLoginHistoryRepo(gormDB),
		repo.NewLoginLastRepo(gormDB),
		security.PwdHash,
		utils.RandSeq,
		security.Award,
		log,
	)
	account := accounthandler.NewAccount(userService, log)

	// WS 路由
	wsRouter := ws.NewRouter(log)
	account.RegisterWsRoutes(wsRouter)
	kingdomhandler.NewKingdomWsHandler(runtime, userService, log).RegisterRoutes(wsRouter)
	wsServer := ws.NewServer(wsRouter, log, serverconfig.Conf.GateServer.NeedSecret)

	gateHost := serverconfig.Conf.GateServer.Host
	if gateHost == "" {
		gateHost = "0.0.0.0"
	}
	gateAddr := fmt.Sprintf("%s:%d", gateHost, serverconfig.Conf.GateServer.Port)
	gateSrv := &nethttp.Server{Addr: gateAddr, Handler: wsServer}

	// HTTP 路由
	httpHost := serverconfig.Conf.HTTPServer.Host
	if httpHost == "" {
		httpHost = "0.0.0.0"
	}
	httpAddr := fmt.Sprintf("%s:%d", httpHost, serverconfig.Conf.HTTPServer.Port)
	httpServer := transporthttp.NewHttpServer(httpAddr, nil, log)
	account.RegisterHTTPRoutes(httpServer.Group())
	kingdomhandler.NewRankHttpHandler(board).RegisterRoutes(httpServer.Group())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	go func() {
		logs.Info("gate ws server started", zap.String("addr", gateAddr))
		if err := gateSrv.ListenAndServe(); err != nil && err != nethttp.ErrServerClosed {
			errCh <- fmt.Errorf("gate ws serve failed: %w", err)
		}
	}()
	go func() {
		logs.Info("http server started", zap.String("addr", httpAddr))
		if err := httpServer.Start(); err != nil && err != nethttp.ErrServerClosed {
			errCh <- fmt.Errorf("http serve failed: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logs.Info("收到退出信号，准备优雅退出")
	case err := <-errCh:
		if err != nil {
			logs.Error("服务异常退出", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = gateSrv.Shutdown(shutdownCtx)
	_ = httpServer.Shutdown(shutdownCtx)
	// actor 停机会触发每个在线王国的最后一次落库
	runtime.Shutdown()
	_ = mongoClient.Disconnect(shutdownCtx)
	_ = rdb.Close()
}

// tuningFromConfig 配置只暴露节奏类参数，其余数值走默认值。
func tuningFromConfig(gc serverconfig.GameConfig) (sim.Tuning, time.Duration, time.Duration) {
	tun := sim.DefaultTuning()
	if gc.MapSize > 0 {
		tun.MapSize = gc.MapSize
	}
	if gc.TileSize > 0 {
		tun.TileSize = gc.TileSize
	}
	if gc.CycleMS > 0 {
		tun.CycleDuration = time.Duration(gc.CycleMS) * time.Millisecond
	}
	if gc.NightFraction > 0 && gc.NightFraction < 1 {
		tun.NightFraction = gc.NightFraction
	}
	if gc.RaidIntervalMS > 0 {
		tun.RaidInterval = time.Duration(gc.RaidIntervalMS) * time.Millisecond
	}
	if gc.RaidUnitMin > 0 {
		tun.RaidUnitMin = gc.RaidUnitMin
	}

	tickEvery := 100 * time.Millisecond
	if gc.TickMS > 0 {
		tickEvery = time.Duration(gc.TickMS) * time.Millisecond
	}
	flushEvery := 5000 * time.Millisecond
	if gc.SaveMS > 0 {
		flushEvery = time.Duration(gc.SaveMS) * time.Millisecond
	}
	return tun, tickEvery, flushEvery
}
