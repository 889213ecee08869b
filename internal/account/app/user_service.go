package app

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"TreeKingdom/internal/account/domain"
	"TreeKingdom/internal/account/dto"
	"TreeKingdom/modules/kit/logx"
)

type UserService struct {
	userRepo     UserRepo
	historyRepo  LoginHistoryRepo
	lastRepo     LoginLastRepo
	pwdEncrypter PwdEncrypter
	randSeq      RandSeq
	issueToken   TokenIssuer
	log          logx.Logger
}

func NewUserService(
	userRepo UserRepo,
	historyRepo LoginHistoryRepo,
	lastRepo LoginLastRepo,
	pwdEncrypter PwdEncrypter,
	randSeq RandSeq,
	issueToken TokenIssuer,
	log logx.Logger,
) *UserService {
	if log == nil {
		log = logx.Nop()
	}
	return &UserService{
		userRepo:     userRepo,
		historyRepo:  historyRepo,
		lastRepo:     lastRepo,
		pwdEncrypter: pwdEncrypter,
		randSeq:      randSeq,
		issueToken:   issueToken,
		log:          log,
	}
}

// Login 校验凭据并签发会话令牌，成功后补记登录流水。
func (s *UserService) Login(ctx context.Context, req dto.LoginReq) (*dto.LoginResp, error) {
	user, err := s.userRepo.GetUserByUserName(ctx, req.Username)
	if err != nil {
		// 区分"用户不存在"（业务错误）和"数据库挂了"（技术错误）
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return nil, ErrInvalidCredentials.WithData("reason", "用户不存在")
		default:
			return nil, ErrUnavailable.WithCause(err)
		}
	}
	if err := user.Authenticate(req.Password, s.pwdEncrypter); err != nil {
		// 对外不区分禁用/密码错，避免给撞库者探测信息
		return nil, ErrInvalidCredentials.WithCause(err)
	}

	token, err := s.issueToken(user.UId)
	if err != nil {
		return nil, ErrInternalServer.WithData("uid", user.UId).WithCause(err)
	}

	s.recordLogin(ctx, user.UId, req.Ip, token)

	return &dto.LoginResp{
		Username:    user.Username,
		DisplayName: user.DisplayName,
		UId:         user.UId,
		Session:     token,
	}, nil
}

// recordLogin 登录流水是旁路数据，写失败只记日志不拦登录。
func (s *UserService) recordLogin(ctx context.Context, uid int64, ip, session string) {
	if err := s.historyRepo.Save(ctx, domain.LoginHistory{
		UId:   uid,
		Ip:    ip,
		State: domain.LoginSuccess,
	}); err != nil {
		s.log.Warn("save login history failed", zap.Int64("uid", uid), zap.Error(err))
	}

	ll, err := s.lastRepo.GetLoginLast(ctx, uid)
	if err != nil && !errors.Is(err, domain.ErrLastLoginNotFound) {
		s.log.Warn("load login last failed", zap.Int64("uid", uid), zap.Error(err))
		return
	}
	ll.UId = uid
	ll.LoginTime = time.Now()
	ll.Ip = ip
	ll.Session = session
	if err := s.lastRepo.Save(ctx, ll); err != nil {
		s.log.Warn("save login last failed", zap.Int64("uid", uid), zap.Error(err))
	}
}

// Register 创建新账号。用户名和展示名都要求唯一，展示名用于王国与排行榜。
func (s *UserService) Register(ctx context.Context, req dto.RegisterReq) error {
	user, err := s.userRepo.GetUserByUserName(ctx, req.Username)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return ErrUnavailable.WithCause(err)
	}
	if user != nil {
		return ErrUserExist
	}

	taken, err := s.userRepo.GetUserByDisplayName(ctx, req.DisplayName)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return ErrUnavailable.WithCause(err)
	}
	if taken != nil {
		return ErrDisplayNameTaken
	}

	passcode := s.randSeq(6)
	n := domain.User{
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Passwd:      s.pwdEncrypter(req.Password, passcode),
		Passcode:    passcode,
		Status:      1,
	}
	if err = s.userRepo.Save(ctx, n); err != nil {
		return ErrUnavailable.WithCause(err)
	}
	return nil
}

// FindDisplayName 按 uid 取展示名，进入游戏时带给王国 actor。
func (s *UserService) FindDisplayName(ctx context.Context, uid int64) (string, error) {
	user, err := s.userRepo.GetUserByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", ErrInvalidCredentials.WithData("uid", uid)
		}
		return "", ErrUnavailable.WithCause(err)
	}
	return user.DisplayName, nil
}

// FindPlayerByDisplayName 按展示名反查玩家。查无此人返回 0，不算错误。
func (s *UserService) FindPlayerByDisplayName(ctx context.Context, displayName string) (int64, error) {
	user, err := s.userRepo.GetUserByDisplayName(ctx, displayName)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return 0, nil
		}
		return 0, ErrUnavailable.WithCause(err)
	}
	return user.UId, nil
}
