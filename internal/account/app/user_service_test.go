package app

import (
	"context"
	"errors"
	"testing"

	"TreeKingdom/internal/account/domain"
	"TreeKingdom/internal/account/dto"
)

type fakeUserRepo struct {
	byName    map[string]*domain.User
	byUID     map[int64]*domain.User
	byDisplay map[string]*domain.User
	err       error

	saveCalls int
	lastSave  domain.User
	saveErr   error
}

func (r *fakeUserRepo) GetUserByUserName(ctx context.Context, username string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.byName[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetUserByUID(ctx context.Context, uid int64) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.byUID[uid]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetUserByDisplayName(ctx context.Context, displayName string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.byDisplay[displayName]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) Save(ctx context.Context, n domain.User) error {
	r.saveCalls++
	r.lastSave = n
	return r.saveErr
}

type fakeHistoryRepo struct {
	rows []domain.LoginHistory
}

func (r *fakeHistoryRepo) Save(ctx context.Context, history domain.LoginHistory) error {
	r.rows = append(r.rows, history)
	return nil
}

type fakeLastRepo struct {
	byUID map[int64]domain.LoginLast
	saved []domain.LoginLast
}

func (r *fakeLastRepo) GetLoginLast(ctx context.Context, uid int64) (domain.LoginLast, error) {
	ll, ok := r.byUID[uid]
	if !ok {
		return domain.LoginLast{}, domain.ErrLastLoginNotFound
	}
	return ll, nil
}

func (r *fakeLastRepo) Save(ctx context.Context, ll domain.LoginLast) error {
	r.saved = append(r.saved, ll)
	return nil
}

func plainEncrypt(pwd, passcode string) string { return pwd + "#" + passcode }

func fixedSeq(n int) string { return "abcdef"[:n] }

func okIssuer(uid int64) (string, error) { return "token-ok", nil }

func newTestService(repo *fakeUserRepo, issuer TokenIssuer) *UserService {
	return NewUserService(repo, &fakeHistoryRepo{}, &fakeLastRepo{}, plainEncrypt, fixedSeq, issuer, nil)
}

func TestLogin_成功返回会话(t *testing.T) {
	repo := &fakeUserRepo{byName: map[string]*domain.User{
		"u1": {UId: 7, Username: "u1", DisplayName: "大王", Passcode: "pc", Passwd: plainEncrypt("pwd", "pc"), Status: 1},
	}}
	s := newTestService(repo, okIssuer)

	resp, err := s.Login(context.Background(), dto.LoginReq{Username: "u1", Password: "pwd"})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if resp.UId != 7 || resp.Session != "token-ok" || resp.DisplayName != "大王" {
		t.Fatalf("响应错误: %+v", resp)
	}
}

func TestLogin_成功后补记登录流水(t *testing.T) {
	repo := &fakeUserRepo{byName: map[string]*domain.User{
		"u1": {UId: 7, Username: "u1", Passcode: "pc", Passwd: plainEncrypt("pwd", "pc"), Status: 1},
	}}
	history := &fakeHistoryRepo{}
	last := &fakeLastRepo{byUID: map[int64]domain.LoginLast{}}
	s := NewUserService(repo, history, last, plainEncrypt, fixedSeq, okIssuer, nil)

	if _, err := s.Login(context.Background(), dto.LoginReq{Username: "u1", Password: "pwd", Ip: "1.2.3.4"}); err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(history.rows) != 1 {
		t.Fatalf("应写一条登录历史, got=%d", len(history.rows))
	}
	h := history.rows[0]
	if h.UId != 7 || h.Ip != "1.2.3.4" || h.State != domain.LoginSuccess {
		t.Fatalf("登录历史字段错误: %+v", h)
	}
	if len(last.saved) != 1 {
		t.Fatalf("应写一条最后登录, got=%d", len(last.saved))
	}
	ll := last.saved[0]
	if ll.UId != 7 || ll.Ip != "1.2.3.4" || ll.Session != "token-ok" || ll.LoginTime.IsZero() {
		t.Fatalf("最后登录字段错误: %+v", ll)
	}
}

func TestLogin_最后登录覆盖旧记录保留主键(t *testing.T) {
	repo := &fakeUserRepo{byName: map[string]*domain.User{
		"u1": {UId: 7, Username: "u1", Passcode: "pc", Passwd: plainEncrypt("pwd", "pc"), Status: 1},
	}}
	last := &fakeLastRepo{byUID: map[int64]domain.LoginLast{
		7: {Id: 33, UId: 7, Ip: "9.9.9.9", Session: "old"},
	}}
	s := NewUserService(repo, &fakeHistoryRepo{}, last, plainEncrypt, fixedSeq, okIssuer, nil)

	if _, err := s.Login(context.Background(), dto.LoginReq{Username: "u1", Password: "pwd", Ip: "1.2.3.4"}); err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(last.saved) != 1 {
		t.Fatalf("应写一条最后登录, got=%d", len(last.saved))
	}
	ll := last.saved[0]
	if ll.Id != 33 {
		t.Fatalf("更新应保留主键, got=%d", ll.Id)
	}
	if ll.Ip != "1.2.3.4" || ll.Session != "token-ok" {
		t.Fatalf("应覆盖为新登录信息: %+v", ll)
	}
}

func TestLogin_失败不写登录流水(t *testing.T) {
	repo := &fakeUserRepo{byName: map[string]*domain.User{
		"u1": {UId: 7, Username: "u1", Passcode: "pc", Passwd: plainEncrypt("pwd", "pc"), Status: 1},
	}}
	history := &fakeHistoryRepo{}
	last := &fakeLastRepo{}
	issueErr := errors.New("secret missing")
	s := NewUserService(repo, history, last, plainEncrypt, fixedSeq,
		func(uid int64) (string, error) { return "", issueErr }, nil)

	if _, err := s.Login(context.Background(), dto.LoginReq{Username: "u1", Password: "wrong"}); err == nil {
		t.Fatal("密码错误应失败")
	}
	if _, err := s.Login(context.Background(), dto.LoginReq{Username: "u1", Password: "pwd"}); !errors.Is(err, issueErr) {
		t.Fatalf("签发失败应透出, got=%v", err)
	}
	if len(history.rows) != 0 || len(last.saved) != 0 {
		t.Fatalf("失败登录不应留流水: history=%d last=%d", len(history.rows), len(last.saved))
	}
}

func TestLogin_用户不存在或密码错误都报凭据无效(t *testing.T) {
	repo := &fakeUserRepo{byName: map[string]*domain.User{
		"u1": {UId: 7, Username: "u1", Passcode: "pc", Passwd: plainEncrypt("pwd", "pc"), Status: 1},
	}}
	s := newTestService(repo, okIssuer)

	if _, err := s.Login(context.Background(), dto.LoginReq{Username: "nobody", Password: "pwd"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("不存在的用户应报凭据无效, got=%v", err)
	}
	if _, err := s.Login(context.Background(), dto.LoginReq{Username: "u1", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("密码错误应报凭据无效, got=%v", err)
	}
}

func TestLogin_禁用账号拒绝登录(t *testing.T) {
	repo := &fakeUserRepo{byName: map[string]*domain.User{
		"u1": {UId: 7, Username: "u1", Passcode: "pc", Passwd: plainEncrypt("pwd", "pc"), Status: 0},
	}}
	s := newTestService(repo, okIssuer)

	if _, err := s.Login(context.Background(), dto.LoginReq{Username: "u1", Password: "pwd"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("禁用账号应拒绝, got=%v", err)
	}
}

func TestLogin_数据库故障报技术错误(t *testing.T) {
	dbErr := errors.New("mysql down")
	s := newTestService(&fakeUserRepo{err: dbErr}, okIssuer)

	_, err := s.Login(context.Background(), dto.LoginReq{Username: "u1", Password: "pwd"})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("期望技术错误, got=%v", err)
	}
	if !errors.Is(err, dbErr) {
		t.Fatalf("期望保留 cause 链, got=%v", err)
	}
}

func TestLogin_签发令牌失败报系统错误(t *testing.T) {
	repo := &fakeUserRepo{byName: map[string]*domain.User{
		"u1": {UId: 7, Username: "u1", Passcode: "pc", Passwd: plainEncrypt("pwd", "pc"), Status: 1},
	}}
	issueErr := errors.New("secret missing")
	s := newTestService(repo, func(uid int64) (string, error) { return "", issueErr })

	_, err := s.Login(context.Background(), dto.LoginReq{Username: "u1", Password: "pwd"})
	if !errors.Is(err, ErrInternalServer) {
		t.Fatalf("期望系统错误, got=%v", err)
	}
	if !errors.Is(err, issueErr) {
		t.Fatalf("期望保留 cause 链, got=%v", err)
	}
}

func TestRegister_新账号落库(t *testing.T) {
	repo := &fakeUserRepo{byName: map[string]*domain.User{}}
	s := newTestService(repo, okIssuer)

	err := s.Register(context.Background(), dto.RegisterReq{Username: "newbie", Password: "pwd123", DisplayName: "新王"})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if repo.saveCalls != 1 {
		t.Fatalf("应写库一次, got=%d", repo.saveCalls)
	}
	saved := repo.lastSave
	if saved.Username != "newbie" || saved.DisplayName != "新王" || saved.Status != 1 {
		t.Fatalf("落库字段错误: %+v", saved)
	}
	if saved.Passcode != fixedSeq(6) {
		t.Fatalf("应生成安全码, got=%q", saved.Passcode)
	}
	if saved.Passwd != plainEncrypt("pwd123", saved.Passcode) {
		t.Fatalf("密码应加密存储, got=%q", saved.Passwd)
	}
}

func TestRegister_重名拒绝(t *testing.T) {
	repo := &fakeUserRepo{byName: map[string]*domain.User{
		"taken": {UId: 1, Username: "taken"},
	}}
	s := newTestService(repo, okIssuer)

	if err := s.Register(context.Background(), dto.RegisterReq{Username: "taken", Password: "pwd123", DisplayName: "x"}); !errors.Is(err, ErrUserExist) {
		t.Fatalf("重名应拒绝, got=%v", err)
	}
	if repo.saveCalls != 0 {
		t.Fatalf("拒绝时不应写库")
	}
}

func TestRegister_展示名重复拒绝(t *testing.T) {
	repo := &fakeUserRepo{
		byName: map[string]*domain.User{},
		byDisplay: map[string]*domain.User{
			"大王": {UId: 1, Username: "other", DisplayName: "大王"},
		},
	}
	s := newTestService(repo, okIssuer)

	err := s.Register(context.Background(), dto.RegisterReq{Username: "newbie", Password: "pwd123", DisplayName: "大王"})
	if !errors.Is(err, ErrDisplayNameTaken) {
		t.Fatalf("展示名重复应拒绝, got=%v", err)
	}
	if repo.saveCalls != 0 {
		t.Fatalf("拒绝时不应写库")
	}
}

func TestFindDisplayName(t *testing.T) {
	repo := &fakeUserRepo{byUID: map[int64]*domain.User{
		7: {UId: 7, DisplayName: "大王"},
	}}
	s := newTestService(repo, okIssuer)

	name, err := s.FindDisplayName(context.Background(), 7)
	if err != nil || name != "大王" {
		t.Fatalf("name=%q err=%v", name, err)
	}
	if _, err := s.FindDisplayName(context.Background(), 8); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("未知 uid 应报凭据无效, got=%v", err)
	}
}

func TestFindPlayerByDisplayName(t *testing.T) {
	repo := &fakeUserRepo{byDisplay: map[string]*domain.User{
		"大王": {UId: 7, DisplayName: "大王"},
	}}
	s := newTestService(repo, okIssuer)

	uid, err := s.FindPlayerByDisplayName(context.Background(), "大王")
	if err != nil || uid != 7 {
		t.Fatalf("uid=%d err=%v", uid, err)
	}
	uid, err = s.FindPlayerByDisplayName(context.Background(), "查无此人")
	if err != nil || uid != 0 {
		t.Fatalf("查无此人应返回 0, uid=%d err=%v", uid, err)
	}
}
