package domain

import "time"

type User struct {
	UId         int64     `gorm:"column:uid;primaryKey;autoIncrement;comment:用户ID" json:"uid"`
	Username    string    `gorm:"column:username;type:varchar(20);uniqueIndex;not null;comment:用户名" json:"username" validate:"min=4,max=20,regexp=^[a-zA-Z0-9_]*$"`
	DisplayName string    `gorm:"column:display_name;type:varchar(30);comment:王国展示名" json:"displayName"`
	Passcode    string    `gorm:"column:passcode;type:varchar(255);comment:安全码;" json:"passcode"`
	Passwd      string    `gorm:"column:passwd;type:varchar(255);comment:密码;" json:"passwd"`
	Status      int       `gorm:"column:status;default:1;comment:状态 1正常 0禁用" json:"status"`
	Ctime       time.Time `gorm:"column:ctime;autoCreateTime;comment:创建时间" json:"ctime"`
	Mtime       time.Time `gorm:"column:mtime;autoUpdateTime;comment:更新时间" json:"mtime"`
}

func (User) TableName() string {
	return "user_info" // 指定表名
}

func (u User) CheckPassword(pwd string, encrypt func(plaintext, passcode string) string) bool {
	if pwd == "" {
		return false
	}

	s := encrypt(pwd, u.Passcode)
	if s != u.Passwd {
		return false
	}
	return true
}

// Authenticate 校验账号可用性与密码，返回领域错误供上层归并。
func (u User) Authenticate(pwd string, encrypt func(plaintext, passcode string) string) error {
	if u.Status == 0 {
		return ErrUserDisabled.WithData("uid", u.UId)
	}
	if !u.CheckPassword(pwd, encrypt) {
		return ErrInvalidPassword.WithData("uid", u.UId)
	}
	return nil
}
