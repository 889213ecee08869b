package domain

import "time"

type LoginLast struct {
	Id        int64     `gorm:"column:id;primaryKey;autoIncrement;comment:主键ID" json:"id"`
	UId       int64     `gorm:"column:uid;uniqueIndex;not null;comment:用户ID" json:"uid"` // 一个用户只有一条最后登录记录
	LoginTime time.Time `gorm:"column:login_time;comment:登录时间" json:"login_time"`
	Ip        string    `gorm:"column:ip;type:varchar(50);comment:IP地址" json:"ip"`
	Session   string    `gorm:"column:session;type:varchar(255);index;comment:会话标识" json:"session"`
}

func (LoginLast) TableName() string {
	return "login_last"
}
