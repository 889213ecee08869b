package utils

import (
	"math/rand"
	"strconv"

	"github.com/lithammer/shortuuid/v4"
)

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

func RandSeq(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}

// NewEntityID 生成带类别前缀的实体 id，例如 "worker_4vYq..."。
// 实体 id 在实体整个生命周期内稳定，入库后不再变化。
func NewEntityID(prefix string) string {
	return prefix + "_" + shortuuid.New()
}

// OwnerID 玩家在世界内的归属标识（实体 Owner 字段）。
func OwnerID(uid int64) string {
	return "lord_" + strconv.FormatInt(uid, 10)
}
