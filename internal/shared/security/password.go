package security

import (
	"crypto/sha256"
	"encoding/hex"
)

// PwdHash 口令加盐摘要：passcode 为注册时生成的随机安全码。
func PwdHash(pwd, passcode string) string {
	sum := sha256.Sum256([]byte(pwd + ":" + passcode))
	return hex.EncodeToString(sum[:])
}
