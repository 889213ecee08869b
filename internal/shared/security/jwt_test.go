package security

import (
	"errors"
	"testing"
)

func TestAward_缺少JWT_SECRET应失败(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := Award(1); !errors.Is(err, ErrJWTSecretMissing) {
		t.Fatalf("期望 JWT_SECRET 为空时 Award 返回 ErrJWTSecretMissing, got=%v", err)
	}
}

func TestAwardParse_正常签发并解析(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-123")

	token, err := Award(42)
	if err != nil {
		t.Fatalf("Award err=%v", err)
	}
	if token == "" {
		t.Fatalf("期望 token 非空")
	}

	_, claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken err=%v", err)
	}
	if claims == nil || claims.Uid != 42 {
		t.Fatalf("期望 claims.Uid==42, got=%v", claims)
	}
}

func TestParseToken_密钥不匹配应拒绝(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-a")
	token, err := Award(7)
	if err != nil {
		t.Fatalf("Award err=%v", err)
	}

	t.Setenv("JWT_SECRET", "secret-b")
	if _, _, err := ParseToken(token); err == nil {
		t.Fatalf("换密钥后应解析失败")
	}
}

func TestParseToken_垃圾串应拒绝(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-a")
	if _, _, err := ParseToken("not-a-jwt"); err == nil {
		t.Fatalf("垃圾串应解析失败")
	}
}
