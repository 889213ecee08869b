package logx

import "go.uber.org/zap"

type nopLogger struct{}

// Nop 返回丢弃一切输出的 Logger，测试和未注入场景用。
func Nop() Logger {
	return nopLogger{}
}

func (nopLogger) Info(string, ...zap.Field)  {}
func (nopLogger) Error(string, ...zap.Field) {}
func (nopLogger) Debug(string, ...zap.Field) {}
func (nopLogger) Warn(string, ...zap.Field)  {}

func (n nopLogger) With(...zap.Field) Logger { return n }
