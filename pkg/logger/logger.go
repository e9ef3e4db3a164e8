package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"fyb-checkin/config"
)

const serviceName = "fyb-checkin"

// NewLogger 根据配置初始化 Zap 日志实例
//   - json: 生产编码，ISO8601 时间，仅 error 及以上附带堆栈
//   - console: 开发编码，彩色级别
func NewLogger(cfg *config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("无效的日志级别 %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	case "json", "":
		zapCfg = zap.NewProductionConfig()
		zapCfg.EncoderConfig.TimeKey = "time"
		zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		// 提交高峰期不丢日志
		zapCfg.Sampling = nil
	default:
		return nil, fmt.Errorf("无效的日志格式 %q", cfg.Format)
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return nil, fmt.Errorf("初始化日志器失败: %w", err)
	}

	return logger.With(zap.String("service", serviceName)), nil
}

// Phone 脱敏的手机号字段，仅保留前 7 位与后 3 位
//
//	+2348031234567 -> +234803****567
func Phone(phone string) zap.Field {
	return zap.String("phone", MaskPhone(phone))
}

// MaskPhone 手机号脱敏；过短的号码整体遮盖
func MaskPhone(phone string) string {
	r := []rune(phone)
	if len(r) <= 10 {
		return "****"
	}
	return string(r[:7]) + "****" + string(r[len(r)-3:])
}
