package log

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the logging interface used across the service.
// Every method takes a context so request-scoped fields can be attached later.
type Logger interface {
	Debug(ctx context.Context, arg ...any)
	Debugf(ctx context.Context, template string, arg ...any)
	Info(ctx context.Context, arg ...any)
	Infof(ctx context.Context, template string, arg ...any)
	Warn(ctx context.Context, arg ...any)
	Warnf(ctx context.Context, template string, arg ...any)
	Error(ctx context.Context, arg ...any)
	Errorf(ctx context.Context, template string, arg ...any)
	Fatal(ctx context.Context, arg ...any)
	Fatalf(ctx context.Context, template string, arg ...any)
	DPanic(ctx context.Context, arg ...any)
	DPanicf(ctx context.Context, template string, arg ...any)
	Panic(ctx context.Context, arg ...any)
	Panicf(ctx context.Context, template string, arg ...any)
}

// ZapConfig configures the zap-backed logger.
type ZapConfig struct {
	Level        string // debug, info, warn, error
	Mode         string // development or production
	Encoding     string // console or json
	ColorEnabled bool
}

type zapLogger struct {
	sugar *zap.SugaredLogger
}

// Init builds the zap-backed Logger from config.
func Init(cfg ZapConfig) Logger {
	level := zapcore.InfoLevel
	if err := level.Set(cfg.Level); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Mode == "production" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.Encoding != "" {
		zapCfg.Encoding = cfg.Encoding
	}
	if cfg.ColorEnabled && zapCfg.Encoding == "console" {
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := zapCfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		logger = zap.NewNop()
	}

	return &zapLogger{sugar: logger.Sugar()}
}

func (z *zapLogger) Debug(_ context.Context, arg ...any) { z.sugar.Debug(arg...) }
func (z *zapLogger) Debugf(_ context.Context, template string, arg ...any) {
	z.sugar.Debugf(template, arg...)
}
func (z *zapLogger) Info(_ context.Context, arg ...any) { z.sugar.Info(arg...) }
func (z *zapLogger) Infof(_ context.Context, template string, arg ...any) {
	z.sugar.Infof(template, arg...)
}
func (z *zapLogger) Warn(_ context.Context, arg ...any) { z.sugar.Warn(arg...) }
func (z *zapLogger) Warnf(_ context.Context, template string, arg ...any) {
	z.sugar.Warnf(template, arg...)
}
func (z *zapLogger) Error(_ context.Context, arg ...any) { z.sugar.Error(arg...) }
func (z *zapLogger) Errorf(_ context.Context, template string, arg ...any) {
	z.sugar.Errorf(template, arg...)
}
func (z *zapLogger) Fatal(_ context.Context, arg ...any) { z.sugar.Fatal(arg...) }
func (z *zapLogger) Fatalf(_ context.Context, template string, arg ...any) {
	z.sugar.Fatalf(template, arg...)
}
func (z *zapLogger) DPanic(_ context.Context, arg ...any) { z.sugar.DPanic(arg...) }
func (z *zapLogger) DPanicf(_ context.Context, template string, arg ...any) {
	z.sugar.DPanicf(template, arg...)
}
func (z *zapLogger) Panic(_ context.Context, arg ...any) { z.sugar.Panic(arg...) }
func (z *zapLogger) Panicf(_ context.Context, template string, arg ...any) {
	z.sugar.Panicf(template, arg...)
}
