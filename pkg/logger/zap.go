package logger

import (
	"context"

	"go.uber.org/zap"
)

// ZapLogger — обёртка над zap, реализующая ports.Logger.
type ZapLogger struct {
	base   *zap.Logger
	sugar  *zap.SugaredLogger
	isProd bool
}

// NewZapLogger — конструктор. В prod-режиме — JSON-вывод и семплинг,
// в dev — человекочитаемый вывод. Возвращает функцию завершения (Sync).
func NewZapLogger(isProd bool) (*ZapLogger, func() error, error) {
	var (
		base *zap.Logger
		err  error
	)

	if isProd {
		base, err = zap.NewProduction()
	} else {
		base, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, nil, err
	}

	l := &ZapLogger{
		base:   base,
		sugar:  base.Sugar(),
		isProd: isProd,
	}

	cleanup := func() error { return l.base.Sync() }
	return l, cleanup, nil
}

func (z *ZapLogger) Infof(_ context.Context, format string, args ...any) {
	z.sugar.Infof(format, args...)
}

func (z *ZapLogger) Warnf(_ context.Context, format string, args ...any) {
	z.sugar.Warnf(format, args...)
}

func (z *ZapLogger) Errorf(_ context.Context, format string, args ...any) {
	z.sugar.Errorf(format, args...)
}

// Named — подлоггер с именем компонента (engine, realtime, cache...).
func (z *ZapLogger) Named(name string) *ZapLogger {
	named := z.base.Named(name)
	return &ZapLogger{base: named, sugar: named.Sugar(), isProd: z.isProd}
}

func (z *ZapLogger) Base() *zap.Logger           { return z.base }
func (z *ZapLogger) Sugared() *zap.SugaredLogger { return z.sugar }
