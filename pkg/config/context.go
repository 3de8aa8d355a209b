package config

import "context"

// ContextKey is an alias used for storing values in context
type ContextKey string

const ConfigCtxKey ContextKey = "config"

func ContextWithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ConfigCtxKey, cfg)
}

// FromContext returns the configuration attached to ctx, or the defaults
// when none was attached.
func FromContext(ctx context.Context) *Config {
	if ctx != nil {
		if cfg, ok := ctx.Value(ConfigCtxKey).(*Config); ok && cfg != nil {
			return cfg
		}
	}
	return Default()
}

const ServiceCtxKey ContextKey = "config_service"

// ContextWithService attaches the service that loaded the configuration, so
// commands can report where each value came from.
func ContextWithService(ctx context.Context, svc Service) context.Context {
	return context.WithValue(ctx, ServiceCtxKey, svc)
}

// ServiceFromContext returns the attached service, or a fresh one.
func ServiceFromContext(ctx context.Context) Service {
	if ctx != nil {
		if svc, ok := ctx.Value(ServiceCtxKey).(Service); ok && svc != nil {
			return svc
		}
	}
	return NewService()
}
