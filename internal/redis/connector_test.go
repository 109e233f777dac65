package redis

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/MrSnakeDoc/comments/internal/config"
	"github.com/MrSnakeDoc/comments/internal/logger"
)

func validOptions() ConnectOptions {
	return ConnectOptions{
		Addr:           "127.0.0.1:1",
		ConnectTimeout: 300 * time.Millisecond,
		RetryInterval:  50 * time.Millisecond,
		MaxWait:        100 * time.Millisecond,
		PingTimeout:    50 * time.Millisecond,
		WarnThreshold:  1,
	}
}

func TestValidateOptions(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ConnectOptions)
		wantErr bool
	}{
		{name: "valid", mutate: func(*ConnectOptions) {}},
		{name: "zero connect timeout", mutate: func(o *ConnectOptions) { o.ConnectTimeout = 0 }, wantErr: true},
		{name: "zero retry interval", mutate: func(o *ConnectOptions) { o.RetryInterval = 0 }, wantErr: true},
		{name: "zero max wait", mutate: func(o *ConnectOptions) { o.MaxWait = 0 }, wantErr: true},
		{name: "zero ping timeout", mutate: func(o *ConnectOptions) { o.PingTimeout = 0 }, wantErr: true},
		{name: "negative warn threshold", mutate: func(o *ConnectOptions) { o.WarnThreshold = -1 }, wantErr: true},
	}

	cl := &connectionLogger{logger: logger.NewFromZap(zap.NewNop())}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := validOptions()
			tt.mutate(&opts)
			err := cl.validateOptions(opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateOptions() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := &config.Config{
		RedisAddr:           "redis:6379",
		RedisDB:             3,
		RedisPoolSize:       7,
		RedisConnectTimeout: 30 * time.Second,
		RedisWarnThreshold:  2,
	}
	opts := OptionsFromConfig(cfg)
	if opts.Addr != "redis:6379" || opts.RedisDB != 3 || opts.PoolSize != 7 ||
		opts.ConnectTimeout != 30*time.Second || opts.WarnThreshold != 2 {
		t.Errorf("OptionsFromConfig() = %+v", opts)
	}
}

func TestNewUnreachable(t *testing.T) {
	start := time.Now()
	client, err := New(context.Background(), validOptions(), logger.NewFromZap(zap.NewNop()))
	if err == nil {
		_ = client.Close()
		t.Fatal("New() should fail for an unreachable address")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("New() took %v, should give up after ConnectTimeout", elapsed)
	}
}

func TestNewCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := validOptions()
	opts.ConnectTimeout = time.Minute
	if _, err := New(ctx, opts, logger.NewFromZap(zap.NewNop())); err == nil {
		t.Fatal("New() should fail on a canceled context")
	}
}
