package bootstrap

import (
	"errors"
	"testing"
	"time"

	"github.com/shuldan/kernel/pkg/app"
	"github.com/shuldan/kernel/pkg/container"
	"github.com/shuldan/kernel/pkg/contracts"
)

type probe struct {
	started chan contracts.AppContext
}

func (p *probe) Name() string                           { return "probe" }
func (p *probe) Register(c contracts.DIContainer) error { return nil }
func (p *probe) Start(ctx contracts.AppContext) error {
	p.started <- ctx
	return nil
}
func (p *probe) Stop(contracts.AppContext) error { return nil }

func TestBootstrap_CreateApp(t *testing.T) {
	t.Setenv("APP_ENVIRONMENT", "testing")
	t.Setenv("BOOTTEST_REDIS__ADDRESS", "127.0.0.1:6391")

	p := &probe{started: make(chan contracts.AppContext, 1)}
	a, c, err := New("boot", "1.2.3", "BOOTTEST_").
		WithDefaults(map[string]any{
			"logger": map[string]any{"level": "warn"},
			"redis":  map[string]any{"address": "localhost:6379"},
		}).
		WithGracefulTimeout(time.Second).
		WithLogger().
		WithRedis().
		WithModule(p).
		CreateApp()
	if err != nil {
		t.Fatalf("CreateApp failed: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- a.Run() }()

	var ctx contracts.AppContext
	select {
	case ctx = <-p.started:
	case <-time.After(2 * time.Second):
		t.Fatal("modules did not start")
	}

	if ctx.AppName() != "boot" || ctx.Environment() != "testing" {
		t.Errorf("unexpected app info %s/%s", ctx.AppName(), ctx.Environment())
	}

	cfg, err := container.Make[contracts.Config](c)
	if err != nil {
		t.Fatalf("config not resolvable: %v", err)
	}
	if got := cfg.GetString("redis.address"); got != "127.0.0.1:6391" {
		t.Errorf("environment must override defaults, got %q", got)
	}
	for _, name := range []string{contracts.LoggerModuleName, contracts.RedisModuleName} {
		if !c.Bound(name) {
			t.Errorf("%s not bound", name)
		}
	}

	ctx.Stop()
	if err := <-done; err != nil {
		t.Errorf("Run returned %v", err)
	}
}

func TestBootstrap_DuplicateModule(t *testing.T) {
	_, _, err := New("boot", "1", "BOOTTEST_").WithLogger().WithLogger().CreateApp()
	if !errors.Is(err, app.ErrDuplicateModule) {
		t.Errorf("expected ErrDuplicateModule, got %v", err)
	}
}
