package app

import (
	"errors"
	"testing"

	"github.com/shuldan/kernel/pkg/container"
	"github.com/shuldan/kernel/pkg/contracts"
)

type mockModule struct {
	name     string
	register func(c contracts.DIContainer) error
	start    func(ctx contracts.AppContext) error
	stop     func(ctx contracts.AppContext) error
}

func (m *mockModule) Name() string { return m.name }
func (m *mockModule) Register(c contracts.DIContainer) error {
	if m.register == nil {
		return nil
	}
	return m.register(c)
}
func (m *mockModule) Start(ctx contracts.AppContext) error {
	if m.start == nil {
		return nil
	}
	return m.start(ctx)
}
func (m *mockModule) Stop(ctx contracts.AppContext) error {
	if m.stop == nil {
		return nil
	}
	return m.stop(ctx)
}

func TestRegistry_DuplicateModule(t *testing.T) {
	reg := NewRegistry()

	if err := reg.Register(&mockModule{name: "db"}); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	err := reg.Register(&mockModule{name: "db"})
	if !errors.Is(err, ErrDuplicateModule) {
		t.Fatalf("expected ErrDuplicateModule, got %v", err)
	}
	if len(reg.All()) != 1 {
		t.Errorf("expected 1 module, got %d", len(reg.All()))
	}
}

func TestRegistry_ShutdownReverseOrderWithErrors(t *testing.T) {
	reg := NewRegistry()
	var order []string

	for _, name := range []string{"first", "second", "third"} {
		name := name
		_ = reg.Register(&mockModule{
			name: name,
			stop: func(ctx contracts.AppContext) error {
				order = append(order, name)
				if name == "second" {
					return errors.New("stop failed")
				}
				return nil
			},
		})
	}

	ctx := newAppContext(AppInfo{}, container.New(), reg)
	err := reg.Shutdown(ctx)
	if !errors.Is(err, ErrModuleStop) {
		t.Errorf("expected ErrModuleStop, got %v", err)
	}

	want := []string{"third", "second", "first"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected stop order %v, got %v", want, order)
		}
	}
}
