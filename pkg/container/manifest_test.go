package container_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/shuldan/kernel/pkg/config"
	"github.com/shuldan/kernel/pkg/container"
)

type Notifier interface {
	Notify(msg string) string
}

type mailNotifier struct {
	From string `default:"ops@example.com"`
}

func (m *mailNotifier) Notify(msg string) string { return m.From + ": " + msg }

func TestApplyManifest(t *testing.T) {
	c := container.New(container.WithTypes(
		reflect.TypeOf((*Notifier)(nil)).Elem(),
		reflect.TypeOf(&mailNotifier{}),
	))
	notifier := container.KeyOf[Notifier]()
	mail := container.KeyOf[*mailNotifier]()

	cfg := config.NewMapConfig(map[string]any{
		"container": map[string]any{
			"bindings": map[string]any{notifier: mail},
			"shared":   map[string]any{mail: nil},
			"aliases":  map[string]any{"notifier": notifier, "mailer": mail},
		},
	})

	if err := container.ApplyManifest(c, cfg); err != nil {
		t.Fatalf("ApplyManifest failed: %v", err)
	}

	n, err := c.Resolve("notifier")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got := n.(Notifier).Notify("up"); got != "ops@example.com: up" {
		t.Errorf("unexpected notification %q", got)
	}

	a, _ := c.Resolve("mailer")
	b, _ := c.Resolve(mail)
	if a != b {
		t.Error("shared manifest entry must be cached")
	}
	if x, _ := c.Resolve("notifier"); x == n {
		t.Error("non-shared manifest entry must build fresh instances")
	}
}

func TestApplyManifest_JoinsErrors(t *testing.T) {
	c := container.New()
	cfg := config.NewMapConfig(map[string]any{
		"container": map[string]any{
			"aliases": map[string]any{"a": "b", "b": "a", "self": "self"},
		},
	})

	err := container.ApplyManifest(c, cfg)
	if !errors.Is(err, container.ErrAliasCycle) {
		t.Fatalf("expected ErrAliasCycle, got %v", err)
	}
}

func TestApplyManifest_NoSection(t *testing.T) {
	c := container.New()
	if err := container.ApplyManifest(c, config.NewMapConfig(map[string]any{"app": "x"})); err != nil {
		t.Errorf("expected no error without a manifest, got %v", err)
	}
}
