package main

import (
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/shuldan/kernel/pkg/bootstrap"
	"github.com/shuldan/kernel/pkg/container"
	"github.com/shuldan/kernel/pkg/contracts"
	kerrors "github.com/shuldan/kernel/pkg/errors"
	"github.com/shuldan/kernel/pkg/logger"
)

type Notifier interface {
	Notify(to, msg string) string
}

type ConsoleNotifier struct {
	Prefix string `default:"[notify]"`
}

func (n *ConsoleNotifier) Notify(to, msg string) string {
	return fmt.Sprintf("%s %s: %s", n.Prefix, to, msg)
}

type SignupService struct {
	Notifier Notifier
	DB       *sql.DB
	Log      contracts.Logger
	Greeting string `default:"welcome"`
}

func (s *SignupService) Signup(name string) (string, error) {
	var n int
	if err := s.DB.QueryRow("SELECT length(?)", name).Scan(&n); err != nil {
		return "", err
	}
	s.Log.Info("signed up", "user", name, "length", n)
	return s.Notifier.Notify(name, s.Greeting), nil
}

type demo struct{}

func (demo) Name() string { return "demo" }

func (demo) Register(c contracts.DIContainer) error {
	k := c.(*container.Container)
	if err := container.BindType[Notifier, *ConsoleNotifier](k, true); err != nil {
		return err
	}
	container.OnType[Notifier](k, container.After, func(n Notifier, _ *container.Container) {
		fmt.Printf("notifier ready: %T\n", n)
	})
	return nil
}

func (demo) Start(ctx contracts.AppContext) error {
	defer ctx.Stop()
	c := ctx.Container().(*container.Container)

	svc, err := container.Make[*SignupService](c, container.Named("greeting", "hello"))
	if err != nil {
		return err
	}
	out, err := svc.Signup("alice")
	if err != nil {
		return err
	}
	fmt.Println(out)

	shout := container.Func(func(n Notifier, to string, words ...string) string {
		return strings.ToUpper(n.Notify(to, strings.Join(words, " ")))
	}, "notifier", "to")
	res, err := c.Call(shout, "bob", "see", "you")
	if err != nil {
		return err
	}
	fmt.Println(res)

	fmt.Println("bindings:", strings.Join(c.Bindings(), ", "))
	return nil
}

func (demo) Stop(contracts.AppContext) error { return nil }

func main() {
	l, err := logger.NewLogger(logger.WithLevel(slog.LevelDebug), logger.WithColor())
	if err != nil {
		log.Fatal(err)
	}

	a, _, err := bootstrap.New("kernel-demo", "0.1.0", "KERNEL_", "config.yaml", "config.json").
		WithDefaults(map[string]any{
			"logger": map[string]any{"level": "info", "color": true},
			"database": map[string]any{
				"default": "main",
				"connections": map[string]any{
					"main": map[string]any{"driver": "sqlite3", "dsn": ":memory:"},
				},
			},
		}).
		WithContainerOptions(container.WithLogger(l)).
		WithLogger().
		WithDatabase().
		WithModule(demo{}).
		CreateApp()
	if err != nil {
		log.Fatal(err)
	}

	if err := a.Run(); err != nil {
		l.Error("application failed", "error", err, "codes", kerrors.Codes(err))
		os.Exit(1)
	}
}
