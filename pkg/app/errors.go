package app

import "github.com/shuldan/kernel/pkg/errors"

var newAppCode = errors.WithPrefix("APP")
var newRegistryCode = errors.WithPrefix("APP_REGISTRY")

var (
	ErrModuleRegister = newAppCode().New("failed to register module {{.module}}")
	ErrModuleStart    = newAppCode().New("failed to start module {{.module}}")
	ErrAppRun         = newAppCode().New("application run failed with reason: {{.reason}}")
	ErrAppStop        = newAppCode().New("application stop failed with reason: {{.reason}}")

	ErrModuleStop      = newRegistryCode().New("failed to stop module {{.module}}")
	ErrDuplicateModule = newRegistryCode().New("module {{.module}} is already registered")
)
