package container

import "github.com/shuldan/kernel/pkg/errors"

var newContainerCode = errors.WithPrefix("CONTAINER")

var (
	ErrInvalidFactory        = newContainerCode().New("invalid factory for {{.abstract}}: {{.reason}}")
	ErrUnresolvedDependency  = newContainerCode().New("unresolvable dependency {{.abstract}}: {{.reason}}")
	ErrMissingNamedParameter = newContainerCode().New("missing value for parameter {{.parameter}} of {{.owner}}")
	ErrAliasCycle            = newContainerCode().New("alias cycle detected: {{.path}}")
	ErrCircularResolution    = newContainerCode().New("circular resolution of {{.abstract}}: {{.path}}")
	ErrArgumentMismatch      = newContainerCode().New("cannot use value of type {{.value}} as {{.type}} for parameter {{.parameter}} of {{.owner}}")
	ErrFactoryFailed         = newContainerCode().New("factory for {{.abstract}} failed")
	ErrNotCallable           = newContainerCode().New("value of type {{.type}} is not callable")
	ErrMethodNotFound        = newContainerCode().New("method {{.method}} not found on {{.abstract}}")
)
