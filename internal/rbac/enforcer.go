package rbac

import (
	"sync"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=enforcer.go -destination=mock/enforcer_mock.go -package=mock
type Enforcer interface {
	Enforce(role, resource, action string) (bool, error)
}

type enforcer struct {
	inner  *casbin.Enforcer
	mu     sync.Mutex
	logger *zap.Logger
}

// NewEnforcer builds a file-backed enforcer. Policy lives in version control
// next to the model; roles are fixed, so there is no runtime policy store.
func NewEnforcer(modelPath, policyPath string, logger ...*zap.Logger) (Enforcer, error) {
	l := zap.L().Named("rbac.enforcer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.enforcer")
	}

	inner, err := casbin.NewEnforcer(modelPath, policyPath)
	if err != nil {
		return nil, err
	}
	return &enforcer{inner: inner, logger: l}, nil
}

func (e *enforcer) Enforce(role, resource, action string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	allowed, err := e.inner.Enforce(role, resource, action)
	if err != nil {
		e.logger.Error("enforce failed",
			zap.String("role", role),
			zap.String("resource", resource),
			zap.String("action", action),
			zap.Error(err),
		)
		return false, err
	}

	e.logger.Debug("enforce result",
		zap.String("role", role),
		zap.String("resource", resource),
		zap.String("action", action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}
