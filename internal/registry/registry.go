// Package registry answers "does this image reference already exist?".
//
// The remote implementation issues a manifest HEAD request. Any failure,
// network or otherwise, is reported as "absent": the planner would rather
// schedule a redundant build than silently skip a needed one.
package registry

import (
	"context"

	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/name"
	"github.com/google/go-containerregistry/pkg/v1/remote"

	"github.com/rockplan/rockplan/internal/logs"
)

//go:generate mockgen -source=registry.go -destination=mocks/registry.go -package=mocks

// Checker reports whether an image reference resolves to an existing
// manifest. Implementations must be safe for concurrent use.
type Checker interface {
	Exists(ctx context.Context, imageRef string) bool
}

// Remote checks image existence against the registry named in the reference,
// authenticating with the ambient Docker keychain (the same credentials a
// CI runner gets from a registry login step).
type Remote struct {
	opts []remote.Option
}

// NewRemote builds a Remote checker. Extra options are appended to the
// defaults, which is how tests point it at a local registry.
func NewRemote(opts ...remote.Option) *Remote {
	return &Remote{
		opts: append([]remote.Option{remote.WithAuthFromKeychain(authn.DefaultKeychain)}, opts...),
	}
}

func (r *Remote) Exists(ctx context.Context, imageRef string) bool {
	ref, err := name.ParseReference(imageRef)
	if err != nil {
		logs.Warnf("registry: unparseable reference %q: %v", imageRef, err)
		return false
	}

	opts := append([]remote.Option{remote.WithContext(ctx)}, r.opts...)
	if _, err := remote.Head(ref, opts...); err != nil {
		logs.Debugf("registry: %s not found: %v", imageRef, err)
		return false
	}
	return true
}
