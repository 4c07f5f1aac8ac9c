package security

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"fsgate/internal/domain"
)

// Resolver converts caller-supplied virtual paths into validated real paths
// and back. It fails closed: any path that cannot be proven to live inside
// an allowed directory is rejected.
type Resolver struct {
	reg *Registry
}

// NewResolver creates a resolver over the given registry.
func NewResolver(reg *Registry) *Resolver {
	return &Resolver{reg: reg}
}

// Resolve validates a virtual path and returns the real path to operate on.
//
// The virtual path must start with a known alias on a path-segment boundary;
// bare relative paths and unknown prefixes are rejected outright. Symlinks
// are resolved before the boundary check, so a symlink inside an allowed
// directory that points outside it is rejected. For targets that do not
// exist yet, the parent directory is canonicalized and checked instead and
// the normalized (non-canonicalized) candidate is returned with
// Exists=false.
func (r *Resolver) Resolve(virtual string) (domain.ResolvedTarget, error) {
	const op = "resolve"

	candidate, ok := r.normalize(virtual)
	if !ok {
		return domain.ResolvedTarget{}, domain.NewDomainError(op, domain.ErrInvalidVirtualPath, virtual)
	}

	canonical, err := filepath.EvalSymlinks(candidate)
	if err == nil {
		if !r.reg.Contains(canonical) {
			return domain.ResolvedTarget{}, domain.NewDomainError(op, domain.ErrAccessDenied, virtual)
		}
		return domain.ResolvedTarget{RealPath: canonical, Exists: true}, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		// Symlink loops, permission failures and the like: fail closed.
		return domain.ResolvedTarget{}, domain.NewDomainError(op, domain.ErrAccessDenied, virtual)
	}

	// Target does not exist: the "write new file" case. Canonicalize the
	// parent and enforce the boundary there. The leaf itself cannot be
	// canonicalized, so the normalized candidate is returned; a symlink
	// planted between validation and use is an accepted TOCTOU risk.
	parent := filepath.Dir(candidate)
	canonicalParent, err := filepath.EvalSymlinks(parent)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.ResolvedTarget{}, domain.NewDomainError(op, domain.ErrParentNotFound, virtual)
		}
		return domain.ResolvedTarget{}, domain.NewDomainError(op, domain.ErrAccessDenied, virtual)
	}
	if !r.reg.Contains(canonicalParent) {
		return domain.ResolvedTarget{}, domain.NewDomainError(op, domain.ErrAccessDenied, virtual)
	}

	return domain.ResolvedTarget{RealPath: candidate, Exists: false}, nil
}

// ResolveForCreate validates a virtual path for directory creation, where
// any number of trailing segments may not exist yet. The nearest existing
// ancestor is canonicalized and the boundary enforced there, so a whole
// missing chain can be created in one call. The normalized candidate is
// returned for the backend to create.
func (r *Resolver) ResolveForCreate(virtual string) (domain.ResolvedTarget, error) {
	const op = "resolve"

	candidate, ok := r.normalize(virtual)
	if !ok {
		return domain.ResolvedTarget{}, domain.NewDomainError(op, domain.ErrInvalidVirtualPath, virtual)
	}

	canonical, err := filepath.EvalSymlinks(candidate)
	if err == nil {
		if !r.reg.Contains(canonical) {
			return domain.ResolvedTarget{}, domain.NewDomainError(op, domain.ErrAccessDenied, virtual)
		}
		return domain.ResolvedTarget{RealPath: canonical, Exists: true}, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return domain.ResolvedTarget{}, domain.NewDomainError(op, domain.ErrAccessDenied, virtual)
	}

	// Walk up until an ancestor exists. The allowed directory itself always
	// exists, so for in-bounds paths the walk stops at or below it; a path
	// that normalized outside the sandbox ends at an ancestor that fails the
	// boundary check.
	ancestor := filepath.Dir(candidate)
	for {
		canonicalAncestor, aerr := filepath.EvalSymlinks(ancestor)
		if aerr == nil {
			if !r.reg.Contains(canonicalAncestor) {
				return domain.ResolvedTarget{}, domain.NewDomainError(op, domain.ErrAccessDenied, virtual)
			}
			return domain.ResolvedTarget{RealPath: candidate, Exists: false}, nil
		}
		if !errors.Is(aerr, fs.ErrNotExist) {
			return domain.ResolvedTarget{}, domain.NewDomainError(op, domain.ErrAccessDenied, virtual)
		}

		parent := filepath.Dir(ancestor)
		if parent == ancestor {
			return domain.ResolvedTarget{}, domain.NewDomainError(op, domain.ErrAccessDenied, virtual)
		}
		ancestor = parent
	}
}

// normalize maps a virtual path onto its real candidate path. Join cleans
// the result, collapsing separators and resolving "."/".." without touching
// the filesystem. A ".." that climbs out of the allowed directory is caught
// by the callers' boundary checks.
func (r *Resolver) normalize(virtual string) (string, bool) {
	alias, rel, ok := r.matchAlias(virtual)
	if !ok {
		return "", false
	}
	realDir, _ := r.reg.RealDirFor(alias)
	return filepath.Join(realDir, filepath.FromSlash(rel)), true
}

// Aliases returns the configured virtual aliases in order.
func (r *Resolver) Aliases() []string {
	return r.reg.Aliases()
}

// matchAlias finds the alias prefixing the virtual path on a segment
// boundary and returns the remainder.
func (r *Resolver) matchAlias(virtual string) (alias, rel string, ok bool) {
	for _, a := range r.reg.Aliases() {
		if virtual == a {
			return a, "", true
		}
		if strings.HasPrefix(virtual, a+"/") {
			return a, virtual[len(a)+1:], true
		}
	}
	return "", "", false
}

// ToVirtual converts a real path back to its virtual form for rendering
// output. Real paths never cross the caller boundary; any path that does
// not fall under an allowed directory is rejected rather than echoed back.
func (r *Resolver) ToVirtual(real string) (string, error) {
	for _, dir := range r.reg.Dirs() {
		alias, _ := r.reg.AliasFor(dir)
		if real == dir {
			return alias, nil
		}
		if strings.HasPrefix(real, dir+string(filepath.Separator)) {
			rel := real[len(dir)+1:]
			return alias + "/" + filepath.ToSlash(rel), nil
		}
	}
	return "", domain.NewDomainError("to_virtual", domain.ErrAccessDenied, "real path outside allowed directories")
}
