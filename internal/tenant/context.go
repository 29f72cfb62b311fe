// Package tenant confines every data-store operation of a request to the
// organization that request resolved, without call sites having to filter
// by org themselves.
package tenant

import "context"

type orgCtxKey struct{}

// WithOrganization returns a context carrying the resolved organization
// id. Propagation rides on context.Context, so two in-flight requests can
// never observe each other's tenant: each request owns its own context
// chain. Never store the id in a package variable.
func WithOrganization(ctx context.Context, orgID int64) context.Context {
	return context.WithValue(ctx, orgCtxKey{}, orgID)
}

// OrganizationID reads the tenant for the caller's execution path. The
// second return is false when no tenant is set, which downstream layers
// treat as global/admin mode.
func OrganizationID(ctx context.Context) (int64, bool) {
	orgID, ok := ctx.Value(orgCtxKey{}).(int64)
	return orgID, ok
}

// WithOrganizationContext runs fn under the tenant scope. The scope cannot
// leak past fn's return because the derived context never escapes.
func WithOrganizationContext(ctx context.Context, orgID int64, fn func(ctx context.Context) error) error {
	return fn(WithOrganization(ctx, orgID))
}
