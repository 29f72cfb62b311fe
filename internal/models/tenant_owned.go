package models

// TenantOwned marks models whose rows belong to exactly one organization.
// The tenant scope plugin only rewrites operations on types implementing
// it; everything else (organizations, admins, sessions) stays global.
// Implementations use a value receiver so both T and *T satisfy the
// interface inside gorm statements.
type TenantOwned interface {
	OrgScoped()
}

// OrgIDColumn is the column every TenantOwned table stores its owning
// organization in.
const OrgIDColumn = "org_id"

var (
	_ TenantOwned = User{}
	_ TenantOwned = Client{}
	_ TenantOwned = Project{}
	_ TenantOwned = Lot{}
	_ TenantOwned = Supplier{}
	_ TenantOwned = PurchaseOrder{}
	_ TenantOwned = AuthAudit{}
)
