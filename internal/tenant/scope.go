package tenant

import (
	"errors"
	"reflect"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"

	"github.com/shubhkakadia/cabipro-sub001/internal/models"
)

// ErrCrossTenantConflict is returned when an upsert's conflict target is a
// row owned by another tenant and the dialect cannot filter the update
// branch itself.
var ErrCrossTenantConflict = errors.New("conflicting row belongs to another tenant")

// Plugin is the query interceptor: a gorm plugin whose callbacks rewrite
// every operation on a TenantOwned model before it executes. Reads get the
// tenant merged into their conditions, creates get the tenant stamped onto
// the payload, updates additionally have the org column stripped from the
// assignments so a tenant can never move a record to another tenant.
//
// When the statement context carries no tenant, every operation passes
// through untouched. That is deliberate: admin and system code paths run
// across all tenants, at the cost of needing review for correct scope.
type Plugin struct{}

func (Plugin) Name() string { return "tenant_scope" }

func (p Plugin) Initialize(db *gorm.DB) error {
	if err := db.Callback().Query().Before("gorm:query").Register("tenant_scope:query", scopeConditions); err != nil {
		return err
	}
	if err := db.Callback().Row().Before("gorm:row").Register("tenant_scope:row", scopeConditions); err != nil {
		return err
	}
	if err := db.Callback().Create().Before("gorm:create").Register("tenant_scope:create", scopeCreate); err != nil {
		return err
	}
	if err := db.Callback().Update().Before("gorm:update").Register("tenant_scope:update", scopeUpdate); err != nil {
		return err
	}
	return db.Callback().Delete().Before("gorm:delete").Register("tenant_scope:delete", scopeConditions)
}

var tenantOwnedType = reflect.TypeOf((*models.TenantOwned)(nil)).Elem()

// scopeConditions merges `org_id = ?` into the statement's conditions.
// Covers Find/First/Take/Count/Pluck/Row as well as the filter side of
// Update and Delete.
func scopeConditions(db *gorm.DB) {
	orgID, ok := OrganizationID(db.Statement.Context)
	if !ok || !scopedStatement(db) {
		return
	}
	db.Statement.AddClause(clause.Where{Exprs: []clause.Expression{tenantEq(orgID)}})
}

// scopeCreate stamps the tenant onto create payloads that do not carry one
// and applies the tenant rules to the update branch of upserts.
func scopeCreate(db *gorm.DB) {
	orgID, ok := OrganizationID(db.Statement.Context)
	if !ok || !scopedStatement(db) {
		return
	}
	stampOrgID(db.Statement.ReflectValue, orgID)
	scopeConflictClause(db, orgID)
}

// scopeUpdate filters the update by tenant and guarantees the assignments
// cannot change the owning organization.
func scopeUpdate(db *gorm.DB) {
	orgID, ok := OrganizationID(db.Statement.Context)
	if !ok || !scopedStatement(db) {
		return
	}

	if dest, ok := db.Statement.Dest.(map[string]interface{}); ok {
		delete(dest, models.OrgIDColumn)
		delete(dest, "OrgID")
	}
	// Omit covers struct destinations too; for maps it is a second line of
	// defense behind the key deletion above.
	db.Statement.Omits = append(db.Statement.Omits, models.OrgIDColumn)

	db.Statement.AddClause(clause.Where{Exprs: []clause.Expression{tenantEq(orgID)}})
}

func tenantEq(orgID int64) clause.Expression {
	return clause.Eq{
		Column: clause.Column{Table: clause.CurrentTable, Name: models.OrgIDColumn},
		Value:  orgID,
	}
}

// scopedStatement reports whether the statement targets a TenantOwned
// model. The allow-list is the interface itself: models opt in at compile
// time, so genuinely global tables are never touched.
func scopedStatement(db *gorm.DB) bool {
	if db.Statement.Schema != nil {
		return implementsTenantOwned(db.Statement.Schema.ModelType)
	}
	if db.Statement.Model != nil {
		return implementsTenantOwned(reflect.TypeOf(db.Statement.Model))
	}
	if db.Statement.Dest != nil {
		return implementsTenantOwned(reflect.TypeOf(db.Statement.Dest))
	}
	return false
}

func implementsTenantOwned(t reflect.Type) bool {
	for t != nil && (t.Kind() == reflect.Ptr || t.Kind() == reflect.Slice || t.Kind() == reflect.Array) {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return false
	}
	return t.Implements(tenantOwnedType) || reflect.PtrTo(t).Implements(tenantOwnedType)
}

// stampOrgID writes orgID into every element of a create payload whose
// org field is unset. Handles single structs, batch slices and map
// destinations.
func stampOrgID(rv reflect.Value, orgID int64) {
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			stampOrgID(reflect.Indirect(rv.Index(i)), orgID)
		}
	case reflect.Ptr:
		stampOrgID(rv.Elem(), orgID)
	case reflect.Struct:
		f := rv.FieldByName("OrgID")
		if f.IsValid() && f.CanSet() && f.Kind() == reflect.Int64 && f.Int() == 0 {
			f.SetInt(orgID)
		}
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			key := reflect.ValueOf(models.OrgIDColumn)
			if !rv.MapIndex(key).IsValid() {
				rv.SetMapIndex(key, reflect.ValueOf(orgID))
			}
		}
	}
}

// scopeConflictClause applies the tenant rules to the update branch of an
// upsert. UpdateAll is expanded here, before gorm materializes the
// assignment list inside gorm:create, so the org column can be removed
// from it; the remaining assignments then get the tenant filter, so a
// conflict with another tenant's row can neither move nor mutate it.
func scopeConflictClause(db *gorm.DB, orgID int64) {
	cl, ok := db.Statement.Clauses["ON CONFLICT"]
	if !ok {
		return
	}
	onConflict, ok := cl.Expression.(clause.OnConflict)
	if !ok {
		return
	}
	if !onConflict.UpdateAll && len(onConflict.DoUpdates) == 0 {
		return
	}

	if onConflict.UpdateAll {
		onConflict.UpdateAll = false
		onConflict.DoUpdates = clause.AssignmentColumns(updatableColumns(db.Statement.Schema))
	}

	kept := make([]clause.Assignment, 0, len(onConflict.DoUpdates))
	for _, assignment := range onConflict.DoUpdates {
		if assignment.Column.Name == models.OrgIDColumn {
			continue
		}
		kept = append(kept, assignment)
	}
	onConflict.DoUpdates = kept

	// The update branch may only fire against the current tenant's rows.
	// MySQL's ON DUPLICATE KEY UPDATE grammar has no WHERE, so there the
	// conflicting rows' tenancy is checked up front instead.
	if db.Dialector.Name() == "mysql" {
		rejectForeignConflicts(db, onConflict, orgID)
	} else {
		onConflict.Where.Exprs = append(onConflict.Where.Exprs, tenantEq(orgID))
	}

	cl.Expression = onConflict
	db.Statement.Clauses["ON CONFLICT"] = cl
}

// updatableColumns lists the columns UpdateAll may assign: everything but
// primary keys and the org column.
func updatableColumns(sch *schema.Schema) []string {
	if sch == nil {
		return nil
	}
	cols := make([]string, 0, len(sch.DBNames))
	for _, name := range sch.DBNames {
		if name == models.OrgIDColumn {
			continue
		}
		if f := sch.LookUpField(name); f != nil && f.PrimaryKey {
			continue
		}
		cols = append(cols, name)
	}
	return cols
}

// rejectForeignConflicts fails the statement when any row matching the
// upsert's conflict target belongs to another tenant.
func rejectForeignConflicts(db *gorm.DB, onConflict clause.OnConflict, orgID int64) {
	sch := db.Statement.Schema
	if sch == nil || len(onConflict.Columns) == 0 {
		return
	}

	var rowConds []clause.Expression
	forEachStruct(db.Statement.ReflectValue, func(rv reflect.Value) {
		exprs := make([]clause.Expression, 0, len(onConflict.Columns))
		for _, col := range onConflict.Columns {
			field := sch.LookUpField(col.Name)
			if field == nil {
				return
			}
			value, zero := field.ValueOf(db.Statement.Context, rv)
			if zero {
				// A zero conflict key cannot match an existing row.
				return
			}
			exprs = append(exprs, clause.Eq{Column: clause.Column{Name: col.Name}, Value: value})
		}
		rowConds = append(rowConds, clause.And(exprs...))
	})
	if len(rowConds) == 0 {
		return
	}

	var count int64
	err := db.Session(&gorm.Session{NewDB: true}).
		Table(db.Statement.Table).
		Where(clause.Or(rowConds...)).
		Where(models.OrgIDColumn+" <> ?", orgID).
		Count(&count).Error
	if err != nil {
		db.AddError(err)
		return
	}
	if count > 0 {
		db.AddError(ErrCrossTenantConflict)
	}
}

// forEachStruct walks a create payload (struct, pointer, or batch slice)
// and calls fn for every element struct.
func forEachStruct(rv reflect.Value, fn func(reflect.Value)) {
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			forEachStruct(reflect.Indirect(rv.Index(i)), fn)
		}
	case reflect.Ptr:
		forEachStruct(rv.Elem(), fn)
	case reflect.Struct:
		fn(rv)
	}
}
