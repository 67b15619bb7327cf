package enums

// AuditAction labels what a back-office actor or pipeline step did.
type AuditAction string

const (
	AuditActionCreate     AuditAction = "create"
	AuditActionUpdate     AuditAction = "update"
	AuditActionDelete     AuditAction = "delete"
	AuditActionSettlement AuditAction = "settlement"
	AuditActionReconcile  AuditAction = "reconcile"
)
