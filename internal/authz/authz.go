// Package authz decides whether a role may perform an operation. The
// permission table is the single place to change when a role or operation
// is added.
package authz

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type Operation string

const (
	OpCreateSweet   Operation = "createSweet"
	OpReadSweet     Operation = "readSweet"
	OpListSweets    Operation = "listSweets"
	OpSearchSweets  Operation = "searchSweets"
	OpUpdateSweet   Operation = "updateSweet"
	OpPurchaseSweet Operation = "purchaseSweet"
	OpDeleteSweet   Operation = "deleteSweet"
	OpRestockSweet  Operation = "restockSweet"
)

// Note: create and update are open to any authenticated role. That matches
// the observed product contract; only delete and restock are admin-gated.
var permissions = map[Operation]map[Role]bool{
	OpCreateSweet:   {RoleUser: true, RoleAdmin: true},
	OpReadSweet:     {RoleUser: true, RoleAdmin: true},
	OpListSweets:    {RoleUser: true, RoleAdmin: true},
	OpSearchSweets:  {RoleUser: true, RoleAdmin: true},
	OpUpdateSweet:   {RoleUser: true, RoleAdmin: true},
	OpPurchaseSweet: {RoleUser: true, RoleAdmin: true},
	OpDeleteSweet:   {RoleAdmin: true},
	OpRestockSweet:  {RoleAdmin: true},
}

// Allowed reports whether role may perform op. Unknown roles and unknown
// operations are denied.
func Allowed(role Role, op Operation) bool {
	return permissions[op][role]
}
