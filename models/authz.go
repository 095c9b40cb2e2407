package models

// Rule declares who may act on a resource.
type Rule int

const (
	// RuleAdminOnly allows admins regardless of ownership.
	RuleAdminOnly Rule = iota
	// RuleAdminOrOwner allows admins and the record's owner.
	RuleAdminOrOwner
)

// Authorize is the single authorization predicate: it reports whether the
// user may act on a resource owned by ownerID under the given rule.
func Authorize(user *User, rule Rule, ownerID int) bool {
	if user == nil {
		return false
	}
	if user.IsAdmin() {
		return true
	}
	return rule == RuleAdminOrOwner && user.ID == ownerID
}
