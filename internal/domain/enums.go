package domain

// PlanType is the kind of event a plan budgets for.
type PlanType string

const (
	PlanTypeWedding         PlanType = "wedding"
	PlanTypeParty           PlanType = "party"
	PlanTypeCorporateEvent  PlanType = "corporate_event"
	PlanTypeHouseRenovation PlanType = "house_renovation"
	PlanTypeTravel          PlanType = "travel"
	PlanTypeOther           PlanType = "other"
)

// PlanStatus is the lifecycle state of a plan.
type PlanStatus string

const (
	PlanStatusDraft     PlanStatus = "draft"
	PlanStatusActive    PlanStatus = "active"
	PlanStatusCompleted PlanStatus = "completed"
	PlanStatusArchived  PlanStatus = "archived"
)

// ItemStatus tracks a budget line from first quote to settlement.
// Transitions are not enforced: pending -> in_progress -> booked -> paid ->
// completed, with cancelled reachable from anywhere.
type ItemStatus string

const (
	ItemStatusPending    ItemStatus = "pending"
	ItemStatusInProgress ItemStatus = "in_progress"
	ItemStatusBooked     ItemStatus = "booked"
	ItemStatusPaid       ItemStatus = "paid"
	ItemStatusCompleted  ItemStatus = "completed"
	ItemStatusCancelled  ItemStatus = "cancelled"
)

// Terminal reports whether the item needs no further action.
func (s ItemStatus) Terminal() bool {
	return s == ItemStatusCompleted || s == ItemStatusCancelled
}

type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

type UserStatus string

const (
	UserStatusActive              UserStatus = "active"
	UserStatusInactive            UserStatus = "inactive"
	UserStatusSuspended           UserStatus = "suspended"
	UserStatusPendingVerification UserStatus = "pending_verification"
)

// CanLogin reports whether an account in this status may sign in.
func (s UserStatus) CanLogin() bool {
	return s == UserStatusActive || s == UserStatusPendingVerification
}

const (
	DefaultPlanType      = PlanTypeWedding
	DefaultCurrency      = "USD"
	DefaultCategoryColor = "#6366f1"
)

// Currencies lists the ISO 4217 codes a plan may be denominated in.
var Currencies = []string{"USD", "EUR", "GBP", "JPY", "AUD", "CAD", "CHF", "CNY", "INR", "VND"}
