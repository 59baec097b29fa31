package models

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleDriver   UserRole = "driver"
	RoleOwner    UserRole = "owner"
	RoleAdmin    UserRole = "admin"
	RoleNone     UserRole = ""
)

// RegisterableRoles are the roles a user may pick at registration.
// Admin accounts are seeded at startup, never self-registered.
var RegisterableRoles = map[UserRole]bool{
	RoleCustomer: true,
	RoleDriver:   true,
	RoleOwner:    true,
}

type User struct {
	UID            uint   `json:"UID" gorm:"primaryKey;column:UID"`
	FirstName      string `json:"FirstName" gorm:"column:FirstName;not null"`
	LastName       string `json:"LastName" gorm:"column:LastName;not null"`
	Email          string `json:"Email" gorm:"column:Email;uniqueIndex;not null"`
	PhoneNo        string `json:"PhoneNo" gorm:"column:PhoneNo"`
	HashedPassword string `json:"-" gorm:"column:HashedPassword;not null"`
}

func (User) TableName() string { return "USERS" }

// Role membership is modelled as three disjoint tables keyed by user id,
// plus a fourth table for seeded admins. A user's effective role is
// derived by probing these in precedence order (see authz.ResolveRole).

type Customer struct {
	CustomerUID uint `json:"CustomerUID" gorm:"primaryKey;column:CustomerUID"`
}

func (Customer) TableName() string { return "CUSTOMERS" }

type Driver struct {
	DriverUID      uint   `json:"DriverUID" gorm:"primaryKey;column:DriverUID"`
	ApprovalStatus string `json:"ApprovalStatus" gorm:"column:ApprovalStatus"`
	VerifiedBy     *uint  `json:"VerifiedBy" gorm:"column:VerifiedBy"`
}

func (Driver) TableName() string { return "DRIVERS" }

type KitchenOwner struct {
	OwnerUID uint `json:"OwnerUID" gorm:"primaryKey;column:OwnerUID"`
}

func (KitchenOwner) TableName() string { return "KITCHENOWNERS" }

type Admin struct {
	AdminUID uint `json:"AdminUID" gorm:"primaryKey;column:AdminUID"`
}

func (Admin) TableName() string { return "ADMINS" }

type CustomerAddress struct {
	ID          uint   `json:"ID" gorm:"primaryKey;column:ID"`
	CustomerUID uint   `json:"CustomerUID" gorm:"column:CustomerUID;index;not null"`
	Address     string `json:"Address" gorm:"column:Address;not null"`
}

func (CustomerAddress) TableName() string { return "CUSTOMERADDRESSES" }
