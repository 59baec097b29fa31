package models

// Kitchen approval lifecycle. A kitchen is created as pending and only
// an admin approval moves it to approved (stamping VerifiedBy).
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
)

type HomeKitchen struct {
	KitchenID      uint     `json:"KitchenID" gorm:"primaryKey;column:KitchenID"`
	OwnerUID       uint     `json:"OwnerUID" gorm:"column:OwnerUID;index;not null"`
	Name           string   `json:"Name" gorm:"column:Name;not null"`
	Address        string   `json:"Address" gorm:"column:Address;not null"`
	AverageRating  *float64 `json:"AverageRating" gorm:"column:AverageRating"`
	VerifiedBy     *uint    `json:"VerifiedBy" gorm:"column:VerifiedBy"`
	ApprovalStatus string   `json:"ApprovalStatus" gorm:"column:ApprovalStatus"`
	Logo           string   `json:"Logo" gorm:"column:Logo"`
}

func (HomeKitchen) TableName() string { return "HOMEKITCHENS" }

type MenuItem struct {
	ItemID      uint    `json:"ItemID" gorm:"primaryKey;column:ItemID"`
	KitchenID   uint    `json:"KitchenID" gorm:"column:KitchenID;index;not null"`
	Name        string  `json:"Name" gorm:"column:Name;not null"`
	Description string  `json:"Description" gorm:"column:Description"`
	Price       float64 `json:"Price" gorm:"column:Price;not null"`
	Image       string  `json:"Image" gorm:"column:Image"`
}

func (MenuItem) TableName() string { return "MENUITEMS" }

type MealPlan struct {
	MealPlanID uint    `json:"MealPlanID" gorm:"primaryKey;column:MealPlanID"`
	KitchenID  uint    `json:"KitchenID" gorm:"column:KitchenID;index;not null"`
	Name       string  `json:"Name" gorm:"column:Name;not null"`
	TotalPrice float64 `json:"TotalPrice" gorm:"column:TotalPrice"`
	Image      string  `json:"Image" gorm:"column:Image"`
}

func (MealPlan) TableName() string { return "MEALPLANS" }

// MealPlanItem links a meal plan to a menu item. Every ItemID must
// belong to the same KitchenID as the plan; this is validated before
// any row is inserted.
type MealPlanItem struct {
	ID         uint `json:"ID" gorm:"primaryKey;column:ID"`
	KitchenID  uint `json:"KitchenID" gorm:"column:KitchenID;index;not null"`
	MealPlanID uint `json:"MealPlanID" gorm:"column:MealPlanID;index;not null"`
	ItemID     uint `json:"ItemID" gorm:"column:ItemID;not null"`
}

func (MealPlanItem) TableName() string { return "MEALPLANITEMS" }
