package models

// OrderStatus represents the states of an order's lifecycle.
// Transitions are strictly forward-only: Pending → Claimed → Completed.
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusClaimed   OrderStatus = "Claimed"
	StatusCompleted OrderStatus = "Completed"
)

// ValidStatuses gates the driver order listing's status filter.
var ValidStatuses = map[OrderStatus]bool{
	StatusPending:   true,
	StatusClaimed:   true,
	StatusCompleted: true,
}

type Order struct {
	OrderID     uint        `json:"OrderID" gorm:"primaryKey;column:OrderID"`
	TotalPrice  float64     `json:"TotalPrice" gorm:"column:TotalPrice"`
	ETA         string      `json:"ETA" gorm:"column:ETA"` // HH:MM:SS
	CustomerUID uint        `json:"CustomerUID" gorm:"column:CustomerUID;index;not null"`
	KitchenID   uint        `json:"KitchenID" gorm:"column:KitchenID;not null"`
	DriverUID   *uint       `json:"DriverUID" gorm:"column:DriverUID"` // nil until claimed
	Status      OrderStatus `json:"Status" gorm:"column:Status;not null;default:'Pending'"`
}

func (Order) TableName() string { return "ORDERS" }

type OrderContains struct {
	ID        uint `json:"ID" gorm:"primaryKey;column:ID"`
	OrderID   uint `json:"OrderID" gorm:"column:OrderID;index;not null"`
	KitchenID uint `json:"KitchenID" gorm:"column:KitchenID;not null"`
	ItemID    uint `json:"ItemID" gorm:"column:ItemID;not null"`
	Quantity  int  `json:"Quantity" gorm:"column:Quantity;not null;default:1"`
}

func (OrderContains) TableName() string { return "ORDERCONTAINS" }
