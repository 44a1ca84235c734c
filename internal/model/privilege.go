package model

// Privilege represents a permission that can be assigned to users
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "product:create"
	Name string `gorm:"type:varchar(100)" json:"name"`                     // e.g., "Create Product"
}

// Default privileges for the system
var DefaultPrivileges = []Privilege{
	// Product management
	{Code: "product:view", Name: "View Products"},
	{Code: "product:create", Name: "Create Product"},
	{Code: "product:update", Name: "Update Product"},
	{Code: "product:delete", Name: "Delete Product"},
	{Code: "product:import", Name: "Import Products"},
	// Inventory
	{Code: "inventory:view", Name: "View Stock Logs"},
	{Code: "inventory:adjust", Name: "Adjust Stock"},
	// Point of sale
	{Code: "sale:view", Name: "View Sales"},
	{Code: "sale:create", Name: "Create Sale"},
	// Purchasing
	{Code: "purchase:view", Name: "View Purchase Orders"},
	{Code: "purchase:create", Name: "Create Purchase Order"},
	{Code: "purchase:receive", Name: "Receive Purchase Order"},
	// Returns
	{Code: "return:view", Name: "View Returns"},
	{Code: "return:create", Name: "Create Return"},
	// Reference data
	{Code: "customer:view", Name: "View Customers"},
	{Code: "customer:manage", Name: "Manage Customers"},
	{Code: "supplier:view", Name: "View Suppliers"},
	{Code: "supplier:manage", Name: "Manage Suppliers"},
	{Code: "category:manage", Name: "Manage Categories"},
	{Code: "expense:view", Name: "View Expenses"},
	{Code: "expense:manage", Name: "Manage Expenses"},
	// Settings
	{Code: "settings:view", Name: "View Shop Settings"},
	{Code: "settings:update", Name: "Update Shop Settings"},
	// User management (ADMIN only)
	{Code: "user:view", Name: "View Users"},
	{Code: "user:create", Name: "Create User"},
	{Code: "user:update", Name: "Update User"},
	{Code: "user:delete", Name: "Delete User"},
	{Code: "user:update_privilege", Name: "Update User Privileges"},
	// Dashboard
	{Code: "dashboard:view", Name: "View Dashboard"},
}

// StaffPrivilegeCodes are the privileges granted to the STAFF role:
// enough to run the register and the stock room, nothing administrative.
var StaffPrivilegeCodes = []string{
	"product:view",
	"inventory:view",
	"inventory:adjust",
	"sale:view",
	"sale:create",
	"return:view",
	"return:create",
	"customer:view",
	"customer:manage",
	"dashboard:view",
}
