package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/JayRamoliya/merch-master-pro/internal/handler"
	"github.com/JayRamoliya/merch-master-pro/internal/middleware"
	"github.com/JayRamoliya/merch-master-pro/internal/model"
	"github.com/JayRamoliya/merch-master-pro/internal/repository"
	"github.com/JayRamoliya/merch-master-pro/internal/service"
	"github.com/JayRamoliya/merch-master-pro/internal/ws"
	"github.com/JayRamoliya/merch-master-pro/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.Category{},
		&model.Product{},
		&model.ProductVariant{},
		&model.StockLog{},
		&model.Customer{},
		&model.Sale{},
		&model.SaleItem{},
		&model.Supplier{},
		&model.PurchaseOrder{},
		&model.PurchaseOrderItem{},
		&model.Return{},
		&model.ReturnItem{},
		&model.Credit{},
		&model.Expense{},
		&model.ShopSettings{},
		&model.User{},
		&model.Privilege{},
		&model.Role{},
	)

	// 3. Seed default privileges and roles. There is no seeded admin
	// account: the first account to register becomes ADMIN.
	seedPrivilegesAndRoles(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	variantRepo := repository.NewVariantRepo(db)
	stockLogRepo := repository.NewStockLogRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	poRepo := repository.NewPurchaseOrderRepo(db)
	returnRepo := repository.NewReturnRepo(db)
	expenseRepo := repository.NewExpenseRepo(db)
	settingsRepo := repository.NewSettingsRepo(db)
	userRepo := repository.NewUserRepo(db)
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	// Ensure the settings row exists before the first checkout
	if _, err := settingsRepo.Get(); err != nil {
		log.Printf("Warning: failed to initialize shop settings: %v", err)
	}

	productService := service.NewProductService(productRepo, variantRepo, stockLogRepo, db, wsHub)
	invService := service.NewInventoryService(variantRepo, stockLogRepo, db, wsHub)
	checkoutService := service.NewCheckoutService(productRepo, variantRepo, saleRepo, stockLogRepo, settingsRepo, db, wsHub)
	purchaseService := service.NewPurchaseService(poRepo, supplierRepo, variantRepo, stockLogRepo, db, wsHub)
	returnService := service.NewReturnService(returnRepo, saleRepo, variantRepo, stockLogRepo, db, wsHub)
	dashService := service.NewDashboardService(productRepo, variantRepo, saleRepo, db)
	authService := service.NewAuthService(userRepo, roleRepo, db, wsHub)
	userService := service.NewUserService(userRepo, privilegeRepo, roleRepo)

	productHandler := handler.NewProductHandler(productService)
	variantHandler := handler.NewVariantHandler(variantRepo, productRepo)
	invHandler := handler.NewInventoryHandler(invService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	purchaseHandler := handler.NewPurchaseHandler(purchaseService)
	returnHandler := handler.NewReturnHandler(returnService)
	customerHandler := handler.NewCustomerHandler(customerRepo)
	supplierHandler := handler.NewSupplierHandler(supplierRepo)
	categoryHandler := handler.NewCategoryHandler(categoryRepo)
	expenseHandler := handler.NewExpenseHandler(expenseRepo)
	settingsHandler := handler.NewSettingsHandler(settingsRepo)
	dashHandler := handler.NewDashboardHandler(dashService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleRepo, privilegeRepo)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Merch Master Pro v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)
	auth.Post("/heartbeat", middleware.RequireAuth(userRepo), authHandler.Heartbeat)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Dashboard
	protected.Get("/dashboard/stats", middleware.RequirePrivilege("dashboard:view"), dashHandler.GetStats)
	protected.Get("/dashboard/low-stock", middleware.RequirePrivilege("dashboard:view"), dashHandler.GetLowStock)
	protected.Get("/dashboard/sales-summary", middleware.RequirePrivilege("dashboard:view"), dashHandler.GetSalesSummary)

	// Products
	protected.Get("/products", middleware.RequirePrivilege("product:view"), productHandler.GetAllProducts)
	protected.Get("/products/barcode/:barcode", middleware.RequirePrivilege("product:view"), productHandler.GetProductByBarcode)
	protected.Get("/products/:id", middleware.RequirePrivilege("product:view"), productHandler.GetProduct)
	protected.Post("/products", middleware.RequirePrivilege("product:create"), productHandler.CreateProduct)
	protected.Put("/products/:id", middleware.RequirePrivilege("product:update"), productHandler.UpdateProduct)
	protected.Delete("/products/:id", middleware.RequirePrivilege("product:delete"), productHandler.DeleteProduct)
	protected.Post("/products/bulk-price", middleware.RequirePrivilege("product:update"), productHandler.BulkUpdatePrices)
	protected.Post("/products/import", middleware.RequirePrivilege("product:import"), productHandler.ImportProducts)

	// Variants
	protected.Get("/products/:productId/variants", middleware.RequirePrivilege("product:view"), variantHandler.GetVariantsByProduct)
	protected.Post("/products/:productId/variants", middleware.RequirePrivilege("product:update"), variantHandler.CreateVariant)
	protected.Put("/variants/:id", middleware.RequirePrivilege("product:update"), variantHandler.UpdateVariant)
	protected.Delete("/variants/:id", middleware.RequirePrivilege("product:update"), variantHandler.DeleteVariant)

	// Inventory
	protected.Post("/inventory/adjust", middleware.RequirePrivilege("inventory:adjust"), invHandler.AdjustStock)
	protected.Get("/inventory/logs", middleware.RequirePrivilege("inventory:view"), invHandler.GetStockLogs)
	protected.Get("/inventory/logs/product/:productId", middleware.RequirePrivilege("inventory:view"), invHandler.GetStockLogsByProduct)
	protected.Get("/inventory/logs/variant/:variantId", middleware.RequirePrivilege("inventory:view"), invHandler.GetStockLogsByVariant)
	protected.Get("/inventory/low-stock", middleware.RequireAnyPrivilege("inventory:view", "dashboard:view"), invHandler.GetLowStock)

	// Checkout & Sales
	protected.Post("/checkout/preview", middleware.RequirePrivilege("sale:create"), checkoutHandler.PreviewCart)
	protected.Post("/checkout", middleware.RequirePrivilege("sale:create"), checkoutHandler.Checkout)
	protected.Get("/sales", middleware.RequirePrivilege("sale:view"), checkoutHandler.GetAllSales)
	protected.Get("/sales/:id", middleware.RequirePrivilege("sale:view"), checkoutHandler.GetSale)

	// Purchase Orders
	protected.Get("/purchase-orders", middleware.RequirePrivilege("purchase:view"), purchaseHandler.GetAllPurchaseOrders)
	protected.Get("/purchase-orders/:id", middleware.RequirePrivilege("purchase:view"), purchaseHandler.GetPurchaseOrder)
	protected.Post("/purchase-orders", middleware.RequirePrivilege("purchase:create"), purchaseHandler.CreatePurchaseOrder)
	protected.Post("/purchase-orders/:id/receive", middleware.RequirePrivilege("purchase:receive"), purchaseHandler.ReceivePurchaseOrder)
	protected.Post("/purchase-orders/:id/cancel", middleware.RequirePrivilege("purchase:create"), purchaseHandler.CancelPurchaseOrder)

	// Returns & Credits
	protected.Get("/returns", middleware.RequirePrivilege("return:view"), returnHandler.GetAllReturns)
	protected.Get("/returns/:id", middleware.RequirePrivilege("return:view"), returnHandler.GetReturn)
	protected.Post("/returns", middleware.RequirePrivilege("return:create"), returnHandler.CreateReturn)
	protected.Get("/customers/:customerId/credits", middleware.RequirePrivilege("return:view"), returnHandler.GetCustomerCredits)

	// Customers
	protected.Get("/customers", middleware.RequirePrivilege("customer:view"), customerHandler.GetAllCustomers)
	protected.Get("/customers/:id", middleware.RequirePrivilege("customer:view"), customerHandler.GetCustomer)
	protected.Post("/customers", middleware.RequirePrivilege("customer:manage"), customerHandler.CreateCustomer)
	protected.Put("/customers/:id", middleware.RequirePrivilege("customer:manage"), customerHandler.UpdateCustomer)
	protected.Delete("/customers/:id", middleware.RequirePrivilege("customer:manage"), customerHandler.DeleteCustomer)

	// Suppliers
	protected.Get("/suppliers", middleware.RequirePrivilege("supplier:view"), supplierHandler.GetAllSuppliers)
	protected.Get("/suppliers/:id", middleware.RequirePrivilege("supplier:view"), supplierHandler.GetSupplier)
	protected.Post("/suppliers", middleware.RequirePrivilege("supplier:manage"), supplierHandler.CreateSupplier)
	protected.Put("/suppliers/:id", middleware.RequirePrivilege("supplier:manage"), supplierHandler.UpdateSupplier)
	protected.Delete("/suppliers/:id", middleware.RequirePrivilege("supplier:manage"), supplierHandler.DeleteSupplier)

	// Categories
	protected.Get("/categories", middleware.RequirePrivilege("product:view"), categoryHandler.GetAllCategories)
	protected.Post("/categories", middleware.RequirePrivilege("category:manage"), categoryHandler.CreateCategory)
	protected.Put("/categories/:id", middleware.RequirePrivilege("category:manage"), categoryHandler.UpdateCategory)
	protected.Delete("/categories/:id", middleware.RequirePrivilege("category:manage"), categoryHandler.DeleteCategory)

	// Expenses
	protected.Get("/expenses", middleware.RequirePrivilege("expense:view"), expenseHandler.GetAllExpenses)
	protected.Post("/expenses", middleware.RequirePrivilege("expense:manage"), expenseHandler.CreateExpense)
	protected.Put("/expenses/:id", middleware.RequirePrivilege("expense:manage"), expenseHandler.UpdateExpense)
	protected.Delete("/expenses/:id", middleware.RequirePrivilege("expense:manage"), expenseHandler.DeleteExpense)

	// Settings
	protected.Get("/settings", middleware.RequirePrivilege("settings:view"), settingsHandler.GetSettings)
	protected.Put("/settings", middleware.RequirePrivilege("settings:update"), settingsHandler.UpdateSettings)

	// User Management
	protected.Get("/users", middleware.RequirePrivilege("user:view"), userHandler.GetAllUsers)
	protected.Get("/users/:id", middleware.RequirePrivilege("user:view"), userHandler.GetUser)
	protected.Post("/users", middleware.RequirePrivilege("user:create"), userHandler.CreateUser)
	protected.Put("/users/:id", middleware.RequirePrivilege("user:update"), userHandler.UpdateUser)
	protected.Delete("/users/:id", middleware.RequirePrivilege("user:delete"), userHandler.DeleteUser)
	protected.Put("/users/:id/privileges", middleware.RequirePrivilege("user:update_privilege"), userHandler.UpdateUserPrivileges)

	// Roles & Privileges
	protected.Get("/roles", roleHandler.GetAllRoles)
	protected.Get("/privileges", roleHandler.GetAllPrivileges)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedPrivilegesAndRoles creates the default privileges and roles, then
// assigns the privilege sets: ADMIN gets everything, STAFF gets the
// day-to-day retail subset.
func seedPrivilegesAndRoles(db *gorm.DB) {
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	// 1. Seed privileges first
	if err := privilegeRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed privileges: %v", err)
	}

	// 2. Seed roles
	if err := roleRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed roles: %v", err)
	}

	// 3. Assign privileges to roles
	allPrivileges, _ := privilegeRepo.FindAll()

	adminRole, err := roleRepo.FindByCode(model.RoleAdmin)
	if err == nil && len(adminRole.Privileges) == 0 {
		db.Model(&adminRole).Association("Privileges").Replace(allPrivileges)
		log.Println("ADMIN role assigned all privileges")
	}

	staffRole, err := roleRepo.FindByCode(model.RoleStaff)
	if err == nil && len(staffRole.Privileges) == 0 {
		staffPrivileges, err := privilegeRepo.FindByCodes(model.StaffPrivilegeCodes)
		if err != nil {
			log.Printf("Warning: Failed to resolve staff privileges: %v", err)
			return
		}
		db.Model(&staffRole).Association("Privileges").Replace(staffPrivileges)
		log.Println("STAFF role assigned retail privileges")
	}
}
