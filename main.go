package main

import (
	"log"
	"os"

	"github.com/Uaq907/estateflow-sub000/routes"
	"github.com/Uaq907/estateflow-sub000/storage"
	"github.com/Uaq907/estateflow-sub000/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	godotenv.Load()
	storage.InitializeDB()
	storage.InitializeDocumentStore()
	storage.InitializeRedis()

	app := iris.New()
	app.Validator = validator.New()

	// CORS for the back-office dashboard
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	resetTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("EMAIL_TOKEN_SECRET")))
	resetTokenVerifier.WithDefaultBlocklist()
	resetTokenVerifierMiddleware := resetTokenVerifier.Verify(func() interface{} {
		return new(utils.ForgotPasswordToken)
	})

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	auth := app.Party("/api/auth")
	{
		auth.Post("/register", routes.Register)
		auth.Post("/login", routes.Login)
		auth.Post("/google", routes.GoogleLoginOrSignUp)
		auth.Post("/forgotpassword", routes.ForgotPassword)
		auth.Post("/resetpassword", resetTokenVerifierMiddleware, routes.ResetPassword)
	}

	api := app.Party("/api", accessTokenVerifierMiddleware)
	{
		api.Get("/user", routes.GetCurrentUser)
		api.Get("/dashboard", routes.GetDashboardStats)
		api.Post("/uploads", routes.UploadDocument)
		api.Get("/activity", utils.RequirePermission("activity:read"), routes.ListActivityLog)

		properties := api.Party("/properties")
		{
			properties.Get("", routes.ListProperties)
			properties.Post("", utils.RequirePermission("properties:create"), routes.CreateProperty)
			properties.Get("/{id:uint}", routes.GetProperty)
			properties.Put("/{id:uint}", utils.RequirePermission("properties:update"), routes.UpdateProperty)
			properties.Delete("/{id:uint}", utils.RequirePermission("properties:delete"), routes.DeleteProperty)
		}

		units := api.Party("/units")
		{
			units.Get("", routes.ListUnits)
			units.Post("", utils.RequirePermission("units:create"), routes.CreateUnit)
			units.Get("/{id:uint}", routes.GetUnit)
			units.Put("/{id:uint}", utils.RequirePermission("units:update"), routes.UpdateUnit)
			units.Delete("/{id:uint}", utils.RequirePermission("units:delete"), routes.DeleteUnit)
			units.Get("/{id:uint}/assets", routes.ListUnitAssets)
		}

		tenants := api.Party("/tenants")
		{
			tenants.Get("", routes.ListTenants)
			tenants.Post("", utils.RequirePermission("tenants:create"), routes.CreateTenant)
			tenants.Get("/{id:uint}", routes.GetTenant)
			tenants.Put("/{id:uint}", utils.RequirePermission("tenants:update"), routes.UpdateTenant)
			tenants.Delete("/{id:uint}", utils.RequirePermission("tenants:delete"), routes.DeleteTenant)
		}

		leases := api.Party("/leases")
		{
			leases.Get("", routes.ListLeases)
			leases.Post("", utils.RequirePermission("leases:create"), routes.CreateLease)
			leases.Get("/{id:uint}", routes.GetLease)
			leases.Put("/{id:uint}", utils.RequirePermission("leases:update"), routes.UpdateLease)
			leases.Delete("/{id:uint}", utils.AdminOnlyMiddleware, routes.DeleteLease)
			leases.Post("/{id:uint}/end", utils.RequirePermission("leases:update"), routes.EndLease)
			leases.Post("/{id:uint}/renew", utils.RequirePermission("leases:update"), routes.RenewLease)
			leases.Get("/{id:uint}/payments", routes.ListLeasePayments)
			leases.Post("/{id:uint}/payments", utils.RequirePermission("lease-payments:create"), routes.CreateLeasePayment)
			leases.Post("/{id:uint}/payments/generate", utils.RequirePermission("leases:update"), routes.GenerateLeaseSchedule)
		}

		leasePayments := api.Party("/lease-payments")
		{
			leasePayments.Put("/{id:uint}", utils.RequirePermission("lease-payments:update"), routes.UpdateLeasePayment)
			leasePayments.Delete("/{id:uint}", utils.RequirePermission("lease-payments:delete"), routes.DeleteLeasePayment)
			leasePayments.Post("/{id:uint}/cheque-image", utils.RequirePermission("lease-payments:update"), routes.UploadChequeImage)
			leasePayments.Post("/{id:uint}/transactions", utils.RequirePermission("transactions:create"), routes.AddPaymentTransaction)
			// Tenant-facing: extension requests carry no permission gate.
			leasePayments.Post("/{id:uint}/extension", routes.RequestPaymentExtension)
			leasePayments.Post("/{id:uint}/extension/review", utils.RequirePermission("leases:update"), routes.ReviewPaymentExtension)
		}

		transactions := api.Party("/transactions")
		{
			transactions.Put("/{id:uint}", utils.RequirePermission("transactions:update"), routes.UpdatePaymentTransaction)
			transactions.Delete("/{id:uint}", utils.RequirePermission("transactions:delete"), routes.DeletePaymentTransaction)
		}

		expenses := api.Party("/expenses")
		{
			expenses.Get("", routes.ListExpenses)
			expenses.Post("", utils.RequirePermission("expenses:create"), routes.CreateExpense)
			expenses.Put("/{id:uint}", utils.RequirePermission("expenses:update"), routes.UpdateExpense)
			expenses.Delete("/{id:uint}", utils.RequirePermission("expenses:delete"), routes.DeleteExpense)
		}

		assets := api.Party("/assets")
		{
			assets.Post("", utils.RequirePermission("assets:create"), routes.CreateAsset)
			assets.Put("/{id:uint}", utils.RequirePermission("assets:update"), routes.UpdateAsset)
			assets.Delete("/{id:uint}", utils.RequirePermission("assets:delete"), routes.DeleteAsset)
		}

		maintenance := api.Party("/maintenance-contracts")
		{
			maintenance.Get("", routes.ListMaintenanceContracts)
			maintenance.Post("", utils.RequirePermission("maintenance:create"), routes.CreateMaintenanceContract)
			maintenance.Put("/{id:uint}", utils.RequirePermission("maintenance:update"), routes.UpdateMaintenanceContract)
			maintenance.Delete("/{id:uint}", utils.RequirePermission("maintenance:delete"), routes.DeleteMaintenanceContract)
		}

		legal := api.Party("/legal-cases")
		{
			legal.Get("", routes.ListLegalCases)
			legal.Post("", utils.RequirePermission("legal:create"), routes.CreateLegalCase)
			legal.Put("/{id:uint}", utils.RequirePermission("legal:update"), routes.UpdateLegalCase)
			legal.Delete("/{id:uint}", utils.RequirePermission("legal:delete"), routes.DeleteLegalCase)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
