package routes

import (
	"sbook/controllers/account"
	"sbook/controllers/admin"
	"sbook/controllers/agent"
	"sbook/controllers/bet"
	"sbook/middlewares"
	"sbook/models"

	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App) {
	app.Post("/auth/login", account.Login)

	me := app.Group("/me", middlewares.RequireAuth)
	me.Get("/", account.Me)
	me.Get("/statement", account.Statement)

	betroutes := app.Group("/bet", middlewares.RequireAuth)
	betroutes.Post("/", bet.Place)
	betroutes.Get("/history", bet.History)
	betroutes.Post("/:id/void", bet.Void)

	agentroutes := app.Group("/agent", middlewares.RequireAuth,
		middlewares.RequireRole(models.RoleAdmin, models.RoleMaster, models.RoleAgent))
	agentroutes.Post("/create", agent.CreateDownline)
	agentroutes.Post("/transfer", agent.Transfer)
	agentroutes.Get("/report", agent.WinLossReport)

	adminroutes := app.Group("/admin", middlewares.RequireAuth,
		middlewares.RequireRole(models.RoleAdmin))
	adminroutes.Post("/settle", admin.Settle)
	adminroutes.Post("/adjust", admin.Adjust)
	adminroutes.Get("/betslips", admin.Betslips)
	adminroutes.Get("/users/:id/transactions", admin.Transactions)
	adminroutes.Post("/users/:id/lock", admin.LockAccount)
	adminroutes.Post("/users/:id/unlock", admin.UnlockAccount)
}
