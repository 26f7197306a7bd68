package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/ksyv/Carillon/config"
	"github.com/ksyv/Carillon/handlers"
	"github.com/ksyv/Carillon/middlewares"
	"github.com/ksyv/Carillon/models"
)

// Register câble toutes les routes HTTP.
func Register(e *echo.Echo, cfg *config.Config) {
	auth := handlers.NewAuthHandler(cfg.JWTSecret)
	child := handlers.NewChildHandler()
	att := handlers.NewAttendanceHandler(cfg)
	pl := handlers.NewPlanningHandler()
	rep := handlers.NewReportHandler(att, pl)
	usr := handlers.NewUserHandler()

	e.GET("/healthz", handlers.Health)
	e.POST("/api/login", auth.Login)

	authMW := middlewares.RequireAuth(cfg.JWTSecret)

	// ===== Staff + admin =====
	api := e.Group("/api", authMW, middlewares.RequireRole(models.RoleStaff, models.RoleAdmin))

	api.GET("/children", child.List)

	api.GET("/attendance", att.Session)
	api.GET("/attendance/slot", att.Slot)
	api.POST("/attendance/checkin", att.CheckIn)
	api.PUT("/attendance/checkout/:id", att.CheckOut)
	api.PUT("/attendance/:id/undo-checkout", att.UndoCheckOut)
	api.PUT("/attendance/:id/clear-late", att.ClearLate)
	api.PUT("/attendance/:id/note", att.SetNote)
	api.DELETE("/attendance/:id", att.Delete)

	api.PUT("/profile/password", usr.ChangePassword)

	// ===== Admin =====
	admin := e.Group("/api/admin", authMW, middlewares.RequireRole(models.RoleAdmin))

	admin.POST("/children", child.Create)
	admin.PUT("/children/:id", child.Update)
	admin.DELETE("/children/:id", child.Deactivate)
	admin.PUT("/children/:id/reactivate", child.Reactivate)

	admin.GET("/users", usr.List)
	admin.POST("/users", usr.Create)
	admin.POST("/users/:id/reset", usr.ResetPassword)
	admin.PATCH("/users/:id", usr.Patch)

	admin.GET("/planned-notes", pl.ListNotes)
	admin.POST("/planned-notes", pl.CreateNote)
	admin.PUT("/planned-notes/:id", pl.UpdateNote)
	admin.DELETE("/planned-notes/:id", pl.DeleteNote)

	admin.GET("/billing-rules", pl.ListBilling)
	admin.POST("/billing-rules", pl.CreateBilling)
	admin.PUT("/billing-rules/:id", pl.UpdateBilling)
	admin.DELETE("/billing-rules/:id", pl.DeleteBilling)

	admin.GET("/report", rep.Daily)
	admin.GET("/report/export", rep.Export)
}
