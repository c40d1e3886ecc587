package main

import (
	"github.com/gin-gonic/gin"

	"github.com/sannyeinphyo/internlink-sub001/internal/interfaces/http/handlers"
	"github.com/sannyeinphyo/internlink-sub001/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler    *handlers.AuthHandler
	adminHandler   *handlers.AdminHandler
	pagesHandler   *handlers.PagesHandler
	authMiddleware gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public unless noted)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/verify-otp", d.authHandler.VerifyOTP)
			auth.POST("/resend-otp", d.authHandler.ResendOTP)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/logout", d.authHandler.Logout)
			auth.POST("/forgot-password", d.authHandler.ForgotPassword)
			auth.POST("/reset-password", d.authHandler.ResetPassword)
			auth.POST("/change-password", d.authMiddleware, d.authHandler.ChangePassword)
			auth.GET("/me", d.authMiddleware, d.authHandler.Me)
		}

		// Admin routes (protected)
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			admin.GET("/accounts", d.adminHandler.ListAccounts)
			admin.GET("/accounts/export", d.adminHandler.ExportAccounts)
			admin.PUT("/accounts/:id/status", d.adminHandler.UpdateStatus)
			admin.GET("/stats", d.adminHandler.Stats)
		}
	}

	// Everything else is a page request that already passed the gate.
	r.NoRoute(d.pagesHandler.Page)
}
