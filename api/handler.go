// Package api provides HTTP handlers for the ledger service.
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kaiyue77/arkledger/auth"
	"github.com/kaiyue77/arkledger/config"
	"github.com/kaiyue77/arkledger/service"
)

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
	config  *config.Config
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service, config *config.Config) *Handler {
	return &Handler{
		service: service,
		config:  config,
	}
}

// RegisterRoutes registers routes with the echo server. Everything under
// /v1 requires a valid bearer token.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/v1", auth.Middleware(h.config.JWTSecret))

	// Weekly reset (archival workflow)
	v1.POST("/reset", h.WeeklyReset)

	// Run records
	v1.POST("/records", h.CreateRecord)
	v1.GET("/records/:character_id", h.ListRecords)
	v1.GET("/records/:character_id/completed", h.CompletedDungeons)
	v1.GET("/records/:character_id/stats", h.RecordStats)
	v1.PUT("/records/:record_id", h.UpdateRecord)
	v1.DELETE("/records/:record_id", h.DeleteRecord)

	// Game accounts
	v1.POST("/accounts", h.CreateGameAccount)
	v1.GET("/accounts", h.ListGameAccounts)
	v1.GET("/accounts/:account_id", h.GetGameAccount)
	v1.PUT("/accounts/:account_id", h.UpdateGameAccount)
	v1.DELETE("/accounts/:account_id", h.DeleteGameAccount)

	// Characters
	v1.POST("/characters", h.CreateCharacter)
	v1.GET("/characters", h.ListCharacters)
	v1.GET("/characters/:character_id", h.GetCharacter)
	v1.PUT("/characters/:character_id", h.UpdateCharacter)
	v1.DELETE("/characters/:character_id", h.DeleteCharacter)

	// Dungeon definitions
	v1.POST("/dungeons", h.CreateDungeon)
	v1.GET("/dungeons", h.ListDungeons)
	v1.GET("/dungeons/:dungeon_id", h.GetDungeon)
	v1.PUT("/dungeons/:dungeon_id", h.UpdateDungeon)
	v1.DELETE("/dungeons/:dungeon_id", h.DeleteDungeon)

	// Statistics
	v1.GET("/statistics", h.Statistics)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}
