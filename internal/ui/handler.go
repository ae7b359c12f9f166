package ui

import (
	"html/template"

	"github.com/cori-saude/cori-web/internal/agenda"
	"github.com/cori-saude/cori-web/internal/auth"
	"github.com/cori-saude/cori-web/internal/config"
)

// Handler serves server-rendered HTML pages.
type Handler struct {
	cfg         *config.Config
	authService *auth.Service
	templates   map[string]*template.Template
	grid        agenda.GridConfig
	weekPolicy  agenda.WeekPolicy
}

func NewHandler(cfg *config.Config, authService *auth.Service) *Handler {
	grid := agenda.DefaultGrid()
	grid.StartHour = cfg.Calendar.StartHour
	grid.EndHour = cfg.Calendar.EndHour
	grid.HourHeight = float64(cfg.Calendar.HourHeight)
	grid.MinBlockHeight = float64(cfg.Calendar.MinBlockHeight)

	return &Handler{
		cfg:         cfg,
		authService: authService,
		templates:   templates,
		grid:        grid,
		weekPolicy:  agenda.WeekPolicy{IncludeInstantEvents: cfg.Calendar.WeekShowInstantEvents},
	}
}
