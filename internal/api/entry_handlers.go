package api

import (
	"errors"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/phrazzld/hyperbolic-time-chamber-sub000/internal/service"
)

func PostEntry(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body service.EntryRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid JSON")
			return
		}

		if err := service.ValidateEntryRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Validation failed")
			return
		}

		entry, err := app.Workouts().AddEntry(c.Request.Context(), &body)
		if err != nil {
			// The entry is in memory; only durability failed.
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Failed to save entry")
			return
		}

		HandleCreated(c, app.Logger(), entry, nil)
	}
}

func GetEntries(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries := app.Workouts().Entries()

		// History is shown newest first.
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Date.After(entries[j].Date)
		})

		HandleSuccess(c, app.Logger(), entries, map[string]any{"count": len(entries)})
	}
}

func DeleteEntry(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		err := app.Workouts().DeleteEntry(c.Request.Context(), id)
		if errors.Is(err, service.ErrEntryNotFound) {
			HandleError(c, app.Logger(), err, http.StatusNotFound, "No such entry")
			return
		}
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Failed to delete entry")
			return
		}
		HandleSuccess(c, app.Logger(), nil, map[string]any{"deleted": id})
	}
}

func PostExport(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		location, err := app.Workouts().ExportJSON(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Failed to export entries")
			return
		}
		HandleSuccess(c, app.Logger(), nil, map[string]any{"location": location})
	}
}

func GetStats(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		HandleSuccess(c, app.Logger(), app.Workouts().Stats(), nil)
	}
}
