package api

import (
	"github.com/phrazzld/hyperbolic-time-chamber-sub000/internal"
	"github.com/phrazzld/hyperbolic-time-chamber-sub000/internal/service"
)

type App interface {
	Logger() internal.Logger
	Workouts() *service.WorkoutService
}
