package api

import (
	"github.com/Mohd-Abdelaleem/darbi-salati/internal"
	"github.com/Mohd-Abdelaleem/darbi-salati/internal/service"
)

type App interface {
	Logger() internal.Logger
	Store() *service.DayStore
}
