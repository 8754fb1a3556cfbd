package usecase

import (
	"time"

	"github.com/lyanh238/VNASelf/internal/scheduling"
	"github.com/lyanh238/VNASelf/internal/scheduling/repository"
	"github.com/lyanh238/VNASelf/pkg/datemath"
	pkgLog "github.com/lyanh238/VNASelf/pkg/log"
	"github.com/lyanh238/VNASelf/pkg/productivity"
)

// Config carries the scheduler knobs the engine needs at runtime.
type Config struct {
	HorizonDays     int           // default forward search horizon
	MaxSuggestions  int           // default cap on suggestions
	WorkdayStartMin int           // minutes from midnight
	WorkdayEndMin   int           // minutes from midnight
	QueryPadding    time.Duration // widens conflict query windows defensively
	Location        *time.Location
}

type implUseCase struct {
	l      pkgLog.Logger
	repo   repository.Calendar
	scorer *productivity.Scorer
	dates  *datemath.Parser
	cfg    Config

	now func() time.Time // injectable clock
}

// New creates a scheduling UseCase instance.
func New(
	l pkgLog.Logger,
	repo repository.Calendar,
	scorer *productivity.Scorer,
	dates *datemath.Parser,
	cfg Config,
) *implUseCase {
	if cfg.HorizonDays <= 0 {
		cfg.HorizonDays = 7
	}
	if cfg.MaxSuggestions <= 0 {
		cfg.MaxSuggestions = 5
	}
	if cfg.WorkdayEndMin <= cfg.WorkdayStartMin {
		cfg.WorkdayStartMin = 8 * 60
		cfg.WorkdayEndMin = 20 * 60
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	return &implUseCase{
		l:      l,
		repo:   repo,
		scorer: scorer,
		dates:  dates,
		cfg:    cfg,
		now:    time.Now,
	}
}

// Verify interface compliance
var _ scheduling.UseCase = (*implUseCase)(nil)
