package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/bnema/clickloop-cli/internal/adapters/desktop/robot"
	"github.com/bnema/clickloop-cli/internal/adapters/overlay/term"
	statusadapter "github.com/bnema/clickloop-cli/internal/adapters/render/status"
	tomlrepo "github.com/bnema/clickloop-cli/internal/adapters/repo/toml"
	gopsutiladapter "github.com/bnema/clickloop-cli/internal/adapters/resources/gopsutil"
	"github.com/bnema/clickloop-cli/internal/application"
	"github.com/bnema/clickloop-cli/internal/ports"
	"github.com/spf13/viper"
)

type app struct {
	scheduler    *application.Scheduler
	resolver     *application.Resolver
	recovery     *application.RecoveryEngine
	health       *application.HealthMonitor
	presets      ports.PresetRepository
	renderReport func(statusadapter.Report, statusadapter.RenderOptions) (string, error)
	now          func() time.Time
}

func wireApp() (*app, error) {
	presets, err := tomlrepo.NewRepository(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire preset repository: %w", err)
	}

	clock := ports.SystemClock{}

	health := application.NewHealthMonitor(gopsutiladapter.NewSampler(), clock)
	recovery := application.NewRecoveryEngine(health, robot.NewPermissions(), clock)
	resolver := application.NewResolver(robot.NewEnumerator(), robot.NewRegistry())
	scheduler := application.NewScheduler(
		robot.NewInjector(),
		robot.NewPointer(),
		robot.NewScreen(),
		term.NewOverlay(os.Stderr),
		resolver,
		recovery,
		clock,
	)

	return &app{
		scheduler:    scheduler,
		resolver:     resolver,
		recovery:     recovery,
		health:       health,
		presets:      presets,
		renderReport: statusadapter.Render,
		now:          time.Now,
	}, nil
}
