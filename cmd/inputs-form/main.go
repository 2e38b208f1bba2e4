package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jhoicas/ecoforecast-api/internal/application/form"
	"github.com/jhoicas/ecoforecast-api/internal/interfaces/tui"
	"github.com/jhoicas/ecoforecast-api/pkg/client"
	"github.com/jhoicas/ecoforecast-api/pkg/config"
	"github.com/jhoicas/ecoforecast-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}

	baseURL := flag.String("api", cfg.Client.BaseURL, "URL base de la API")
	year := flag.Int("year", 0, "año del documento (0 = año en curso)")
	flag.Parse()

	// La TUI ocupa stdout: los logs van a stderr.
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Output: os.Stderr})

	api := client.New(*baseURL)
	ctrl := form.NewController(api,
		form.WithYear(*year),
		form.OnSaved(func(id string) {
			log.Debug().Str("id", id).Str("api", *baseURL).Msg("consumos guardados")
		}),
	)

	if _, err := tea.NewProgram(tui.New(ctrl)).Run(); err != nil {
		log.Error().Err(err).Msg("formulario de terminal")
		os.Exit(1)
	}
}
