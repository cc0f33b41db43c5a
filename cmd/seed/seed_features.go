package main

import (
	"context"
	"log"
	"strings"

	"licensewatch-admin/internal/config"
	"licensewatch-admin/internal/dto"
	"licensewatch-admin/internal/model"
	"licensewatch-admin/internal/pkg/logger"
	"licensewatch-admin/internal/repository/unitofwork"
	"licensewatch-admin/pkg/admin/events"
	"licensewatch-admin/pkg/admin/feature"
	"licensewatch-admin/pkg/admin/validation"
	"licensewatch-admin/pkg/database"

	"github.com/fatih/color"
)

type seedFeature struct {
	name        string
	label       string
	showInLists bool
	isTracked   bool
}

var defaultFeatures = []seedFeature{
	{"MATLAB", "MATLAB", true, true},
	{"SIMULINK", "Simulink", true, true},
	{"Signal_Toolbox", "Signal Processing Toolbox", true, true},
	{"Optimization_Toolbox", "Optimization Toolbox", true, false},
	{"Statistics_Toolbox", "Statistics and Machine Learning Toolbox", true, true},
	{"Compiler", "MATLAB Compiler", false, false},
	{"ANSYS_Mechanical", "ANSYS Mechanical", true, true},
	{"COMSOL", "", true, false},
}

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDB(database.Config{
		Driver:   cfg.Database.Driver,
		DSN:      cfg.Database.Connection,
		LogLevel: "silent",
	})
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	sysLogger := logger.NewNopLogger()
	manager := feature.NewManager(cfg.Catalog.RowsPerPage, validation.New(), events.NewAuditPublisher(nil, sysLogger), nil, sysLogger)
	factory := unitofwork.NewRepositoryFactory(db)
	ctx := context.Background()

	log.Printf("Seeding feature catalog (%d rows per page)...", manager.RowsPerPage())

	created, skipped, failed := 0, 0, 0
	for _, f := range defaultFeatures {
		var existing int64
		if err := db.Model(&model.Feature{}).Where("name = ?", f.name).Count(&existing).Error; err != nil {
			log.Fatal("Error: Failed to query features:", err)
		}
		if existing > 0 {
			color.Yellow("  skip  %s (already present)", f.name)
			skipped++
			continue
		}

		res := manager.AddOrEdit(ctx, factory.NewUnitOfWork(ctx), dto.SaveFeatureRequest{
			Id:          "new",
			Name:        f.name,
			Label:       f.label,
			ShowInLists: dto.Checkbox(f.showInLists),
			IsTracked:   dto.Checkbox(f.isTracked),
		})
		if strings.Contains(res.Message, "successfully") {
			color.Green("  added %s", f.name)
			created++
		} else {
			color.Red("  failed %s: %s", f.name, res.Message)
			failed++
		}
	}

	color.Cyan("Feature seeding completed: %d added, %d skipped, %d failed", created, skipped, failed)
}
