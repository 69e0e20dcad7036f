package app

import (
	"context"
	"path/filepath"

	"github.com/luminous-dynamics/ask-nix/internal/application/ask"
	"github.com/luminous-dynamics/ask-nix/internal/application/doctor"
	"github.com/luminous-dynamics/ask-nix/internal/infrastructure/config"
	"github.com/luminous-dynamics/ask-nix/internal/infrastructure/executor"
	"github.com/luminous-dynamics/ask-nix/internal/infrastructure/intent"
	"github.com/luminous-dynamics/ask-nix/internal/infrastructure/learning"
	"github.com/luminous-dynamics/ask-nix/internal/infrastructure/nixcmd"
	"github.com/luminous-dynamics/ask-nix/internal/infrastructure/pkgindex"
	"github.com/luminous-dynamics/ask-nix/internal/infrastructure/safety"
	"github.com/luminous-dynamics/ask-nix/internal/infrastructure/translate"
	"github.com/luminous-dynamics/ask-nix/internal/pkg/filesystem"
	"github.com/luminous-dynamics/ask-nix/internal/pkg/logger"
	"github.com/luminous-dynamics/ask-nix/internal/ports"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	AskService     *ask.Service
	DoctorService  *doctor.Service
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	Store          ports.LearningStore
	Index          *pkgindex.FileIndex
	Gate           *safety.Gate
	Executor       ports.CommandExecutor
	Logger         ports.Logger
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.NewStd(verbose)
	dataDir := filesystem.DataDir()

	index := pkgindex.NewFileIndex(filepath.Join(dataDir, "packages.txt"), log)

	var store ports.LearningStore
	if cfg.Learning.Enabled {
		store = learning.NewSQLiteStore(filepath.Join(dataDir, "learning.db"), log)
	}

	var extra []intent.Pattern
	if cfg.Recognition.PatternsFile != "" {
		if extra, err = intent.LoadCustomPatterns(cfg.Recognition.PatternsFile); err != nil {
			log.Warn("custom patterns rejected, using built-in tables", map[string]interface{}{
				"path":  cfg.Recognition.PatternsFile,
				"error": err.Error(),
			})
			extra = nil
		}
	}

	gate, err := safety.NewGate(cfg.Safety.RulesFile)
	if err != nil {
		gate, err = safety.NewGate("")
		if err != nil {
			return nil, err
		}
	}

	subprocess := executor.NewSubprocess(log)

	askService := &ask.Service{
		ConfigProvider: cfgLoader,
		Recognizer:     intent.NewRecognizer(index, store, log, extra...),
		Builder:        nixcmd.NewBuilder(),
		Gate:           gate,
		Executor:       subprocess,
		Translator:     translate.NewTranslator(index),
		Store:          store,
		Logger:         log,
	}

	doctorService := &doctor.Service{
		ConfigProvider: cfgLoader,
		Gate:           gate,
		Store:          store,
		Index:          index,
		Refresher:      index,
		Executor:       subprocess,
	}

	return &Container{
		AskService:     askService,
		DoctorService:  doctorService,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		Store:          store,
		Index:          index,
		Gate:           gate,
		Executor:       subprocess,
		Logger:         log,
	}, nil
}

// Close flushes and releases long-lived resources.
func (c *Container) Close() error {
	if c.Store != nil {
		return c.Store.Close()
	}
	return nil
}
