package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"bakhtbot/internal/config"
	"bakhtbot/internal/entities"
	"bakhtbot/internal/queue"
	"bakhtbot/internal/repository/sqlite_repo"
	"bakhtbot/internal/services/bot"
	"bakhtbot/internal/services/broadcaster"
	"bakhtbot/internal/services/http_server"
	"bakhtbot/internal/tables"

	"github.com/cosiner/flag"
	"github.com/xlab/closer"
)

type Params struct {
	ConfigPath string `names:"--config, -c" usage:"config file path" default:"./config.yaml"`
	Address    string `names:"--address, -a" usage:"address of machine or container" default:"127.0.0.1:8080"`
}

type App struct {
	params *Params
}

func New() (App, error) {
	params, err := getValidatedParams()
	if err != nil {
		return App{}, err
	}
	return App{params: params}, nil
}

func (a App) Run() error {
	cfg, err := config.LoadConfigFromFile(a.params.ConfigPath)
	if err != nil {
		return err
	}

	tbl, err := tables.Load()
	if err != nil {
		return fmt.Errorf("loading lookup tables: %w", err)
	}

	errorCh := make(chan error)
	appCtx, wg := a.setupContextAndWg(context.Background(), errorCh)

	q := queue.NewQueue[entities.BroadcastJob](16)
	repo := sqlite_repo.New(cfg.RepoConfig)

	botService := bot.New(cfg.BotConfig, cfg.WorkflowConfig, repo, tbl, q, slog.Default())
	wg.Add(1)
	go func() {
		defer wg.Done()
		errorCh <- botService.Run(appCtx)
	}()

	// the broadcaster reuses the bot token unless configured separately
	bcCfg := cfg.BroadcasterConfig
	if bcCfg == nil {
		bcCfg = &broadcaster.Config{Token: cfg.BotConfig.Token}
	}
	broadcasterService := broadcaster.New(bcCfg, q, slog.Default())
	wg.Add(1)
	go func() {
		defer wg.Done()
		errorCh <- broadcasterService.Run(appCtx)
	}()

	httpServer := http_server.New(a.params.Address, cfg.HttpServerConfig, slog.Default())
	wg.Add(1)
	go func() {
		defer wg.Done()
		errorCh <- httpServer.Run(appCtx)
	}()

	closer.Hold()
	return nil
}

// setupContextAndWg returns a context cancelled on app shutdown request and a wait group awaited on shutdown.
//
//	All non-nil errors received from errorCh after an app shutdown request will be logged as "App shutdown errors".
//	If an error is received from errorCh before an app shutdown request, closer.Close will be called.
func (a App) setupContextAndWg(parentCtx context.Context, errorCh chan error) (ctx context.Context, wg *sync.WaitGroup) {
	wg = &sync.WaitGroup{}
	ctx, cancel := context.WithCancel(parentCtx)

	go func() {
		select {
		case <-ctx.Done():
			return
		case err := <-errorCh:
			slog.Error(fmt.Sprintf("stopping due to error: %+v", err))
			closer.Close()
		}
	}()

	closer.Bind(func() {
		var res error
		for err := range errorCh {
			if err == nil {
				continue
			}
			if res == nil {
				res = fmt.Errorf("%+v", err)
			}
			res = fmt.Errorf("%s\n%+v", res, err)
		}

		if res != nil {
			slog.Error(fmt.Sprintf("App shutdown errors:\n%+v", res))
		}
	})
	closer.Bind(func() {
		go func() {
			wg.Wait()
			close(errorCh)
		}()
	})
	closer.Bind(cancel)

	return
}

func getValidatedParams() (*Params, error) {
	params := &Params{}
	err := flag.Commandline.ParseStruct(params)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(params.ConfigPath)
	if err != nil {
		return nil, err
	}
	if stat.IsDir() || (filepath.Ext(stat.Name()) != ".yaml" && filepath.Ext(stat.Name()) != ".yml") {
		return nil, fmt.Errorf("invalid config path: %s", params.ConfigPath)
	}

	return params, nil
}
