package main

import (
	"log"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/tadeusantosti/controle-bancario/internal/ledger/adapter/repo"
	"github.com/tadeusantosti/controle-bancario/internal/ledger/api"
	"github.com/tadeusantosti/controle-bancario/internal/ledger/service"
	"github.com/tadeusantosti/controle-bancario/internal/platform/database"
	"github.com/tadeusantosti/controle-bancario/internal/platform/logger"
	"github.com/tadeusantosti/controle-bancario/internal/platform/server"
)

func main() {
	viper.SetConfigFile("configs/config.yaml")
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("error reading config file: %s", err)
	}

	appLogger := logger.NewLogger(viper.GetString("server.mode"))
	defer appLogger.Sync()

	db := database.NewPostgresDB(
		viper.GetString("database.dsn"),
		viper.GetInt("database.max_idle_conns"),
		viper.GetInt("database.max_open_conns"),
	)

	accountRepo := repo.NewAccountRepo(db)
	entryRepo := repo.NewEntryRepo(db)
	txRunner := repo.NewTxRunner(db)
	reconciler := service.NewReconciler(accountRepo, entryRepo)
	ledgerSvc := service.NewLedgerService(txRunner, accountRepo, entryRepo, reconciler, appLogger)
	ledgerHandler := api.NewLedgerHandler(ledgerSvc)

	srv := server.NewServer(
		appLogger,
		viper.GetString("server.port"),
		viper.GetString("server.mode"),
		ledgerHandler,
	)

	if err := srv.Run(); err != nil {
		appLogger.Fatal("server startup failed", zap.Error(err))
	}
}
