package main

import (
	"context"
	"fmt"
	"os"
	"taskhub/client/es"
	"taskhub/common"
	"taskhub/config"
	"taskhub/event"
	"taskhub/indices"
	"taskhub/infra/tracing"
	"taskhub/persistence"
	"taskhub/servehttp"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var configFile string

func main() {
	rootCmd := &cobra.Command{
		Use:           "taskhub",
		Short:         "taskhub - projects, tasks and collaborators over REST",
		RunE:          runServe,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (yaml, json or toml)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the http server",
		RunE:  runServe,
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE:  runMigrate,
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	common.SetServiceName(cfg.ServiceName)
	if err := common.ConfigureLogging(cfg.LogLevel, cfg.LogFormat); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openDatabase creates the mysql database when missing, connects and migrates the schema.
func openDatabase(cfg *config.Config) (*persistence.DataSourceManager, error) {
	dbConfig := cfg.DatabaseConfig()
	if dbConfig.DriverType == persistence.DriverMysql {
		if err := persistence.PrepareMysqlDatabase(dbConfig.DriverArgs); err != nil {
			return nil, fmt.Errorf("failed to prepare database: %w", err)
		}
	}

	ds := &persistence.DataSourceManager{DatabaseConfig: dbConfig}
	if err := ds.Start(); err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if err := ds.Migrate(context.Background()); err != nil {
		ds.Stop()
		return nil, fmt.Errorf("database migration failed: %w", err)
	}
	return ds, nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ds, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	ds.Stop()
	logrus.Info("database migration finished")
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logrus.Info("service start")

	if cfg.TracingEnabled {
		closer, err := tracing.InitGlobalTracer(cfg.ServiceName)
		if err != nil {
			return fmt.Errorf("tracer initialization failed: %w", err)
		}
		defer closer.Close()
	}

	ds, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer ds.Stop()
	persistence.ActiveDataSourceManager = ds

	if cfg.ElasticsearchURL != "" {
		if _, err := es.CreateClient(cfg.ElasticsearchURL, cfg.LogLevel == "debug"); err != nil {
			return fmt.Errorf("elasticsearch client failed: %w", err)
		}
		event.EventHandlers = append(event.EventHandlers, indices.IndexEventHandle)
	}

	return servehttp.StartHTTPServer(cfg.HTTPAddr, servehttp.NewEngine(cfg))
}
