package app

import (
	"context"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/micromarket/backend/config"
	"github.com/micromarket/backend/internal/store"
)

type Application struct {
	appConfig   *config.AppConfig
	dataStore   store.Store
	mongoClient *mongo.Client
}

var (
	_ StoreProvider  = (*Application)(nil)
	_ ConfigProvider = (*Application)(nil)
	_ AppContext     = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) Store() store.Store {
	return a.dataStore
}

// OverrideStore replaces the application's store handle (used in tests).
func (a *Application) OverrideStore(s store.Store) {
	a.dataStore = s
}

// Init sets the timezone, installs the global zap logger, and connects the
// configured storage backend.
func (a *Application) Init(ctx context.Context) error {
	cfg := a.appConfig

	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	initLogger(&cfg.Logger)

	switch cfg.Database.Type {
	case "memory":
		a.dataStore = store.NewMemory()
		zap.S().Info("using in-memory store")
	default:
		if err := a.connectMongo(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (a *Application) connectMongo(ctx context.Context) error {
	cfg := a.appConfig.Database
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URL))
	if err != nil {
		return errors.Wrap(err, "connect mongodb")
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		return errors.Wrap(err, "ping mongodb")
	}
	a.mongoClient = client

	mongoStore := store.NewMongo(client.Database(cfg.Name))
	if err := mongoStore.EnsureIndexes(connectCtx); err != nil {
		zap.S().Warnf("failed to ensure indexes: %v", err)
	}
	a.dataStore = mongoStore
	zap.S().Infof("database connection successful, db: %s", cfg.Name)
	return nil
}

func initLogger(cfg *config.LogConfig) {
	var zapConfig zap.Config
	if cfg.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}

	var logger *zap.Logger
	if cfg.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}
		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller())
	} else {
		var err error
		logger, err = zapConfig.Build(zap.AddCaller())
		if err != nil {
			panic(err)
		}
	}
	zap.ReplaceGlobals(logger)
}

// Release closes the database connection and flushes the logger.
func (a *Application) Release() {
	if a.mongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = a.mongoClient.Disconnect(ctx)
	}
	_ = zap.L().Sync()
}
