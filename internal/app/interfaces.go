package app

import (
	"github.com/micromarket/backend/config"
	"github.com/micromarket/backend/internal/store"
)

// StoreProvider provides persistence access.
type StoreProvider interface {
	Store() store.Store
}

// ConfigProvider provides application configuration.
type ConfigProvider interface {
	Config() *config.AppConfig
}

// AppContext combines the provider interfaces handed to the web layer.
// Consumers should depend on the narrowest provider that serves them.
type AppContext interface {
	StoreProvider
	ConfigProvider
}
