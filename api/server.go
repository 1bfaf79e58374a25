package api

import (
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"github.com/tranquoccuong0179/userstore/adapters/userdb"
	"github.com/tranquoccuong0179/userstore/federation"
	"github.com/tranquoccuong0179/userstore/models"
)

// ServerImpl exposes the federation provider over a small admin HTTP surface.
// It owns the database handle; the provider itself stays stateless.
type ServerImpl struct {
	provider *federation.Provider
	db       *gorm.DB

	config ServerConfig
}

func NewServer(config ServerConfig) (*ServerImpl, error) {
	const op = "NewServer"

	// 初始化資料庫連線
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable&search_path=%s",
		config.DB.User, config.DB.Password, config.DB.Host, config.DB.Port, config.DB.Database, config.DB.Schema)
	var db *gorm.DB
	connect := func() error {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			TranslateError: true,
			NamingStrategy: schema.NamingStrategy{
				TablePrefix: config.DB.Schema + ".",
			},
		})
		return err
	}
	if err := backoff.Retry(connect, backoff.NewExponentialBackOff()); err != nil {
		return nil, fmt.Errorf("[%s] Fail to connect to database, err=%w", op, err)
	}

	if config.DB.AutoMigrate {
		if err := db.AutoMigrate(&models.User{}, &models.UserAttribute{}); err != nil {
			return nil, fmt.Errorf("[%s] Fail to migrate database, err=%w", op, err)
		}
	}

	return newServer(config, db), nil
}

func newServer(config ServerConfig, db *gorm.DB) *ServerImpl {
	provider := federation.NewProvider(federation.Config{
		ProviderID:      config.Provider.ID,
		AddRolesToToken: config.Provider.AddRolesToToken,
	}, userdb.NewStore(db))
	return &ServerImpl{provider: provider, db: db, config: config}
}

func (impl *ServerImpl) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/api")
	group.GET("/users", impl.SearchUsers)
	group.GET("/users/count", impl.CountUsers)
	group.GET("/users/:id", impl.GetUser)
	group.POST("/credentials/verify", impl.VerifyCredentials)
}

func (impl *ServerImpl) realm() federation.Realm {
	return federation.Realm{Name: impl.config.Provider.Realm}
}

func (impl *ServerImpl) Close() error {
	const op = "Close"
	impl.provider.Close()
	sqlDB, err := impl.db.DB()
	if err != nil {
		return fmt.Errorf("[%s] Fail to fetch connection pool, err=%w", op, err)
	}
	return sqlDB.Close()
}
