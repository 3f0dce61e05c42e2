package app

import (
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"github.com/estilourbano/tienda/internal/adapters/httpserver"
	"github.com/estilourbano/tienda/internal/adapters/payments/simulated"
	"github.com/estilourbano/tienda/internal/adapters/repo/postgres"
	"github.com/estilourbano/tienda/internal/adapters/storage/localfs"
	"github.com/estilourbano/tienda/internal/domain"
	"github.com/estilourbano/tienda/internal/usecase"
)

type App struct {
	DB            *gorm.DB
	OrderUC       *usecase.OrderUC
	CustomOrderUC *usecase.CustomOrderUC
	ProductUC     *usecase.ProductUC
	UserUC        *usecase.UserUC
	Storage       domain.ImageStorage
	OAuthConfig   *oauth2.Config

	uploadsDir string
}

func NewApp(db *gorm.DB) (*App, error) {
	orderRepo := postgres.NewOrderRepo(db)
	customRepo := postgres.NewCustomOrderRepo(db)
	prodRepo := postgres.NewProductRepo(db)
	userRepo := postgres.NewUserRepo(db)

	storageDir := os.Getenv("STORAGE_DIR")
	if storageDir == "" {
		storageDir = "uploads"
	}
	if err := os.MkdirAll(storageDir, 0755); err != nil {
		return nil, err
	}
	storage := localfs.New(storageDir)

	gateway := simulated.NewGateway()

	var oauthCfg *oauth2.Config
	googleID := os.Getenv("GOOGLE_CLIENT_ID")
	googleSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	if googleID != "" && googleSecret != "" {
		oauthCfg = &oauth2.Config{
			ClientID:     googleID,
			ClientSecret: googleSecret,
			RedirectURL:  baseURL + "/auth/google/callback",
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		}
	}

	app := &App{
		DB:            db,
		OrderUC:       &usecase.OrderUC{Orders: orderRepo, Users: userRepo, Gateway: gateway},
		CustomOrderUC: &usecase.CustomOrderUC{Customs: customRepo, Users: userRepo, Storage: storage},
		ProductUC:     &usecase.ProductUC{Products: prodRepo, Storage: storage},
		UserUC:        &usecase.UserUC{Users: userRepo},
		Storage:       storage,
		OAuthConfig:   oauthCfg,
		uploadsDir:    storageDir,
	}
	return app, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.OrderUC, a.CustomOrderUC, a.ProductUC, a.UserUC, a.Storage, a.OAuthConfig, a.uploadsDir)
}

func (a *App) MigrateAndSeed() error {
	return a.DB.AutoMigrate(
		&domain.User{},
		&domain.Product{},
		&domain.Order{},
		&domain.OrderItem{},
		&domain.CustomOrder{},
		&domain.CustomOrderItem{},
	)
}
