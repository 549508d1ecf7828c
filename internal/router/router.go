package router

import (
	"context"
	"net/http"
	"time"

	"github.com/Hariprajaa05/Farmer-project/internal/config"
	"github.com/Hariprajaa05/Farmer-project/internal/handler"
	"github.com/Hariprajaa05/Farmer-project/internal/logic"
	"github.com/Hariprajaa05/Farmer-project/internal/repository"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Setup 初始化路由
func Setup(store *repository.Store, cfg *config.Config) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(RequestID())
	r.Use(AccessLog())
	r.Use(Recovery())
	r.Use(corsMiddleware())
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unavailable",
				"service": "farmer-market",
				"error":   err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "farmer-market",
		})
	})

	catalogLogic := logic.NewCatalogLogic(store)
	farmerLogic := logic.NewFarmerLogic(store)
	ledgerLogic := logic.NewLedgerLogic(store, logic.LedgerOptionsFromConfig(cfg.Ledger))

	handlers := Handlers{
		Offer:          handler.NewOfferHandler(catalogLogic),
		Farmer:         handler.NewFarmerHandler(farmerLogic),
		FundingRequest: handler.NewFundingRequestHandler(ledgerLogic),
		Donation:       handler.NewDonationHandler(ledgerLogic),
	}

	// 根路径与 API 版本组挂载同一组路由
	Register(r.Group(""), handlers)
	Register(r.Group("/api/v1"), handlers)

	return r
}

// Handlers 路由依赖的处理器
type Handlers struct {
	Offer          *handler.OfferHandler
	Farmer         *handler.FarmerHandler
	FundingRequest *handler.FundingRequestHandler
	Donation       *handler.DonationHandler
}

// Register 注册业务路由
func Register(g *gin.RouterGroup, h Handlers) {
	// 商品视图
	g.GET("/offers", h.Offer.ListOffers)
	g.GET("/products", h.Offer.ListProducts)
	g.DELETE("/products/:id", h.Offer.DeleteProduct)

	// 农户资料
	farmers := g.Group("/farmers")
	{
		farmers.GET("", h.Farmer.ListFarmers)
		farmers.GET("/:id", h.Farmer.GetFarmer)
		farmers.PUT("/:id", h.Farmer.UpdateFarmer)
	}
	g.POST("/farmer-product-links", h.Farmer.CreateFarmerProduct)
	g.PUT("/farmer-product-links/:id", h.Farmer.UpdateFarmerProduct)

	// 筹款与捐赠
	g.POST("/funding-requests", h.FundingRequest.CreateFundingRequest)
	g.GET("/funding-requests/:farmerId", h.FundingRequest.ListFarmerRequests)
	g.GET("/funding-request/:id", h.FundingRequest.GetFundingRequest)
	g.GET("/funding-request/:id/donations", h.FundingRequest.ListDonations)
	g.POST("/donations", h.Donation.CreateDonation)
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", HeaderRequestID},
		ExposeHeaders:    []string{HeaderRequestID, "Location"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	})
}
