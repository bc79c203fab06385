package webserver

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/substytucje-pro/offers-backend/src/offersd/config"
	"github.com/substytucje-pro/offers-backend/src/offersd/offers"
	"github.com/substytucje-pro/offers-backend/src/offersd/parser"
	"github.com/substytucje-pro/offers-backend/src/offersd/places"
)

func New(cfg config.Config, svc *offers.Service, placeRepo *places.Repository, ai parser.Client, rdb *redis.Client) *gin.Engine {
	g := gin.New()
	g.Use(gin.Logger(), gin.Recovery())
	attachRoutes(g, cfg, svc, placeRepo, ai, rdb)
	return g
}

func attachRoutes(r *gin.Engine, cfg config.Config, svc *offers.Service, placeRepo *places.Repository, ai parser.Client, rdb *redis.Client) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-API-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           86400,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	offerH := NewOffers(svc, ai, rdb)
	placeH := NewPlaces(placeRepo)

	public := r.Group("/offers")
	{
		public.GET("", offerH.List)
		public.GET("/count", offerH.Count)
	}

	bot := r.Group("/offers")
	bot.Use(APIKeyMiddleware(cfg.BotAPIKey))
	{
		bot.POST("/raw", offerH.CreateRaw)
		bot.POST("/import", offerH.ImportBatch)
	}

	mod := r.Group("/offers")
	mod.Use(JWTMiddleware([]byte(cfg.JWTSecret)))
	{
		mod.GET("/raw", offerH.ListRaw)
		mod.GET("/raw/:uuid", offerH.Get)
		mod.PATCH("/raw/:uuid", offerH.Update)
		mod.PATCH("/raw/:uuid/accept", offerH.Accept)
		mod.PATCH("/raw/:uuid/reject", offerH.Reject)
		mod.POST("/raw/:uuid/parse", offerH.Parse)
		mod.GET("/raw/:uuid/similar", offerH.Similar)
	}

	place := r.Group("/places")
	place.Use(JWTMiddleware([]byte(cfg.JWTSecret)))
	{
		place.POST("", placeH.CreatePlace)
		place.POST("/city", placeH.CreateCity)
		place.GET("/facility/:name", placeH.SearchPlaces)
		place.GET("/city/:name", placeH.SearchCities)
		place.GET("/roles", placeH.ListRoles)
	}
}
