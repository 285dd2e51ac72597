package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/mccajr2/reading-rewards/docs"
	v1 "github.com/mccajr2/reading-rewards/internal/api/handler/v1"
	"github.com/mccajr2/reading-rewards/internal/api/middleware"
	"github.com/mccajr2/reading-rewards/internal/catalog"
	"github.com/mccajr2/reading-rewards/internal/config"
	"github.com/mccajr2/reading-rewards/internal/domain"
	"github.com/mccajr2/reading-rewards/internal/mailer"
	"github.com/mccajr2/reading-rewards/internal/repository"
	"github.com/mccajr2/reading-rewards/internal/repository/dao"
	"github.com/mccajr2/reading-rewards/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	bookHandler := s.initBookHandler(db)
	rewardHandler := s.initRewardHandler(db)
	parentHandler := s.initParentHandler(db)
	catalogHandler := s.initCatalogHandler()
	s.MountHandlers(authHandler, bookHandler, rewardHandler, parentHandler, catalogHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	brevo := mailer.NewBrevoMailer(s.Config.Brevo)
	svc := service.NewAuthService(repo, brevo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initBookHandler(db *gorm.DB) *v1.BookHandler {
	bookRepo := repository.NewBookRepository(dao.NewBookDAO(db))
	sessionRepo := repository.NewBookReadRepository(dao.NewBookReadDAO(db))
	svc := service.NewBookService(bookRepo, sessionRepo)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewBookHandler(svc, uSvc)

	return handler
}

func (s *Server) initRewardHandler(db *gorm.DB) *v1.RewardHandler {
	repo := repository.NewRewardRepository(dao.NewRewardDAO(db))
	svc := service.NewRewardService(repo)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewRewardHandler(svc, uSvc)

	return handler
}

func (s *Server) initParentHandler(db *gorm.DB) *v1.ParentHandler {
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	rSvc := service.NewRewardService(repository.NewRewardRepository(dao.NewRewardDAO(db)))
	handler := v1.NewParentHandler(uSvc, rSvc)

	return handler
}

func (s *Server) initCatalogHandler() *v1.CatalogHandler {
	openLibrary := catalog.NewOpenLibraryClient(s.Config.Catalog.OpenLibraryURL)
	googleBooks := catalog.NewGoogleBooksClient(s.Config.Catalog.GoogleBooksURL)
	handler := v1.NewCatalogHandler(openLibrary, googleBooks)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(authHandler *v1.AuthHandler, bookHandler *v1.BookHandler, rewardHandler *v1.RewardHandler, parentHandler *v1.ParentHandler, catalogHandler *v1.CatalogHandler) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
		auth.POST("/auth/verify-email", authHandler.HandleVerifyEmail)
	}

	authenticated := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authenticated.GET("/catalog/search", catalogHandler.HandleSearch)
		authenticated.GET("/catalog/lookup", catalogHandler.HandleLookupISBN)
		authenticated.GET("/catalog/works/:olid", catalogHandler.HandleGetWork)
		authenticated.GET("/catalog/volumes", catalogHandler.HandleSearchVolumes)

		authenticated.GET("/books", bookHandler.HandleGetBooks)
		authenticated.POST("/books", bookHandler.HandleAddBook)
		authenticated.POST("/books/:bookID/finish", bookHandler.HandleFinishBook)
		authenticated.POST("/books/:bookID/reread", bookHandler.HandleRereadBook)
		authenticated.GET("/books/:bookID/chapters", bookHandler.HandleGetChapters)
		authenticated.PUT("/books/:bookID/chapters", bookHandler.HandleReplaceChapters)
		authenticated.PUT("/chapters/:chapterID", bookHandler.HandleRenameChapter)

		authenticated.GET("/bookreads/in-progress", bookHandler.HandleGetInProgress)
		authenticated.GET("/history", bookHandler.HandleGetHistory)
		authenticated.GET("/bookreads/:bookReadID/chapterreads", bookHandler.HandleGetChapterReads)
		authenticated.POST("/bookreads/:bookReadID/chapters/:chapterID/read", bookHandler.HandleMarkChapterRead)
		authenticated.DELETE("/bookreads/:bookReadID/chapters/:chapterID/read", bookHandler.HandleUnmarkChapterRead)
		authenticated.DELETE("/bookreads/:bookReadID", bookHandler.HandleDeleteBookRead)

		authenticated.GET("/rewards", rewardHandler.HandleListRewards)
		authenticated.GET("/rewards/summary", rewardHandler.HandleRewardsSummary)
		authenticated.POST("/rewards/spend", rewardHandler.HandleSpend)
	}

	authenticator := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)
	parents := s.Router.Group(basePath, authenticator.VerifyJWT(), authenticator.RequireRoles(domain.RoleParent))
	{
		parents.GET("/parent/kids", parentHandler.HandleGetKids)
		parents.POST("/parent/kids", parentHandler.HandleCreateKid)
		parents.POST("/parent/reset-child-password", parentHandler.HandleResetChildPassword)
		parents.POST("/parent/kids/:kidID/payout", parentHandler.HandlePayout)
		parents.GET("/parent/kids/:kidID/rewards", parentHandler.HandleKidRewards)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Reading Rewards API"
	docs.SwaggerInfo.Description = "Family reading tracker with a chapter-based reward ledger."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
