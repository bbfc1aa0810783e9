package router

import (
	"seedy/internal/handler"
	"seedy/internal/middleware"
	"seedy/internal/pkg"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything the route table needs.
type Handlers struct {
	User      *handler.UserHandler
	Community *handler.CommunityHandler
	Category  *handler.CategoryHandler
	Post      *handler.PostHandler
	Reaction  *handler.ReactionHandler
	Plant     *handler.PlantHandler
	Chat      *handler.ChatHandler
	Image     *handler.ImageHandler
}

func InitRouter(h Handlers, tokens *pkg.TokenIssuer, uploadsDir string) *gin.Engine {
	r := gin.Default()
	auth := middleware.AuthMiddleware(tokens)

	// 公开接口
	r.POST("/register", h.User.Register)
	r.POST("/login", h.User.Login)
	r.POST("/check-username", h.User.CheckUsername)
	r.POST("/check-email", h.User.CheckEmail)
	r.POST("/forgot-password", h.User.ForgotPassword)
	r.PUT("/forgot-password", h.User.ForgotPassword)
	r.PUT("/reset-password", h.User.ResetPassword)

	userGroup := r.Group("/user")
	userGroup.Use(auth)
	{
		userGroup.PUT("/:user_id/edit", h.User.Edit)
		userGroup.POST("/change-password", h.User.ChangePassword)
	}

	communityGroup := r.Group("/communities")
	communityGroup.Use(auth)
	{
		communityGroup.GET("", h.Community.List)
		communityGroup.POST("/check-name", h.Community.CheckName)
		communityGroup.POST("/create", h.Community.Create)
		communityGroup.DELETE("/:community_id", h.Community.Delete)
		communityGroup.POST("/:community_id/give-role-to-user", h.Community.GiveRole)
		communityGroup.GET("/:community_id/role/:user_id", h.Community.GetUserRole)
		communityGroup.DELETE("/:community_id/members/:user_id", h.Community.RemoveMember)
		communityGroup.POST("/:community_id/leave", h.Community.Leave)
		communityGroup.PUT("/:community_id/change-image", h.Community.ChangeImage)
		communityGroup.GET("/:community_id/members", h.Community.GetMembers)

		communityGroup.GET("/:community_id/categories", h.Category.List)
		communityGroup.POST("/:community_id/category/check-name", h.Category.CheckName)
		communityGroup.POST("/:community_id/category/create", h.Category.Create)
		communityGroup.PUT("/categories/:category_id", h.Category.Edit)
		communityGroup.DELETE("/categories/:category_id", h.Category.Delete)
		communityGroup.POST("/categories/:category_id/migrate-posts", h.Category.MigratePosts)

		communityGroup.GET("/:community_id/posts", h.Post.ListByCommunity)
		communityGroup.GET("/categories/:category_id/posts", h.Post.ListByCategory)
		communityGroup.POST("/categories/:category_id/posts/create", h.Post.Create)
		communityGroup.GET("/posts/:post_id", h.Post.Get)
		communityGroup.PUT("/posts/:post_id", h.Post.Edit)
		communityGroup.DELETE("/posts/:post_id", h.Post.Delete)

		communityGroup.POST("/posts/:post_id/comments/create", h.Post.CreateComment)
		communityGroup.GET("/posts/:post_id/comments", h.Post.ListComments)
		communityGroup.DELETE("/posts/comments/:comment_id", h.Post.DeleteComment)

		communityGroup.POST("/posts/:post_id/react", h.Reaction.ReactToPost)
		communityGroup.POST("/posts/comments/:comment_id/react", h.Reaction.ReactToComment)
	}

	plantGroup := r.Group("/plant")
	plantGroup.Use(auth)
	{
		plantGroup.GET("", h.Plant.List)
		plantGroup.POST("", h.Plant.Create)
		plantGroup.POST("/firstOrCreate", h.Plant.FirstOrCreate)
		plantGroup.POST("/associate", h.Plant.Associate)
		plantGroup.DELETE("/disassociate/:plant_id", h.Plant.Dissociate)
		plantGroup.GET("/isAssociated/:plant_id", h.Plant.IsAssociated)
		plantGroup.GET("/getUserPlants/:user_id", h.Plant.GetUserPlants)
		plantGroup.POST("/identify", h.Plant.Identify)
	}

	imageGroup := r.Group("/image")
	imageGroup.Use(auth)
	{
		imageGroup.POST("/upload/*folder", h.Image.Upload)
		imageGroup.POST("/random-filepath", h.Image.RandomFilepath)
	}

	chatGroup := r.Group("/chat")
	chatGroup.Use(auth)
	{
		chatGroup.GET("/history/:community_id", h.Chat.History)
		chatGroup.GET("/ws/:community_id", h.Chat.Join)
	}

	r.Static("/uploads", uploadsDir)

	return r
}
