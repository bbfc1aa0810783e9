package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"seedy/internal/chat"
	"seedy/internal/config"
	"seedy/internal/handler"
	"seedy/internal/model"
	"seedy/internal/pkg"
	"seedy/internal/repository/mysql"
	redisrepo "seedy/internal/repository/redis"
	"seedy/internal/router"
	"seedy/internal/service"
)

func main() {
	cfg := config.Load()

	db, err := mysql.Open(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}

	// 自动建表（开发阶段 OK）
	if err := db.AutoMigrate(
		&model.User{},
		&model.Role{},
		&model.Community{},
		&model.UserCommunity{},
		&model.Category{},
		&model.Post{},
		&model.Comment{},
		&model.PostReaction{},
		&model.CommentReaction{},
		&model.Plant{},
		&model.UserPlant{},
		&model.Message{},
		&model.CommunityOutbox{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	roleRepo := &mysql.RoleRepository{DB: db}
	if err := roleRepo.Seed(); err != nil {
		log.Fatalf("role seed: %v", err)
	}

	userRepo := &mysql.UserRepository{DB: db}
	communityRepo := &mysql.CommunityRepository{DB: db}
	memberRepo := &mysql.MemberRepository{DB: db}
	categoryRepo := &mysql.CategoryRepository{DB: db}
	postRepo := &mysql.PostRepository{DB: db}
	commentRepo := &mysql.CommentRepository{DB: db}
	reactionRepo := &mysql.ReactionRepository{DB: db}
	plantRepo := &mysql.PlantRepository{DB: db}
	messageRepo := &mysql.MessageRepository{DB: db}
	outboxRepo := &mysql.OutboxRepository{DB: db}

	// redis不可用时退化为直查
	var countCache *redisrepo.MemberCountCache
	var lock *redisrepo.DistLock
	if rdb, err := redisrepo.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		log.Printf("redis unavailable, member counts uncached: %v", err)
	} else {
		countCache = redisrepo.NewMemberCountCache(rdb)
		lock = &redisrepo.DistLock{RDB: rdb}
	}

	tokens := pkg.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	smtp := pkg.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}
	mailer := func(to, subject, htmlBody string) error {
		return pkg.SendEmail(smtp, to, subject, htmlBody)
	}

	userSvc := service.NewUserService(userRepo, tokens, mailer)
	communitySvc := service.NewCommunityService(communityRepo, memberRepo, roleRepo, countCache, lock)
	categorySvc := service.NewCategoryService(categoryRepo, memberRepo)
	postSvc := service.NewPostService(postRepo, categoryRepo, memberRepo)
	commentSvc := service.NewCommentService(commentRepo, postRepo)
	reactionSvc := service.NewReactionService(reactionRepo, postRepo, commentRepo)
	plantSvc := service.NewPlantService(plantRepo, pkg.NewPlantIdentifier(cfg.PlantAPIURL, cfg.PlantAPIKey))
	chatSvc := service.NewChatService(messageRepo)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := chat.NewHub(chatSvc)
	go hub.Run(ctx)

	sender := service.Sender(service.LogSender)
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := pkg.NewKafkaProducer(pkg.KafkaConfig{Brokers: cfg.KafkaBrokers, Topic: cfg.KafkaTopic})
		if err != nil {
			log.Fatalf("kafka: %v", err)
		}
		defer producer.Close()
		sender = service.KafkaSender(producer)
	}
	go service.NewOutboxRelayer(outboxRepo, sender).Run(ctx)

	if err := os.MkdirAll(cfg.UploadsDir, 0o755); err != nil {
		log.Fatalf("uploads dir: %v", err)
	}

	r := router.InitRouter(router.Handlers{
		User:      handler.NewUserHandler(userSvc),
		Community: handler.NewCommunityHandler(communitySvc),
		Category:  handler.NewCategoryHandler(categorySvc),
		Post:      handler.NewPostHandler(postSvc, commentSvc, reactionSvc),
		Reaction:  handler.NewReactionHandler(reactionSvc),
		Plant:     handler.NewPlantHandler(plantSvc),
		Chat:      handler.NewChatHandler(hub, chatSvc),
		Image:     handler.NewImageHandler(cfg.UploadsDir),
	}, tokens, cfg.UploadsDir)

	srv := &http.Server{Addr: cfg.ServerAddr, Handler: r}
	go func() {
		log.Printf("listening on %s", cfg.ServerAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
