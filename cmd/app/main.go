package main

import (
	"database/sql"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/novarajewels/jewellery-backend/internal/carousel"
	"github.com/novarajewels/jewellery-backend/internal/cart"
	"github.com/novarajewels/jewellery-backend/internal/category"
	"github.com/novarajewels/jewellery-backend/internal/config"
	"github.com/novarajewels/jewellery-backend/internal/coupon"
	"github.com/novarajewels/jewellery-backend/internal/imagestore"
	"github.com/novarajewels/jewellery-backend/internal/logger"
	"github.com/novarajewels/jewellery-backend/internal/middleware"
	"github.com/novarajewels/jewellery-backend/internal/notify"
	"github.com/novarajewels/jewellery-backend/internal/order"
	"github.com/novarajewels/jewellery-backend/internal/payment"
	"github.com/novarajewels/jewellery-backend/internal/product"
	"github.com/novarajewels/jewellery-backend/internal/rate"
	"github.com/novarajewels/jewellery-backend/internal/review"
	"github.com/novarajewels/jewellery-backend/internal/user"
	"github.com/novarajewels/jewellery-backend/internal/wishlist"
)

func main() {
	_ = godotenv.Load()
	log := logger.New()
	defer log.Sync()

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()
	ensureSchema(db)

	app := fiber.New(fiber.Config{BodyLimit: 25 * 1024 * 1024})
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.RequestLogger(log))
	app.Use(middleware.Prometheus())

	app.Get("/metrics", middleware.MetricsHandler())
	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := db.Ping(); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "down"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// silver rate engine
	rateCache := rate.NewCache(newRedisClient(cfg, log))
	rateService := rate.NewService(rate.NewPostgresRepository(db), rateCache)
	rateFetcher := rate.NewFetcher(cfg.GoldAPIURL, cfg.GoldAPIKey, cfg.HTTPTimeout)
	rateHandler := rate.NewHandler(rateService, rateFetcher, log)

	images := newImageStore(cfg, log)

	productService := product.NewService(product.NewPostgresRepository(db), rateService, log)
	productHandler := product.NewHandler(productService, images, log)

	couponService := coupon.NewService(coupon.NewPostgresRepository(db))
	couponHandler := coupon.NewHandler(couponService)

	notifier := newNotifier(cfg, log)

	orderService := order.NewService(order.NewPostgresRepository(db), productService, couponService, notifier, log)
	orderHandler := order.NewHandler(orderService)

	paymentService := payment.NewService(orderService,
		payment.NewRazorpayProcessor(cfg.RazorpayKeyID, cfg.RazorpayKeySecret),
		notifier, cfg.RazorpayKeySecret, log)
	paymentHandler := payment.NewHandler(paymentService, cfg.RazorpayKeyID)

	userService := user.NewService(user.NewPostgresRepository(db))
	userHandler := user.NewHandler(userService)

	cartHandler := cart.NewHandler(cart.NewService(cart.NewPostgresRepository(db), productService))
	wishlistHandler := wishlist.NewHandler(wishlist.NewService(wishlist.NewPostgresRepository(db), productService))
	categoryHandler := category.NewHandler(category.NewService(category.NewPostgresRepository(db)))
	carouselHandler := carousel.NewHandler(carousel.NewService(carousel.NewPostgresRepository(db), images, log), images)
	reviewHandler := review.NewHandler(review.NewService(review.NewPostgresRepository(db), productService, userService))

	// public surface goes up before the JWT gate
	userHandler.RegisterPublicRoutes(app)
	rateHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	categoryHandler.RegisterPublicRoutes(app)
	carouselHandler.RegisterPublicRoutes(app)
	reviewHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	userHandler.RegisterProtectedRoutes(app)
	rateHandler.RegisterProtectedRoutes(app)
	productHandler.RegisterProtectedRoutes(app)
	couponHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	paymentHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	wishlistHandler.RegisterProtectedRoutes(app)
	categoryHandler.RegisterProtectedRoutes(app)
	carouselHandler.RegisterProtectedRoutes(app)
	reviewHandler.RegisterProtectedRoutes(app)

	refresher := rate.NewRefresher(rateService, rateFetcher, log)
	if cfg.GoldAPIKey != "" {
		if err := refresher.Start(cfg.RateCron); err != nil {
			log.Fatalw("rate refresher failed to start", "error", err)
		}
		defer refresher.Stop()
	} else {
		log.Warn("GOLD_API_KEY not set; automatic silver rate refresh disabled")
	}

	log.Fatal(app.Listen(":8080"))
}

func mustOpenDB(url string) *sql.DB {
	if url == "" {
		panic("DATABASE_URL is not set")
	}
	db, err := sql.Open("pgx", url)
	if err != nil {
		panic(err)
	}
	if err := db.Ping(); err != nil {
		panic(err)
	}
	return db
}

func newRedisClient(cfg *config.Config, log *zap.SugaredLogger) *redis.Client {
	if cfg.RedisAddr == "" {
		log.Warn("REDIS_ADDR not set; rate cache disabled")
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

func newImageStore(cfg *config.Config, log *zap.SugaredLogger) imagestore.Store {
	if cfg.CloudinaryURL == "" {
		log.Warn("CLOUDINARY_URL not set; uploaded images will not be persisted")
		return imagestore.NewInMemory()
	}
	store, err := imagestore.NewCloudinary(cfg.CloudinaryURL, cfg.CloudinaryFolder)
	if err != nil {
		log.Fatalw("cloudinary setup failed", "error", err)
	}
	return store
}

func newNotifier(cfg *config.Config, log *zap.SugaredLogger) *notify.Service {
	sinks := make([]notify.Sink, 0, 3)
	if cfg.SMTPUser != "" {
		sinks = append(sinks, notify.NewEmailSink(
			cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass,
			cfg.EmailFrom, cfg.StoreInbox))
	}
	if cfg.TelegramBotToken != "" {
		sink, err := notify.NewTelegramSink(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			log.Warnw("telegram sink setup failed", "error", err)
		} else {
			sinks = append(sinks, sink)
		}
	}
	if cfg.AMQPURL != "" {
		sink, err := notify.NewAMQPSink(cfg.AMQPURL, cfg.OrderExchange)
		if err != nil {
			log.Warnw("amqp sink setup failed", "error", err)
		} else {
			sinks = append(sinks, sink)
		}
	}
	return notify.NewService(log, sinks...)
}
