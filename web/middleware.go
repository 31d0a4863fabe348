package web

import (
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"tripmate/config"
)

const sessionKey = "session"

func CorsConfig() cors.Config {
	corsConf := cors.DefaultConfig()
	corsConf.AllowAllOrigins = true
	corsConf.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConf.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Requested-With", "X-User-ID"}
	corsConf.AllowCredentials = true
	corsConf.MaxAge = 1 * 3600 // 1 hours
	return corsConf
}

func limiterMiddleWare() gin.HandlerFunc {
	rate := limiter.Rate{
		Period: 1 * time.Hour,
		Limit:  1000, // 1000 requests per hour
	}
	store := memory.NewStore()
	instance := limiter.New(store, rate)
	middleware := mgin.NewMiddleware(instance)

	return middleware
}

// SessionMiddleware resolves the acting user from the X-User-ID header.
// A missing or malformed header falls back to the configured default user.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := strconv.Atoi(c.GetHeader("X-User-ID"))
		c.Set(sessionKey, config.NewSession(id))
		c.Next()
	}
}

func sessionFrom(c *gin.Context) config.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(config.Session); ok {
			return s
		}
	}
	return config.NewSession(0)
}

func setupMiddlewares(r *gin.Engine, isDev bool) {
	if !isDev {
		r.Use(limiterMiddleWare())
	}
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(cors.New(CorsConfig()))
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(secure.New(secure.Config{
		STSSeconds:           31536000, // 1 year
		STSIncludeSubdomains: true,
		FrameDeny:            true,
		ContentTypeNosniff:   true,
		BrowserXssFilter:     true,
		ReferrerPolicy:       "strict-origin-when-cross-origin",
	}))
	r.Use(SessionMiddleware())
}
