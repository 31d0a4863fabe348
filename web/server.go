// Package web exposes the trip companion as a JSON API over gin.
package web

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"tripmate/gateway"
	"tripmate/mq/mq"
	st "tripmate/store/store"
)

// AIGateway is the slice of the generative gateway the handlers use.
// Implemented by *gateway.Client; tests substitute a stub.
type AIGateway interface {
	PlaceInfo(ctx context.Context, placeName string) gateway.Info
	TravelTips(ctx context.Context) gateway.Info
	ExtractLocations(ctx context.Context, narrative string) []string
	CaptionImage(ctx context.Context, imageB64, mimeType string) string
	CaptionChoices(ctx context.Context, imageB64, mimeType string) []string
}

type ServiceConfig struct {
	IsDev bool
	Port  string
}

type Server struct {
	store st.TripStoreWrapper
	queue mq.TripMessageQueueWrapper
	ai    AIGateway
	now   func() time.Time
}

type Option func(*Server)

// WithClock overrides the server's time source for date-dependent views.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

func NewServer(store st.TripStoreWrapper, queue mq.TripMessageQueueWrapper, ai AIGateway, opts ...Option) *Server {
	s := &Server{store: store, queue: queue, ai: ai, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router(cfg ServiceConfig) *gin.Engine {
	if !cfg.IsDev {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	setupMiddlewares(r, cfg.IsDev)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/home", s.getHome)
		api.GET("/itinerary", s.getItinerary)
		api.GET("/itinerary/:day/locations", s.getDayLocations)
		api.GET("/tips", s.getTips)

		api.GET("/expenses", s.listExpenses)
		api.POST("/expenses", s.addExpense)
		api.DELETE("/expenses/:id", s.deleteExpense)
		api.GET("/expenses/settlement", s.getSettlement)

		api.GET("/photos", s.listPhotos)
		api.POST("/photos", s.addPhoto)
		api.POST("/photos/captions", s.captionChoices)

		api.GET("/places", s.listPlaces)
		api.POST("/places", s.addPlace)
		api.DELETE("/places/:id", s.deletePlace)
		api.POST("/places/:id/visited", s.togglePlaceVisited)
		api.GET("/places/:id/info", s.getPlaceInfo)

		api.GET("/todos", s.listTodos)
		api.POST("/todos", s.addTodo)
		api.POST("/todos/:id/toggle", s.toggleTodo)
		api.DELETE("/todos/:id", s.deleteTodo)

		api.GET("/chat/ws", s.chatWebSocket)
		api.GET("/chat/:userID", s.getConversation)
		api.POST("/chat/:userID", s.sendMessage)

		api.GET("/friends", s.listFriends)
		api.PUT("/friends/:id/avatar", s.updateAvatar)

		api.GET("/notifications/ws", s.notificationWebSocket)
	}

	return r
}

// Serve runs the API on the configured port, blocking until the listener
// fails.
func (s *Server) Serve(cfg ServiceConfig) error {
	r := s.Router(cfg)
	addr := ":" + cfg.Port
	if cfg.Port == "" {
		addr = ":8080"
	}
	return r.Run(addr)
}
