package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"luxelush/internal/auth"
	"luxelush/internal/cartstore"
	ordersvc "luxelush/internal/service/order"
	productsvc "luxelush/internal/service/product"
	reviewsvc "luxelush/internal/service/review"
	"luxelush/internal/storage"
	"luxelush/internal/webhook"
)

// Deps carries everything the router needs. Optional fields (Images,
// Carts) disable their routes when nil.
type Deps struct {
	Products *productsvc.Service
	Reviews  *reviewsvc.Service
	Orders   *ordersvc.Service

	Webhook       *webhook.Processor
	WebhookSecret string

	Carts  cartstore.Store
	Images *storage.ImageStore

	Tokens            *auth.TokenManager
	AdminEmail        string
	AdminPasswordHash string

	AllowedOrigins []string
}

// Server wraps the HTTP server setup.
type Server struct {
	httpServer *http.Server
	log        *zap.Logger
	db         *pgxpool.Pool
}

func New(addr string, log *zap.Logger, db *pgxpool.Pool, deps Deps) *Server {
	router := buildRouter(log, db, deps)

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
		log: log,
		db:  db,
	}
}

func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
