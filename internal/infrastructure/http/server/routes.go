package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/yuzvak/herbal-storefront/internal/infrastructure/http/middleware"
	"github.com/yuzvak/herbal-storefront/internal/infrastructure/monitoring"
)

const requestTimeout = 30 * time.Second

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.NewLoggingMiddleware(s.logger))
	r.Use(middleware.NewRecoveryMiddleware(s.logger))
	r.Use(monitoring.WrapHandler)
	r.Use(s.corsMiddleware)
	r.Use(chimw.Timeout(requestTimeout))

	if s.cfg.MetricsAddr == "" {
		r.Handle("/metrics", monitoring.Handler())
	}
	r.Get("/health", s.handlers.Health.HandleHealth)

	r.Route("/storefronts/{variant}", func(r chi.Router) {
		r.Use(middleware.NewSessionMiddleware(middleware.SessionConfig{
			CookieName: s.cfg.SessionCookie,
			Secure:     s.cfg.SecureCookie,
		}, s.codeGen))

		r.Get("/products", s.handlers.Product.HandleListProducts)
		r.Get("/products/{id}", s.handlers.Product.HandleGetProduct)

		r.Get("/cart", s.handlers.Cart.HandleGetCart)
		r.Post("/cart/items", s.handlers.Cart.HandleAddItem)
		r.Put("/cart/items/{id}", s.handlers.Cart.HandleUpdateItem)
		r.Delete("/cart/items/{id}", s.handlers.Cart.HandleRemoveItem)

		r.Post("/checkout", s.handlers.Checkout.HandleCheckout)
		r.Get("/quick-order/quote", s.handlers.Checkout.HandleQuote)
		r.Post("/quick-order", s.handlers.Checkout.HandleQuickOrder)
		r.Post("/form/validate", s.handlers.Checkout.HandleValidateForm)

		r.Get("/contact/call", s.handlers.Contact.HandleCall)
		r.Get("/contact/email", s.handlers.Contact.HandleEmail)

		r.Get("/toasts", s.handlers.Toast.HandleListToasts)
	})

	return r
}

// corsMiddleware allows credentialed requests from configured origins only.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Origin")

		if origin := r.Header.Get("Origin"); s.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type")
			w.Header().Set("Access-Control-Max-Age", "300")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) originAllowed(origin string) bool {
	if origin == "" {
		return false
	}
	for _, allowed := range s.cfg.AllowedOrigins {
		if strings.EqualFold(strings.TrimSuffix(allowed, "/"), origin) {
			return true
		}
	}
	return false
}
