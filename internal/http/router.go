package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/layby/internal/http/api"
	"github.com/MrJamesThe3rd/layby/internal/http/importcsv"
	"github.com/MrJamesThe3rd/layby/internal/http/payment"
	"github.com/MrJamesThe3rd/layby/internal/http/purchase"
	"github.com/MrJamesThe3rd/layby/internal/http/wallet"
)

type Options struct {
	AllowedOrigins []string
}

func New(
	tokens api.TokenParser,
	opts Options,
	purchasesV1 *purchase.Handler,
	paymentsV1 *payment.Handler,
	walletsV1 *wallet.Handler,
	importV1 *importcsv.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(api.Authenticate(tokens))

		r.Route("/purchases", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			purchasesV1.Routes(r)
		})

		r.Route("/payments", func(r chi.Router) {
			r.Route("/import", importV1.Routes)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				paymentsV1.Routes(r)
			})
		})

		r.Route("/wallets", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			walletsV1.WalletRoutes(r)
		})

		r.Route("/deposits", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			walletsV1.DepositRoutes(r)
		})
	})

	return router
}
