package handler

import (
	"net/http"

	"github.com/Dan9191/calc-hub/internal/config"
	"github.com/Dan9191/calc-hub/internal/middleware"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// NewRouter wires every route and the middleware chain
func NewRouter(h *Handler, cfg *config.Config, log *logrus.Logger) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.AccessLog(log), middleware.Compression)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	// Public routes
	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/sitemap.xml", h.Sitemap).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()

	calcs := api.PathPrefix("/calc").Subrouter()
	calcs.HandleFunc("/odds/convert", h.ConvertOdds).Methods("POST")
	calcs.HandleFunc("/odds/margin", h.Margin).Methods("POST")
	calcs.HandleFunc("/kelly", h.Kelly).Methods("POST")
	calcs.HandleFunc("/parlay", h.Parlay).Methods("POST")
	calcs.HandleFunc("/expected-value", h.ExpectedValue).Methods("POST")
	calcs.HandleFunc("/mortgage", h.Mortgage).Methods("POST")
	calcs.HandleFunc("/mining", h.Mining).Methods("POST")
	calcs.HandleFunc("/body-fat", h.BodyFat).Methods("POST")
	calcs.HandleFunc("/calories", h.Calories).Methods("POST")
	calcs.HandleFunc("/bill-split", h.BillSplit).Methods("POST")
	calcs.HandleFunc("/chance/coin", h.CoinChance).Methods("POST")
	calcs.HandleFunc("/chance/dice", h.DiceChance).Methods("POST")
	calcs.HandleFunc("/chance/lottery", h.LotteryChance).Methods("POST")
	calcs.HandleFunc("/chance/roulette", h.RouletteChance).Methods("POST")

	api.HandleFunc("/games/coin", h.FlipCoin).Methods("POST")
	api.HandleFunc("/games/dice", h.RollDice).Methods("POST")
	api.HandleFunc("/games/roulette", h.SpinRoulette).Methods("POST")
	api.HandleFunc("/games/picker", h.PickName).Methods("POST")

	api.HandleFunc("/rates/mortgage", h.MortgageRate).Methods("GET")
	api.HandleFunc("/content/{kind}", h.ListContent).Methods("GET")
	api.HandleFunc("/content/{kind}/{id}", h.GetContent).Methods("GET")
	api.HandleFunc("/admin/login", h.Login).Methods("POST")

	// Protected routes
	admin := api.PathPrefix("/admin/content").Subrouter()
	admin.Use(middleware.AuthMiddleware(cfg))
	admin.HandleFunc("/{kind}", h.CreateContent).Methods("POST")
	admin.HandleFunc("/{kind}/{id}", h.UpdateContent).Methods("PUT")
	admin.HandleFunc("/{kind}/{id}", h.DeleteContent).Methods("DELETE")

	cors := handlers.CORS(
		handlers.AllowedOrigins(cfg.CORSOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", middleware.RequestIDHeader}),
		handlers.ExposedHeaders([]string{middleware.RequestIDHeader}),
	)
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(log),
		handlers.PrintRecoveryStack(true),
	)
	return recovery(cors(r))
}
