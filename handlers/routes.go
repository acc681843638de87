package handlers

import (
	"github.com/gorilla/mux"
)

func (h *Handler) Routes() *mux.Router {
	router := mux.NewRouter()
	router.Use(h.ErrorHandleMiddleware, h.LoggingMiddleware, h.GuardMiddleware)

	router.HandleFunc("/", h.Home).Methods("GET")
	router.HandleFunc("/products/{id}", h.GetProduct).Methods("GET")
	router.HandleFunc("/brands", h.GetBrands).Methods("GET")
	router.HandleFunc("/categories", h.GetCategories).Methods("GET")

	router.HandleFunc("/cart", h.GetCart).Methods("GET")
	router.HandleFunc("/cart", h.ClearCart).Methods("DELETE")
	router.HandleFunc("/cart/items", h.AddToCart).Methods("POST")
	router.HandleFunc("/cart/items/{id}", h.UpdateCartItem).Methods("PUT")
	router.HandleFunc("/cart/items/{id}", h.DeleteFromCart).Methods("DELETE")

	router.HandleFunc("/login", h.LoginView).Methods("GET")
	router.HandleFunc("/login", h.Login).Methods("POST")
	router.HandleFunc("/register", h.Register).Methods("POST")
	router.HandleFunc("/logout", h.Logout).Methods("POST")

	router.HandleFunc("/profile", h.Profile).Methods("GET")
	router.HandleFunc("/checkout", h.Checkout).Methods("GET")

	return router
}
