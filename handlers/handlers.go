package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"storefront/entities"
	"storefront/logger"
	"storefront/models"
	"storefront/services"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Handler struct {
	us    *services.SessionService
	cs    *services.CartService
	cas   services.CatalogService
	guard services.RouteGuard
	money *message.Printer
	log   *zap.Logger
}

type HandlerParams struct {
	SessionService *services.SessionService
	CartService    *services.CartService
	CatalogService services.CatalogService
	Guard          services.RouteGuard
	Logger         *zap.Logger
}

func NewHandler(params HandlerParams) *Handler {
	h := &Handler{
		us:    params.SessionService,
		cs:    params.CartService,
		cas:   params.CatalogService,
		guard: params.Guard,
		money: message.NewPrinter(language.AmericanEnglish),
		log:   logger.OrNop(params.Logger),
	}
	return h
}

type homeView struct {
	Products  []entities.Product `json:"products"`
	CartCount int                `json:"cart_count"`
	Identity  *entities.Identity `json:"identity"`
}

type cartView struct {
	entities.Cart
	FormattedTotal string `json:"formatted_total"`
}

type loginView struct {
	From          string `json:"from"`
	Authenticated bool   `json:"authenticated"`
}

type authView struct {
	Identity entities.Identity `json:"identity"`
	Redirect string            `json:"redirect"`
}

type cartItemRequest struct {
	ProductId string `json:"product_id"`
}

type quantityRequest struct {
	Quantity *int `json:"quantity"`
}

func (h *Handler) currentIdentity() *entities.Identity {
	identity, ok := h.us.CurrentIdentity()
	if !ok {
		return nil
	}
	return &identity
}

func (h *Handler) cartView(c entities.Cart) cartView {
	return cartView{Cart: c, FormattedTotal: h.formatUSD(c.Total)}
}

// formatUSD renders an amount like "$1,234.50". Only the whole part goes
// through the locale printer, as an integer, so no float rounding applies.
func (h *Handler) formatUSD(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	amount = amount.Round(2)
	whole := amount.IntPart()
	cents := amount.Sub(decimal.NewFromInt(whole)).Shift(2).IntPart()
	return sign + h.money.Sprint(currency.NarrowSymbol(currency.USD)) +
		h.money.Sprintf("%d", whole) + fmt.Sprintf(".%02d", cents)
}

// catalog

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	products, err := h.cas.GetProducts(r.Context())
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, homeView{
		Products:  products,
		CartCount: h.cs.ItemCount(),
		Identity:  h.currentIdentity(),
	})
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.cas.GetProductById(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *Handler) GetBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.cas.GetBrands(r.Context())
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, brands)
}

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.cas.GetCategories(r.Context())
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// cart

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cartView(h.cs.Snapshot()))
}

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductId == "" {
		h.log.Warn("AddToCart: bad body", zap.Error(err))
		WriteErrorResponse(w, models.ErrBadRequest)
		return
	}
	product, err := h.cas.GetProductById(r.Context(), req.ProductId)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	cart, err := h.cs.AddItem(r.Context(), product)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.cartView(cart))
}

func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req quantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Quantity == nil {
		h.log.Warn("UpdateCartItem: bad body", zap.Error(err))
		WriteErrorResponse(w, models.ErrBadRequest)
		return
	}
	cart, err := h.cs.SetQuantity(r.Context(), mux.Vars(r)["id"], *req.Quantity)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.cartView(cart))
}

func (h *Handler) DeleteFromCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cs.RemoveItem(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.cartView(cart))
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cs.Clear(r.Context())
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.cartView(cart))
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cartView(h.cs.Snapshot()))
}

// session

// LoginView is where the guard sends anonymous visitors. From is the
// sanitized location a successful login returns to.
func (h *Handler) LoginView(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, loginView{
		From:          h.guard.ReturnPath(r.URL.Query().Get("from")),
		Authenticated: h.us.IsAuthenticated(),
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		h.log.Warn("Login: bad body", zap.Error(err))
		WriteErrorResponse(w, models.ErrBadRequest)
		return
	}
	identity, err := h.us.Login(r.Context(), creds.Email, creds.Password)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, authView{
		Identity: identity,
		Redirect: h.guard.ReturnPath(r.URL.Query().Get("from")),
	})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var profile models.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		h.log.Warn("Register: bad body", zap.Error(err))
		WriteErrorResponse(w, models.ErrBadRequest)
		return
	}
	identity, err := h.us.Register(r.Context(), profile)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, authView{
		Identity: identity,
		Redirect: h.guard.ReturnPath(r.URL.Query().Get("from")),
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.us.Logout(r.Context()); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"redirect": services.HomePath})
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	identity := h.currentIdentity()
	if identity == nil {
		WriteErrorResponse(w, models.ErrUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, identity)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(jsonData)
}

func WriteErrorResponse(w http.ResponseWriter, err error) {
	var verr *models.ValidationError
	var ferr *models.FetchError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": verr.Fields})
	case errors.Is(err, models.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
	case errors.Is(err, models.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	case errors.Is(err, models.ErrNotFoundError):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.As(err, &ferr):
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": ferr.Message})
	case errors.Is(err, models.ErrBadRequest):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad request"})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "server error"})
	}
}
