package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nikolayk812/mimoo-storefront/internal/cart"
	"github.com/nikolayk812/mimoo-storefront/internal/catalog"
	"github.com/nikolayk812/mimoo-storefront/internal/domain"
	"github.com/nikolayk812/mimoo-storefront/internal/view"
	"go.uber.org/zap"
)

type Handler struct {
	registry *cart.Registry
	catalog  *catalog.Catalog
	sessions sessionCookie
	logger   *zap.Logger
}

type Options struct {
	SessionCookie    string
	SessionCookieTTL time.Duration
}

func NewHandler(registry *cart.Registry, c *catalog.Catalog, opts Options, logger *zap.Logger) *Handler {
	if opts.SessionCookie == "" {
		opts.SessionCookie = "mimoo_session"
	}
	if opts.SessionCookieTTL <= 0 {
		opts.SessionCookieTTL = 30 * 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Handler{
		registry: registry,
		catalog:  c,
		sessions: sessionCookie{name: opts.SessionCookie, ttl: opts.SessionCookieTTL},
		logger:   logger,
	}
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type productResponse struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Image    string `json:"image"`
	Category string `json:"category"`
	InStock  bool   `json:"inStock"`
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := catalog.Filter{
		Categories:  q["category"],
		InStockOnly: q.Get("inStock") == "true",
	}

	for param, dst := range map[string]**domain.Money{"min": &filter.MinPrice, "max": &filter.MaxPrice} {
		v := q.Get(param)
		if v == "" {
			continue
		}
		m, err := domain.ParseMoney(domain.DefaultCurrency.String() + " " + v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid "+param)
			return
		}
		*dst = &m
	}

	products := h.catalog.Filter(filter)
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, productResponse{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price.String(),
			Image:    p.Image,
			Category: p.Category,
			InStock:  p.InStock,
		})
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, h.drawer(store).Model())
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}

	productID, err := readProductID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid productId")
		return
	}

	product, err := h.catalog.Find(productID)
	if errors.Is(err, catalog.ErrProductNotFound) {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load product")
		return
	}
	if !product.InStock {
		writeError(w, http.StatusConflict, "product is out of stock")
		return
	}

	store.AddItem(r.Context(), product.Candidate())
	h.respond(w, r, store)
}

func (h *Handler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}

	id, ok := itemID(w, r)
	if !ok {
		return
	}

	var body struct {
		Quantity *int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Quantity == nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	store.SetQuantity(r.Context(), id, *body.Quantity)
	h.respond(w, r, store)
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.itemCommand(w, r, func(d *view.Drawer, id int) {
		d.Remove(r.Context(), id)
	})
}

func (h *Handler) Increment(w http.ResponseWriter, r *http.Request) {
	h.itemCommand(w, r, func(d *view.Drawer, id int) {
		d.Increment(r.Context(), id)
	})
}

func (h *Handler) Decrement(w http.ResponseWriter, r *http.Request) {
	h.itemCommand(w, r, func(d *view.Drawer, id int) {
		d.Decrement(r.Context(), id)
	})
}

func (h *Handler) Open(w http.ResponseWriter, r *http.Request) {
	h.storeCommand(w, r, (*cart.Store).Open)
}

func (h *Handler) Close(w http.ResponseWriter, r *http.Request) {
	h.storeCommand(w, r, (*cart.Store).Close)
}

// Toggle is what the header trigger posts to.
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	h.storeCommand(w, r, func(s *cart.Store) {
		view.NewTrigger(s).Click()
	})
}

func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	h.storeCommand(w, r, func(s *cart.Store) {
		s.Clear(r.Context())
	})
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}

	if err := h.drawer(store).Checkout(r.Context()); err != nil {
		writeError(w, http.StatusNotImplemented, err.Error())
		return
	}

	h.respond(w, r, store)
}

func (h *Handler) Drawer(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.drawer(store).Render(w); err != nil {
		h.logger.Error("render drawer", zap.Error(err))
	}
}

func (h *Handler) Trigger(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := view.NewTrigger(store).Render(w); err != nil {
		h.logger.Error("render trigger", zap.Error(err))
	}
}

func (h *Handler) store(w http.ResponseWriter, r *http.Request) (*cart.Store, bool) {
	store, err := h.registry.Get(r.Context(), sessionID(r.Context()))
	if err != nil {
		h.logger.Error("resolve cart", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load cart")
		return nil, false
	}
	return store, true
}

func (h *Handler) drawer(store *cart.Store) *view.Drawer {
	return view.NewDrawer(store, h.logger)
}

func (h *Handler) itemCommand(w http.ResponseWriter, r *http.Request, fn func(d *view.Drawer, id int)) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}

	id, ok := itemID(w, r)
	if !ok {
		return
	}

	fn(h.drawer(store), id)
	h.respond(w, r, store)
}

func (h *Handler) storeCommand(w http.ResponseWriter, r *http.Request, fn func(s *cart.Store)) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}

	fn(store)
	h.respond(w, r, store)
}

// respond sends browsers posting the drawer forms back to the drawer and
// everyone else the cart state as JSON.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, store *cart.Store) {
	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		http.Redirect(w, r, "/cart/drawer", http.StatusSeeOther)
		return
	}

	writeJSON(w, http.StatusOK, h.drawer(store).Model())
}

func itemID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return 0, false
	}
	return id, true
}

func readProductID(r *http.Request) (int, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		return strconv.Atoi(r.FormValue("productId"))
	}

	var body struct {
		ProductID *int `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return 0, err
	}
	if body.ProductID == nil {
		return 0, errors.New("productId is missing")
	}
	return *body.ProductID, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{
		"error": msg,
	})
}
