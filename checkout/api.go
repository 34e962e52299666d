package checkout

import (
	"bytes"
	_ "embed"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

//go:embed web/index.html
var indexHTML []byte

// API is a HTTP API for the checkout service
type API struct {
	checkout *Service
}

func NewAPI(checkout *Service) *API {
	return &API{
		checkout: checkout,
	}
}

func (a *API) AppendRoutes(r chi.Router) {
	r.Get("/", a.landing)
	r.Get("/index.html", a.index)
	r.Post("/order", a.createOrder)
}

func (a *API) landing(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/index.html", http.StatusFound)
}

// index writes the page directly; http.FileServer would redirect
// /index.html back to / and loop with landing.
func (a *API) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	http.ServeContent(w, r, "index.html", time.Time{}, bytes.NewReader(indexHTML))
}

// createOrder takes token from the form body or the query string. A missing
// token is forwarded as empty, and a gateway decline is still a 200.
func (a *API) createOrder(w http.ResponseWriter, r *http.Request) {
	token := r.FormValue("token")

	msg, err := a.checkout.PlaceOrder(r.Context(), token)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, msg)
}
