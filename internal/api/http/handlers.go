package httpapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/Mark6482/restaurant-service/internal/service"
)

const apiVersion = "1.0.0"

type Handler struct {
	Restaurants service.RestaurantServiceInterface
	Categories  service.CategoryServiceInterface
	Dishes      service.DishServiceInterface
	Health      service.HealthServiceInterface
	QR          service.QRServiceInterface

	validate *validator.Validate
}

func NewHandler(
	restSvc service.RestaurantServiceInterface,
	categorySvc service.CategoryServiceInterface,
	dishSvc service.DishServiceInterface,
	healthSvc service.HealthServiceInterface,
	qrSvc service.QRServiceInterface,
) *Handler {
	return &Handler{
		Restaurants: restSvc,
		Categories:  categorySvc,
		Dishes:      dishSvc,
		Health:      healthSvc,
		QR:          qrSvc,
		validate:    newValidator(),
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.root).Methods("GET")
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/restaurants", h.getRestaurants).Methods("GET")
	r.HandleFunc("/api/restaurants", h.createRestaurant).Methods("POST")
	r.HandleFunc("/api/restaurants/{id}", h.getRestaurant).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}", h.updateRestaurant).Methods("PUT")
	r.HandleFunc("/api/restaurants/{id}", h.deleteRestaurant).Methods("DELETE")
	r.HandleFunc("/api/restaurants/{id}/menu", h.getMenu).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}/reviews", h.getReviews).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}/with-reviews", h.getRestaurantWithReviews).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}/rating", h.getRating).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}/qrcode", h.getMenuQRCode).Methods("GET")

	r.HandleFunc("/api/restaurants/{id}/menu/categories", h.getCategories).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}/menu/categories", h.createCategory).Methods("POST")
	r.HandleFunc("/api/restaurants/{id}/menu/categories/{categoryId}", h.updateCategory).Methods("PUT")
	r.HandleFunc("/api/restaurants/{id}/menu/categories/{categoryId}", h.deleteCategory).Methods("DELETE")
	r.HandleFunc("/api/restaurants/{id}/menu/categories/{categoryId}/dishes", h.getCategoryDishes).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}/menu/categories/{categoryId}/dishes", h.createDish).Methods("POST")

	r.HandleFunc("/api/restaurants/{id}/menu/dishes/{dishId}", h.getDish).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}/menu/dishes/{dishId}", h.updateDish).Methods("PUT")
	r.HandleFunc("/api/restaurants/{id}/menu/dishes/{dishId}", h.deleteDish).Methods("DELETE")
	r.HandleFunc("/api/restaurants/{id}/menu/dishes/{dishId}/availability", h.updateDishAvailability).Methods("PUT")
}

func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Restaurant Service API",
		"version": apiVersion,
	})
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	report := h.Health.Check(r.Context())
	status := http.StatusOK
	switch report.Status {
	case service.StatusDegraded:
		status = http.StatusMultiStatus
	case service.StatusError:
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, report)
}

func (h *Handler) getRestaurants(w http.ResponseWriter, r *http.Request) {
	skip, err := queryInt(r, "skip", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit", 100)
	if err != nil {
		writeError(w, r, err)
		return
	}
	restaurants, err := h.Restaurants.List(r.Context(), skip, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurants)
}

func (h *Handler) createRestaurant(w http.ResponseWriter, r *http.Request) {
	var req restaurantCreateRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	rest := req.toDomain()
	if err := h.Restaurants.Create(r.Context(), rest); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rest)
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	rest, err := h.Restaurants.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

func (h *Handler) updateRestaurant(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req restaurantUpdateRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	rest, err := h.Restaurants.Update(r.Context(), id, req.toUpdate())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

func (h *Handler) deleteRestaurant(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Restaurants.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse{Message: "Restaurant deleted successfully", DeletedID: id})
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	menu, err := h.Restaurants.Menu(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, menu)
}

func (h *Handler) getReviews(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	skip, err := queryInt(r, "skip", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit", 100)
	if err != nil {
		writeError(w, r, err)
		return
	}
	reviews, err := h.Restaurants.Reviews(r.Context(), id, skip, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (h *Handler) getRestaurantWithReviews(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	rest, err := h.Restaurants.WithReviews(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

func (h *Handler) getRating(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	snap, err := h.Restaurants.Rating(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *Handler) getMenuQRCode(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	png, err := h.QR.MenuQRCode(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
