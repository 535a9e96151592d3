package httpapi

import (
	"net/http"
	"strconv"

	"github.com/Mark6482/restaurant-service/internal/domain"
	"github.com/Mark6482/restaurant-service/internal/service"
)

func (h *Handler) getCategories(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	categories, err := h.Categories.List(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req categoryCreateRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.Categories.Create(r.Context(), &domain.MenuCategory{
		RestaurantID: id,
		Name:         req.Name,
		Description:  req.Description,
		OrderIndex:   req.OrderIndex,
		IsActive:     true,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	if result.Outcome != service.CategoryCreated {
		writeError(w, r, result.Err())
		return
	}
	writeJSON(w, http.StatusCreated, result.Category)
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	categoryID, err := pathInt(r, "categoryId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req categoryUpdateRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	category, err := h.Categories.Update(r.Context(), id, categoryID, service.CategoryUpdate{
		Name:        req.Name,
		Description: req.Description,
		OrderIndex:  req.OrderIndex,
		IsActive:    req.IsActive,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	categoryID, err := pathInt(r, "categoryId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	force := false
	if raw := r.URL.Query().Get("force"); raw != "" {
		if force, err = strconv.ParseBool(raw); err != nil {
			writeError(w, r, badRequest("invalid force"))
			return
		}
	}

	if err := h.Categories.Delete(r.Context(), id, categoryID, force); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse{Message: "Category deleted successfully", DeletedID: categoryID})
}

func (h *Handler) getCategoryDishes(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	categoryID, err := pathInt(r, "categoryId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	dishes, err := h.Categories.Dishes(r.Context(), id, categoryID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dishes)
}

func (h *Handler) createDish(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	categoryID, err := pathInt(r, "categoryId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req dishCreateRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	dish, err := req.toDomain(categoryID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Dishes.Create(r.Context(), id, dish); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dish)
}

func (h *Handler) getDish(w http.ResponseWriter, r *http.Request) {
	id, dishID, err := dishPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	dish, err := h.Dishes.Get(r.Context(), id, dishID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dish)
}

func (h *Handler) updateDish(w http.ResponseWriter, r *http.Request) {
	id, dishID, err := dishPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req dishUpdateRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	upd, err := req.toUpdate()
	if err != nil {
		writeError(w, r, err)
		return
	}
	dish, err := h.Dishes.Update(r.Context(), id, dishID, upd)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dish)
}

func (h *Handler) updateDishAvailability(w http.ResponseWriter, r *http.Request) {
	id, dishID, err := dishPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req availabilityRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	dish, err := h.Dishes.SetAvailability(r.Context(), id, dishID, *req.IsAvailable)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dish)
}

func (h *Handler) deleteDish(w http.ResponseWriter, r *http.Request) {
	id, dishID, err := dishPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Dishes.Delete(r.Context(), id, dishID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse{Message: "Dish deleted successfully", DeletedID: dishID})
}

func dishPath(r *http.Request) (int, int, error) {
	id, err := pathInt(r, "id")
	if err != nil {
		return 0, 0, err
	}
	dishID, err := pathInt(r, "dishId")
	if err != nil {
		return 0, 0, err
	}
	return id, dishID, nil
}
