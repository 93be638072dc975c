package instance

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/locallibrary/internal/platform/constants"
	requestutil "github.com/taibuivan/locallibrary/internal/platform/request"
	"github.com/taibuivan/locallibrary/internal/platform/respond"
	"github.com/taibuivan/locallibrary/pkg/date"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listInstances)
	router.Get("/overdue", handler.listOverdue)
	router.Get("/activity", handler.recentActivity)
	router.Get("/{id}", handler.getInstance)
	router.Post("/", handler.createInstance)
	router.Delete("/{id}", handler.deleteInstance)

	// Lending operations
	router.Put("/{id}/status", handler.setStatus)
	router.Post("/{id}/checkout", handler.checkOut)
	router.Post("/{id}/return", handler.lend(handler.service.Return))
	router.Post("/{id}/reserve", handler.lend(handler.service.Reserve))
	router.Post("/{id}/maintenance", handler.lend(handler.service.SendToMaintenance))
}

type createRequest struct {
	BookID  *int64 `json:"book_id"`
	Imprint string `json:"imprint"`
}

type statusRequest struct {
	Status  Status     `json:"status"`
	DueBack *date.Date `json:"due_back"`
}

type checkOutRequest struct {
	DueBack date.Date `json:"due_back"`
}

// listInstances accepts ?book_id and ?status filters.
func (handler *Handler) listInstances(writer http.ResponseWriter, request *http.Request) {
	var filter Filter
	var err error

	if filter.BookID, err = requestutil.QueryInt64(request, FieldBookID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if raw := request.URL.Query().Get(FieldStatus); raw != "" {
		status := Status(raw)
		filter.Status = &status
	}

	instances, err := handler.service.ListInstances(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.List(writer, instances)
}

// listOverdue accepts ?today=YYYY-MM-DD, defaulting to the server's date.
func (handler *Handler) listOverdue(writer http.ResponseWriter, request *http.Request) {
	today, err := requestutil.QueryDate(request, "today")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if today == nil {
		now := date.Today()
		today = &now
	}

	instances, err := handler.service.ListOverdue(request.Context(), *today)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.List(writer, instances)
}

func (handler *Handler) recentActivity(writer http.ResponseWriter, request *http.Request) {
	limit := requestutil.QueryInt(request, "limit", constants.FeedDefaultLimit)

	transitions, err := handler.service.RecentActivity(request.Context(), limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.List(writer, transitions)
}

func (handler *Handler) getInstance(writer http.ResponseWriter, request *http.Request) {
	instance, err := handler.service.GetInstance(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, instance)
}

func (handler *Handler) createInstance(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	instance, err := handler.service.CreateInstance(request.Context(), input.BookID, input.Imprint)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, instance)
}

func (handler *Handler) deleteInstance(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteInstance(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) setStatus(writer http.ResponseWriter, request *http.Request) {
	var input statusRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	instance, err := handler.service.SetStatus(request.Context(), requestutil.Param(request, "id"), input.Status, input.DueBack)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, instance)
}

func (handler *Handler) checkOut(writer http.ResponseWriter, request *http.Request) {
	var input checkOutRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	instance, err := handler.service.CheckOut(request.Context(), requestutil.Param(request, "id"), input.DueBack)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, instance)
}

// lend adapts a bodiless lending operation to a handler.
func (handler *Handler) lend(operation func(context context.Context, id string) (*Instance, error)) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		instance, err := operation(request.Context(), requestutil.Param(request, "id"))
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, instance)
	}
}
