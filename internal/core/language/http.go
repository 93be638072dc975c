package language

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/locallibrary/internal/platform/request"
	"github.com/taibuivan/locallibrary/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type languageInput struct {
	Name string `json:"name"`
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listLanguages)
	router.Get("/{id}", handler.getLanguage)
	router.Post("/", handler.createLanguage)
	router.Patch("/{id}", handler.renameLanguage)
	router.Delete("/{id}", handler.deleteLanguage)
}

func (handler *Handler) listLanguages(writer http.ResponseWriter, request *http.Request) {
	languages, err := handler.service.ListLanguages(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.List(writer, languages)
}

func (handler *Handler) getLanguage(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	language, err := handler.service.GetLanguage(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, language)
}

func (handler *Handler) createLanguage(writer http.ResponseWriter, request *http.Request) {
	var input languageInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	language, err := handler.service.CreateLanguage(request.Context(), input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, language)
}

func (handler *Handler) renameLanguage(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input languageInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	language, err := handler.service.RenameLanguage(request.Context(), id, input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, language)
}

func (handler *Handler) deleteLanguage(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteLanguage(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
