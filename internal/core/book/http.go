package book

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

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listBooks)
	router.Get("/{id}", handler.getBook)
	router.Post("/", handler.createBook)
	router.Put("/{id}", handler.updateBook)
	router.Delete("/{id}", handler.deleteBook)
}

// listBooks accepts ?author_id, ?genre_id and ?language_id filters.
func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	var filter Filter
	var err error

	if filter.AuthorID, err = requestutil.QueryInt64(request, FieldAuthorID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if filter.GenreID, err = requestutil.QueryInt64(request, "genre_id"); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if filter.LanguageID, err = requestutil.QueryInt64(request, FieldLanguageID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	books, err := handler.service.ListBooks(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.List(writer, books)
}

func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.Int64(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.GetBook(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, book)
}

func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {
	var input Book
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.CreateBook(request.Context(), &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, book)
}

func (handler *Handler) updateBook(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.Int64(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Book
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.UpdateBook(request.Context(), bookID, &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, book)
}

func (handler *Handler) deleteBook(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.Int64(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteBook(request.Context(), bookID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
