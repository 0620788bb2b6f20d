package webserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response is the envelope shared by every JSON endpoint.
type Response struct {
	Success bool                `json:"success"`
	Data    interface{}         `json:"data,omitempty"`
	Meta    interface{}         `json:"meta,omitempty"`
	Links   *PageLinks          `json:"links,omitempty"`
	Message string              `json:"message,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// PageMeta describes one page of a paginated listing.
type PageMeta struct {
	CurrentPage int   `json:"current_page"`
	From        int   `json:"from"`
	To          int   `json:"to"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

// PageLinks carries pagination navigation URLs.
type PageLinks struct {
	First string `json:"first"`
	Last  string `json:"last"`
	Prev  string `json:"prev,omitempty"`
	Next  string `json:"next,omitempty"`
}

// NewPageMeta computes pagination metadata for a page of rows.
func NewPageMeta(page, perPage, rowCount int, total int64) PageMeta {
	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}
	meta := PageMeta{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		LastPage:    lastPage,
	}
	if rowCount > 0 {
		meta.From = (page-1)*perPage + 1
		meta.To = (page-1)*perPage + rowCount
	}
	return meta
}

// NewPageLinks builds the navigation URLs for a paginated listing.
func NewPageLinks(baseURL string, meta PageMeta) *PageLinks {
	pageURL := func(p int) string {
		return fmt.Sprintf("%s?page=%d", baseURL, p)
	}
	links := &PageLinks{
		First: pageURL(1),
		Last:  pageURL(meta.LastPage),
	}
	if meta.CurrentPage > 1 {
		links.Prev = pageURL(meta.CurrentPage - 1)
	}
	if meta.CurrentPage < meta.LastPage {
		links.Next = pageURL(meta.CurrentPage + 1)
	}
	return links
}

// OK writes a success envelope.
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

// OKMessage writes a success envelope carrying only a message.
func OKMessage(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, Response{Success: true, Message: message})
}

// Created writes a 201 envelope.
func Created(c echo.Context, data interface{}, message string) error {
	return c.JSON(http.StatusCreated, Response{Success: true, Data: data, Message: message})
}

// Fail writes a failure envelope with the given status.
func Fail(c echo.Context, status int, message string) error {
	return c.JSON(status, Response{Success: false, Message: message})
}

// FailValidation writes the 422 field-keyed validation envelope.
func FailValidation(c echo.Context, errs map[string][]string) error {
	return c.JSON(http.StatusUnprocessableEntity, Response{
		Success: false,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// FieldError builds a single-field validation error payload.
func FieldError(field, message string) map[string][]string {
	return map[string][]string{field: {message}}
}
