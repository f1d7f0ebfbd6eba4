package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"cinelist/proj/internal/domain/models"

	"github.com/go-chi/chi/v5"
)

// extractIntParam parses a numeric URL parameter. Movie and comment ids are
// numeric end-to-end; anything else is a client error, never coerced.
func (app *Application) extractIntParam(w http.ResponseWriter, r *http.Request, name string) (id int64, extracted bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		app.Http.BadRequest(w, r, fmt.Sprintf("invalid %s, must be an integer", name))
		return 0, false
	}
	if id < 1 {
		app.Http.BadRequest(w, r, fmt.Sprintf("%s must be greater than zero", name))
		return 0, false
	}
	return id, true
}

// authenticatedUser returns the user the Authenticate middleware resolved for
// this request. Routes behind requireAuthenticatedUser always have one.
func (app *Application) authenticatedUser(r *http.Request) *models.User {
	user, ok := r.Context().Value(CtxKeyUser).(*models.User)
	if !ok || user == nil {
		return models.AnonymousUser
	}
	return user
}

// assertCallerIs rejects requests whose asserted userId does not match the
// authenticated identity. The client keeps sending explicit userId fields for
// compatibility, but they are never trusted on their own.
func (app *Application) assertCallerIs(w http.ResponseWriter, r *http.Request, userID string) bool {
	user := app.authenticatedUser(r)
	if user.Email != userID {
		app.Http.Forbidden(w, r, "you can only manage your own data")
		return false
	}
	return true
}

func (app *Application) readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576 // 1MB
	src := http.MaxBytesReader(w, r.Body, int64(maxBytes))
	defer io.Copy(io.Discard, src)
	dec := json.NewDecoder(src)
	dec.DisallowUnknownFields()
	err := dec.Decode(dst)
	if err != nil {
		return handleJsonErr(err)
	}
	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func handleJsonErr(err error) error {
	var syntaxError *json.SyntaxError
	var unmarshalTypeError *json.UnmarshalTypeError
	var invalidUnmarshalError *json.InvalidUnmarshalError
	switch {
	case errors.As(err, &syntaxError):
		return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)

	case errors.Is(err, io.ErrUnexpectedEOF):
		return errors.New("body contains badly-formed JSON")

	case errors.As(err, &unmarshalTypeError):
		if unmarshalTypeError.Field != "" {
			return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
		}
		return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)

	case errors.Is(err, io.EOF):
		return errors.New("body must not be empty")

	case errors.As(err, &invalidUnmarshalError):
		panic(err)
	default:
		return err
	}
}
