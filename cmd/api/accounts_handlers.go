package main

import (
	"errors"
	"net/http"

	"cinelist/proj/internal/lib/validator"
	"cinelist/proj/internal/services/accounts"
)

type registerInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72" errorMsg:"Password must be between 8 and 72 characters long"`
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateAccountInput struct {
	Name     string `json:"name" validate:"omitempty,max=100"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=8,max=72" errorMsg:"Password must be between 8 and 72 characters long"`
}

func (app *Application) register(w http.ResponseWriter, r *http.Request) {
	var input registerInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	user, err := app.Services.Accounts.Register(r.Context(), input.Name, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, accounts.ErrEmailTaken) {
			app.Http.Conflict(w, r, err.Error())
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Created(w, r, envelop{"user": user}, "Account created")
}

func (app *Application) login(w http.ResponseWriter, r *http.Request) {
	var input loginInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	user, token, err := app.Services.Accounts.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, accounts.ErrInvalidCredentials) {
			app.Http.Unauthorized(w, r, err.Error())
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"token": token, "user": user}, "Success")
}

func (app *Application) getAccount(w http.ResponseWriter, r *http.Request) {
	user := app.authenticatedUser(r)
	app.Http.Ok(w, r, envelop{"user": user}, "")
}

func (app *Application) updateAccount(w http.ResponseWriter, r *http.Request) {
	var input updateAccountInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	caller := app.authenticatedUser(r)
	user, err := app.Services.Accounts.Update(r.Context(), caller.Email, input.Name, input.Email, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, accounts.ErrEmailTaken):
			app.Http.Conflict(w, r, err.Error())
		case errors.Is(err, accounts.ErrUserNotFound):
			app.Http.NotFound(w, r, err.Error())
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Ok(w, r, envelop{"user": user}, "Account updated")
}

func (app *Application) deleteAccount(w http.ResponseWriter, r *http.Request) {
	caller := app.authenticatedUser(r)
	if err := app.Services.Accounts.Delete(r.Context(), caller.Email); err != nil {
		if errors.Is(err, accounts.ErrUserNotFound) {
			app.Http.NotFound(w, r, err.Error())
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, nil, "Account deleted")
}
