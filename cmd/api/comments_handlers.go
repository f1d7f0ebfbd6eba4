package main

import (
	"errors"
	"net/http"

	"cinelist/proj/internal/lib/validator"
	"cinelist/proj/internal/services/comments"
)

type createCommentInput struct {
	MovieID int64  `json:"movieId" validate:"required,gt=0"`
	User    string `json:"user" validate:"required,email"`
	Text    string `json:"text" validate:"required"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5" errorMsg:"Rating must be an integer between 1 and 5"`
}

type updateCommentInput struct {
	Text   string `json:"text" validate:"required"`
	Rating int    `json:"rating" validate:"required,min=1,max=5" errorMsg:"Rating must be an integer between 1 and 5"`
}

func (app *Application) createComment(w http.ResponseWriter, r *http.Request) {
	var input createCommentInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	if !app.assertCallerIs(w, r, input.User) {
		return
	}
	comment, err := app.Services.Comments.Create(r.Context(), input.MovieID, input.User, input.Text, input.Rating)
	if err != nil {
		if errors.Is(err, comments.ErrInvalidRating) {
			app.Http.BadRequest(w, r, err.Error())
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Created(w, r, envelop{"comment": comment}, "Comment posted")
}

func (app *Application) listComments(w http.ResponseWriter, r *http.Request) {
	movieID, ok := app.extractIntParam(w, r, "id")
	if !ok {
		return
	}
	list, err := app.Services.Comments.ListForMovie(r.Context(), movieID)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"comments": list}, "")
}

func (app *Application) updateComment(w http.ResponseWriter, r *http.Request) {
	commentID, ok := app.extractIntParam(w, r, "id")
	if !ok {
		return
	}
	var input updateCommentInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	caller := app.authenticatedUser(r)
	comment, err := app.Services.Comments.Update(r.Context(), commentID, caller.Email, input.Text, input.Rating)
	if err != nil {
		switch {
		case errors.Is(err, comments.ErrCommentNotFound):
			app.Http.NotFound(w, r, "Comment not found")
		case errors.Is(err, comments.ErrNotCommentAuthor):
			app.Http.Forbidden(w, r, err.Error())
		case errors.Is(err, comments.ErrInvalidRating):
			app.Http.BadRequest(w, r, err.Error())
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Ok(w, r, envelop{"comment": comment}, "Comment updated")
}

func (app *Application) deleteComment(w http.ResponseWriter, r *http.Request) {
	commentID, ok := app.extractIntParam(w, r, "id")
	if !ok {
		return
	}
	caller := app.authenticatedUser(r)
	err := app.Services.Comments.Delete(r.Context(), commentID, caller.Email)
	if err != nil {
		switch {
		case errors.Is(err, comments.ErrCommentNotFound):
			app.Http.NotFound(w, r, "Comment not found")
		case errors.Is(err, comments.ErrNotCommentAuthor):
			app.Http.Forbidden(w, r, err.Error())
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Ok(w, r, nil, "Comment deleted")
}
