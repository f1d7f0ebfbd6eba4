package comments

import (
	"context"
	"errors"
	"log/slog"

	"cinelist/proj/internal/domain/models"
	"cinelist/proj/internal/storage"
)

type CommentsStorage interface {
	Insert(ctx context.Context, movieID int64, author, text string, rating int) (*models.Comment, error)
	Get(ctx context.Context, id int64) (*models.Comment, error)
	ListForMovie(ctx context.Context, movieID int64) ([]models.Comment, error)
	Update(ctx context.Context, id int64, text string, rating int) (*models.Comment, error)
	Delete(ctx context.Context, id int64) error
}

type CommentService struct {
	log     *slog.Logger
	storage CommentsStorage
}

func New(log *slog.Logger, storage CommentsStorage) *CommentService {
	return &CommentService{
		log:     log,
		storage: storage,
	}
}

func validRating(rating int) bool {
	return rating >= 1 && rating <= 5
}

func (s *CommentService) Create(ctx context.Context, movieID int64, author, text string, rating int) (*models.Comment, error) {
	const op = "comments.CommentService.Create"
	log := s.log.With("op", op, "movieId", movieID, "author", author)
	if !validRating(rating) {
		return nil, ErrInvalidRating
	}
	comment, err := s.storage.Insert(ctx, movieID, author, text, rating)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	return comment, nil
}

// ListForMovie returns the movie's comments ordered newest first.
func (s *CommentService) ListForMovie(ctx context.Context, movieID int64) ([]models.Comment, error) {
	const op = "comments.CommentService.ListForMovie"
	log := s.log.With("op", op, "movieId", movieID)
	comments, err := s.storage.ListForMovie(ctx, movieID)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	return comments, nil
}

// Update replaces the comment's text and rating. Only the stored author may
// update, and the rating bound is enforced here the same as on create.
// Id, movieId, author and createdAt never change.
func (s *CommentService) Update(ctx context.Context, id int64, caller, text string, rating int) (*models.Comment, error) {
	const op = "comments.CommentService.Update"
	log := s.log.With("op", op, "id", id, "caller", caller)
	if !validRating(rating) {
		return nil, ErrInvalidRating
	}
	comment, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("comment not found")
			return nil, ErrCommentNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	if comment.Author != caller {
		log.Warn("update rejected, caller is not the author", "author", comment.Author)
		return nil, ErrNotCommentAuthor
	}
	updated, err := s.storage.Update(ctx, id, text, rating)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return updated, nil
}

func (s *CommentService) Delete(ctx context.Context, id int64, caller string) error {
	const op = "comments.CommentService.Delete"
	log := s.log.With("op", op, "id", id, "caller", caller)
	comment, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("comment not found")
			return ErrCommentNotFound
		}
		log.Error(err.Error())
		return err
	}
	if comment.Author != caller {
		log.Warn("delete rejected, caller is not the author", "author", comment.Author)
		return ErrNotCommentAuthor
	}
	if err := s.storage.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrCommentNotFound
		}
		log.Error(err.Error())
		return err
	}
	return nil
}
