package comments

import "errors"

var (
	ErrCommentNotFound  = errors.New("comment not found")
	ErrNotCommentAuthor = errors.New("only the comment's author can modify it")
	ErrInvalidRating    = errors.New("rating must be an integer between 1 and 5")
)
