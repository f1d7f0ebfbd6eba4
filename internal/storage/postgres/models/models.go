package models

import "cinelist/proj/internal/storage/postgres"

type Models struct {
	Users    *UserModel
	Lists    *ListEntryModel
	Comments *CommentModel
}

func New(db *postgres.Storage) *Models {
	return &Models{
		Users:    &UserModel{db.Conn},
		Lists:    &ListEntryModel{db.Conn},
		Comments: &CommentModel{db.Conn},
	}
}
