package services

import (
	"log/slog"

	"cinelist/proj/internal/config"
	"cinelist/proj/internal/mails"
	"cinelist/proj/internal/services/accounts"
	"cinelist/proj/internal/services/comments"
	"cinelist/proj/internal/services/lists"
	"cinelist/proj/internal/storage/postgres"
	storagemodels "cinelist/proj/internal/storage/postgres/models"
)

type Services struct {
	Accounts *accounts.AccountService
	Lists    *lists.ListService
	Comments *comments.CommentService
}

func New(log *slog.Logger, cfg *config.Config, storage *postgres.Storage, taskExecutor accounts.TaskExecutor) *Services {
	models := storagemodels.New(storage)
	mailer := mails.New(
		cfg.SMTPServer.Host,
		cfg.SMTPServer.Port,
		cfg.SMTPServer.Timeout,
		cfg.SMTPServer.Username,
		cfg.SMTPServer.Password,
		cfg.SMTPServer.Sender,
		cfg.SMTPServer.RetriesCount,
	)
	return &Services{
		Accounts: accounts.New(log, models.Users, mailer, taskExecutor, cfg.AppSecret, cfg.TokenTTL),
		Lists:    lists.New(log, models.Lists),
		Comments: comments.New(log, models.Comments),
	}
}
