package service

import (
	"go.uber.org/zap"

	"github.com/libstack/lending-service/internal/repository"
)

type Service struct {
	log      *zap.Logger
	repo     repository.Repository
	notifier Notifier
}

func NewService(repo repository.Repository, notifier Notifier, log *zap.Logger) *Service {
	return &Service{
		log:      log,
		repo:     repo,
		notifier: notifier,
	}
}
