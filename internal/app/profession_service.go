package app

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Tocard/DiscordDofusBotLGB/internal/clock"
	"github.com/Tocard/DiscordDofusBotLGB/internal/domain"
)

type ProfessionRepository interface {
	CreateProfession(ctx context.Context, p domain.Profession) error
	UpdateProfessionLevel(ctx context.Context, pseudo, profession string, level int, updatedAt time.Time) (domain.Profession, error)
	DeleteProfession(ctx context.Context, pseudo, profession string) (bool, error)
	ListArtisans(ctx context.Context, profession string, minLevel int) ([]domain.Profession, error)
	ListProfessionsByPseudo(ctx context.Context, pseudo string) ([]domain.Profession, error)
	ListPseudos(ctx context.Context) ([]string, error)
}

type ProfessionService struct {
	repo   ProfessionRepository
	clock  clock.Clock
	logger *slog.Logger
}

func NewProfessionService(repo ProfessionRepository, clk clock.Clock, logger *slog.Logger) *ProfessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfessionService{
		repo:   repo,
		clock:  clk,
		logger: logger,
	}
}

type ProfessionInput struct {
	Pseudo     string
	Profession string
	Level      int
}

func (in ProfessionInput) validate() error {
	if strings.TrimSpace(in.Pseudo) == "" {
		return domain.ErrPseudoRequired
	}
	if !domain.IsKnownProfession(in.Profession) {
		return domain.ErrUnknownProfession
	}
	if in.Level < domain.MinProfessionLevel || in.Level > domain.MaxProfessionLevel {
		return domain.ErrInvalidLevel
	}
	return nil
}

func (s *ProfessionService) Register(ctx context.Context, in ProfessionInput) (domain.Profession, error) {
	if err := in.validate(); err != nil {
		return domain.Profession{}, err
	}

	now := s.clock.Now()
	p := domain.Profession{
		Pseudo:     strings.TrimSpace(in.Pseudo),
		Profession: in.Profession,
		Level:      in.Level,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.CreateProfession(ctx, p); err != nil {
		return domain.Profession{}, err
	}

	s.logger.Info("profession registered", "pseudo", p.Pseudo, "profession", p.Profession, "level", p.Level)
	return p, nil
}

func (s *ProfessionService) Update(ctx context.Context, in ProfessionInput) (domain.Profession, error) {
	if err := in.validate(); err != nil {
		return domain.Profession{}, err
	}

	p, err := s.repo.UpdateProfessionLevel(ctx, strings.TrimSpace(in.Pseudo), in.Profession, in.Level, s.clock.Now())
	if err != nil {
		return domain.Profession{}, err
	}

	s.logger.Info("profession updated", "pseudo", p.Pseudo, "profession", p.Profession, "level", p.Level)
	return p, nil
}

func (s *ProfessionService) Delete(ctx context.Context, pseudo, profession string) (bool, error) {
	pseudo = strings.TrimSpace(pseudo)
	if pseudo == "" {
		return false, domain.ErrPseudoRequired
	}
	if !domain.IsKnownProfession(profession) {
		return false, domain.ErrUnknownProfession
	}
	return s.repo.DeleteProfession(ctx, pseudo, profession)
}

// ListArtisans returns members above minLevel in profession, best first.
func (s *ProfessionService) ListArtisans(ctx context.Context, profession string, minLevel int) ([]domain.Profession, error) {
	if !domain.IsKnownProfession(profession) {
		return nil, domain.ErrUnknownProfession
	}
	if minLevel < 0 {
		minLevel = 0
	}
	return s.repo.ListArtisans(ctx, profession, minLevel)
}

func (s *ProfessionService) ListByPseudo(ctx context.Context, pseudo string) ([]domain.Profession, error) {
	pseudo = strings.TrimSpace(pseudo)
	if pseudo == "" {
		return nil, domain.ErrPseudoRequired
	}
	return s.repo.ListProfessionsByPseudo(ctx, pseudo)
}

func (s *ProfessionService) ListPseudos(ctx context.Context) ([]string, error) {
	return s.repo.ListPseudos(ctx)
}
