package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"food-preorder/internal/auth"
	"food-preorder/internal/database"
	"food-preorder/internal/logger"
	"food-preorder/internal/models"
)

// Service provides registration, login and account lookup. It is the only
// component that ever sees credentials; the rest of the system works with
// the resolved (identity, role) pair.
type Service struct {
	db     *database.DB
	tokens *auth.TokenManager
	logger *logger.Logger
}

// NewService creates a new account service
func NewService(db *database.DB, tokens *auth.TokenManager, log *logger.Logger) *Service {
	return &Service{
		db:     db,
		tokens: tokens,
		logger: log,
	}
}

// Register creates an account and issues a session token. The role is fixed
// at registration; admin accounts are provisioned out of band.
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.Role(req.Role),
		Phone:        req.Phone,
	}

	err = s.db.QueryRow(ctx, database.InsertAccountSQL,
		account.ID, account.Name, account.Email, account.PasswordHash, account.Role, account.Phone,
	).Scan(&account.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, models.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return s.authResponse(account)
}

// Login verifies credentials and issues a session token.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	account, err := s.byEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, models.ErrAccountNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(account.PasswordHash, req.Password) {
		return nil, models.ErrInvalidCredentials
	}

	return s.authResponse(account)
}

// Get returns one account by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	row := s.db.QueryRow(ctx, database.GetAccountByIDSQL, id)
	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

func (s *Service) byEmail(ctx context.Context, email string) (*models.Account, error) {
	row := s.db.QueryRow(ctx, database.GetAccountByEmailSQL, email)
	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}
	return account, nil
}

func (s *Service) authResponse(account *models.Account) (*models.AuthResponse, error) {
	token, err := s.tokens.Issue(models.Identity{AccountID: account.ID, Role: account.Role})
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, Account: account}, nil
}

func scanAccount(row pgx.Row) (*models.Account, error) {
	var account models.Account
	err := row.Scan(
		&account.ID, &account.Name, &account.Email, &account.PasswordHash,
		&account.Role, &account.Phone, &account.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}
