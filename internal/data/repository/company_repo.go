package repository

import (
	"context"
	"fmt"

	"bus-booking/internal/data/entity"
	"bus-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CompanyRepository interface {
	FindAll(ctx context.Context) ([]*entity.Company, error)
	FindByName(ctx context.Context, name string) (*entity.Company, error)
}

type companyRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCompanyRepository(db database.PgxIface, log *zap.Logger) CompanyRepository {
	return &companyRepository{
		db:  db,
		log: log.With(zap.String("repository", "company")),
	}
}

func (r *companyRepository) FindAll(ctx context.Context) ([]*entity.Company, error) {
	query := `
		SELECT id, name, logo, rating::float8
		FROM companies
		ORDER BY rating DESC, name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list companies", zap.Error(err))
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var companies []*entity.Company
	for rows.Next() {
		var company entity.Company
		if err := rows.Scan(&company.ID, &company.Name, &company.Logo, &company.Rating); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		companies = append(companies, &company)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate companies: %w", err)
	}

	return companies, nil
}

// FindByName returns nil, nil when no operator is registered under name.
func (r *companyRepository) FindByName(ctx context.Context, name string) (*entity.Company, error) {
	query := `
		SELECT id, name, logo, rating::float8
		FROM companies
		WHERE name = $1
	`

	var company entity.Company
	err := r.db.QueryRow(ctx, query, name).Scan(&company.ID, &company.Name, &company.Logo, &company.Rating)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find company by name",
			zap.Error(err),
			zap.String("name", name),
		)
		return nil, fmt.Errorf("find company %q: %w", name, err)
	}

	return &company, nil
}
