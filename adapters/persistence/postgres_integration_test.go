package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/khoahotran/video-hub/internal/domain/user"
	"github.com/khoahotran/video-hub/pkg/apperror"
)

type PostgresRepoIntegrationTestSuite struct {
	videoRepoContract
	dbPool      *pgxpool.Pool
	pgContainer *postgres.PostgresContainer
	userRepo    user.Repository
}

func (s *PostgresRepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	m, err := migrate.New("file://../../migrations", dsn)
	if err != nil {
		s.T().Fatalf("Failed to create migrate instance: %s", err)
	}
	if err := m.Up(); err != nil {
		s.T().Fatalf("Failed to run migrations: %s", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool

	s.repo = NewPostgresVideoRepo(s.dbPool)
	s.userRepo = NewPostgresUserRepo(s.dbPool)
	s.newOwner = s.seedUser
}

// seedUser satisfies the videos.user_id foreign key.
func (s *PostgresRepoIntegrationTestSuite) seedUser() uuid.UUID {
	u := &user.User{
		ID:           uuid.New(),
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "hashedpassword",
	}
	s.Require().NoError(s.userRepo.Upsert(context.Background(), u))
	return u.ID
}

func (s *PostgresRepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate postgres container: %s", err)
		}
	}
}

func TestPostgresRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(PostgresRepoIntegrationTestSuite))
}

func (s *PostgresRepoIntegrationTestSuite) Test_UserUpsert_And_FindByEmail() {
	ctx := context.Background()

	u := &user.User{ID: uuid.New(), Email: "owner@example.com", PasswordHash: "h1"}
	s.Require().NoError(s.userRepo.Upsert(ctx, u))

	again := &user.User{ID: uuid.New(), Email: "owner@example.com", PasswordHash: "h2"}
	s.Require().NoError(s.userRepo.Upsert(ctx, again))
	s.Equal(u.ID, again.ID)

	found, err := s.userRepo.FindByEmail(ctx, "owner@example.com")
	s.Require().NoError(err)
	s.Equal("h2", found.PasswordHash)

	_, err = s.userRepo.FindByEmail(ctx, "nobody@example.com")
	s.ErrorIs(err, apperror.ErrNotFound)
}

func (s *PostgresRepoIntegrationTestSuite) Test_DeleteUserCascadesVideos() {
	ctx := context.Background()
	owner := s.seedUser()
	v := s.save(newTestVideo(owner, "music", nil, time.Now()))

	_, err := s.dbPool.Exec(ctx, `DELETE FROM users WHERE id = $1`, owner)
	s.Require().NoError(err)

	_, err = s.repo.FindByID(ctx, v.ID)
	s.ErrorIs(err, apperror.ErrNotFound)
}
