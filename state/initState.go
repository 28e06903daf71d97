package state

import (
	"context"
	"time"

	"github.com/benedekkincses/edu-bridge-sub000/config"
	"github.com/benedekkincses/edu-bridge-sub000/internal/entity"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type AppState struct {
	Ctx    context.Context
	Cancel context.CancelFunc
	DB     *gorm.DB
	Redis  *redis.Client
	Keys   *KeycloakKeys
}

func InitAppState(ctx context.Context, cancel context.CancelFunc) (*AppState, error) {
	dbUrl := config.Conf.DATABASE.Postgres.DSN
	rAddr := config.Conf.DATABASE.Redis.Addr
	rPass := config.Conf.DATABASE.Redis.Password

	db, _, err := InitPostgres(dbUrl)
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	rdb, err := InitRedis(rAddr, rPass, 0)
	if err != nil {
		return nil, err
	}

	keys, err := InitKeycloak(ctx,
		config.Conf.KEYCLOAK.CertsURL,
		time.Duration(config.Conf.KEYCLOAK.CacheTTLMin)*time.Minute,
		rdb,
	)
	if err != nil {
		return nil, err
	}

	return &AppState{
		Ctx:    ctx,
		Cancel: cancel,
		DB:     db,
		Redis:  rdb,
		Keys:   keys,
	}, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.School{},
		&entity.SchoolMember{},
		&entity.SchoolPermission{},
		&entity.Class{},
		&entity.ClassMembership{},
		&entity.ClassPermission{},
		&entity.Group{},
		&entity.GroupMembership{},
		&entity.Thread{},
		&entity.ThreadParticipant{},
		&entity.Message{},
		&entity.MessageReadStatus{},
		&entity.NewsPost{},
		&entity.NewsAttachment{},
		&entity.PollOption{},
		&entity.PollVote{},
		&entity.NewsLike{},
	)
}

func (a *AppState) Close() {
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err == nil {
			log.Info().Msg("Closing PostgreSQL database connection...")
			sqlDB.Close()
		}
	}

	if a.Redis != nil {
		log.Info().Msg("Closing Redis client...")
		if err := a.Redis.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close Redis client")
		}
	}
}
