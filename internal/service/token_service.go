package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Appointment action tokens back the confirm/cancel links sent to patients.
// Tokens are single-use and expire with the appointment.

var ErrActionTokenInvalid = errors.New("invalid or expired action token")

// Token actions
const (
	ActionConfirm = "confirm"
	ActionCancel  = "cancel"
)

const actionTokenKeyPrefix = "appointment:action_token:"

type ActionTokenService struct {
	log         *logrus.Logger
	redisClient *redis.Client
}

func NewActionTokenService(log *logrus.Logger, redisClient *redis.Client) *ActionTokenService {
	return &ActionTokenService{
		log:         log,
		redisClient: redisClient,
	}
}

// Issue creates a single-use token authorizing one action on one appointment
func (s *ActionTokenService) Issue(ctx context.Context, appointmentID uuid.UUID, action string, ttl time.Duration) (string, error) {
	raw := make([]byte, 24)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate action token: %w", err)
	}
	token := hex.EncodeToString(raw)

	key := actionTokenKeyPrefix + token
	value := fmt.Sprintf("%s:%s", action, appointmentID.String())
	if err := s.redisClient.Set(ctx, key, value, ttl).Err(); err != nil {
		return "", fmt.Errorf("store action token: %w", err)
	}
	return token, nil
}

// Redeem validates and consumes the token, returning the appointment it
// authorizes. A token can be redeemed once: GETDEL makes concurrent redeems
// race-safe.
func (s *ActionTokenService) Redeem(ctx context.Context, token, expectedAction string) (uuid.UUID, error) {
	key := actionTokenKeyPrefix + token
	value, err := s.redisClient.GetDel(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, ErrActionTokenInvalid
		}
		s.log.Warnf("Failed to redeem action token: %+v", err)
		return uuid.Nil, err
	}

	// value layout is "<action>:<uuid>"
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return uuid.Nil, ErrActionTokenInvalid
	}
	action, id := parts[0], parts[1]

	if action != expectedAction {
		return uuid.Nil, ErrActionTokenInvalid
	}

	appointmentID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, ErrActionTokenInvalid
	}
	return appointmentID, nil
}
