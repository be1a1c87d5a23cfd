package api

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/KirkDiggler/portal/internal/models"
	"github.com/KirkDiggler/portal/internal/services/game"
	"github.com/KirkDiggler/portal/internal/services/mission"
	"github.com/gin-gonic/gin"
)

type publicError interface {
	error
	Public() bool
}

// playerView is what other players may see; roles and missions stay hidden
type playerView struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	IsEliminated      bool       `json:"isEliminated"`
	EliminatedAt      *time.Time `json:"eliminatedAt,omitempty"`
	MissionsCompleted int        `json:"missionsCompleted"`
}

func viewOf(p *models.Player) *playerView {
	return &playerView{
		ID:                p.ID,
		Name:              p.Name,
		IsEliminated:      p.IsEliminated,
		EliminatedAt:      p.EliminatedAt,
		MissionsCompleted: len(p.MissionsCompleted),
	}
}

func viewsOf(players []*models.Player) []*playerView {
	views := make([]*playerView, 0, len(players))
	for _, p := range players {
		views = append(views, viewOf(p))
	}
	return views
}

func respond(c *gin.Context, status int, message string, payload gin.H) {
	body := gin.H{"success": status < http.StatusBadRequest, "message": message}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

func ok(c *gin.Context, message string, payload gin.H) {
	respond(c, http.StatusOK, message, payload)
}

func badRequest(c *gin.Context, message string) {
	respond(c, http.StatusBadRequest, message, nil)
}

func respondError(c *gin.Context, err error) {
	var cooldown *mission.CooldownError
	if errors.As(err, &cooldown) {
		seconds := int(math.Ceil(cooldown.Remaining.Seconds()))
		c.Header("Retry-After", strconv.Itoa(seconds))
		respond(c, http.StatusTooManyRequests, game.UserMessage(err), gin.H{"retryAfterSeconds": seconds})
		return
	}
	respond(c, statusFor(err), game.UserMessage(err), nil)
}

func statusFor(err error) int {
	var public publicError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	case errors.Is(err, game.ErrEngineStopped):
		return http.StatusServiceUnavailable
	case errors.Is(err, game.ErrGameNotConfigured):
		return http.StatusNotFound
	case errors.As(err, &public) && public.Public():
		if strings.Contains(public.Error(), "not found") {
			return http.StatusNotFound
		}
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// requestContext bounds a request by requestTimeout
func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}
