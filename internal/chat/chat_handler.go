package chat

import (
	"crypto/subtle"
	"net/http"
	"os"

	chaterrors "leavehub/internal/chat/errors"
	"leavehub/internal/shared/apperror"
	"leavehub/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("chat.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("chat.handler")
	}
	return &Handler{service: service, logger: l}
}

// Webhook receives messages relayed by the chat platform bridge. The bridge
// authenticates with a shared secret rather than a user token.
func (h *Handler) Webhook(c *gin.Context) {
	secret := os.Getenv("CHAT_WEBHOOK_SECRET")
	got := c.GetHeader("X-Webhook-Secret")
	if secret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(got)) != 1 {
		errObj := chaterrors.ErrBadWebhookSecret
		response.Error(c, errObj.HTTPStatus, errObj.Code, errObj.Message, nil)
		return
	}

	var msg InboundMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		h.logger.Warn("http chat webhook validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	reply, err := h.service.Handle(c.Request.Context(), msg)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Error("chat webhook failed",
			zap.String("external_user_id", msg.ExternalUserID),
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
		)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, reply, nil)
}
