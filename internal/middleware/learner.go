package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/logger"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/requestdata"
)

// LearnerHeader carries the learner identity from the external web layer.
// The core trusts it; authentication lives upstream.
const LearnerHeader = "X-Learner-ID"

type LearnerMiddleware struct {
	log *logger.Logger
}

func NewLearnerMiddleware(log *logger.Logger) *LearnerMiddleware {
	return &LearnerMiddleware{log: log.With("middleware", "LearnerMiddleware")}
}

// Resolve parses the learner header into request context. Requests without
// a valid header still pass; handlers that need an identity reject them.
func (m *LearnerMiddleware) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(LearnerHeader)
		if raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				m.log.Debug("unparseable learner header", "value", raw, "error", err)
			} else {
				ctx := requestdata.WithRequestData(c.Request.Context(), &requestdata.RequestData{LearnerID: id})
				c.Request = c.Request.WithContext(ctx)
			}
		}
		c.Next()
	}
}
