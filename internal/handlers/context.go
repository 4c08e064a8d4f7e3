package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/requestdata"
)

// learnerFrom pulls the learner identity the middleware parsed from the
// X-Learner-ID header. Writes the error response itself when missing.
func learnerFrom(c *gin.Context) (uuid.UUID, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.LearnerID == uuid.Nil {
		RespondError(c, http.StatusBadRequest, "missing_learner", fmt.Errorf("missing or invalid X-Learner-ID header"))
		return uuid.Nil, false
	}
	return rd.LearnerID, true
}

// pathUUID parses a uuid path parameter, writing the error response on
// failure.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid %s: %w", name, err))
		return uuid.Nil, false
	}
	return id, true
}
