package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/logger"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/requestdata"
)

func TestLearnerMiddlewareResolve(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}

	learnerID := uuid.New()
	cases := []struct {
		name   string
		header string
		want   uuid.UUID
	}{
		{name: "valid header resolves", header: learnerID.String(), want: learnerID},
		{name: "missing header passes through empty", header: "", want: uuid.Nil},
		{name: "garbage header ignored", header: "not-a-uuid", want: uuid.Nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got uuid.UUID
			router := gin.New()
			router.Use(NewLearnerMiddleware(log).Resolve())
			router.GET("/probe", func(c *gin.Context) {
				if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil {
					got = rd.LearnerID
				}
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			if tc.header != "" {
				req.Header.Set(LearnerHeader, tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d", w.Code)
			}
			if got != tc.want {
				t.Fatalf("resolved learner = %v, want %v", got, tc.want)
			}
		})
	}
}
