package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Alturino/nebula/internal/constants"
)

type sessionId struct{}

func SessionIDFromContext(c context.Context) string {
	id, _ := c.Value(sessionId{}).(string)
	return id
}

func AttachSessionIDToContext(c context.Context, id string) context.Context {
	return context.WithValue(c, sessionId{}, id)
}

// Session reads the shopper session id from header, minting a new one when the
// header is missing or not a uuid, and echoes it back on the response.
func Session(header string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(header)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}
			w.Header().Set(header, id)

			logger := zerolog.Ctx(r.Context()).With().Str(constants.KEY_SESSION_ID, id).Logger()
			c := logger.WithContext(r.Context())
			c = AttachSessionIDToContext(c, id)
			next.ServeHTTP(w, r.WithContext(c))
		})
	}
}
