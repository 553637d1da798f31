package middleware

import (
	"bytes"
	"net/http"

	"proctor_backend/internal/repository"
	"proctor_backend/internal/util"
	"proctor_backend/pkg/database"
	"proctor_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// bufferedWriter holds the response back until the request's transaction
// has committed. Headers go straight to the underlying writer's map, they
// are only sent on flush.
type bufferedWriter struct {
	gin.ResponseWriter
	status  int
	written bool
	body    bytes.Buffer
}

func (w *bufferedWriter) WriteHeader(code int) {
	if code > 0 {
		w.status = code
		w.written = true
	}
}

func (w *bufferedWriter) WriteHeaderNow() {
	w.written = true
}

func (w *bufferedWriter) Write(data []byte) (int, error) {
	w.written = true
	return w.body.Write(data)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	w.written = true
	return w.body.WriteString(s)
}

func (w *bufferedWriter) Status() int { return w.status }
func (w *bufferedWriter) Size() int { return w.body.Len() }
func (w *bufferedWriter) Written() bool { return w.written }

func (w *bufferedWriter) flush() {
	w.ResponseWriter.WriteHeader(w.status)
	if w.body.Len() > 0 {
		if _, err := w.ResponseWriter.Write(w.body.Bytes()); err != nil {
			logger.Log.Warn("Failed to write response", zap.Error(err))
		}
	} else {
		w.ResponseWriter.WriteHeaderNow()
	}
}

// Transaction runs each request inside one database transaction. The
// transaction commits only when the handler succeeded, and the client sees
// the response only after the commit: a commit rejected by a deferred
// constraint is answered with the translated error instead. Rollback hooks
// registered during the request run whenever the transaction does not commit.
func Transaction(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tx := db.WithContext(c.Request.Context()).Begin()
		if tx.Error != nil {
			logger.Log.Error("Failed to begin transaction", zap.Error(tx.Error))
			util.InternalServerError(c)
			c.Abort()
			return
		}

		original := c.Writer
		buffered := &bufferedWriter{ResponseWriter: original, status: http.StatusOK}
		c.Writer = buffered
		ctx, hooks := database.WithRollbackHooks(database.WithTx(c.Request.Context(), tx))
		c.Request = c.Request.WithContext(ctx)

		finished := false
		defer func() {
			c.Writer = original
			if !finished {
				// panic: let gin's recovery answer
				tx.Rollback()
				hooks.Run()
			}
		}()

		c.Next()

		if buffered.status >= http.StatusBadRequest || len(c.Errors) > 0 {
			tx.Rollback()
			finished = true
			hooks.Run()
			buffered.flush()
			return
		}

		err := tx.Commit().Error
		finished = true
		if err != nil {
			hooks.Run()
			c.Writer = original
			original.Header().Del("Set-Cookie")
			util.HandleError(c, repository.TranslateError(err))
			return
		}
		buffered.flush()
	}
}
