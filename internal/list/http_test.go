package list

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/safegergis/tome/internal/platform/ctxutil"
	"github.com/safegergis/tome/internal/platform/sec"
)

func provisionRequest(target, caller string) *http.Request {
	request := httptest.NewRequest(http.MethodPost, "/users/"+target+"/default-lists", nil)
	if caller != "" {
		ctx := ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{UserID: caller})
		request = request.WithContext(ctx)
	}
	return request
}

func TestProvisionHook(t *testing.T) {
	handler := NewHandler(newTestService(newFakeRepo()))
	router := chi.NewRouter()
	handler.RegisterProvisioning(router)

	t.Run("creates defaults for the token's own account", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, provisionRequest("user-1", "user-1"))
		assert.Equal(t, http.StatusCreated, recorder.Code)
	})

	t.Run("rejects a mismatched target", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, provisionRequest("user-2", "user-1"))
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("rejects anonymous callers", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, provisionRequest("user-1", ""))
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}
