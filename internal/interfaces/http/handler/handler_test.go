package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/interfaces/http/dto"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

func newTestRouter() *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Actor())
	return r
}

type call struct {
	method string
	path   string
	body   any
	actor  *uuid.UUID
}

func do(t *testing.T, r *gin.Engine, c call) (*httptest.ResponseRecorder, dto.Response) {
	t.Helper()
	var buf bytes.Buffer
	switch b := c.body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(c.method, c.path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.actor != nil {
		req.Header.Set(middleware.HeaderUserID, c.actor.String())
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp dto.Response
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return w, resp
}

// decodeData re-decodes the envelope data into out
func decodeData(t *testing.T, resp dto.Response, out any) {
	t.Helper()
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

func ptr[T any](v T) *T { return &v }

func TestParamAndQueryIDs(t *testing.T) {
	var h BaseHandler
	r := newTestRouter()
	r.GET("/things/:id", func(c *gin.Context) {
		id, ok := h.ParamID(c, "id")
		if !ok {
			return
		}
		ref, ok := h.QueryID(c, "ref")
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id, "ref": ref})
	})

	id := uuid.New()
	w, _ := do(t, r, call{method: http.MethodGet, path: "/things/" + id.String()})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"ref":null`)

	w, resp := do(t, r, call{method: http.MethodGet, path: "/things/nope"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)

	w, _ = do(t, r, call{method: http.MethodGet, path: "/things/" + id.String() + "?ref=bad"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func pageOf[T any](items []T, total int64, page, pageSize int) *shared.Paginated[T] {
	p := shared.NewPaginated(items, total, page, pageSize)
	return &p
}
