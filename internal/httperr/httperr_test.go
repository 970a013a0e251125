package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respond(t *testing.T, err error) (int, HTTPError) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Respond(c, err)

	var body HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestRespond_MapsKinds(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", Validation("missing_user_id", "user_id é obrigatório."), http.StatusBadRequest, "user_id é obrigatório."},
		{"not found", NotFoundErr("booking_not_found", "Agendamento não encontrado."), http.StatusNotFound, "Agendamento não encontrado."},
		{"conflict", Conflict("invalid_transition", "Transição inválida."), http.StatusConflict, "Transição inválida."},
		{"storage hides cause", Storage(errors.New("connection refused")), http.StatusInternalServerError, "Erro interno."},
		{"gateway", Gateway("payment_gateway_error", "Falha no pagamento.", errors.New("timeout")), http.StatusInternalServerError, "Falha no pagamento."},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "Erro interno."},
		{"code only", ErrBusiness("invalid_request"), http.StatusBadRequest, "Bad Request"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := respond(t, tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.message, body.Message)
		})
	}
}

func TestIsBusiness_Wrapped(t *testing.T) {
	err := fmt.Errorf("edit: %w", Conflict("invalid_transition", ""))

	assert.True(t, IsBusiness(err, "invalid_transition"))
	assert.False(t, IsBusiness(err, "booking_not_found"))
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Zero(t, KindOf(errors.New("x")))
}

func TestPostgresClassification(t *testing.T) {
	unique := Storage(fmt.Errorf("create booking: %w", &pgconn.PgError{Code: "23505"}))
	exclusion := &pgconn.PgError{Code: "23P01"}
	serialization := fmt.Errorf("tx: %w", &pgconn.PgError{Code: "40001"})

	assert.True(t, IsUniqueViolation(unique))
	assert.True(t, IsExclusionConflict(exclusion))
	assert.True(t, IsSerializationFailure(serialization))
	assert.False(t, IsUniqueViolation(exclusion))
	assert.False(t, IsSerializationFailure(errors.New("40001")))
}
