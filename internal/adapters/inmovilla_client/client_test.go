package inmovilla_client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alex-potenzzia/inmovilla-api-client/internal/contextkeys"
	"github.com/alex-potenzzia/inmovilla-api-client/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	param   string
	domain  string
	json    string
	traceID string
}

func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *[]capturedRequest) {
	t.Helper()
	var captured []capturedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, r.ParseForm())
		captured = append(captured, capturedRequest{
			param:   r.PostForm.Get("param"),
			domain:  r.PostForm.Get("elDominio"),
			json:    r.PostForm.Get("json"),
			traceID: r.Header.Get("X-Trace-ID"),
		})
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &captured
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient(Config{
		BaseURL:  baseURL,
		Agency:   "1234",
		Password: "secret",
		Language: 1,
		Domain:   "example.com",
		Timeout:  2 * time.Second,
	})
	require.NoError(t, err)
	return c
}

func TestNewClient_ValidatesConfig(t *testing.T) {
	_, err := NewClient(Config{BaseURL: "https://api.inmovilla.com/v1", Password: "p"})
	assert.ErrorContains(t, err, "agency")

	_, err = NewClient(Config{BaseURL: "https://api.inmovilla.com/v1", Agency: "a"})
	assert.ErrorContains(t, err, "password")

	_, err = NewClient(Config{BaseURL: "not a url", Agency: "a", Password: "p"})
	assert.ErrorContains(t, err, "invalid inmovilla API URL")
}

func TestPropertyRepository_FindAll(t *testing.T) {
	srv, captured := newTestServer(t, http.StatusOK, `{
		"paginacion": [
			{"posicion": 1, "elementos": 10, "total": "2"},
			{"ref": "ABC123", "cod_ofer": 55, "precioinmo": 150000},
			{"ref": "ABC124", "cod_ofer": "56"}
		]
	}`)
	repo := NewPropertyRepository(newTestClient(t, srv.URL))

	ctx := contextkeys.ContextWithTraceID(context.Background(), "trace-1")
	filter := domain.PropertyFilter{}.Equals("ref", `ABC"123`)
	res, err := repo.FindAll(ctx, 1, 10, filter)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Total)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "ABC123", res.Items[0].Ref)
	assert.Equal(t, "55", res.Items[0].CodOffer)
	assert.Equal(t, "56", res.Items[1].CodOffer)

	out, err := json.Marshal(res.Items[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"ref": "ABC123", "cod_ofer": 55, "precioinmo": 150000}`, string(out))

	require.Len(t, *captured, 1)
	req := (*captured)[0]
	assert.Equal(t, `1234;secret;1;lostipos;paginacion;1;10;ref="ABC\"123";`, req.param)
	assert.Equal(t, "example.com", req.domain)
	assert.Equal(t, "1", req.json)
	assert.Equal(t, "trace-1", req.traceID)
}

func TestPropertyRepository_FindAll_NoResults(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{"paginacion": [{"posicion": 1, "elementos": 0, "total": 0}]}`)
	repo := NewPropertyRepository(newTestClient(t, srv.URL))

	res, err := repo.FindAll(context.Background(), 1, 1, domain.PropertyFilter{}.Equals("ref", "X"))
	require.NoError(t, err)

	assert.Equal(t, 0, res.Total)
	assert.Empty(t, res.Items)
}

func TestPropertyRepository_FindAll_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "non-200", status: http.StatusBadGateway, body: "bad gateway", wantErr: "non-200 status: 502"},
		{name: "invalid json", status: http.StatusOK, body: "<html>", wantErr: "failed to decode"},
		{name: "api error", status: http.StatusOK, body: `{"error": "agencia no valida"}`, wantErr: "inmovilla error: agencia no valida"},
		{name: "missing section", status: http.StatusOK, body: `{"ficha": []}`, wantErr: `no "paginacion" section`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, tt.status, tt.body)
			repo := NewPropertyRepository(newTestClient(t, srv.URL))

			_, err := repo.FindAll(context.Background(), 1, 10, domain.PropertyFilter{}.Equals("ref", "X"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPropertyRepository_FindAll_RefusesSeparatorInWhere(t *testing.T) {
	srv, captured := newTestServer(t, http.StatusOK, `{"paginacion": [{"total": 0}]}`)
	repo := NewPropertyRepository(newTestClient(t, srv.URL))

	_, err := repo.FindAll(context.Background(), 1, 10, domain.PropertyFilter{}.Equals("direccion", "Mayor;1;1;x"))

	require.ErrorIs(t, err, errParamSeparator)
	assert.Empty(t, *captured)
}

func TestPropertyDetailsRepository_FindOneByCodOffer(t *testing.T) {
	srv, captured := newTestServer(t, http.StatusOK, `{
		"ficha": [
			{"posicion": 1, "elementos": 1},
			{"cod_ofer": 55, "ref": "ABC123", "descripciones": {"1": {"titulo": "Piso"}}}
		]
	}`)
	repo := NewPropertyDetailsRepository(newTestClient(t, srv.URL))

	detail, err := repo.FindOneByCodOffer(context.Background(), "55")
	require.NoError(t, err)

	assert.Equal(t, "55", detail.CodOffer)
	assert.JSONEq(t, `{"cod_ofer": 55, "ref": "ABC123", "descripciones": {"1": {"titulo": "Piso"}}}`, string(detail.Raw))
	require.Len(t, *captured, 1)
	assert.True(t, strings.HasSuffix((*captured)[0].param, ";ficha;1;1;cod_ofer=55;"), (*captured)[0].param)
}

func TestPropertyDetailsRepository_EmptyFicha(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{"ficha": [{"posicion": 1, "elementos": 0}]}`)
	repo := NewPropertyDetailsRepository(newTestClient(t, srv.URL))

	_, err := repo.FindOneByCodOffer(context.Background(), "55")
	assert.ErrorContains(t, err, "property details not found for cod_ofer 55")
}
