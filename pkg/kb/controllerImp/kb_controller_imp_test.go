package controllerImp

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"botanica/entities"
)

type fakeKBService struct {
	upserts int
}

func (f *fakeKBService) UpsertDocument(title, tags, text, sourceURL string) (*entities.KBDocument, int, error) {
	f.upserts++
	return &entities.KBDocument{Title: title, SourceURL: sourceURL}, 1, nil
}
func (f *fakeKBService) Search(string, int) ([]entities.KBChunk, error) { return nil, nil }
func (f *fakeKBService) DocsMeta([]uint) (map[uint]entities.KBDocument, error) {
	return nil, nil
}

func TestNewNormalizesDomainList(t *testing.T) {
	h := New(&fakeKBService{}, " Example.COM , trusted.org ,", 42)
	assert.Equal(t, map[string]bool{"example.com": true, "trusted.org": true}, h.allow)
	assert.Equal(t, 42, h.maxBytes)
}

func TestIngestURLRefusesUnlistedDomain(t *testing.T) {
	svc := &fakeKBService{}
	h := New(svc, "trusted.org", 1500000)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/kb/ingest/url",
		strings.NewReader(`{"url":"https://evil.example/page"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.IngestURL(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Zero(t, svc.upserts)
}
