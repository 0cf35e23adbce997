package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	printingapp "github.com/GBR-422777/invoiceninja/internal/application/printing"
	domain "github.com/GBR-422777/invoiceninja/internal/domain/printing"
	printinginfra "github.com/GBR-422777/invoiceninja/internal/infrastructure/printing"
	"github.com/GBR-422777/invoiceninja/internal/infrastructure/persistence"
	"github.com/GBR-422777/invoiceninja/internal/infrastructure/persistence/models"
	"github.com/GBR-422777/invoiceninja/internal/interfaces/http/handler"
	"github.com/GBR-422777/invoiceninja/internal/interfaces/http/router"
)

const testDesignContent = `{
	"content": [
		{"text": "$entityTypeUC", "style": "header"},
		{"text": "$invoiceNumber"},
		{"table": {"body": [["$subtotals"]]}}
	],
	"defaultStyle": {"fontSize": "$fontSize"}
}`

func setupTestServer(t *testing.T) (*gin.Engine, *domain.InvoiceDesign) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.InvoiceDesignModel{}, &models.RenderJobModel{}))

	designRepo := persistence.NewGormDesignRepository(db)
	jobRepo := persistence.NewGormRenderJobRepository(db)
	builder := printinginfra.NewBuilder(nil, nil)
	service := printingapp.NewRenderService(designRepo, jobRepo, builder, nil)

	design, err := domain.NewInvoiceDesign("Clean", testDesignContent)
	require.NoError(t, err)
	require.NoError(t, design.SetAsDefault())
	require.NoError(t, designRepo.Save(t.Context(), design))

	engine := gin.New()
	r := router.NewRouter(engine)
	r.Register(handler.NewRenderHandler(service))
	r.Register(handler.NewDesignHandler(service))
	r.Setup()
	handler.NewSystemHandler(nil).RegisterRoutes(engine)

	return engine, design
}

func invoicePayload() map[string]any {
	return map[string]any{
		"invoice_number": "0042",
		"amount":         100,
		"balance":        100,
		"account":        map[string]any{"name": "Acme Co"},
		"client": map[string]any{
			"name":     "Globex",
			"contacts": []map[string]any{{"email": "jo@globex.test"}},
		},
		"invoice_items": []map[string]any{
			{"product_key": "Widget", "notes": "A widget", "cost": 100, "qty": 1},
		},
	}
}

func TestRenderEndpoint_Success(t *testing.T) {
	engine, design := setupTestServer(t)

	body, err := json.Marshal(map[string]any{"invoice": invoicePayload()})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/render", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			DesignID   string          `json:"design_id"`
			EntityType string          `json:"entity_type"`
			Document   json.RawMessage `json:"document"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, design.ID.String(), resp.Data.DesignID)
	assert.Equal(t, "invoice", resp.Data.EntityType)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(resp.Data.Document, &doc))
	content := doc["content"].([]any)
	assert.Equal(t, "INVOICE", content[0].(map[string]any)["text"])
	assert.Equal(t, "0042", content[1].(map[string]any)["text"])
}

func TestRenderEndpoint_MissingInvoice(t *testing.T) {
	engine, _ := setupTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/render", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRenderEndpoint_InvoiceWithoutItems(t *testing.T) {
	engine, _ := setupTestServer(t)

	payload := invoicePayload()
	delete(payload, "invoice_items")
	body, err := json.Marshal(map[string]any{"invoice": payload})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/render", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ERR_MISSING_DATA", resp.Error.Code)
}

func TestDesignEndpoints_CRUD(t *testing.T) {
	engine, seeded := setupTestServer(t)

	// create
	body, err := json.Marshal(map[string]any{
		"name":    "Bold",
		"content": testDesignContent,
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/designs", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// duplicate name conflicts
	w = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/api/v1/designs", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)

	// list sees both designs
	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/api/v1/designs", nil)
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Data []map[string]any `json:"data"`
		Meta struct {
			Total int64 `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, int64(2), list.Meta.Total)

	// get returns content
	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/api/v1/designs/"+created.Data.ID, nil)
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "entityTypeUC")

	// default design cannot be deleted
	w = httptest.NewRecorder()
	req = httptest.NewRequest("DELETE", "/api/v1/designs/"+seeded.ID.String(), nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// the new design can be deleted
	w = httptest.NewRecorder()
	req = httptest.NewRequest("DELETE", "/api/v1/designs/"+created.Data.ID, nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestHealthEndpoints(t *testing.T) {
	engine, _ := setupTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/healthz", nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/readyz", nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
