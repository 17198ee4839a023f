package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"PredicaAI/models"
	"PredicaAI/pkg/preguntas"
	"PredicaAI/pkg/prompts"
	svc "PredicaAI/pkg/services"
	"PredicaAI/pkg/transcripts"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type echoCompleter struct{}

func (echoCompleter) ChatCompletion(ctx context.Context, prompt string) (string, error) {
	return "EVAL:" + prompt, nil
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Mensaje{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testPrompts(t *testing.T, content string) *prompts.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prompts.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write prompts: %v", err)
	}
	ps, err := prompts.Load(path)
	if err != nil {
		t.Fatalf("load prompts: %v", err)
	}
	return ps
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var parsed map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &parsed)
	return w, parsed
}

func TestGuardarMensajeFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testDB(t)
	r := gin.New()
	r.POST("/guardar-mensaje", GuardarMensaje(db))
	r.GET("/obtener-ultimo-mensaje", ObtenerUltimoMensaje(db))

	w, _ := doJSON(t, r, http.MethodPost, "/guardar-mensaje", `{"titulo":"T1"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing usuario must be 400, got %d", w.Code)
	}

	w, resp := doJSON(t, r, http.MethodPost, "/guardar-mensaje", `{"usuario":"ana","titulo":"T1"}`)
	if w.Code != http.StatusOK || resp["success"] != true {
		t.Fatalf("first save failed: %d %v", w.Code, resp)
	}
	w, resp = doJSON(t, r, http.MethodPost, "/guardar-mensaje", `{"usuario":"ana","introduccion":"I1"}`)
	if w.Code != http.StatusOK || resp["success"] != true {
		t.Fatalf("second save failed: %d %v", w.Code, resp)
	}

	w, resp = doJSON(t, r, http.MethodGet, "/obtener-ultimo-mensaje?usuario=ana", "")
	if w.Code != http.StatusOK || resp["success"] != true {
		t.Fatalf("ultimo failed: %d %v", w.Code, resp)
	}
	mensaje, _ := resp["mensaje"].(map[string]any)
	if mensaje["titulo"] != "T1" || mensaje["introduccion"] != "I1" {
		t.Fatalf("merged row mismatch: %v", mensaje)
	}

	w, resp = doJSON(t, r, http.MethodGet, "/obtener-ultimo-mensaje?usuario=otro", "")
	if w.Code != http.StatusOK || resp["success"] != false {
		t.Fatalf("unknown user must be success:false, got %d %v", w.Code, resp)
	}

	w, _ = doJSON(t, r, http.MethodGet, "/obtener-ultimo-mensaje", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing usuario param must be 400, got %d", w.Code)
	}
}

func TestObtenerMensajesReturnsArray(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testDB(t)
	if _, err := models.UpsertMensaje(db, "ana", models.Secciones{Titulo: "T"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	r := gin.New()
	r.GET("/obtener-mensajes", ObtenerMensajes(db))

	req := httptest.NewRequest(http.MethodGet, "/obtener-mensajes", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var rows []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &rows); err != nil {
		t.Fatalf("expected a bare JSON array: %v", err)
	}
	if len(rows) != 1 || rows[0]["usuario"] != "ana" {
		t.Fatalf("unexpected rows: %v", rows)
	}
}

func TestCalibracionUpdateKeepsUnrelatedSections(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ps := testPrompts(t, `{"promptsCalibracion": {"titulo":"viejo","conector":"intacto"}}`)
	r := gin.New()
	r.POST("/actualizar-calibracion", ActualizarCalibracion(ps))
	r.GET("/obtener-calibracion", ObtenerCalibracion(ps))

	w, resp := doJSON(t, r, http.MethodPost, "/actualizar-calibracion", `{"titulo":"New prompt"}`)
	if w.Code != http.StatusOK || resp["success"] != true {
		t.Fatalf("update failed: %d %v", w.Code, resp)
	}

	w, resp = doJSON(t, r, http.MethodGet, "/obtener-calibracion", "")
	if w.Code != http.StatusOK {
		t.Fatalf("get failed: %d", w.Code)
	}
	cal, _ := resp["promptsCalibracion"].(map[string]any)
	if cal["titulo"] != "New prompt" {
		t.Fatalf("titulo not updated: %v", cal)
	}
	if cal["conector"] != "intacto" {
		t.Fatalf("unrelated section lost: %v", cal)
	}
}

func TestEvaluacionUsesCachedSectionText(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ps := testPrompts(t, `{"promptsCalibracion": {"titulo":"Evalúa: [transcripción]"}}`)
	state := transcripts.New()
	state.Set("titulo", "Hello")
	ev := svc.NewEvaluator(echoCompleter{}, ps, state)

	r := gin.New()
	r.GET("/evaluacion", Evaluacion(ev, state))

	w, resp := doJSON(t, r, http.MethodGet, "/evaluacion?seccion=titulo", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	evaluacion, _ := resp["evaluacion"].(string)
	if evaluacion != "EVAL:Evalúa: Hello" {
		t.Fatalf("evaluation not derived from cached text and prompt: %q", evaluacion)
	}

	w, _ = doJSON(t, r, http.MethodGet, "/evaluacion", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing seccion must be 400, got %d", w.Code)
	}
}

func TestEvaluarEscritoRequiresTexto(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ps := testPrompts(t, `{"promptsCalibracion": {}}`)
	ev := svc.NewEvaluator(echoCompleter{}, ps, transcripts.New())
	r := gin.New()
	r.POST("/evaluar-escrito", EvaluarEscrito(ev))

	w, _ := doJSON(t, r, http.MethodPost, "/evaluar-escrito", `{"section":"titulo"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing texto must be 400, got %d", w.Code)
	}
	w, resp := doJSON(t, r, http.MethodPost, "/evaluar-escrito", `{"section":"titulo","texto":"mi nota"}`)
	evaluacion, _ := resp["evaluacion"].(string)
	if w.Code != http.StatusOK || !strings.Contains(evaluacion, "mi nota") {
		t.Fatalf("expected evaluation derived from the text, got %d %v", w.Code, resp)
	}
}

func TestVerPreguntasAlwaysEmpty(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := preguntas.New(filepath.Join(t.TempDir(), "preguntas.json"))
	r := gin.New()
	r.POST("/guardar-preguntas", GuardarPreguntas(store))
	r.GET("/ver-preguntas", VerPreguntas())

	w, _ := doJSON(t, r, http.MethodPost, "/guardar-preguntas", `{"tema":"t","proposito":"p","audiencia":"a","tiempo":"30"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("save failed: %d", w.Code)
	}

	// saved answers are never echoed back; the endpoint always answers empty
	w, resp := doJSON(t, r, http.MethodGet, "/ver-preguntas", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	for _, k := range []string{"tema", "proposito", "audiencia", "tiempo"} {
		if resp[k] != "" {
			t.Fatalf("expected empty %s, got %v", k, resp[k])
		}
	}
}

func TestGuardarPreguntasValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := preguntas.New(filepath.Join(t.TempDir(), "preguntas.json"))
	r := gin.New()
	r.POST("/guardar-preguntas", GuardarPreguntas(store))

	w, _ := doJSON(t, r, http.MethodPost, "/guardar-preguntas", `{"tema":"t","proposito":"p","audiencia":"a"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing tiempo must be 400, got %d", w.Code)
	}
}

func TestAplicarSugerenciasValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ps := testPrompts(t, `{"promptsCalibracion": {}}`)
	ev := svc.NewEvaluator(echoCompleter{}, ps, transcripts.New())
	r := gin.New()
	r.POST("/aplicar-sugerencias", AplicarSugerencias(ev))

	w, _ := doJSON(t, r, http.MethodPost, "/aplicar-sugerencias", `{"transcripcion":"t","evaluacion":"e"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing seccion must be 400, got %d", w.Code)
	}
	w, resp := doJSON(t, r, http.MethodPost, "/aplicar-sugerencias", `{"transcripcion":"t","evaluacion":"e","seccion":"titulo"}`)
	sugerida, _ := resp["transcripcionSugerida"].(string)
	if w.Code != http.StatusOK || sugerida == "" {
		t.Fatalf("expected rewritten text, got %d %v", w.Code, resp)
	}
}
