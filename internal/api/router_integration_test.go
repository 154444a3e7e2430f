//go:build integration
// +build integration

package api_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/lib/pq"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/guttosm/shipregistry/config"
	"github.com/guttosm/shipregistry/db/migrations"
	"github.com/guttosm/shipregistry/internal/app"
	"github.com/guttosm/shipregistry/internal/domain/dto"
)

func startPG(t *testing.T) (dsn string, host string, port nat.Port, terminate func()) {
	t.Helper()
	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "shipregistry",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(h string, p nat.Port) string {
			return fmt.Sprintf("host=%s port=%s user=postgres password=postgres dbname=shipregistry sslmode=disable", h, p.Port())
		}).WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("container: %v", err)
	}
	h, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", "postgres", "postgres", h, mp.Port(), "shipregistry")
	terminate = func() { _ = c.Terminate(context.Background()) }
	return dsn, h, mp, terminate
}

func openAndMigrate(t *testing.T, dsn string) *sql.DB {
	t.Helper()
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if err := migrations.Up(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestAPI_E2E_ShipLifecycle(t *testing.T) {
	dsn, host, port, term := startPG(t)
	defer term()
	db := openAndMigrate(t, dsn)
	defer db.Close()

	old := config.AppConfig
	defer func() { config.AppConfig = old }()
	config.AppConfig.Server.APIPrefix = "/rest"
	config.AppConfig.Postgres.Host = host
	config.AppConfig.Postgres.Port = port.Int()
	config.AppConfig.Postgres.User = "postgres"
	config.AppConfig.Postgres.Password = "postgres"
	config.AppConfig.Postgres.DBName = "shipregistry"
	config.AppConfig.Postgres.SSLMode = "disable"
	config.AppConfig.Postgres.URL = dsn

	router, cleanup, err := app.InitializeApp()
	if err != nil {
		t.Fatalf("init app: %v", err)
	}
	defer cleanup()

	send := func(method, path, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		return w
	}

	prod := time.Date(3018, 5, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	w := send(http.MethodPost, "/rest/ships",
		fmt.Sprintf(`{"name":"Daedalus","planet":"Earth","shipType":"MILITARY","prodDate":%d,"isUsed":true,"speed":0.5,"crewSize":120}`, prod))
	if w.Code != http.StatusOK {
		t.Fatalf("create: %d body=%s", w.Code, w.Body.String())
	}
	var created dto.ShipResponse
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("json: %v", err)
	}
	if created.ID == 0 || created.Rating != 10 || created.ProdDate != prod {
		t.Fatalf("unexpected ship: %+v", created)
	}

	path := fmt.Sprintf("/rest/ships/%d", created.ID)
	w = send(http.MethodPost, path, `{"isUsed":false}`)
	var updated dto.ShipResponse
	_ = json.Unmarshal(w.Body.Bytes(), &updated)
	if w.Code != http.StatusOK || updated.Rating != 20 || updated.Name != "Daedalus" {
		t.Fatalf("update: %d %+v", w.Code, updated)
	}

	w = send(http.MethodGet, "/rest/ships?name=dal&minRating=15", "")
	var list []dto.ShipResponse
	_ = json.Unmarshal(w.Body.Bytes(), &list)
	if w.Code != http.StatusOK || len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("list: %d %s", w.Code, w.Body.String())
	}

	w = send(http.MethodGet, "/rest/ships/count?shipType=TRANSPORT", "")
	if w.Code != http.StatusOK || w.Body.String() != "0" {
		t.Fatalf("count: %d %s", w.Code, w.Body.String())
	}

	if w = send(http.MethodDelete, path, ""); w.Code != http.StatusOK {
		t.Fatalf("delete: %d", w.Code)
	}
	if w = send(http.MethodGet, path, ""); w.Code != http.StatusNotFound {
		t.Fatalf("get after delete: %d", w.Code)
	}

	w = send(http.MethodGet, "/readyz", "")
	if w.Code != http.StatusOK {
		t.Fatalf("readyz: %d", w.Code)
	}
}
