package routes

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/Uaq907/estateflow-sub000/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// buildTestApp creates a minimal Iris app with a permission-gated route and
// the JWT verifier, mirroring the production wiring in main.go.
func buildTestApp() *iris.Application {
	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")
	app := iris.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} { return new(utils.AccessToken) })

	api := app.Party("/api", accessTokenVerifierMiddleware)
	{
		api.Post("/leases", utils.RequirePermission("leases:create"), func(ctx iris.Context) {
			ctx.JSON(iris.Map{"success": true})
		})
	}
	if err := app.Build(); err != nil {
		panic(err)
	}
	return app
}

func signTestToken(role string, permissions []string) string {
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), 0)
	token, _ := signer.Sign(utils.AccessToken{ID: 1, Role: role, Permissions: permissions})
	return string(token)
}

func TestLeaseCreatePermissionGate(t *testing.T) {
	app := buildTestApp()

	// No token
	req := httptest.NewRequest(http.MethodPost, "/api/leases", nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code == http.StatusOK {
		t.Fatalf("expected non-200 without token, got %d", resp.Code)
	}

	// Staff without the permission -> 403
	req2 := httptest.NewRequest(http.MethodPost, "/api/leases", nil)
	req2.Header.Set("Authorization", "Bearer "+signTestToken("staff", nil))
	resp2 := httptest.NewRecorder()
	app.ServeHTTP(resp2, req2)
	if resp2.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without leases:create, got %d", resp2.Code)
	}

	// Staff holding the permission string -> 200
	req3 := httptest.NewRequest(http.MethodPost, "/api/leases", nil)
	req3.Header.Set("Authorization", "Bearer "+signTestToken("staff", []string{"leases:create"}))
	resp3 := httptest.NewRecorder()
	app.ServeHTTP(resp3, req3)
	if resp3.Code != http.StatusOK {
		t.Fatalf("expected 200 with leases:create, got %d", resp3.Code)
	}

	// Admin bypasses the permission list entirely
	req4 := httptest.NewRequest(http.MethodPost, "/api/leases", nil)
	req4.Header.Set("Authorization", "Bearer "+signTestToken("admin", nil))
	resp4 := httptest.NewRecorder()
	app.ServeHTTP(resp4, req4)
	if resp4.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin role, got %d", resp4.Code)
	}
}
