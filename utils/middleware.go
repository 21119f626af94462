package utils

import (
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"golang.org/x/exp/slices"
)

// EmployeeIDFromTokenMiddleware extracts the employee ID from the JWT and
// stores it in the request context for downstream handlers.
func EmployeeIDFromTokenMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	ctx.Values().Set("employeeID", claims.ID)
	ctx.Next()
}

// HasPermission reports whether the token grants the given "entity:verb"
// capability. Admin roles hold every permission implicitly.
func HasPermission(claims *AccessToken, permission string) bool {
	if claims == nil {
		return false
	}
	if claims.Role == "admin" || claims.Role == "super_admin" {
		return true
	}
	return slices.Contains(claims.Permissions, permission)
}

// RequirePermission gates a route behind a permission string. The check runs
// before any mutation; a denied request never reaches the handler.
func RequirePermission(permission string) iris.Handler {
	return func(ctx iris.Context) {
		claims := jwt.Get(ctx).(*AccessToken)
		if !HasPermission(claims, permission) {
			ctx.StatusCode(iris.StatusForbidden)
			ctx.JSON(iris.Map{"error": "forbidden", "message": "missing permission: " + permission})
			return
		}
		ctx.Values().Set("employeeID", claims.ID)
		ctx.Next()
	}
}

// AdminOnlyMiddleware ensures the requester has admin or super_admin role
func AdminOnlyMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	role := claims.Role
	if role != "admin" && role != "super_admin" {
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"error": "forbidden", "message": "admin access required"})
		return
	}
	ctx.Values().Set("employeeID", claims.ID)
	ctx.Next()
}
