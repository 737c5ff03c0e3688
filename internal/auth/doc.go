// Package auth provides authentication and authorization for the admin panel.
//
// Users authenticate locally with an Argon2id password hash. Each user has one
// role, each role carries a set of permissions in resource.action form.
//
// Handlers guard themselves either with the RequirePermission middleware or by
// calling Service.DenyAccessUnlessGranted, which returns ErrUnauthenticated or an
// *AccessDeniedError for the app error handler to map.
//
// Example usage:
//
//	authService := auth.NewService(db)
//
//	app.Get("/admin/settings/roles",
//	    auth.RequirePermission(authService, auth.PermSuperAdmin),
//	    handler,
//	)
package auth
