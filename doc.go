// Package main provides the entry point of roleadmin, a settings panel for
// managing the roles users are assigned to. It runs a fiber web server with
// server rendered pages to list, add, edit and delete roles. Only super
// administrators may use it, deletes are protected by CSRF tokens, and gorm
// persists the data in mysql, postgres or sqlite.
package main
