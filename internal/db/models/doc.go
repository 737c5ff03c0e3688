// Package models contains the gorm models of the role administration.
package models
